package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// newMessageFixture registers alice, bob and carol and returns both services
// over the same store.
func newMessageFixture(t *testing.T) (*UserService, *MessageService) {
	t.Helper()

	users := newUserService(t)
	for _, u := range []string{"alice", "bob", "carol"} {
		register(t, users, u)
	}
	return users, &MessageService{Store: users.Store}
}

func TestSendAndGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, msgs := newMessageFixture(t)

	sent, err := msgs.Send(ctx, "bob", "alice", "hey alice")
	require.NoError(t, err)
	require.Positive(t, sent.ID)
	require.Equal(t, "bob", sent.FromUsername)

	t.Run("sender can read", func(t *testing.T) {
		d, err := msgs.Get(ctx, sent.ID, "bob")
		require.NoError(t, err)
		require.Equal(t, "hey alice", d.Body)
	})

	t.Run("recipient can read", func(t *testing.T) {
		d, err := msgs.Get(ctx, sent.ID, "alice")
		require.NoError(t, err)
		require.Equal(t, "bob", d.From.Username)
	})

	t.Run("uninvolved user is rejected", func(t *testing.T) {
		_, err := msgs.Get(ctx, sent.ID, "carol")
		require.ErrorIs(t, err, ErrNotParticipant)
	})

	t.Run("missing message", func(t *testing.T) {
		_, err := msgs.Get(ctx, 9999, "alice")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSendToUnknownRecipient(t *testing.T) {
	t.Parallel()

	_, msgs := newMessageFixture(t)

	_, err := msgs.Send(context.Background(), "bob", "nobody", "into the void")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMarkRead(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, msgs := newMessageFixture(t)

	sent, err := msgs.Send(ctx, "bob", "alice", "read me")
	require.NoError(t, err)

	t.Run("sender cannot mark read", func(t *testing.T) {
		_, err := msgs.MarkRead(ctx, sent.ID, "bob")
		require.ErrorIs(t, err, ErrNotRecipient)
	})

	t.Run("uninvolved user cannot mark read", func(t *testing.T) {
		_, err := msgs.MarkRead(ctx, sent.ID, "carol")
		require.ErrorIs(t, err, ErrNotRecipient)
	})

	t.Run("recipient marks read once", func(t *testing.T) {
		d, err := msgs.MarkRead(ctx, sent.ID, "alice")
		require.NoError(t, err)
		require.NotNil(t, d.ReadAt)

		// Second mark is an idempotent no-op with the original timestamp.
		again, err := msgs.MarkRead(ctx, sent.ID, "alice")
		require.NoError(t, err)
		require.NotNil(t, again.ReadAt)
		require.Equal(t, d.ReadAt.Unix(), again.ReadAt.Unix())
	})

	t.Run("read state shows up in the inbox", func(t *testing.T) {
		inbox, err := users.MessagesTo(ctx, "alice")
		require.NoError(t, err)
		require.Len(t, inbox, 1)
		require.NotNil(t, inbox[0].ReadAt)
	})
}
