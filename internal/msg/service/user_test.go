package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/courier/internal/msg/store"
	"github.com/aussiebroadwan/courier/internal/msg/store/drivers/sqlite"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())
	return s
}

func newUserService(t *testing.T) *UserService {
	t.Helper()
	// Min-ish bcrypt cost keeps tests fast.
	return &UserService{Store: newTestStore(t), BcryptCost: 4}
}

func register(t *testing.T, svc *UserService, username string) {
	t.Helper()

	_, err := svc.Register(context.Background(), RegisterParams{
		Username:  username,
		Password:  username + "-password",
		FirstName: "Test",
		LastName:  "User",
		Phone:     "+61400000001",
	})
	require.NoError(t, err)
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newUserService(t)

	u, err := svc.Register(ctx, RegisterParams{
		Username:  "alice",
		Password:  "pw1",
		FirstName: "Alice",
		LastName:  "Anderson",
	})
	require.NoError(t, err)
	require.NotEqual(t, "pw1", u.PasswordHash, "plaintext must never be stored")
	require.False(t, u.JoinAt.IsZero())

	require.NoError(t, svc.Authenticate(ctx, "alice", "pw1"))
}

func TestAuthenticateBumpsLastLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newUserService(t)
	register(t, svc, "alice")

	before, err := svc.Get(ctx, "alice")
	require.NoError(t, err)

	require.NoError(t, svc.Authenticate(ctx, "alice", "alice-password"))

	after, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	require.False(t, after.LastLoginAt.Before(before.LastLoginAt))
}

func TestAuthenticateFailureIsUniform(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newUserService(t)
	register(t, svc, "alice")

	wrongPassword := svc.Authenticate(ctx, "alice", "nope")
	unknownUser := svc.Authenticate(ctx, "mallory", "nope")

	// Same sentinel for both: a login probe learns nothing about which
	// usernames exist.
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newUserService(t)
	register(t, svc, "alice")

	_, err := svc.Register(ctx, RegisterParams{
		Username:  "alice",
		Password:  "different",
		FirstName: "Other",
		LastName:  "Alice",
	})
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestGetAndList(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newUserService(t)
	register(t, svc, "bob")
	register(t, svc, "alice")

	u, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	_, err = svc.Get(ctx, "nobody")
	require.ErrorIs(t, err, ErrNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "alice", all[0].Username)
}
