package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/domain"
	"github.com/aussiebroadwan/courier/internal/msg/store"
)

// MessageService owns sending, reading and marking messages. The acting
// username always comes from the verified identity, never from request
// bodies; every operation that touches a specific message re-checks that the
// actor is entitled to it.
type MessageService struct {
	Store store.Store
}

// Get returns a message with both parties expanded. The actor must be the
// sender or the recipient; anyone else gets ErrNotParticipant regardless of
// whether they are signed in.
func (s *MessageService) Get(ctx context.Context, id int64, actor string) (domain.MessageDetail, error) {
	d, err := s.Store.Messages().GetMessageByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.MessageDetail{}, ErrNotFound
		}
		return domain.MessageDetail{}, err
	}

	if actor != d.From.Username && actor != d.To.Username {
		return domain.MessageDetail{}, ErrNotParticipant
	}
	return d, nil
}

// Send persists a new message from the actor to the named recipient. The
// recipient must exist (ErrNotFound otherwise); the recipient-existence
// check and the insert run in one transaction.
func (s *MessageService) Send(ctx context.Context, from, to, body string) (domain.Message, error) {
	var msg domain.Message
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByUsername(ctx, to); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		var err error
		msg, err = tx.Messages().CreateMessage(ctx, from, to, body, time.Now().UTC())
		return err
	})
	if err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// MarkRead sets the message's read timestamp. Only the recipient may do
// this; the sender is rejected with ErrNotRecipient. Marking an already-read
// message is an idempotent no-op: the stored timestamp never changes and the
// current record is returned.
func (s *MessageService) MarkRead(ctx context.Context, id int64, actor string) (domain.MessageDetail, error) {
	var d domain.MessageDetail
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		d, err = tx.Messages().GetMessageByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}

		if actor != d.To.Username {
			return ErrNotRecipient
		}

		if d.ReadAt != nil {
			return nil // already read; keep the original timestamp
		}

		now := time.Now().UTC()
		if err := tx.Messages().MarkMessageRead(ctx, id, now); err != nil {
			return err
		}
		d.ReadAt = &now
		return nil
	})
	if err != nil {
		return domain.MessageDetail{}, err
	}
	return d, nil
}
