package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/domain"
	"github.com/aussiebroadwan/courier/internal/msg/store"
	"github.com/aussiebroadwan/courier/pkg/cryptox"
)

// UserService owns registration, authentication and user reads.
type UserService struct {
	Store store.Store

	// BcryptCost is the password hashing work factor; 0 means the
	// cryptox default.
	BcryptCost int
}

// RegisterParams are the fields accepted at registration. The password is
// hashed here and the plaintext is never stored.
type RegisterParams struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// Register creates a new user with join and last-login timestamps set to
// now. Returns ErrUsernameTaken when the username already exists.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (domain.User, error) {
	hash, err := cryptox.HashPassword(p.Password, s.BcryptCost)
	if err != nil {
		return domain.User{}, err
	}

	now := time.Now().UTC()
	u := domain.User{
		Username:     p.Username,
		PasswordHash: hash,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		JoinAt:       now,
		LastLoginAt:  now,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, err
	}
	return u, nil
}

// Authenticate checks a username/password pair and bumps last_login_at on
// success. Unknown username and wrong password collapse into the single
// ErrInvalidCredentials so login failures leak nothing.
func (s *UserService) Authenticate(ctx context.Context, username, password string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidCredentials
			}
			return err
		}

		if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
			return ErrInvalidCredentials
		}

		return tx.Users().UpdateLastLogin(ctx, username, time.Now().UTC())
	})
}

// Get returns the full record for a username, or ErrNotFound.
func (s *UserService) Get(ctx context.Context, username string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}

// List returns public profiles for every user, ordered by username.
func (s *UserService) List(ctx context.Context) ([]domain.Profile, error) {
	return s.Store.Users().ListUsers(ctx)
}

// MessagesTo returns the user's inbox with each sender expanded.
func (s *UserService) MessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error) {
	return s.Store.Messages().ListMessagesTo(ctx, username)
}

// MessagesFrom returns the user's outbox with each recipient expanded.
func (s *UserService) MessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error) {
	return s.Store.Messages().ListMessagesFrom(ctx, username)
}
