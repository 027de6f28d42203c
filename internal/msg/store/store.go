package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/courier/internal/msg/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for now)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and a Tx wrapper for the few multi-step operations that must be
// atomic.
type Store interface {
	Users() Users
	Messages() Messages

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction: rolled back if fn errors,
	// committed otherwise. Prefer this over Tx directly.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser inserts a new user. Returns ErrAlreadyExists when the
	// username is taken (uniqueness is enforced by the schema).
	CreateUser(ctx context.Context, u domain.User) error

	// GetUserByUsername returns the full record including the password hash.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// UpdateLastLogin bumps last_login_at. Returns ErrNotFound when no such
	// user exists; sqlite reports zero affected rows rather than an error,
	// so the driver has to check.
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error

	// ListUsers returns public profiles for all users ordered by username.
	ListUsers(ctx context.Context) ([]domain.Profile, error)
}

type Messages interface {
	// CreateMessage inserts a message and returns it with the generated id.
	CreateMessage(ctx context.Context, from, to, body string, sentAt time.Time) (domain.Message, error)

	// GetMessageByID returns the message with both parties expanded.
	GetMessageByID(ctx context.Context, id int64) (domain.MessageDetail, error)

	// MarkMessageRead sets read_at iff it is currently NULL, keeping the
	// timestamp immutable once set. Marking an already-read message is a
	// no-op, not an error. Returns ErrNotFound for a missing id.
	MarkMessageRead(ctx context.Context, id int64, at time.Time) error

	// ListMessagesFrom returns messages sent by the user, recipient expanded.
	ListMessagesFrom(ctx context.Context, username string) ([]domain.SentMessage, error)

	// ListMessagesTo returns messages sent to the user, sender expanded.
	ListMessagesTo(ctx context.Context, username string) ([]domain.ReceivedMessage, error)
}
