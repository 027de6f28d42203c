package domain

import "time"

// Message is a single direct message. SentAt is set at creation and never
// changes; ReadAt is nil until the recipient marks the message read, and
// once set it never changes either.
type Message struct {
	ID           int64
	FromUsername string
	ToUsername   string
	Body         string
	SentAt       time.Time
	ReadAt       *time.Time
}

// MessageDetail is a message with both parties expanded to their public
// profiles, as returned by the single-message read path.
type MessageDetail struct {
	ID     int64
	Body   string
	SentAt time.Time
	ReadAt *time.Time
	From   Profile
	To     Profile
}

// SentMessage is a history entry for the sender's outbox: the recipient is
// expanded, the sender is implied by the query.
type SentMessage struct {
	ID     int64
	Body   string
	SentAt time.Time
	ReadAt *time.Time
	To     Profile
}

// ReceivedMessage is a history entry for the recipient's inbox.
type ReceivedMessage struct {
	ID     int64
	Body   string
	SentAt time.Time
	ReadAt *time.Time
	From   Profile
}
