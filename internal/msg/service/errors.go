package service

import "errors"

var (
	// ErrInvalidCredentials is the uniform login failure: the caller cannot
	// tell whether the username was unknown or the password wrong.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrUsernameTaken reports a registration against an existing username.
	ErrUsernameTaken = errors.New("service: username already taken")

	// ErrNotFound reports a missing user or message.
	ErrNotFound = errors.New("service: not found")

	// ErrNotParticipant reports a read of a message by a user who is neither
	// its sender nor its recipient.
	ErrNotParticipant = errors.New("service: not a participant of this message")

	// ErrNotRecipient reports a mark-read by anyone but the recipient,
	// including the sender.
	ErrNotRecipient = errors.New("service: not the recipient of this message")
)
