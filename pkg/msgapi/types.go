package msgapi

import "time"

// Profile is the public view of a user. There is intentionally no field for
// the password hash anywhere in this package.
type Profile struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
}

// UserDetail is the full public record returned by GET /users/{username}.
type UserDetail struct {
	Username    string    `json:"username"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Phone       string    `json:"phone,omitempty"`
	JoinAt      time.Time `json:"join_at"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// MessageDetail is a message with both parties expanded to public profiles.
type MessageDetail struct {
	ID       int64      `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser Profile    `json:"from_user"`
	ToUser   Profile    `json:"to_user"`
}

// SentMessage is one entry of GET /users/{username}/from: a message the user
// sent, with the recipient expanded.
type SentMessage struct {
	ID     int64      `json:"id"`
	Body   string     `json:"body"`
	SentAt time.Time  `json:"sent_at"`
	ReadAt *time.Time `json:"read_at"`
	ToUser Profile    `json:"to_user"`
}

// ReceivedMessage is one entry of GET /users/{username}/to: a message the
// user received, with the sender expanded.
type ReceivedMessage struct {
	ID       int64      `json:"id"`
	Body     string     `json:"body"`
	SentAt   time.Time  `json:"sent_at"`
	ReadAt   *time.Time `json:"read_at"`
	FromUser Profile    `json:"from_user"`
}

// CreatedMessage is the record returned by POST /messages.
type CreatedMessage struct {
	ID           int64     `json:"id"`
	FromUsername string    `json:"from_username"`
	ToUsername   string    `json:"to_username"`
	Body         string    `json:"body"`
	SentAt       time.Time `json:"sent_at"`
}

// ReadReceipt is the record returned by POST /messages/{id}/read.
type ReadReceipt struct {
	ID     int64      `json:"id"`
	ReadAt *time.Time `json:"read_at"`
}

// RegisterRequest is the POST /register payload. The _token field is parsed
// by the authentication middleware, not bound here.
type RegisterRequest struct {
	Username  string `json:"username"  validate:"required,max=32,excludesall= "`
	Password  string `json:"password"  validate:"required,min=1,max=72"`
	FirstName string `json:"first_name" validate:"required,max=64"`
	LastName  string `json:"last_name"  validate:"required,max=64"`
	Phone     string `json:"phone"      validate:"omitempty,max=32"`
}

// LoginRequest is the POST /login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SendMessageRequest is the POST /messages payload. The sender is never
// taken from the body; it comes from the verified identity.
type SendMessageRequest struct {
	ToUsername string `json:"to_username" validate:"required"`
	Body       string `json:"body"        validate:"required,max=10000"`
}

// TokenResponse carries a freshly issued identity token.
type TokenResponse struct {
	Token string `json:"token"`
}

// UsersResponse wraps the bulk user listing.
type UsersResponse struct {
	Users []Profile `json:"users"`
}

// UserResponse wraps a single user record.
type UserResponse struct {
	User UserDetail `json:"user"`
}

// MessageResponse wraps a single expanded message.
type MessageResponse struct {
	Message MessageDetail `json:"message"`
}

// CreatedMessageResponse wraps the record created by POST /messages.
type CreatedMessageResponse struct {
	Message CreatedMessage `json:"message"`
}

// ReadReceiptResponse wraps the mark-read result.
type ReadReceiptResponse struct {
	Message ReadReceipt `json:"message"`
}

// SentMessagesResponse wraps GET /users/{username}/from.
type SentMessagesResponse struct {
	Messages []SentMessage `json:"messages"`
}

// ReceivedMessagesResponse wraps GET /users/{username}/to.
type ReceivedMessagesResponse struct {
	Messages []ReceivedMessage `json:"messages"`
}

// HealthResponse is returned by the livez/readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
