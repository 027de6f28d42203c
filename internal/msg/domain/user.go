package domain

import "time"

// User is a registered account. Username is the identity key: unique and
// never reassigned once created. PasswordHash is a bcrypt hash; plaintext
// passwords exist only transiently during register/login.
type User struct {
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
	JoinAt       time.Time
	LastLoginAt  time.Time
}

// Profile is the public subset of a user, safe to embed in any response.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}
