package jwtx

// Claims is an open claims mapping carried inside a token. We keep it
// schemaless so the signer round-trips exactly what the caller put in;
// services layer their own conventions (e.g. a "username" claim) on top.
type Claims map[string]any

// Username returns the "username" claim, or "" when absent or not a string.
func (c Claims) Username() string {
	u, _ := c["username"].(string)
	return u
}
