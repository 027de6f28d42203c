package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken covers every verification failure: malformed input,
	// bad signature, wrong algorithm, wrong secret. Callers should not need
	// to distinguish why a token is bad.
	ErrInvalidToken = errors.New("jwtx: invalid token")

	// ErrNoSecret reports construction with an empty signing secret.
	ErrNoSecret = errors.New("jwtx: empty signing secret")
)

// Signer is our interface for anything that can sign a claims mapping.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// HS256 signs and verifies tokens with a single process-wide HMAC-SHA256
// secret. Tokens are stateless: no server-side session, and therefore no
// server-side revocation. The secret is read-only after construction.
type HS256 struct {
	secret []byte
}

// NewHS256 builds a signer/verifier around the given secret.
func NewHS256(secret []byte) (*HS256, error) {
	if len(secret) == 0 {
		return nil, ErrNoSecret
	}
	return &HS256{secret: secret}, nil
}

// Sign produces a compact token encoding exactly the given claims. No
// registered claims are injected, so Verify(Sign(c)) returns c as-is.
func (h *HS256) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(c))
	return tok.SignedString(h.secret)
}

// Verify parses and checks the signature. Any failure collapses into
// ErrInvalidToken; the original error is wrapped for logging.
func (h *HS256) Verify(raw string) (Claims, error) {
	parsed, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		// Only HS256 is acceptable; reject alg confusion attempts.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return h.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return Claims(mc), nil
}
