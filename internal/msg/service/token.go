package service

import (
	"time"

	"github.com/aussiebroadwan/courier/pkg/jwtx"
)

// TokenService issues identity tokens bound to a username. Tokens are
// stateless and carry no expiry: there is no session store and no
// server-side revocation, only the process-wide signing secret.
type TokenService struct {
	Signer jwtx.Signer
}

// Issue signs a token asserting the given username. The iat claim records
// when the token was minted; nothing else is added.
func (s *TokenService) Issue(username string) (string, error) {
	return s.Signer.Sign(jwtx.Claims{
		"username": username,
		"iat":      time.Now().UTC().Unix(),
	})
}
