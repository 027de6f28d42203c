package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/aussiebroadwan/courier/pkg/jwtx"
	"github.com/aussiebroadwan/courier/pkg/slogx"
)

// TokenField is the request-body field carrying the identity token. Kept as
// a body field (not a header) for compatibility with existing clients.
const TokenField = "_token"

// maxBodyBytes bounds how much of a request body the middleware will buffer
// while looking for the token field.
const maxBodyBytes = 1 << 20

// ParseIdentity verifies a raw token and shapes the claims into an Identity.
// It is a pure function: a bad or empty token yields (zero, false), never an
// error, so callers compose the authorization decision downstream.
func ParseIdentity(v jwtx.Verifier, raw string) (Identity, bool) {
	if raw == "" {
		return Identity{}, false
	}
	claims, err := v.Verify(raw)
	if err != nil {
		return Identity{}, false
	}
	return Identity{Username: claims.Username(), Claims: claims}, true
}

// Authenticate extracts the token from the request body's TokenField and, if
// it verifies, attaches the identity to the request context. It NEVER halts
// the chain: a missing, malformed or forged token degrades to an anonymous
// request, deferring the actual authorization decision to RequireLogin or
// RequireUser. This lets anonymous-accessible routes share the same entry
// middleware.
func Authenticate(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := extractBodyToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			id, ok := ParseIdentity(v, raw)
			if !ok {
				slogx.FromContext(ctx).Debug("token did not verify, continuing anonymous")
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(ctx, id)))
		})
	}
}

// extractBodyToken reads the JSON request body, pulls out the token field,
// and restores the body so the handler can decode it again. Returns false
// when there is no body, the body is not a JSON object, or the field is
// absent.
func extractBodyToken(r *http.Request) (string, bool) {
	if r.Body == nil {
		return "", false
	}

	buf, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(buf))
	if err != nil || len(buf) == 0 {
		return "", false
	}

	var body struct {
		Token string `json:"_token"`
	}
	if err := json.Unmarshal(buf, &body); err != nil {
		return "", false
	}
	return body.Token, body.Token != ""
}
