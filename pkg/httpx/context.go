package httpx

import (
	"context"

	"github.com/aussiebroadwan/courier/pkg/jwtx"
)

// Identity is the verified claim set acting on the current request. It is
// immutable and lives only in the request context.
type Identity struct {
	Username string
	Claims   jwtx.Claims
}

type ctxKey struct{}

// ContextWithIdentity attaches a verified identity to the request context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the attached identity, if any. The second
// return distinguishes "anonymous" from a present identity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
