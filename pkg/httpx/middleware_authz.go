package httpx

import (
	"encoding/json"
	"net/http"
)

// RequireLogin rejects requests with no identity attached. Routes that only
// need "some signed-in user" stop here; per-resource checks happen in the
// handler or in RequireUser.
func RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			writeDenied(w, "unauthorized, not logged in")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects requests whose identity username differs from the
// named path parameter. An anonymous request gets a "please sign in" message
// and a mismatched one gets a generic "unauthorized"; both carry the same
// status so denial stays uniform.
func RequireUser(param string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				writeDenied(w, "please sign in")
				return
			}
			if id.Username != r.PathValue(param) {
				writeDenied(w, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeDenied emits the structured denial body. Lives here rather than in
// the API types package to keep httpx dependency-free of it.
func writeDenied(w http.ResponseWriter, message string) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":   "unauthorized",
		"message": message,
	})
}
