package middleware

import (
	"net/http"
	"strings"

	"logistics-crm/internal/api/reqctx"
	"logistics-crm/internal/auth"
)

// Authenticate resolves the Authorization bearer token and attaches the
// identity to the request context. Requests with no or invalid credentials
// proceed anonymously; route-level RequireIdentity decides whether that
// is fatal.
func Authenticate(resolver auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			scheme, token, found := strings.Cut(header, " ")

			if found && strings.EqualFold(scheme, "Bearer") && token != "" {
				if id, err := resolver.Resolve(strings.TrimSpace(token)); err == nil {
					r = r.WithContext(reqctx.WithIdentity(r.Context(), id))
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireIdentity rejects anonymous requests with 401.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reqctx.IdentityFrom(r.Context()) == nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid or missing credentials")
			return
		}
		next.ServeHTTP(w, r)
	})
}
