package httpx

import "net/http"

// RequireRole rejects requests whose authenticated role does not match.
// Must run after AuthnMiddleware.
func RequireRole(role string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				WriteError(w, http.StatusForbidden, CodeForbidden, "admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
