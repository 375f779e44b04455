package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/soletrader/storefront/pkg/jwtx"
	"github.com/soletrader/storefront/pkg/slogx"
)

// ErrUserNotFound is returned by a UserLookup when the token's subject no
// longer exists.
var ErrUserNotFound = errors.New("httpx: user not found")

// UserLookup resolves a token subject to the user's current role. The gate
// re-reads the user on every request so deleted accounts and role changes
// take effect immediately; MFA status is deliberately not re-checked here,
// so a token minted before MFA was enabled rides out its full lifetime.
type UserLookup func(ctx context.Context, userID string) (role string, err error)

// AuthnMiddleware authenticates requests carrying a bearer session token.
// Missing token: 401. Bad or expired token: 403. Subject gone: 401.
// On success the user id and freshly-read role are attached to the context.
func AuthnMiddleware(v jwtx.Verifier, lookup UserLookup) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				WriteError(w, http.StatusUnauthorized, CodeMissingToken, "access token required")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("token verification failed", "err", err)
				WriteError(w, http.StatusForbidden, CodeInvalidToken, "invalid or expired token")
				return
			}

			role, err := lookup(ctx, claims.Subject)
			if err != nil {
				if errors.Is(err, ErrUserNotFound) {
					WriteError(w, http.StatusUnauthorized, CodeUserNotFound, "user not found")
					return
				}
				log.Error("user lookup failed", "user_id", claims.Subject, "err", err)
				WriteInternalError(w)
				return
			}

			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyRole, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
