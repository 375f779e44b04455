package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/soletrader/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()
	h, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), "storefront-test")
	require.NoError(t, err)
	return h
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{
			"user_id": UserIDFromContext(r.Context()),
			"role":    RoleFromContext(r.Context()),
		})
	})
}

func staticLookup(role string, err error) UserLookup {
	return func(ctx context.Context, userID string) (string, error) {
		return role, err
	}
}

func TestAuthnMiddlewareMissingToken(t *testing.T) {
	t.Parallel()

	h := Chain(okHandler(), AuthnMiddleware(newTestSigner(t), staticLookup("USER", nil)))

	for _, header := range []string{"", "Basic abc", "bearer-ish nonsense"} {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, CodeMissingToken, body.Error)
	}
}

func TestAuthnMiddlewareInvalidToken(t *testing.T) {
	t.Parallel()

	h := Chain(okHandler(), AuthnMiddleware(newTestSigner(t), staticLookup("USER", nil)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, CodeInvalidToken, body.Error)
}

func TestAuthnMiddlewareDeletedUser(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	h := Chain(okHandler(), AuthnMiddleware(signer, staticLookup("", ErrUserNotFound)))

	token, err := signer.Sign(jwtx.NewSessionClaims("gone-user", "USER", "storefront-test", time.Now().UTC()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, CodeUserNotFound, body.Error)
}

func TestAuthnMiddlewareLookupFailure(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	h := Chain(okHandler(), AuthnMiddleware(signer, staticLookup("", errors.New("store down"))))

	token, err := signer.Sign(jwtx.NewSessionClaims("user-1", "USER", "storefront-test", time.Now().UTC()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAuthnMiddlewareUsesFreshRole(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	// Token claims USER but the store now says ADMIN: the store wins.
	h := Chain(okHandler(), AuthnMiddleware(signer, staticLookup("ADMIN", nil)))

	token, err := signer.Sign(jwtx.NewSessionClaims("user-1", "USER", "storefront-test", time.Now().UTC()))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "user-1", body["user_id"])
	require.Equal(t, "ADMIN", body["role"])
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)

	newReq := func(t *testing.T) *http.Request {
		t.Helper()
		token, err := signer.Sign(jwtx.NewSessionClaims("user-1", "USER", "storefront-test", time.Now().UTC()))
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return req
	}

	t.Run("non-admin rejected", func(t *testing.T) {
		h := Chain(okHandler(),
			AuthnMiddleware(signer, staticLookup("USER", nil)),
			RequireRole("ADMIN"),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newReq(t))

		require.Equal(t, http.StatusForbidden, rec.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, CodeForbidden, body.Error)
	})

	t.Run("admin allowed", func(t *testing.T) {
		h := Chain(okHandler(),
			AuthnMiddleware(signer, staticLookup("ADMIN", nil)),
			RequireRole("ADMIN"),
		)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, newReq(t))

		require.Equal(t, http.StatusOK, rec.Code)
	})
}
