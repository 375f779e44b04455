package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "storefront-test"

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func TestNewHS256RejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256([]byte("too-short"), testIssuer)
	require.ErrorIs(t, err, ErrSecretTooShort)
}

func TestSignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	now := time.Now().UTC()
	raw, err := h.Sign(NewSessionClaims("user-1", "ADMIN", testIssuer, now))
	require.NoError(t, err)

	claims, err := h.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "ADMIN", claims.Role)
	require.WithinDuration(t, now.Add(SessionTTL), claims.ExpiresAt.Time, 2*time.Second)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	raw, err := h.Sign(NewSessionClaims("user-1", "USER", testIssuer, time.Now().UTC()))
	require.NoError(t, err)

	parts := strings.Split(raw, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = h.Verify(tampered)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	a, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)
	b, err := NewHS256([]byte("ffffffffffffffffffffffffffffffff"), testIssuer)
	require.NoError(t, err)

	raw, err := a.Sign(NewSessionClaims("user-1", "USER", testIssuer, time.Now().UTC()))
	require.NoError(t, err)

	_, err = b.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	// Issued two hours ago: past the 1h TTL plus verification leeway.
	raw, err := h.Sign(NewSessionClaims("user-1", "USER", testIssuer, time.Now().UTC().Add(-2*time.Hour)))
	require.NoError(t, err)

	_, err = h.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, NewSessionClaims("user-1", "ADMIN", testIssuer, time.Now().UTC()))
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = h.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	raw, err := h.Sign(NewSessionClaims("user-1", "USER", "someone-else", time.Now().UTC()))
	require.NoError(t, err)

	_, err = h.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	t.Parallel()

	h, err := NewHS256(testSecret(), testIssuer)
	require.NoError(t, err)

	raw, err := h.Sign(NewSessionClaims("", "USER", testIssuer, time.Now().UTC()))
	require.NoError(t, err)

	_, err = h.Verify(raw)
	require.ErrorIs(t, err, ErrInvalidToken)
}
