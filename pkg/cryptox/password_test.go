package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordRoundTrip(t *testing.T) {
	t.Parallel()

	for _, password := range []string{
		"password123",
		"correct horse battery staple",
		"pässwörd-ünïcödé",
	} {
		hash, err := HashPassword(password)
		require.NoError(t, err)
		require.NotEqual(t, password, hash)

		require.NoError(t, VerifyPassword(password, hash))
		require.ErrorIs(t, VerifyPassword(password+"x", hash), ErrPasswordMismatch)
	}
}

func TestHashEmbedsCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, HashCost, cost)
}

func TestHashesAreSalted(t *testing.T) {
	t.Parallel()

	a, err := HashPassword("password123")
	require.NoError(t, err)
	b, err := HashPassword("password123")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyMalformedHashFailsClosed(t *testing.T) {
	t.Parallel()

	for _, bad := range []string{"", "not-a-hash", "$2a$garbage"} {
		require.ErrorIs(t, VerifyPassword("password123", bad), ErrPasswordMismatch)
	}
}
