package service

import (
	"context"
	"testing"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, auth, _ := newTestServices(t)
	signer := newTestSigner(t)

	t.Run("plain email gets USER role and a working token", func(t *testing.T) {
		res, err := auth.Register(ctx, "alice@example.com", "password123", "Alice")
		require.NoError(t, err)
		require.Equal(t, domain.RoleUser, res.User.Role)
		require.False(t, res.User.MFAEnabled)
		require.NotEqual(t, "password123", res.User.PasswordHash)

		claims, err := signer.Verify(res.Token)
		require.NoError(t, err)
		require.Equal(t, res.User.ID, claims.Subject)
		require.Equal(t, string(domain.RoleUser), claims.Role)
	})

	t.Run("admin substring in email grants ADMIN", func(t *testing.T) {
		res, err := auth.Register(ctx, "admin@example.com", "password123", "Boss")
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, res.User.Role)

		claims, err := signer.Verify(res.Token)
		require.NoError(t, err)
		require.Equal(t, string(domain.RoleAdmin), claims.Role)
	})

	t.Run("duplicate email rejected even with different fields", func(t *testing.T) {
		_, err := auth.Register(ctx, "dup@example.com", "password123", "First")
		require.NoError(t, err)

		_, err = auth.Register(ctx, "dup@example.com", "otherpassword", "Second")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, auth, _ := newTestServices(t)

	registered, err := auth.Register(ctx, "bob@example.com", "password123", "Bob")
	require.NoError(t, err)

	t.Run("correct credentials yield a token immediately", func(t *testing.T) {
		res, err := auth.Login(ctx, "bob@example.com", "password123")
		require.NoError(t, err)
		require.False(t, res.MFARequired)
		require.NotEmpty(t, res.Token)
		require.Equal(t, registered.User.ID, res.User.ID)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, wrongPass := auth.Login(ctx, "bob@example.com", "nottherightone")
		_, unknown := auth.Login(ctx, "ghost@example.com", "password123")

		require.ErrorIs(t, wrongPass, ErrInvalidCredentials)
		require.ErrorIs(t, unknown, ErrInvalidCredentials)
	})

	t.Run("mfa-enabled account gets no token from the first factor", func(t *testing.T) {
		reg, err := auth.Register(ctx, "carol@example.com", "password123", "Carol")
		require.NoError(t, err)
		require.NoError(t, st.Users().UpdateMFASecret(ctx, reg.User.ID, "JBSWY3DPEHPK3PXP"))
		require.NoError(t, st.Users().EnableMFA(ctx, reg.User.ID))

		res, err := auth.Login(ctx, "carol@example.com", "password123")
		require.NoError(t, err)
		require.True(t, res.MFARequired)
		require.Equal(t, "carol@example.com", res.Email)
		require.Empty(t, res.Token)

		// Wrong password still fails generically, MFA or not.
		_, err = auth.Login(ctx, "carol@example.com", "nottherightone")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionClaimsShape(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, auth, _ := newTestServices(t)

	res, err := auth.Register(ctx, "claims@example.com", "password123", "Claims")
	require.NoError(t, err)

	claims, err := newTestSigner(t).Verify(res.Token)
	require.NoError(t, err)
	require.Equal(t, testIssuer, claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	require.NotNil(t, claims.IssuedAt)
	require.WithinDuration(t,
		claims.IssuedAt.Add(jwtx.SessionTTL), claims.ExpiresAt.Time, 0)
}
