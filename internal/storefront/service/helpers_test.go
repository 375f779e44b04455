package service

import (
	"path/filepath"
	"testing"

	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/soletrader/storefront/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "storefront-test"

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(filepath.Join(t.TempDir(), "storefront.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestSigner(t *testing.T) *jwtx.HS256 {
	t.Helper()

	signer, err := jwtx.NewHS256([]byte("0123456789abcdef0123456789abcdef"), testIssuer)
	require.NoError(t, err)
	return signer
}

func newTestServices(t *testing.T) (store.Store, *AuthService, *MFAService) {
	t.Helper()

	st := newTestStore(t)
	signer := newTestSigner(t)

	auth := &AuthService{Store: st, Signer: signer, Issuer: testIssuer}
	mfa := &MFAService{Store: st, Signer: signer, Issuer: testIssuer, TOTPIssuer: "Storefront"}
	return st, auth, mfa
}
