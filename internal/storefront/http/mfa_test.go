package http

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/soletrader/storefront/pkg/totpx"
	"github.com/stretchr/testify/require"
)

func TestMFAEnrollmentAndLogin(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	reg := register(t, ts, "carol@example.com", "password123", "Carol")

	// Enroll: setup returns a secret and QR code, MFA not yet active.
	var setup struct {
		Secret string `json:"secret"`
		QRCode string `json:"qrCode"`
	}
	status := ts.do(t, http.MethodPost, "/mfa/setup", reg.Token, nil, &setup)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, setup.Secret)
	require.True(t, strings.HasPrefix(setup.QRCode, "data:image/png;base64,"))

	// Logging in before verification still yields a token directly.
	var direct authBody
	status = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "carol@example.com", "password": "password123",
	}, &direct)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, direct.Token)

	// Confirm enrollment with a current code.
	code, err := totpx.CodeAt(setup.Secret, time.Now())
	require.NoError(t, err)
	status = ts.do(t, http.MethodPost, "/mfa/verify", reg.Token, map[string]string{
		"token": code,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	// First factor alone now withholds the token.
	var challenge struct {
		RequiresMFA bool   `json:"requiresMfa"`
		Email       string `json:"email"`
		Token       string `json:"token"`
	}
	status = ts.do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email": "carol@example.com", "password": "password123",
	}, &challenge)
	require.Equal(t, http.StatusOK, status)
	require.True(t, challenge.RequiresMFA)
	require.Equal(t, "carol@example.com", challenge.Email)
	require.Empty(t, challenge.Token)

	// A wrong second factor is rejected.
	var fail errorBody
	status = ts.do(t, http.MethodPost, "/mfa/validate", "", map[string]string{
		"email": challenge.Email, "token": "000000",
	}, &fail)
	require.Equal(t, http.StatusUnauthorized, status)
	require.Equal(t, "invalid_mfa_code", fail.Error)

	// The right one completes the login.
	code, err = totpx.CodeAt(setup.Secret, time.Now())
	require.NoError(t, err)
	var final authBody
	status = ts.do(t, http.MethodPost, "/mfa/validate", "", map[string]string{
		"email": challenge.Email, "token": code,
	}, &final)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, final.Token)
	require.Equal(t, reg.User.ID, final.User.ID)

	// The fresh token works against the gate.
	var me struct {
		MFAEnabled bool `json:"mfaEnabled"`
	}
	status = ts.do(t, http.MethodGet, "/auth/me", final.Token, nil, &me)
	require.Equal(t, http.StatusOK, status)
	require.True(t, me.MFAEnabled)
}

func TestMFADisableEndpoint(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	reg := register(t, ts, "dave@example.com", "password123", "Dave")

	var setup struct {
		Secret string `json:"secret"`
	}
	status := ts.do(t, http.MethodPost, "/mfa/setup", reg.Token, nil, &setup)
	require.Equal(t, http.StatusOK, status)

	code, err := totpx.CodeAt(setup.Secret, time.Now())
	require.NoError(t, err)
	status = ts.do(t, http.MethodPost, "/mfa/verify", reg.Token, map[string]string{"token": code}, nil)
	require.Equal(t, http.StatusOK, status)

	t.Run("stale code is rejected and nothing changes", func(t *testing.T) {
		stale, err := totpx.CodeAt(setup.Secret, time.Now().Add(-3*totpx.Period*time.Second))
		require.NoError(t, err)

		var out errorBody
		status := ts.do(t, http.MethodPost, "/mfa/disable", reg.Token, map[string]string{"token": stale}, &out)
		require.Equal(t, http.StatusUnauthorized, status)
		require.Equal(t, "invalid_mfa_code", out.Error)

		var me struct {
			MFAEnabled bool `json:"mfaEnabled"`
		}
		status = ts.do(t, http.MethodGet, "/auth/me", reg.Token, nil, &me)
		require.Equal(t, http.StatusOK, status)
		require.True(t, me.MFAEnabled)
	})

	t.Run("current code disables", func(t *testing.T) {
		code, err := totpx.CodeAt(setup.Secret, time.Now())
		require.NoError(t, err)

		status := ts.do(t, http.MethodPost, "/mfa/disable", reg.Token, map[string]string{"token": code}, nil)
		require.Equal(t, http.StatusOK, status)

		var me struct {
			MFAEnabled bool `json:"mfaEnabled"`
		}
		status = ts.do(t, http.MethodGet, "/auth/me", reg.Token, nil, &me)
		require.Equal(t, http.StatusOK, status)
		require.False(t, me.MFAEnabled)
	})
}
