package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required,min=2"`
}

func TestDecodeAndValidateAccepts(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"alice@example.com","password":"password123","name":"Alice"}`))
	rec := httptest.NewRecorder()

	var dst sampleRequest
	require.True(t, DecodeAndValidate(rec, req, &dst))
	require.Equal(t, "alice@example.com", dst.Email)
}

func TestDecodeAndValidateFieldErrors(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"email":"not-an-email","password":"short","name":"A"}`))
	rec := httptest.NewRecorder()

	var dst sampleRequest
	require.False(t, DecodeAndValidate(rec, req, &dst))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, CodeValidation, body.Error)
	require.Contains(t, body.Fields, "email")
	require.Contains(t, body.Fields, "password")
	require.Contains(t, body.Fields, "name")
}

func TestDecodeAndValidateRejectsBadJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(`{nope`))
	rec := httptest.NewRecorder()

	var dst sampleRequest
	require.False(t, DecodeAndValidate(rec, req, &dst))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
