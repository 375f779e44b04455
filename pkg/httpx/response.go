package httpx

import (
	"encoding/json"
	"net/http"
)

// Error codes shared across handlers. These are the wire-visible error
// kinds; handlers map service-layer sentinels onto them.
const (
	CodeValidation        = "validation_error"
	CodeInvalidCreds      = "invalid_credentials"
	CodeEmailInUse        = "email_in_use"
	CodeMFAEnabled        = "mfa_already_enabled"
	CodeMFANotEnabled     = "mfa_not_enabled"
	CodeMFANotInitiated   = "mfa_setup_not_initiated"
	CodeInvalidMFACode    = "invalid_mfa_code"
	CodeMissingToken      = "missing_token"
	CodeInvalidToken      = "invalid_token"
	CodeUserNotFound      = "user_not_found"
	CodeForbidden         = "forbidden"
	CodeNotFound          = "not_found"
	CodeCartEmpty         = "cart_empty"
	CodeRateLimitExceeded = "rate_limit_exceeded"
	CodeInternal          = "internal_error"
)

// ErrorResponse is the structured JSON error body every failure returns.
// Fields carries per-field detail for validation failures only.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes a structured error body with the given status.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// WriteValidationError writes a 400 with field-level detail.
func WriteValidationError(w http.ResponseWriter, fields map[string]string) {
	WriteJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidation,
		Message: "request validation failed",
		Fields:  fields,
	})
}

// WriteInternalError writes a generic 500. Details stay in the logs.
func WriteInternalError(w http.ResponseWriter) {
	WriteError(w, http.StatusInternalServerError, CodeInternal, "internal server error")
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}
