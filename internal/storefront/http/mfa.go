package http

import (
	"errors"
	"net/http"

	"github.com/soletrader/storefront/internal/storefront/service"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/httpx"
	"github.com/soletrader/storefront/pkg/slogx"
)

// MFAHandler handles the TOTP lifecycle: setup, verify, validate, disable.
type MFAHandler struct {
	MFAService *service.MFAService
}

type mfaCodeRequest struct {
	Token string `json:"token" validate:"required,len=6,numeric"`
}

type mfaValidateRequest struct {
	Email string `json:"email" validate:"required,email"`
	Token string `json:"token" validate:"required,len=6,numeric"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// HandleSetup handles POST /mfa/setup
//
//	@Summary		Begin MFA enrollment
//	@Description	Generates a TOTP secret and QR code for the authenticated user.
//	@Description	MFA stays off until the code is confirmed via /mfa/verify; calling
//	@Description	setup again replaces the pending secret.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.MFASetupResponse	"Secret and QR code data URL"
//	@Failure		400	{object}	httpx.ErrorResponse		"MFA already enabled"
//	@Failure		404	{object}	httpx.ErrorResponse		"User not found"
//	@Failure		500	{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/mfa/setup [post].
func (h *MFAHandler) HandleSetup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	setup, err := h.MFAService.Setup(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeMFAEnabled, "MFA is already enabled")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		default:
			log.Error("failed to set up MFA", "user_id", userID, "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	log.Info("mfa setup initiated", "user_id", userID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, setup)
}

// HandleVerify handles POST /mfa/verify
//
//	@Summary		Confirm MFA enrollment
//	@Description	Verifies a TOTP code against the pending secret and enables MFA.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		mfaCodeRequest		true	"Six digit TOTP code"
//	@Success		200		{object}	messageResponse		"MFA enabled"
//	@Failure		400		{object}	httpx.ErrorResponse	"Setup not initiated or validation failure"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid TOTP code"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/mfa/verify [post].
func (h *MFAHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req mfaCodeRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.MFAService.Verify(ctx, userID, req.Token); err != nil {
		switch {
		case errors.Is(err, service.ErrMFANotInitiated):
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeMFANotInitiated, "MFA setup has not been initiated")
		case errors.Is(err, service.ErrInvalidMFACode):
			log.Warn("invalid mfa code on verify", "user_id", userID)
			httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeInvalidMFACode, "Invalid MFA code")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		default:
			log.Error("failed to verify MFA", "user_id", userID, "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	log.Info("mfa enabled", "user_id", userID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "MFA enabled successfully"})
}

// HandleValidate handles POST /mfa/validate
//
//	@Summary		Complete a two-step login
//	@Description	Second factor of the login flow. Exchanges a valid TOTP code for
//	@Description	the session token that /auth/login withheld. Unauthenticated:
//	@Description	the caller holds no token yet.
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Param			request	body		mfaValidateRequest	true	"Email and six digit TOTP code"
//	@Success		200		{object}	authResponse		"Session token and user"
//	@Failure		400		{object}	httpx.ErrorResponse	"MFA not enabled or validation failure"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid TOTP code"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/mfa/validate [post].
func (h *MFAHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req mfaValidateRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.MFAService.Validate(ctx, req.Email, req.Token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMFANotEnabled):
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeMFANotEnabled, "MFA is not enabled")
		case errors.Is(err, service.ErrInvalidMFACode):
			log.Warn("invalid mfa code on validate")
			httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeInvalidMFACode, "Invalid MFA code")
		default:
			log.Error("failed to validate MFA", "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	log.Info("mfa login completed", "user_id", res.User.ID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Token: res.Token,
		User:  res.User.Public(),
	})
}

// HandleDisable handles POST /mfa/disable
//
//	@Summary		Disable MFA
//	@Description	Turns MFA off after checking a current TOTP code, so possession of
//	@Description	the authenticator is required, not just a live session.
//	@Tags			MFA
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		mfaCodeRequest		true	"Six digit TOTP code"
//	@Success		200		{object}	messageResponse		"MFA disabled"
//	@Failure		400		{object}	httpx.ErrorResponse	"MFA not enabled or validation failure"
//	@Failure		401		{object}	httpx.ErrorResponse	"Invalid TOTP code"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/mfa/disable [post].
func (h *MFAHandler) HandleDisable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req mfaCodeRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	if err := h.MFAService.Disable(ctx, userID, req.Token); err != nil {
		switch {
		case errors.Is(err, service.ErrMFANotEnabled):
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeMFANotEnabled, "MFA is not enabled")
		case errors.Is(err, service.ErrInvalidMFACode):
			log.Warn("invalid mfa code on disable", "user_id", userID)
			httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeInvalidMFACode, "Invalid MFA code")
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeUserNotFound, "User not found")
		default:
			log.Error("failed to disable MFA", "user_id", userID, "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	log.Info("mfa disabled", "user_id", userID)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "MFA disabled successfully"})
}
