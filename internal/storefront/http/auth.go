package http

import (
	"errors"
	"net/http"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/service"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/httpx"
	"github.com/soletrader/storefront/pkg/slogx"
)

// AuthHandler handles registration, login, and the current-user lookup.
type AuthHandler struct {
	AuthService *service.AuthService
	UserService *service.UserService
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is a session token plus the user it belongs to.
type authResponse struct {
	Token string            `json:"token"`
	User  domain.PublicUser `json:"user"`
}

// mfaChallengeResponse tells the client to resubmit with a TOTP code.
// No token is issued until the second factor passes.
type mfaChallengeResponse struct {
	RequiresMFA bool   `json:"requiresMfa"`
	Email       string `json:"email"`
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register a new account
//	@Description	Creates a user and signs them straight in. The role is derived
//	@Description	from the email at creation time.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		registerRequest			true	"New account details"
//	@Success		201		{object}	authResponse			"Session token and user"
//	@Failure		400		{object}	httpx.ErrorResponse		"Validation failure or email already in use"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req registerRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.AuthService.Register(ctx, req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeEmailInUse, "Email is already registered")
			return
		}
		log.Error("failed to register user", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	log.Info("user registered", "user_id", res.User.ID, "role", res.User.Role)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Token: res.Token,
		User:  res.User.Public(),
	})
}

// HandleLogin handles POST /auth/login
//
//	@Summary		Log in with email and password
//	@Description	Verifies the first factor. Accounts with MFA enabled receive an
//	@Description	MFA challenge instead of a token; complete the login via /mfa/validate.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest			true	"Credentials"
//	@Success		200		{object}	authResponse			"Session token and user, or {requiresMfa,email}"
//	@Failure		400		{object}	httpx.ErrorResponse		"Validation failure"
//	@Failure		401		{object}	httpx.ErrorResponse		"Invalid credentials"
//	@Failure		500		{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req loginRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Identical response for unknown email and wrong password.
			httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeInvalidCreds, "Invalid email or password")
			return
		}
		log.Error("failed to log in", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	if res.MFARequired {
		httpx.WriteJSON(w, http.StatusOK, mfaChallengeResponse{
			RequiresMFA: true,
			Email:       res.Email,
		})
		return
	}

	log.Info("user logged in", "user_id", res.User.ID)
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Token: res.Token,
		User:  res.User.Public(),
	})
}

// HandleMe handles GET /auth/me
//
//	@Summary		Current user
//	@Description	Returns the public projection of the authenticated user.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.PublicUser		"User projection"
//	@Failure		401	{object}	httpx.ErrorResponse		"Missing token or deleted user"
//	@Failure		403	{object}	httpx.ErrorResponse		"Invalid token"
//	@Failure		500	{object}	httpx.ErrorResponse		"Internal server error"
//	@Router			/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID := httpx.UserIDFromContext(ctx)
	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusUnauthorized, httpx.CodeUserNotFound, "User no longer exists")
			return
		}
		log.Error("failed to load user", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, user.Public())
}
