package http

import (
	"net/http"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/service"
	"github.com/soletrader/storefront/pkg/httpx"
	"github.com/soletrader/storefront/pkg/slogx"
)

// UsersHandler serves the admin user table.
type UsersHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /users
//
//	@Summary		List accounts
//	@Description	Admin listing of every account as a public projection: no
//	@Description	password hashes, no MFA secrets.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.PublicUser
//	@Failure		403	{object}	httpx.ErrorResponse	"Admin role required"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		log.Error("failed to list users", "err", err)
		httpx.WriteInternalError(w)
		return
	}

	projections := make([]domain.PublicUser, 0, len(users))
	for _, u := range users {
		projections = append(projections, u.Public())
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, projections)
}
