package http

import (
	"errors"
	"net/http"

	"github.com/soletrader/storefront/internal/storefront/service"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/httpx"
	"github.com/soletrader/storefront/pkg/slogx"
)

// CartHandler serves the authenticated user's shopping cart.
type CartHandler struct {
	CartService *service.CartService
}

type cartAddRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

type cartUpdateRequest struct {
	// Pointer so an explicit zero survives decoding; zero removes the line.
	Quantity *int `json:"quantity" validate:"required,gte=0"`
}

// HandleGet handles GET /cart
//
//	@Summary		Fetch the cart
//	@Description	Returns the user's cart with items, joined products, and the
//	@Description	server-computed total. Created empty on first access.
//	@Tags			Cart
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	domain.Cart
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing token or deleted user"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/cart [get].
func (h *CartHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	cart, err := h.CartService.GetCart(ctx, userID)
	if err != nil {
		log.Error("failed to load cart", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, cart)
}

// HandleAddItem handles POST /cart/items
//
//	@Summary		Add a product to the cart
//	@Description	Adds the given quantity. If the product is already in the cart
//	@Description	the existing line is incremented instead of duplicated.
//	@Tags			Cart
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		cartAddRequest	true	"Product and quantity"
//	@Success		200		{object}	domain.Cart
//	@Failure		400		{object}	httpx.ErrorResponse	"Validation failure"
//	@Failure		404		{object}	httpx.ErrorResponse	"Unknown product"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/cart/items [post].
func (h *CartHandler) HandleAddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req cartAddRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.CartService.AddItem(ctx, userID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Product not found")
			return
		}
		log.Error("failed to add cart item", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, cart)
}

// HandleUpdateItem handles PATCH /cart/items/{id}
//
//	@Summary		Change a line's quantity
//	@Description	Sets the quantity of a cart line. Zero removes the line. Lines in
//	@Description	other users' carts come back as not found.
//	@Tags			Cart
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Cart item id"
//	@Param			request	body		cartUpdateRequest	true	"New quantity"
//	@Success		200		{object}	domain.Cart
//	@Failure		400		{object}	httpx.ErrorResponse	"Validation failure"
//	@Failure		404		{object}	httpx.ErrorResponse	"Unknown cart item"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/cart/items/{id} [patch].
func (h *CartHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req cartUpdateRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	cart, err := h.CartService.UpdateItem(ctx, userID, r.PathValue("id"), *req.Quantity)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Cart item not found")
			return
		}
		log.Error("failed to update cart item", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, cart)
}

// HandleRemoveItem handles DELETE /cart/items/{id}
//
//	@Summary	Remove a line from the cart
//	@Tags		Cart
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Cart item id"
//	@Success	200	{object}	domain.Cart
//	@Failure	404	{object}	httpx.ErrorResponse	"Unknown cart item"
//	@Failure	500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router		/cart/items/{id} [delete].
func (h *CartHandler) HandleRemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	cart, err := h.CartService.RemoveItem(ctx, userID, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Cart item not found")
			return
		}
		log.Error("failed to remove cart item", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, cart)
}
