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

// OrdersHandler serves checkout and order history.
type OrdersHandler struct {
	OrderService *service.OrderService
}

type orderCreateRequest struct {
	CustomerName    string `json:"customerName" validate:"required,min=2"`
	CustomerEmail   string `json:"customerEmail" validate:"required,email"`
	CustomerAddress string `json:"customerAddress" validate:"required,min=5"`
}

type orderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING SHIPPED DELIVERED CANCELLED"`
}

// HandleCreate handles POST /orders
//
//	@Summary		Place an order
//	@Description	Turns the user's cart into an order. Prices are snapshotted at
//	@Description	purchase time and the cart is cleared in the same transaction.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		orderCreateRequest	true	"Shipping details"
//	@Success		201		{object}	domain.Order
//	@Failure		400		{object}	httpx.ErrorResponse	"Empty cart or validation failure"
//	@Failure		500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/orders [post].
func (h *OrdersHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	var req orderCreateRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.OrderService.PlaceOrder(ctx, userID, service.OrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
	})
	if err != nil {
		if errors.Is(err, service.ErrCartEmpty) {
			httpx.WriteError(w, http.StatusBadRequest, httpx.CodeCartEmpty, "Cart is empty")
			return
		}
		log.Error("failed to place order", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	log.Info("order placed", "user_id", userID, "order_id", order.ID, "total", order.TotalAmount)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, order)
}

// HandleList handles GET /orders
//
//	@Summary		List orders
//	@Description	Returns the caller's orders, newest first. Admins see every order.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		domain.Order
//	@Failure		401	{object}	httpx.ErrorResponse	"Missing token or deleted user"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/orders [get].
func (h *OrdersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)

	scope := userID
	if httpx.RoleFromContext(ctx) == string(domain.RoleAdmin) {
		scope = "" // all orders
	}

	orders, err := h.OrderService.ListOrders(ctx, scope)
	if err != nil {
		log.Error("failed to list orders", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, orders)
}

// HandleGet handles GET /orders/{id}
//
//	@Summary		Fetch one order
//	@Description	Owners see their own orders; admins see any. Anything else is a 404.
//	@Tags			Orders
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Order id"
//	@Success		200	{object}	domain.Order
//	@Failure		404	{object}	httpx.ErrorResponse	"Order not found"
//	@Failure		500	{object}	httpx.ErrorResponse	"Internal server error"
//	@Router			/orders/{id} [get].
func (h *OrdersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)
	userID := httpx.UserIDFromContext(ctx)
	admin := httpx.RoleFromContext(ctx) == string(domain.RoleAdmin)

	order, err := h.OrderService.GetOrder(ctx, userID, r.PathValue("id"), admin)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Order not found")
			return
		}
		log.Error("failed to load order", "user_id", userID, "err", err)
		httpx.WriteInternalError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, order)
}

// HandleUpdateStatus handles PATCH /orders/{id}/status
//
//	@Summary	Move an order to a new fulfilment state
//	@Tags		Orders
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string				true	"Order id"
//	@Param		request	body		orderStatusRequest	true	"Target status"
//	@Success	200		{object}	domain.Order
//	@Failure	400		{object}	httpx.ErrorResponse	"Unknown status"
//	@Failure	403		{object}	httpx.ErrorResponse	"Admin role required"
//	@Failure	404		{object}	httpx.ErrorResponse	"Order not found"
//	@Failure	500		{object}	httpx.ErrorResponse	"Internal server error"
//	@Router		/orders/{id}/status [patch].
func (h *OrdersHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req orderStatusRequest
	if !httpx.DecodeAndValidate(w, r, &req) {
		return
	}

	order, err := h.OrderService.UpdateStatus(ctx, r.PathValue("id"), domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOrderStatus):
			httpx.WriteValidationError(w, map[string]string{"status": "unknown order status"})
		case errors.Is(err, store.ErrNotFound):
			httpx.WriteError(w, http.StatusNotFound, httpx.CodeNotFound, "Order not found")
		default:
			log.Error("failed to update order status", "err", err)
			httpx.WriteInternalError(w)
		}
		return
	}

	log.Info("order status updated", "order_id", order.ID, "status", order.Status)
	httpx.WriteJSON(w, http.StatusOK, order)
}
