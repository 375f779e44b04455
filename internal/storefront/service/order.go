package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/idx"
)

var (
	ErrCartEmpty          = errors.New("cart is empty")
	ErrInvalidOrderStatus = errors.New("invalid order status")
)

type OrderService struct {
	Store store.Store
}

// OrderInput is the checkout form: where and to whom the order ships.
type OrderInput struct {
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
}

// PlaceOrder turns the user's cart into an order. Line prices are
// snapshotted from the catalog at purchase time, the total is computed
// server-side, and the cart is cleared. The whole exchange runs in one
// transaction so a failure leaves both cart and orders untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, in OrderInput) (domain.Order, error) {
	var order domain.Order

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cart, err := tx.Carts().GetCartByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrCartEmpty
			}
			return fmt.Errorf("failed to look up cart: %w", err)
		}

		items, err := tx.Carts().GetCartItems(ctx, cart.ID)
		if err != nil {
			return fmt.Errorf("failed to load cart items: %w", err)
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var total float64
		orderItems := make([]domain.OrderItem, 0, len(items))
		for _, item := range items {
			if item.Product == nil {
				return fmt.Errorf("cart item %s has no product", item.ID)
			}
			total += float64(item.Quantity) * item.Product.Price
			orderItems = append(orderItems, domain.OrderItem{
				ID:        idx.New().String(),
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				Product:   item.Product,
			})
		}

		order = domain.Order{
			ID:              idx.New().String(),
			UserID:          userID,
			CustomerName:    in.CustomerName,
			CustomerEmail:   in.CustomerEmail,
			CustomerAddress: in.CustomerAddress,
			TotalAmount:     total,
			Status:          domain.OrderPending,
		}
		if err := tx.Orders().CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range orderItems {
			orderItems[i].OrderID = order.ID
			if err := tx.Orders().CreateOrderItem(ctx, orderItems[i]); err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		order.Items = orderItems

		if err := tx.Carts().ClearCart(ctx, cart.ID); err != nil {
			return fmt.Errorf("failed to clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}
	return order, nil
}

// ListOrders returns the given user's orders with items, newest first.
// An empty userID lists every order, the admin view.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	orders, err := s.Store.Orders().ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	for i := range orders {
		items, err := s.Store.Orders().GetOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load order items: %w", err)
		}
		orders[i].Items = items
	}
	return orders, nil
}

// GetOrder fetches one order with items. Non-admin callers only see
// their own; other users' orders come back as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string, admin bool) (domain.Order, error) {
	order, err := s.Store.Orders().GetOrderByID(ctx, orderID)
	if err != nil {
		return domain.Order{}, err
	}
	if !admin && order.UserID != userID {
		return domain.Order{}, store.ErrNotFound
	}

	items, err := s.Store.Orders().GetOrderItems(ctx, order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("failed to load order items: %w", err)
	}
	order.Items = items
	return order, nil
}

// UpdateStatus moves an order to a new fulfilment state.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidOrderStatus(status) {
		return domain.Order{}, ErrInvalidOrderStatus
	}

	if err := s.Store.Orders().UpdateOrderStatus(ctx, orderID, status); err != nil {
		return domain.Order{}, err
	}
	return s.Store.Orders().GetOrderByID(ctx, orderID)
}
