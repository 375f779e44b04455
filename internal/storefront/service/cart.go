package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/soletrader/storefront/pkg/idx"
)

type CartService struct {
	Store store.Store
}

// GetCart returns the user's cart with items, joined products, and the
// server-computed total. Carts are created lazily on first access.
func (s *CartService) GetCart(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}
	return s.loadCart(ctx, cart)
}

// AddItem puts quantity of a product into the user's cart. Adding a
// product already in the cart increments the existing line instead of
// creating a second one.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (domain.Cart, error) {
	if _, err := s.Store.Products().GetProductByID(ctx, productID); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, err
	}

	existing, err := s.Store.Carts().GetCartItemByProduct(ctx, cart.ID, productID)
	switch {
	case err == nil:
		err = s.Store.Carts().UpdateCartItemQuantity(ctx, existing.ID, existing.Quantity+quantity)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("failed to update cart item: %w", err)
		}
	case errors.Is(err, store.ErrNotFound):
		item := domain.CartItem{
			ID:        idx.New().String(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := s.Store.Carts().CreateCartItem(ctx, item); err != nil {
			return domain.Cart{}, fmt.Errorf("failed to add cart item: %w", err)
		}
	default:
		return domain.Cart{}, fmt.Errorf("failed to look up cart item: %w", err)
	}

	return s.loadCart(ctx, cart)
}

// UpdateItem sets a line's quantity. Zero or negative removes the line.
// Lines belonging to another user's cart come back as not found.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (domain.Cart, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return domain.Cart{}, err
	}

	if quantity <= 0 {
		err = s.Store.Carts().DeleteCartItem(ctx, item.ID)
	} else {
		err = s.Store.Carts().UpdateCartItemQuantity(ctx, item.ID, quantity)
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.loadCart(ctx, cart)
}

// RemoveItem deletes a line from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (domain.Cart, error) {
	cart, item, err := s.ownedItem(ctx, userID, itemID)
	if err != nil {
		return domain.Cart{}, err
	}

	if err := s.Store.Carts().DeleteCartItem(ctx, item.ID); err != nil {
		return domain.Cart{}, fmt.Errorf("failed to remove cart item: %w", err)
	}

	return s.loadCart(ctx, cart)
}

// ensureCart fetches the user's cart, creating it if absent.
func (s *CartService) ensureCart(ctx context.Context, userID string) (domain.Cart, error) {
	cart, err := s.Store.Carts().GetCartByUserID(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.Cart{}, fmt.Errorf("failed to look up cart: %w", err)
	}

	now := time.Now().UTC()
	cart = domain.Cart{ID: idx.New().String(), UserID: userID, CreatedAt: now, UpdatedAt: now}
	err = s.Store.Carts().CreateCart(ctx, cart)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Lost a race with a concurrent request; use theirs.
		return s.Store.Carts().GetCartByUserID(ctx, userID)
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// ownedItem fetches a cart line and checks it belongs to the user's
// cart. Foreign lines are reported as not found rather than forbidden.
func (s *CartService) ownedItem(ctx context.Context, userID, itemID string) (domain.Cart, domain.CartItem, error) {
	cart, err := s.ensureCart(ctx, userID)
	if err != nil {
		return domain.Cart{}, domain.CartItem{}, err
	}

	item, err := s.Store.Carts().GetCartItem(ctx, itemID)
	if err != nil {
		return domain.Cart{}, domain.CartItem{}, err
	}
	if item.CartID != cart.ID {
		return domain.Cart{}, domain.CartItem{}, store.ErrNotFound
	}
	return cart, item, nil
}

// loadCart attaches items and computes the total from stored prices.
func (s *CartService) loadCart(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	items, err := s.Store.Carts().GetCartItems(ctx, cart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("failed to load cart items: %w", err)
	}

	cart.Items = items
	cart.TotalAmount = 0
	for _, item := range items {
		if item.Product != nil {
			cart.TotalAmount += float64(item.Quantity) * item.Product.Price
		}
	}
	return cart, nil
}
