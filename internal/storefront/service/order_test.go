package service

import (
	"context"
	"testing"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, auth, _ := newTestServices(t)
	catalog := &CatalogService{Store: st}
	carts := &CartService{Store: st}
	orders := &OrderService{Store: st}

	alice, err := auth.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)

	beans := seedProduct(t, catalog, "Beans", 18.5)
	mug := seedProduct(t, catalog, "Mug", 15)

	checkout := OrderInput{
		CustomerName:    "Alice Example",
		CustomerEmail:   "alice@example.com",
		CustomerAddress: "1 Main St",
	}

	t.Run("empty cart cannot be checked out", func(t *testing.T) {
		_, err := orders.PlaceOrder(ctx, alice.User.ID, checkout)
		require.ErrorIs(t, err, ErrCartEmpty)
	})

	t.Run("checkout snapshots prices and clears the cart", func(t *testing.T) {
		_, err := carts.AddItem(ctx, alice.User.ID, beans.ID, 2)
		require.NoError(t, err)
		_, err = carts.AddItem(ctx, alice.User.ID, mug.ID, 1)
		require.NoError(t, err)

		order, err := orders.PlaceOrder(ctx, alice.User.ID, checkout)
		require.NoError(t, err)
		require.Equal(t, domain.OrderPending, order.Status)
		require.Equal(t, 2*beans.Price+mug.Price, order.TotalAmount)
		require.Len(t, order.Items, 2)

		cart, err := carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		require.Empty(t, cart.Items)

		// Raising the catalog price later does not rewrite the order.
		newPrice := 99.0
		_, err = catalog.UpdateProduct(ctx, beans.ID, ProductUpdate{Price: &newPrice})
		require.NoError(t, err)

		got, err := orders.GetOrder(ctx, alice.User.ID, order.ID, false)
		require.NoError(t, err)
		for _, item := range got.Items {
			if item.ProductID == beans.ID {
				require.Equal(t, 18.5, item.Price)
			}
		}
	})
}

func TestOrderAccess(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, auth, _ := newTestServices(t)
	catalog := &CatalogService{Store: st}
	carts := &CartService{Store: st}
	orders := &OrderService{Store: st}

	alice, err := auth.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	bob, err := auth.Register(ctx, "bob@example.com", "password123", "Bob")
	require.NoError(t, err)

	product := seedProduct(t, catalog, "Beans", 18.5)
	_, err = carts.AddItem(ctx, alice.User.ID, product.ID, 1)
	require.NoError(t, err)

	order, err := orders.PlaceOrder(ctx, alice.User.ID, OrderInput{
		CustomerName:    "Alice Example",
		CustomerEmail:   "alice@example.com",
		CustomerAddress: "1 Main St",
	})
	require.NoError(t, err)

	t.Run("owner and admin can read, others cannot", func(t *testing.T) {
		_, err := orders.GetOrder(ctx, alice.User.ID, order.ID, false)
		require.NoError(t, err)

		_, err = orders.GetOrder(ctx, bob.User.ID, order.ID, false)
		require.ErrorIs(t, err, store.ErrNotFound)

		_, err = orders.GetOrder(ctx, bob.User.ID, order.ID, true)
		require.NoError(t, err)
	})

	t.Run("listing scopes by user unless admin", func(t *testing.T) {
		own, err := orders.ListOrders(ctx, alice.User.ID)
		require.NoError(t, err)
		require.Len(t, own, 1)
		require.Len(t, own[0].Items, 1)

		none, err := orders.ListOrders(ctx, bob.User.ID)
		require.NoError(t, err)
		require.Empty(t, none)

		all, err := orders.ListOrders(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 1)
	})

	t.Run("status transitions validate the target state", func(t *testing.T) {
		updated, err := orders.UpdateStatus(ctx, order.ID, domain.OrderShipped)
		require.NoError(t, err)
		require.Equal(t, domain.OrderShipped, updated.Status)

		_, err = orders.UpdateStatus(ctx, order.ID, domain.OrderStatus("TELEPORTED"))
		require.ErrorIs(t, err, ErrInvalidOrderStatus)

		_, err = orders.UpdateStatus(ctx, "no-such-order", domain.OrderDelivered)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
