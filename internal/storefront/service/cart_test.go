package service

import (
	"context"
	"testing"

	"github.com/soletrader/storefront/internal/storefront/domain"
	"github.com/soletrader/storefront/internal/storefront/store"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, catalog *CatalogService, name string, price float64) domain.Product {
	t.Helper()
	p, err := catalog.CreateProduct(context.Background(), ProductInput{
		Name:  name,
		Price: price,
	})
	require.NoError(t, err)
	return p
}

func TestCartService(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st, auth, _ := newTestServices(t)
	catalog := &CatalogService{Store: st}
	carts := &CartService{Store: st}

	alice, err := auth.Register(ctx, "alice@example.com", "password123", "Alice")
	require.NoError(t, err)
	bob, err := auth.Register(ctx, "bob@example.com", "password123", "Bob")
	require.NoError(t, err)

	mug := seedProduct(t, catalog, "Mug", 15)
	kettle := seedProduct(t, catalog, "Kettle", 120)

	t.Run("first read creates an empty cart", func(t *testing.T) {
		cart, err := carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		require.Equal(t, alice.User.ID, cart.UserID)
		require.Empty(t, cart.Items)
		require.Zero(t, cart.TotalAmount)

		again, err := carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		require.Equal(t, cart.ID, again.ID)
	})

	t.Run("adding the same product twice merges the line", func(t *testing.T) {
		_, err := carts.AddItem(ctx, alice.User.ID, mug.ID, 2)
		require.NoError(t, err)
		cart, err := carts.AddItem(ctx, alice.User.ID, mug.ID, 3)
		require.NoError(t, err)

		require.Len(t, cart.Items, 1)
		require.Equal(t, 5, cart.Items[0].Quantity)
		require.Equal(t, 5*mug.Price, cart.TotalAmount)
	})

	t.Run("total spans lines and uses stored prices", func(t *testing.T) {
		cart, err := carts.AddItem(ctx, alice.User.ID, kettle.ID, 1)
		require.NoError(t, err)
		require.Len(t, cart.Items, 2)
		require.Equal(t, 5*mug.Price+kettle.Price, cart.TotalAmount)
	})

	t.Run("unknown product cannot be added", func(t *testing.T) {
		_, err := carts.AddItem(ctx, alice.User.ID, "no-such-product", 1)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("quantity zero removes the line", func(t *testing.T) {
		cart, err := carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		var kettleLine domain.CartItem
		for _, item := range cart.Items {
			if item.ProductID == kettle.ID {
				kettleLine = item
			}
		}
		require.NotEmpty(t, kettleLine.ID)

		cart, err = carts.UpdateItem(ctx, alice.User.ID, kettleLine.ID, 0)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		require.Equal(t, mug.ID, cart.Items[0].ProductID)
	})

	t.Run("a user cannot touch another user's line", func(t *testing.T) {
		cart, err := carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		require.NotEmpty(t, cart.Items)
		itemID := cart.Items[0].ID

		_, err = carts.UpdateItem(ctx, bob.User.ID, itemID, 10)
		require.ErrorIs(t, err, store.ErrNotFound)
		_, err = carts.RemoveItem(ctx, bob.User.ID, itemID)
		require.ErrorIs(t, err, store.ErrNotFound)

		// Alice's line is untouched.
		cart, err = carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		require.Equal(t, 5, cart.Items[0].Quantity)
	})

	t.Run("remove deletes the line", func(t *testing.T) {
		cart, err := carts.GetCart(ctx, alice.User.ID)
		require.NoError(t, err)
		cart, err = carts.RemoveItem(ctx, alice.User.ID, cart.Items[0].ID)
		require.NoError(t, err)
		require.Empty(t, cart.Items)
		require.Zero(t, cart.TotalAmount)
	})
}
