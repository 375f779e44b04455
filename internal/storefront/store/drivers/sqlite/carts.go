package sqlite

import (
	"context"
	"time"

	"github.com/soletrader/storefront/internal/storefront/domain"
)

type cartsRepo struct {
	q querier
}

func (r *cartsRepo) GetCartByUserID(ctx context.Context, userID string) (domain.Cart, error) {
	var c domain.Cart
	row := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = ?`, userID)
	if err := row.Scan(&c.ID, &c.UserID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Cart{}, mapNotFound(err)
	}
	return c, nil
}

func (r *cartsRepo) CreateCart(ctx context.Context, c domain.Cart) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO carts (id, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.UserID, now, now)
	return mapConstraint(err)
}

func (r *cartsRepo) GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity,
		        p.id, p.name, p.description, p.price, p.image_url, p.created_at, p.updated_at
		 FROM cart_items ci
		 JOIN products p ON p.id = ci.product_id
		 WHERE ci.cart_id = ?
		 ORDER BY p.name, ci.id`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var (
			item domain.CartItem
			p    domain.Product
		)
		err := rows.Scan(
			&item.ID, &item.CartID, &item.ProductID, &item.Quantity,
			&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.Product = &p
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *cartsRepo) GetCartItem(ctx context.Context, itemID string) (domain.CartItem, error) {
	var item domain.CartItem
	row := r.q.QueryRowContext(ctx,
		`SELECT id, cart_id, product_id, quantity FROM cart_items WHERE id = ?`, itemID)
	if err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
		return domain.CartItem{}, mapNotFound(err)
	}
	return item, nil
}

func (r *cartsRepo) GetCartItemByProduct(ctx context.Context, cartID, productID string) (domain.CartItem, error) {
	var item domain.CartItem
	row := r.q.QueryRowContext(ctx,
		`SELECT id, cart_id, product_id, quantity FROM cart_items
		 WHERE cart_id = ? AND product_id = ?`, cartID, productID)
	if err := row.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Quantity); err != nil {
		return domain.CartItem{}, mapNotFound(err)
	}
	return item, nil
}

func (r *cartsRepo) CreateCartItem(ctx context.Context, item domain.CartItem) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO cart_items (id, cart_id, product_id, quantity) VALUES (?, ?, ?, ?)`,
		item.ID, item.CartID, item.ProductID, item.Quantity)
	return mapConstraint(err)
}

func (r *cartsRepo) UpdateCartItemQuantity(ctx context.Context, itemID string, quantity int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE id = ?`, quantity, itemID)
	return requireRowTouched(res, err)
}

func (r *cartsRepo) DeleteCartItem(ctx context.Context, itemID string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id = ?`, itemID)
	return requireRowTouched(res, err)
}

func (r *cartsRepo) ClearCart(ctx context.Context, cartID string) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ?`, cartID)
	return err
}
