package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/soletrader/storefront/internal/storefront/domain"
)

type productsRepo struct {
	q querier
}

const productColumns = `id, name, description, price, image_url, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURL,
		&p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *productsRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)
	p, err := scanProduct(row)
	if err != nil {
		return domain.Product{}, mapNotFound(err)
	}
	return p, nil
}

func (r *productsRepo) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		where = append(where, `(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)`)
		args = append(args, pattern, pattern)
	}
	if filter.MinPrice != nil {
		where = append(where, `price >= ?`)
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where = append(where, `price <= ?`)
		args = append(args, *filter.MaxPrice)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *productsRepo) CreateProduct(ctx context.Context, p domain.Product) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO products (id, name, description, price, image_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Price, p.ImageURL, now, now,
	)
	return mapConstraint(err)
}

func (r *productsRepo) UpdateProduct(ctx context.Context, p domain.Product) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE products SET name = ?, description = ?, price = ?, image_url = ?, updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Description, p.Price, p.ImageURL, time.Now().UTC(), p.ID,
	)
	return requireRowTouched(res, err)
}

func (r *productsRepo) DeleteProduct(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM products WHERE id = ?`, id)
	return requireRowTouched(res, err)
}
