package store

import (
	"context"
	"errors"

	"github.com/soletrader/storefront/internal/storefront/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres someday) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Users() Users
	Products() Products
	Carts() Carts
	Orders() Orders

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction. If fn returns an
	// error the transaction is rolled back, otherwise it is committed.
	// This is the recommended way to handle multi-step writes (e.g. order
	// placement) as it handles commit/rollback automatically.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login; email is the login key.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// ListUsers returns all users, newest first, for the admin table.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// UpdateMFASecret sets the pending MFA secret for a user,
	// unconditionally overwriting any previous one.
	UpdateMFASecret(ctx context.Context, userID string, secret string) error

	// EnableMFA flips mfa_enabled to true; the stored secret becomes active.
	EnableMFA(ctx context.Context, userID string) error

	// DisableMFA clears mfa_enabled and mfa_secret in a single statement.
	DisableMFA(ctx context.Context, userID string) error
}

type Products interface {
	GetProductByID(ctx context.Context, id string) (domain.Product, error)

	// ListProducts returns catalog entries matching the filter, newest first.
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)

	CreateProduct(ctx context.Context, p domain.Product) error

	// UpdateProduct rewrites all mutable fields; partial-update merging is
	// the service's job.
	UpdateProduct(ctx context.Context, p domain.Product) error

	DeleteProduct(ctx context.Context, id string) error
}

type Carts interface {
	// GetCartByUserID returns the user's cart without items.
	GetCartByUserID(ctx context.Context, userID string) (domain.Cart, error)

	CreateCart(ctx context.Context, c domain.Cart) error

	// GetCartItems returns the cart's lines with their products joined,
	// ordered by product name.
	GetCartItems(ctx context.Context, cartID string) ([]domain.CartItem, error)

	// GetCartItem fetches a single line by id (no product join).
	GetCartItem(ctx context.Context, itemID string) (domain.CartItem, error)

	// GetCartItemByProduct finds the line for a product within a cart.
	GetCartItemByProduct(ctx context.Context, cartID, productID string) (domain.CartItem, error)

	CreateCartItem(ctx context.Context, item domain.CartItem) error

	UpdateCartItemQuantity(ctx context.Context, itemID string, quantity int) error

	DeleteCartItem(ctx context.Context, itemID string) error

	// ClearCart removes every line from the cart.
	ClearCart(ctx context.Context, cartID string) error
}

type Orders interface {
	CreateOrder(ctx context.Context, o domain.Order) error

	CreateOrderItem(ctx context.Context, item domain.OrderItem) error

	GetOrderByID(ctx context.Context, id string) (domain.Order, error)

	// ListOrders returns orders newest first; userID == "" lists all
	// (admin view), otherwise only that user's orders.
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)

	// GetOrderItems returns the order's lines with products joined.
	GetOrderItems(ctx context.Context, orderID string) ([]domain.OrderItem, error)

	UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}
