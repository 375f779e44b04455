package domain

import "time"

// Cart is one user's shopping cart. Carts are created lazily the first
// time a user reads or adds to theirs; at most one cart exists per user.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// TotalAmount is always computed server-side from stored product
	// prices, never taken from the client.
	TotalAmount float64 `json:"totalAmount"`
}

type CartItem struct {
	ID        string   `json:"id"`
	CartID    string   `json:"cartId"`
	ProductID string   `json:"productId"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty"`
}
