package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ProductFilter narrows catalog listings. Zero values mean "don't care".
type ProductFilter struct {
	Search   string   // case-insensitive match on name or description
	MinPrice *float64 // inclusive
	MaxPrice *float64 // inclusive
}
