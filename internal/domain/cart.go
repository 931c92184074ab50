package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartItem is one (user, product) row. Rows are deleted on removal, never
// soft-deleted.
type CartItem struct {
	UserID    string    `json:"userId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"addedAt"`
}

// CartLine is a cart row joined with live product data for display.
type CartLine struct {
	ProductID string          `json:"productId"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl,omitempty"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartSummary aggregates the user's cart. Lines whose product has been
// deleted in the interim are dropped rather than failing the summary.
type CartSummary struct {
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
