package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a storefront item. Price is a non-negative decimal. Orders keep
// their own title/price snapshots, so deleting a product never rewrites
// history.
type Product struct {
	ID          string          `json:"id"`
	SchoolID    *string         `json:"schoolId,omitempty"`
	CategoryID  string          `json:"categoryId"`
	BrandID     string          `json:"brandId"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	Keywords    string          `json:"keywords,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
