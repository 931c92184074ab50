package cart

import (
	"context"

	"alumnimart/internal/domain"
)

type Repository interface {
	// Add inserts the (user, product) row or atomically increments its
	// quantity when it already exists.
	Add(ctx context.Context, userID, productID string, quantity int) error
	// SetQuantity overwrites the quantity; quantity must be positive.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	// Remove deletes the row; absence is not an error.
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	// Summary joins cart rows with live product data. Rows whose product was
	// deleted in the interim are dropped.
	Summary(ctx context.Context, userID string) (*domain.CartSummary, error)
	// Count is a single aggregate query for header badges.
	Count(ctx context.Context, userID string) (int, error)
}
