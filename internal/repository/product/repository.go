package product

import (
	"context"

	"alumnimart/internal/domain"
	"github.com/shopspring/decimal"
)

// ListFilter narrows product listings. Nil/empty fields are ignored.
type ListFilter struct {
	SchoolID   *string
	CategoryID string
	BrandID    string
}

// UpdateInput carries the mutable product fields.
type UpdateInput struct {
	Title       string
	Price       decimal.Decimal
	Description string
	Keywords    string
	ImageURL    string
}

type Repository interface {
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, f ListFilter) ([]domain.Product, error)
}
