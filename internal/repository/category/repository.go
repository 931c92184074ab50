package category

import (
	"context"

	"alumnimart/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, c domain.Category) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	// Delete fails with domain.ErrConflict while brands still reference the
	// category.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	// ListForSchool returns the school's categories plus global ones. A nil
	// schoolID lists globals only.
	ListForSchool(ctx context.Context, schoolID *string) ([]domain.Category, error)
}
