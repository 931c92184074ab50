package brand

import (
	"context"

	"alumnimart/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, b domain.Brand) (*domain.Brand, error)
	Rename(ctx context.Context, id, name string) (*domain.Brand, error)
	// Delete fails with domain.ErrConflict while products still reference the
	// brand.
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	ListForSchool(ctx context.Context, schoolID *string) ([]domain.Brand, error)
}
