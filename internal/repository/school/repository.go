package school

import (
	"context"

	"alumnimart/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, name, location string) (*domain.School, error)
	GetByID(ctx context.Context, id string) (*domain.School, error)
	List(ctx context.Context) ([]domain.School, error)
}
