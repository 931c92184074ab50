package feed

import (
	"context"

	"alumnimart/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, p domain.FeedPost) (*domain.FeedPost, error)
	// ListBySchool returns the school's posts, optionally filtered by kind.
	ListBySchool(ctx context.Context, schoolID, kind string) ([]domain.FeedPost, error)
	GetByID(ctx context.Context, id string) (*domain.FeedPost, error)
	Delete(ctx context.Context, id string) error
}
