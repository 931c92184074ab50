package cart

import (
	"context"
	"errors"
	"strings"

	"alumnimart/internal/domain"
	cartrepo "alumnimart/internal/repository/cart"
)

// Service maintains the authenticated user's pending product selection. All
// operations are keyed by an explicit user id, never ambient session state.
type Service struct {
	repo     cartRepo
	products productRepo
}

type cartRepo interface {
	Add(ctx context.Context, userID, productID string, quantity int) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (*domain.CartSummary, error)
	Count(ctx context.Context, userID string) (int, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

func New(repo cartrepo.Repository, products productRepo) *Service {
	return &Service{repo: repo, products: products}
}

// Add puts quantity units of the product in the user's cart and returns the
// updated cart count. A non-positive quantity defaults to 1. Adding an
// already-carted product increments its row; there are never duplicate rows
// per (user, product).
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) (int, error) {
	if strings.TrimSpace(productID) == "" {
		return 0, domain.Validationf("productId is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.Validationf("product not found")
		}
		return 0, err
	}
	if err := s.repo.Add(ctx, userID, productID, quantity); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, userID)
}

// UpdateQuantity overwrites the quantity for one cart row. Non-positive
// quantities normalize to removal here rather than trusting the UI to call
// remove.
func (s *Service) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if strings.TrimSpace(productID) == "" {
		return domain.Validationf("productId is required")
	}
	if quantity < 1 {
		return s.repo.Remove(ctx, userID, productID)
	}
	return s.repo.SetQuantity(ctx, userID, productID, quantity)
}

// Remove deletes the row for (user, product); removing an absent product is
// not an error.
func (s *Service) Remove(ctx context.Context, userID, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return domain.Validationf("productId is required")
	}
	return s.repo.Remove(ctx, userID, productID)
}

func (s *Service) Clear(ctx context.Context, userID string) error {
	return s.repo.Clear(ctx, userID)
}

func (s *Service) Summary(ctx context.Context, userID string) (*domain.CartSummary, error) {
	return s.repo.Summary(ctx, userID)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.repo.Count(ctx, userID)
}
