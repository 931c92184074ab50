// Package catalog holds the tenant-scoped category/brand/product services.
// Mutations take the acting user and enforce admin scope; reads are public.
package catalog

import (
	"context"
	"errors"
	"strings"

	"alumnimart/internal/domain"
	brandrepo "alumnimart/internal/repository/brand"
	categoryrepo "alumnimart/internal/repository/category"
)

// CategoryService manages categories.
type CategoryService struct {
	repo categoryrepo.Repository
}

func NewCategoryService(repo categoryrepo.Repository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CategoryInput carries the category fields. A nil SchoolID creates a global
// category, which only the super admin may do.
type CategoryInput struct {
	SchoolID *string `json:"schoolId"`
	Name     string  `json:"name"`
}

func (s *CategoryService) Create(ctx context.Context, actor domain.User, in CategoryInput) (*domain.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("category name is required")
	}
	if !actor.IsAdmin(in.SchoolID) {
		return nil, domain.ErrForbidden
	}
	created, err := s.repo.Create(ctx, domain.Category{SchoolID: in.SchoolID, Name: name})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Validationf("a category named %q already exists in this scope", name)
		}
		return nil, err
	}
	return created, nil
}

func (s *CategoryService) Rename(ctx context.Context, actor domain.User, id, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("category name is required")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin(existing.SchoolID) {
		return nil, domain.ErrForbidden
	}
	renamed, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Validationf("a category named %q already exists in this scope", name)
		}
		return nil, err
	}
	return renamed, nil
}

// Delete refuses while brands still reference the category; the conflict
// error carries the dependent count for the UI.
func (s *CategoryService) Delete(ctx context.Context, actor domain.User, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin(existing.SchoolID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, schoolID *string) ([]domain.Category, error) {
	return s.repo.ListForSchool(ctx, schoolID)
}

// BrandService manages brands within categories.
type BrandService struct {
	repo       brandrepo.Repository
	categories categoryrepo.Repository
}

func NewBrandService(repo brandrepo.Repository, categories categoryrepo.Repository) *BrandService {
	return &BrandService{repo: repo, categories: categories}
}

// BrandInput carries the brand fields.
type BrandInput struct {
	SchoolID   *string `json:"schoolId"`
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
}

func (s *BrandService) Create(ctx context.Context, actor domain.User, in BrandInput) (*domain.Brand, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Validationf("brand name is required")
	}
	if strings.TrimSpace(in.CategoryID) == "" {
		return nil, domain.Validationf("categoryId is required")
	}
	if !actor.IsAdmin(in.SchoolID) {
		return nil, domain.ErrForbidden
	}
	if _, err := s.categories.GetByID(ctx, in.CategoryID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validationf("category not found")
		}
		return nil, err
	}
	created, err := s.repo.Create(ctx, domain.Brand{SchoolID: in.SchoolID, CategoryID: in.CategoryID, Name: name})
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Validationf("a brand named %q already exists in this scope", name)
		}
		return nil, err
	}
	return created, nil
}

func (s *BrandService) Rename(ctx context.Context, actor domain.User, id, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.Validationf("brand name is required")
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin(existing.SchoolID) {
		return nil, domain.ErrForbidden
	}
	renamed, err := s.repo.Rename(ctx, id, name)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Validationf("a brand named %q already exists in this scope", name)
		}
		return nil, err
	}
	return renamed, nil
}

func (s *BrandService) Delete(ctx context.Context, actor domain.User, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin(existing.SchoolID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *BrandService) List(ctx context.Context, schoolID *string) ([]domain.Brand, error) {
	return s.repo.ListForSchool(ctx, schoolID)
}
