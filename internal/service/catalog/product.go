package catalog

import (
	"context"
	"errors"
	"strings"

	"alumnimart/internal/domain"
	brandrepo "alumnimart/internal/repository/brand"
	productrepo "alumnimart/internal/repository/product"
	"github.com/shopspring/decimal"
)

// ProductService manages storefront products.
type ProductService struct {
	repo   productrepo.Repository
	brands brandrepo.Repository
}

func NewProductService(repo productrepo.Repository, brands brandrepo.Repository) *ProductService {
	return &ProductService{repo: repo, brands: brands}
}

// ProductInput carries the product fields for create and update.
type ProductInput struct {
	SchoolID    *string         `json:"schoolId"`
	BrandID     string          `json:"brandId"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Keywords    string          `json:"keywords"`
	ImageURL    string          `json:"imageUrl"`
}

func (in ProductInput) validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Validationf("product title is required")
	}
	if in.Price.IsNegative() {
		return domain.Validationf("price must not be negative")
	}
	return nil
}

func (s *ProductService) Create(ctx context.Context, actor domain.User, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.BrandID) == "" {
		return nil, domain.Validationf("brandId is required")
	}
	if !actor.IsAdmin(in.SchoolID) {
		return nil, domain.ErrForbidden
	}
	brand, err := s.brands.GetByID(ctx, in.BrandID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validationf("brand not found")
		}
		return nil, err
	}

	return s.repo.Create(ctx, domain.Product{
		SchoolID:    in.SchoolID,
		CategoryID:  brand.CategoryID,
		BrandID:     brand.ID,
		Title:       strings.TrimSpace(in.Title),
		Price:       in.Price,
		Description: in.Description,
		Keywords:    in.Keywords,
		ImageURL:    in.ImageURL,
		CreatedBy:   actor.ID,
	})
}

func (s *ProductService) Update(ctx context.Context, actor domain.User, id string, in ProductInput) (*domain.Product, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin(existing.SchoolID) {
		return nil, domain.ErrForbidden
	}
	return s.repo.Update(ctx, id, productrepo.UpdateInput{
		Title:       strings.TrimSpace(in.Title),
		Price:       in.Price,
		Description: in.Description,
		Keywords:    in.Keywords,
		ImageURL:    in.ImageURL,
	})
}

func (s *ProductService) Delete(ctx context.Context, actor domain.User, id string) error {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.IsAdmin(existing.SchoolID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func (s *ProductService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) List(ctx context.Context, f productrepo.ListFilter) ([]domain.Product, error) {
	return s.repo.List(ctx, f)
}
