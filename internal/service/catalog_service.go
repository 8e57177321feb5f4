package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Flediko/Smartkart/internal/domain"
	"github.com/Flediko/Smartkart/internal/repository"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 12
	maxPageSize     = 50
)

type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

type ProductPage struct {
	Products []*domain.Product
	Page     int64
	Pages    int64
	Total    int64
}

func (s *CatalogService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.SortOrder != "asc" {
		filter.SortOrder = "desc"
	}

	products, total, err := s.products.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*domain.Product{}
	}

	pages := (total + filter.Limit - 1) / filter.Limit

	return &ProductPage{
		Products: products,
		Page:     filter.Page,
		Pages:    pages,
		Total:    total,
	}, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return s.products.CreateProduct(ctx, p)
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id string, update repository.ProductUpdate) (*domain.Product, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, ValidationError("name cannot be empty")
	}
	if update.Price != nil && *update.Price < 0 {
		return nil, ValidationError("price cannot be negative")
	}
	if update.Stock != nil && *update.Stock < 0 {
		return nil, ValidationError("stock cannot be negative")
	}
	if update.SalePrice != nil && *update.SalePrice < 0 {
		return nil, ValidationError("sale price cannot be negative")
	}
	if update.Category != nil && !domain.ValidCategory(*update.Category) {
		return nil, ValidationError(fmt.Sprintf("unknown category %q", *update.Category))
	}
	return s.products.UpdateProduct(ctx, id, update)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) error {
	return s.products.DeleteProduct(ctx, id)
}

// AddReview records one review per user per product and recomputes the
// product's average rating.
func (s *CatalogService) AddReview(ctx context.Context, productID, userID, userName string, rating int, comment string) (*domain.Product, error) {
	if rating < 1 || rating > 5 {
		return nil, ValidationError("rating must be between 1 and 5")
	}
	if strings.TrimSpace(comment) == "" {
		return nil, ValidationError("comment cannot be empty")
	}

	review := domain.Review{
		ID:        uuid.New().String(),
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}

	return s.products.AddReview(ctx, productID, review)
}

func validateProduct(p *domain.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError("name cannot be empty")
	}
	if strings.TrimSpace(p.Description) == "" {
		return ValidationError("description cannot be empty")
	}
	if strings.TrimSpace(p.Brand) == "" {
		return ValidationError("brand cannot be empty")
	}
	if !domain.ValidCategory(p.Category) {
		return ValidationError(fmt.Sprintf("unknown category %q", p.Category))
	}
	if p.Price < 0 {
		return ValidationError("price cannot be negative")
	}
	if p.Stock < 0 {
		return ValidationError("stock cannot be negative")
	}
	if p.SalePrice < 0 {
		return ValidationError("sale price cannot be negative")
	}
	return nil
}
