package service

import (
	"context"
	"sync"
	"testing"

	"github.com/Flediko/Smartkart/internal/domain"
	"github.com/Flediko/Smartkart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockListingRepository records the filter the service hands down and
// returns a canned page.
type mockListingRepository struct {
	mockProductRepository
	m          sync.Mutex
	lastFilter repository.ProductFilter
	listed     []*domain.Product
	total      int64
	review     *domain.Review
	reviewErr  error
}

func (m *mockListingRepository) ListProducts(_ context.Context, filter repository.ProductFilter) ([]*domain.Product, int64, error) {
	m.m.Lock()
	defer m.m.Unlock()
	m.lastFilter = filter
	return m.listed, m.total, nil
}

func (m *mockListingRepository) AddReview(_ context.Context, _ string, review domain.Review) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.reviewErr != nil {
		return nil, m.reviewErr
	}
	m.review = &review
	return &domain.Product{ID: "p1", Rating: float64(review.Rating), NumReviews: 1}, nil
}

func TestListProducts_AppliesDefaultsAndClampsLimit(t *testing.T) {
	repo := &mockListingRepository{total: 25}
	sut := NewCatalogService(repo)

	page, err := sut.ListProducts(context.Background(), repository.ProductFilter{Limit: 500})
	require.NoError(t, err)

	assert.Equal(t, int64(1), repo.lastFilter.Page)
	assert.Equal(t, int64(maxPageSize), repo.lastFilter.Limit)
	assert.Equal(t, "desc", repo.lastFilter.SortOrder)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, int64(1), page.Pages)
	assert.NotNil(t, page.Products)
}

func TestListProducts_PaginationArithmetic(t *testing.T) {
	repo := &mockListingRepository{total: 25}
	sut := NewCatalogService(repo)

	page, err := sut.ListProducts(context.Background(), repository.ProductFilter{Page: 2, Limit: 12})
	require.NoError(t, err)

	assert.Equal(t, int64(2), page.Page)
	assert.Equal(t, int64(3), page.Pages) // 25 items at 12 per page
}

func TestCreateProduct_Validation(t *testing.T) {
	sut := NewCatalogService(&mockListingRepository{})

	tests := []struct {
		name    string
		product domain.Product
	}{
		{"empty name", domain.Product{Description: "d", Brand: "b", Category: "Books", Price: 1}},
		{"empty description", domain.Product{Name: "n", Brand: "b", Category: "Books", Price: 1}},
		{"unknown category", domain.Product{Name: "n", Description: "d", Brand: "b", Category: "Gadgets", Price: 1}},
		{"negative price", domain.Product{Name: "n", Description: "d", Brand: "b", Category: "Books", Price: -1}},
		{"negative stock", domain.Product{Name: "n", Description: "d", Brand: "b", Category: "Books", Price: 1, Stock: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sut.CreateProduct(context.Background(), &tt.product)
			var validationErr ValidationError
			assert.ErrorAs(t, err, &validationErr)
		})
	}
}

func TestUpdateProduct_RejectsBadFields(t *testing.T) {
	sut := NewCatalogService(&mockListingRepository{})

	negative := -5.0
	_, err := sut.UpdateProduct(context.Background(), "p1", repository.ProductUpdate{Price: &negative})
	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)

	bad := "Gadgets"
	_, err = sut.UpdateProduct(context.Background(), "p1", repository.ProductUpdate{Category: &bad})
	assert.ErrorAs(t, err, &validationErr)
}

func TestAddReview_Validation(t *testing.T) {
	sut := NewCatalogService(&mockListingRepository{})

	_, err := sut.AddReview(context.Background(), "p1", "u1", "Alice", 0, "fine")
	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)

	_, err = sut.AddReview(context.Background(), "p1", "u1", "Alice", 6, "fine")
	assert.ErrorAs(t, err, &validationErr)

	_, err = sut.AddReview(context.Background(), "p1", "u1", "Alice", 3, "   ")
	assert.ErrorAs(t, err, &validationErr)
}

func TestAddReview_BuildsReviewWithIdentity(t *testing.T) {
	repo := &mockListingRepository{}
	sut := NewCatalogService(repo)

	product, err := sut.AddReview(context.Background(), "p1", "u1", "Alice", 4, "solid")
	require.NoError(t, err)
	require.NotNil(t, repo.review)
	assert.NotEmpty(t, repo.review.ID)
	assert.Equal(t, "u1", repo.review.UserID)
	assert.Equal(t, "Alice", repo.review.UserName)
	assert.Equal(t, 4, repo.review.Rating)
	assert.Equal(t, 1, product.NumReviews)
}

func TestAddReview_DuplicatePassesThrough(t *testing.T) {
	repo := &mockListingRepository{reviewErr: repository.ErrReviewExists}
	sut := NewCatalogService(repo)

	_, err := sut.AddReview(context.Background(), "p1", "u1", "Alice", 4, "again")
	assert.ErrorIs(t, err, repository.ErrReviewExists)
}
