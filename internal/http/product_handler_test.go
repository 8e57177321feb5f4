package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Flediko/Smartkart/internal/domain"
	"github.com/Flediko/Smartkart/internal/repository"
	"github.com/Flediko/Smartkart/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCatalogService struct {
	page    *service.ProductPage
	product *domain.Product
	err     error

	gotFilter  repository.ProductFilter
	gotUpdate  repository.ProductUpdate
	gotRating  int
	gotComment string
	gotUser    string
	deletedID  string
}

func (s *stubCatalogService) ListProducts(_ context.Context, filter repository.ProductFilter) (*service.ProductPage, error) {
	s.gotFilter = filter
	if s.page == nil {
		return &service.ProductPage{Products: []*domain.Product{}, Page: 1, Pages: 0}, s.err
	}
	return s.page, s.err
}

func (s *stubCatalogService) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) CreateProduct(_ context.Context, p *domain.Product) error {
	if s.err != nil {
		return s.err
	}
	p.ID = "created-id"
	return nil
}

func (s *stubCatalogService) UpdateProduct(_ context.Context, _ string, update repository.ProductUpdate) (*domain.Product, error) {
	s.gotUpdate = update
	return s.product, s.err
}

func (s *stubCatalogService) DeleteProduct(_ context.Context, id string) error {
	s.deletedID = id
	return s.err
}

func (s *stubCatalogService) AddReview(_ context.Context, _, userID, _ string, rating int, comment string) (*domain.Product, error) {
	s.gotUser = userID
	s.gotRating = rating
	s.gotComment = comment
	return s.product, s.err
}

func adminRequest(t *testing.T, handler http.Handler, method, path, body, adminKey string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestListProducts_ParsesQueryFilters(t *testing.T) {
	stub := &stubCatalogService{}
	router := newTestRouter(&stubCartService{}, stub)

	rec := doRequest(t, router, http.MethodGet,
		"/api/products?category=Books&search=go&minPrice=5&maxPrice=50&featured=true&sortBy=price&sortOrder=asc&page=2&limit=10",
		"", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, "Books", stub.gotFilter.Category)
	assert.Equal(t, "go", stub.gotFilter.Search)
	require.NotNil(t, stub.gotFilter.MinPrice)
	assert.Equal(t, 5.0, *stub.gotFilter.MinPrice)
	require.NotNil(t, stub.gotFilter.MaxPrice)
	assert.Equal(t, 50.0, *stub.gotFilter.MaxPrice)
	require.NotNil(t, stub.gotFilter.Featured)
	assert.True(t, *stub.gotFilter.Featured)
	assert.Equal(t, "price", stub.gotFilter.SortBy)
	assert.Equal(t, "asc", stub.gotFilter.SortOrder)
	assert.Equal(t, int64(2), stub.gotFilter.Page)
	assert.Equal(t, int64(10), stub.gotFilter.Limit)
}

func TestGetProduct_NotFound(t *testing.T) {
	stub := &stubCatalogService{err: repository.ErrProductNotFound}
	router := newTestRouter(&stubCartService{}, stub)

	rec := doRequest(t, router, http.MethodGet, "/api/products/ghost", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAddReview_RequiresAuth(t *testing.T) {
	router := newTestRouter(&stubCartService{}, &stubCatalogService{})

	rec := doRequest(t, router, http.MethodPost, "/api/products/p1/reviews", `{"rating":4,"comment":"ok"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAddReview_Succeeds(t *testing.T) {
	stub := &stubCatalogService{product: &domain.Product{ID: "p1"}}
	router := newTestRouter(&stubCartService{}, stub)

	rec := doRequest(t, router, http.MethodPost, "/api/products/p1/reviews", `{"rating":4,"comment":"great"}`, "u1")
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, "u1", stub.gotUser)
	assert.Equal(t, 4, stub.gotRating)
	assert.Equal(t, "great", stub.gotComment)
}

func TestAddReview_Duplicate(t *testing.T) {
	stub := &stubCatalogService{err: repository.ErrReviewExists}
	router := newTestRouter(&stubCartService{}, stub)

	rec := doRequest(t, router, http.MethodPost, "/api/products/p1/reviews", `{"rating":4,"comment":"again"}`, "u1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutes_RejectMissingKey(t *testing.T) {
	router := newTestRouter(&stubCartService{}, &stubCatalogService{})

	rec := adminRequest(t, router, http.MethodPost, "/api/admin/products", `{"name":"x"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = adminRequest(t, router, http.MethodPost, "/api/admin/products", `{"name":"x"}`, "wrong-key")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminCreateProduct_Succeeds(t *testing.T) {
	stub := &stubCatalogService{}
	router := newTestRouter(&stubCartService{}, stub)

	body := `{"name":"Gopher Plush","description":"soft","price":19.99,"category":"Toys","brand":"GoShop","stock":10}`
	rec := adminRequest(t, router, http.MethodPost, "/api/admin/products", body, "test-admin-key")
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeBody(t, rec)
	product := resp["product"].(map[string]interface{})
	assert.Equal(t, "created-id", product["id"])
}

func TestAdminCreateProduct_ValidationError(t *testing.T) {
	stub := &stubCatalogService{err: service.ValidationError("price cannot be negative")}
	router := newTestRouter(&stubCartService{}, stub)

	body := `{"name":"Broken","description":"d","price":-1,"category":"Toys","brand":"b"}`
	rec := adminRequest(t, router, http.MethodPost, "/api/admin/products", body, "test-admin-key")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminUpdateProduct_PartialUpdate(t *testing.T) {
	stub := &stubCatalogService{product: &domain.Product{ID: "p1", Stock: 7}}
	router := newTestRouter(&stubCartService{}, stub)

	rec := adminRequest(t, router, http.MethodPut, "/api/admin/products/p1", `{"stock":7}`, "test-admin-key")
	require.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.gotUpdate.Stock)
	assert.Equal(t, 7, *stub.gotUpdate.Stock)
	assert.Nil(t, stub.gotUpdate.Price)
	assert.Nil(t, stub.gotUpdate.Name)
}

func TestAdminDeleteProduct_NotFound(t *testing.T) {
	stub := &stubCatalogService{err: repository.ErrProductNotFound}
	router := newTestRouter(&stubCartService{}, stub)

	rec := adminRequest(t, router, http.MethodDelete, "/api/admin/products/ghost", "", "test-admin-key")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
