package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Flediko/Smartkart/internal/domain"
	"github.com/Flediko/Smartkart/internal/repository"
	"github.com/Flediko/Smartkart/internal/service"
	"github.com/go-chi/chi/v5"
)

// CatalogService is the slice of the catalog the handlers need.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter) (*service.ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id string, update repository.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AddReview(ctx context.Context, productID, userID, userName string, rating int, comment string) (*domain.Product, error)
}

type ProductHandler struct {
	service CatalogService
}

func NewProductHandler(service CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repository.ProductFilter{
		Category:  q.Get("category"),
		Search:    q.Get("search"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	if v := q.Get("minPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &price
		}
	}
	if v := q.Get("maxPrice"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &price
		}
	}
	if v := q.Get("featured"); v != "" {
		if featured, err := strconv.ParseBool(v); err == nil {
			filter.Featured = &featured
		}
	}
	if v := q.Get("page"); v != "" {
		if page, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.Page = page
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.Limit = limit
		}
	}

	page, err := h.service.ListProducts(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": page.Products,
		"page":     page.Page,
		"pages":    page.Pages,
		"total":    page.Total,
	})
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *ProductHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromContext(r.Context())
	if userID == "" {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product, err := h.service.AddReview(
		r.Context(),
		chi.URLParam(r, "productID"),
		userID,
		userNameFromContext(r.Context()),
		req.Rating,
		req.Comment,
	)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Review added",
		"product": product,
	})
}

type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
	Featured    bool     `json:"featured"`
	OnSale      bool     `json:"onSale"`
	SalePrice   float64  `json:"salePrice"`
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
		OnSale:      req.OnSale,
		SalePrice:   req.SalePrice,
	}

	if err := h.service.CreateProduct(r.Context(), product); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

type productUpdateRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	Brand       *string  `json:"brand"`
	Images      []string `json:"images"`
	Stock       *int     `json:"stock"`
	Featured    *bool    `json:"featured"`
	OnSale      *bool    `json:"onSale"`
	SalePrice   *float64 `json:"salePrice"`
}

func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	update := repository.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Brand:       req.Brand,
		Images:      req.Images,
		Stock:       req.Stock,
		Featured:    req.Featured,
		OnSale:      req.OnSale,
		SalePrice:   req.SalePrice,
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "productID"), update)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "productID")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Product deleted",
	})
}
