package repository

import (
	"context"
	"errors"

	"github.com/Flediko/Smartkart/internal/domain"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrProductNotFound = errors.New("product not found")
	ErrReviewExists    = errors.New("product already reviewed by this user")
)

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)
	// AddItem appends a new line item, creating the cart document for the
	// user if none exists yet.
	AddItem(ctx context.Context, userID string, item domain.CartItem) error
	// SetItemQuantity replaces the quantity of the line item in place. The
	// snapshotted price is never touched.
	SetItemQuantity(ctx context.Context, userID, itemID string, quantity int) error
	RemoveItem(ctx context.Context, userID, itemID string) error
	DeleteCart(ctx context.Context, userID string) error
}

// ProductFilter narrows and orders a catalog listing.
type ProductFilter struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	Featured  *bool
	SortBy    string // createdAt, price, name, rating
	SortOrder string // asc or desc
	Page      int64
	Limit     int64
}

// ProductUpdate carries a partial product update; nil fields are left
// untouched.
type ProductUpdate struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Brand       *string
	Images      []string
	Stock       *int
	Featured    *bool
	OnSale      *bool
	SalePrice   *float64
}

type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, int64, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	// GetProducts resolves a batch of ids; missing products are simply
	// absent from the returned map.
	GetProducts(ctx context.Context, ids []string) (map[string]*domain.Product, error)
	CreateProduct(ctx context.Context, p *domain.Product) error
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	// AddReview appends a review and recomputes the product's rating and
	// review count. Returns ErrReviewExists when the user already reviewed
	// the product.
	AddReview(ctx context.Context, productID string, review domain.Review) (*domain.Product, error)
}
