package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Flediko/Smartkart/internal/cache"
	"github.com/Flediko/Smartkart/internal/domain"
	"github.com/Flediko/Smartkart/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// CartService implements the stock-aware cart mutations. Every mutating call
// re-reads the product's current stock before writing; the check and the
// persist are not wrapped in a transaction, so the per-document write
// atomicity of the storage layer is the only guarantee.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, cache cache.CartCache) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		cache:    cache,
	}
}

// GetCart returns the user's cart with line items hydrated with product
// detail. When no cart document exists it returns an empty synthetic cart;
// retrieval never creates one.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	// Use singleflight to collapse concurrent cache misses for the same user
	v, err, _ := s.sfg.Do(userID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.carts.GetCart(ctx, userID)
		if errGet != nil {
			if errors.Is(errGet, repository.ErrCartNotFound) {
				return emptyCart(userID), nil
			}
			return nil, errGet
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, userID, cart); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	// Hydrate a copy: the singleflight result is shared across callers and
	// may still be serializing into the cache.
	return s.hydrate(ctx, cloneCart(v.(*domain.Cart)))
}

// AddItem puts quantity units of a product into the user's cart, creating
// the cart if needed. A line item for a product already in the cart only has
// its quantity increased; the price snapshotted at first add stays as it
// was, even if the product's effective price changed since.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		return nil, err
	}

	var existing *domain.CartItem
	if cart != nil {
		existing = cart.FindItemByProduct(productID)
	}

	requested := quantity
	if existing != nil {
		requested += existing.Quantity
	}
	if requested > product.Stock {
		return nil, &InsufficientStockError{Available: product.Stock}
	}

	if existing != nil {
		err = s.carts.SetItemQuantity(ctx, userID, existing.ID, requested)
	} else {
		item := domain.CartItem{
			ID:        uuid.New().String(),
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.EffectivePrice(),
			AddedAt:   time.Now(),
		}
		err = s.carts.AddItem(ctx, userID, item)
	}
	if err != nil {
		log.Printf("repo add item error: %v", err)
		return nil, err
	}

	s.invalidateCache(userID)
	return s.reload(ctx, userID)
}

// UpdateQuantity replaces a line item's quantity after re-checking the
// referenced product's current stock. The snapshotted price is untouched.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.FindItem(itemID)
	if item == nil {
		return nil, repository.ErrItemNotFound
	}

	product, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}
	if quantity > product.Stock {
		return nil, &InsufficientStockError{Available: product.Stock}
	}

	if err := s.carts.SetItemQuantity(ctx, userID, itemID, quantity); err != nil {
		log.Printf("repo set item quantity error: %v", err)
		return nil, err
	}

	s.invalidateCache(userID)
	return s.reload(ctx, userID)
}

// RemoveItem deletes exactly one line item. Removing the last item leaves an
// empty cart document behind, which is distinct from having no cart at all.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cart.FindItem(itemID) == nil {
		return nil, repository.ErrItemNotFound
	}

	if err := s.carts.RemoveItem(ctx, userID, itemID); err != nil {
		log.Printf("repo remove item error: %v", err)
		return nil, err
	}

	s.invalidateCache(userID)
	return s.reload(ctx, userID)
}

// ClearCart deletes the cart document entirely. Idempotent: clearing a user
// with no cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	err := s.carts.DeleteCart(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", err)
		return err
	}

	s.invalidateCache(userID)
	return nil
}

// reload reads the authoritative cart back from storage and hydrates it.
func (s *CartService) reload(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCartNotFound) {
			return emptyCart(userID), nil
		}
		return nil, err
	}
	return s.hydrate(ctx, cart)
}

// hydrate resolves every line item's product reference to full product
// detail. Items whose product has since been deleted keep a nil Product.
func (s *CartService) hydrate(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	if len(cart.Items) == 0 {
		return cart, nil
	}

	ids := make([]string, 0, len(cart.Items))
	for _, item := range cart.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range cart.Items {
		cart.Items[i].Product = products[cart.Items[i].ProductID]
	}

	return cart, nil
}

func (s *CartService) invalidateCache(userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, userID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

func emptyCart(userID string) *domain.Cart {
	return &domain.Cart{
		UserID: userID,
		Items:  []domain.CartItem{},
	}
}

func cloneCart(cart *domain.Cart) *domain.Cart {
	c := *cart
	c.Items = make([]domain.CartItem, len(cart.Items))
	copy(c.Items, cart.Items)
	return &c
}
