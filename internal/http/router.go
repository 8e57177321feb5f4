package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	AdminAPIKey    string
	RequestTimeout time.Duration
}

// NewRouter wires the REST surface. Cart routes always act on the
// authenticated caller's own cart; the cart is never addressed by a path
// parameter.
func NewRouter(carts *CartHandler, products *ProductHandler, cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(AuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/", carts.AddItem)
			r.Delete("/", carts.ClearCart)
			r.Put("/{itemID}", carts.UpdateQuantity)
			r.Delete("/{itemID}", carts.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.ListProducts)
			r.Get("/{productID}", products.GetProduct)
			r.Post("/{productID}/reviews", products.AddReview)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireAdminKey(cfg.AdminAPIKey))
			r.Post("/products", products.CreateProduct)
			r.Put("/products/{productID}", products.UpdateProduct)
			r.Delete("/products/{productID}", products.DeleteProduct)
		})
	})

	return r
}
