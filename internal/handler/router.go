package handler

import (
	"greenplace-be/internal/logger"
	"greenplace-be/internal/middleware"
	"greenplace-be/internal/transport"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type RouterOptions struct {
	CORSOrigin    string
	SessionMaxAge time.Duration
	SecureCookies bool
	// Limiter and Metrics are optional.
	Limiter *middleware.RateLimiter
	Metrics http.Handler
}

func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(opts.CORSOrigin),
	)

	r.Get("/health", h.Health)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(transport.SessionMiddleware(opts.SessionMaxAge, opts.SecureCookies))
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}

		r.Get("/products", h.ListProducts)
		r.Get("/products/featured", h.ListFeatured)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/search", h.Search)
		r.Get("/categories", h.ListCategories)
		r.Get("/conditions", h.ListConditions)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{id}", h.UpdateCartItem)
			r.Delete("/items/{id}", h.RemoveCartItem)
			r.Post("/checkout", h.Checkout)
		})
	})

	return r
}
