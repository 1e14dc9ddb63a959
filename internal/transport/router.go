package transport

import (
	"net/http"
	"time"

	"marketplace-be/internal/auth"
	"marketplace-be/internal/category"
	"marketplace-be/internal/logger"
	"marketplace-be/internal/metrics"
	"marketplace-be/internal/middleware"
	"marketplace-be/internal/order"
	"marketplace-be/internal/product"
	"marketplace-be/internal/rating"
	"marketplace-be/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

type Services struct {
	Users      user.Service
	Categories category.Service
	Products   product.Service
	Orders     order.Service
	Ratings    rating.Service
}

type RouterConfig struct {
	Services Services
	Tokens   middleware.TokenParser
	Limiter  *middleware.RateLimiter
	Metrics  *metrics.Registry
	Timeout  time.Duration
}

type Handler struct {
	users      user.Service
	categories category.Service
	products   product.Service
	orders     order.Service
	ratings    rating.Service
	metrics    *metrics.Registry
	validate   *validator.Validate
}

func NewHandler(s Services, reg *metrics.Registry) *Handler {
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &Handler{
		users:      s.Users,
		categories: s.Categories,
		products:   s.Products,
		orders:     s.Orders,
		ratings:    s.Ratings,
		metrics:    reg,
		validate:   newValidator(),
	}
}

// NewRouter builds the HTTP API. Authentication runs before access logging
// and rate limiting so both see the caller's profile.
func NewRouter(cfg RouterConfig) http.Handler {
	h := NewHandler(cfg.Services, cfg.Metrics)

	r := chi.NewRouter()
	r.Use(logger.RequestIDMiddleware)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Authenticate(cfg.Tokens))
	r.Use(middleware.LoggingMiddleware(h.metrics))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}
	if cfg.Timeout > 0 {
		r.Use(chimw.Timeout(cfg.Timeout))
	}

	h.RegisterRoutes(r)
	return r
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.handleHealth)
	r.Get("/metrics", h.handleMetrics)

	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)

	r.Get("/categories", h.handleListCategories)
	r.Get("/products", h.handleListProducts)
	r.Get("/products/{id}", h.handleGetProduct)
	r.Get("/suppliers/{id}", h.handleSupplierSummary)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Get("/me", h.handleGetMe)
		r.Put("/me", h.handleUpdateMe)
		r.Get("/orders/{id}", h.handleGetOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKind(auth.KindSupplier))

		r.Post("/categories", h.handleCreateCategory)
		r.Delete("/categories/{id}", h.handleDeleteCategory)

		r.Post("/products", h.handleCreateProduct)
		r.Put("/products/{id}", h.handleUpdateProduct)
		r.Delete("/products/{id}", h.handleDeleteProduct)

		r.Get("/supplier/products", h.handleSupplierProducts)
		r.Get("/supplier/products/low-stock", h.handleLowStock)
		r.Get("/supplier/orders", h.handleSupplierOrders)
		r.Get("/supplier/report", h.handleSupplierReport)

		r.Post("/orders/{id}/accept", h.handleAcceptOrder)
		r.Post("/orders/{id}/decline", h.handleDeclineOrder)
		r.Post("/orders/{id}/complete", h.handleCompleteOrder)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireKind(auth.KindBuyer))

		r.Post("/products/{id}/orders", h.handleCreateOrder)
		r.Get("/orders", h.handleBuyerOrders)
		r.Post("/orders/{id}/cancel", h.handleCancelOrder)
		r.Post("/orders/{id}/rating", h.handleCreateRating)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.metrics.Snapshot())
}
