package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avidela/rentas/internal/adapter/http/handler"
	"github.com/avidela/rentas/internal/adapter/http/middleware"
	"github.com/avidela/rentas/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ReceiptHandler        *handler.ReceiptHandler
	TenantHandler         *handler.TenantHandler
	CashHandler           *handler.CashHandler
	ReportHandler         *handler.ReportHandler
	PortabilityHandler    *handler.PortabilityHandler
	ReconciliationHandler *handler.ReconciliationHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	RateLimiter           *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Receipts
		r.Route("/receipts", func(r chi.Router) {
			r.Post("/", cfg.ReceiptHandler.Create)
			r.Get("/", cfg.ReceiptHandler.List)
			r.Get("/{id}", cfg.ReceiptHandler.Get)
			r.Put("/{id}", cfg.ReceiptHandler.Update)
			r.Delete("/{id}", cfg.ReceiptHandler.Delete)
			r.Post("/{id}/confirm", cfg.ReceiptHandler.Confirm)
			r.Post("/{id}/payments", cfg.ReceiptHandler.Pay)
		})

		// Tenants
		r.Route("/tenants", func(r chi.Router) {
			r.Post("/", cfg.TenantHandler.Create)
			r.Get("/", cfg.TenantHandler.List)
			r.Get("/{id}", cfg.TenantHandler.Get)
			r.Get("/{id}/statement", cfg.TenantHandler.Statement)
			r.Get("/{id}/balance", cfg.TenantHandler.Balance)
			r.Post("/{id}/property", cfg.TenantHandler.AssignProperty)
			r.Delete("/{id}/property", cfg.TenantHandler.UnassignProperty)
		})

		// Cash register
		r.Route("/cash", func(r chi.Router) {
			r.Get("/balance", cfg.CashHandler.Balance)
			r.Get("/movements", cfg.CashHandler.Movements)
			r.Get("/daily", cfg.CashHandler.Daily)
			r.Post("/deliveries", cfg.CashHandler.Deliver)
			r.Post("/deliveries/all", cfg.CashHandler.DeliverAll)
		})

		// Reports
		r.Get("/reports/monthly", cfg.ReportHandler.Monthly)

		// Portability
		r.Get("/export", cfg.PortabilityHandler.Export)
		r.Post("/import", cfg.PortabilityHandler.Import)

		// Reconciliation
		r.Get("/reconciliation", cfg.ReconciliationHandler.Get)
		r.Post("/reconciliation/repair", cfg.ReconciliationHandler.Repair)
	})

	return r
}
