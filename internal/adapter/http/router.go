package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/avelora/fincore/internal/adapter/http/handler"
	"github.com/avelora/fincore/internal/adapter/http/middleware"
	"github.com/avelora/fincore/internal/infrastructure/metrics"
	"github.com/avelora/fincore/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler    *handler.AccountHandler
	LedgerHandler     *handler.LedgerHandler
	ConversionHandler *handler.ConversionHandler
	AnalyticsHandler  *handler.AnalyticsHandler
	AuditHandler      *handler.AuditHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	Metrics           *metrics.Metrics
	Logger            zerolog.Logger
	RateLimit         float64
	RateBurst         int
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.Recovery)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	if cfg.RateLimit > 0 {
		r.Use(middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst).Limit)
	}

	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", cfg.AccountHandler.Open)
			r.Get("/", cfg.AccountHandler.List)
			r.Get("/{id}", cfg.AccountHandler.Get)
			r.Put("/{id}/status", cfg.AccountHandler.UpdateStatus)
			r.Post("/{id}/currencies", cfg.AccountHandler.AddCurrency)
			r.Delete("/{id}/currencies/{currency}", cfg.AccountHandler.RemoveCurrency)

			r.Post("/{id}/deposit", cfg.LedgerHandler.Deposit)
			r.Post("/{id}/withdraw", cfg.LedgerHandler.Withdraw)
			r.Post("/{id}/charge", cfg.LedgerHandler.Charge)
			r.Post("/{id}/reserve", cfg.LedgerHandler.Reserve)
			r.Post("/{id}/release", cfg.LedgerHandler.Release)
			r.Post("/{id}/freeze", cfg.LedgerHandler.Freeze)
			r.Post("/{id}/unfreeze", cfg.LedgerHandler.Unfreeze)
			r.Get("/{id}/transactions", cfg.LedgerHandler.ListByAccount)

			r.Post("/{id}/conversions", cfg.ConversionHandler.ConvertCurrency)
			r.Post("/{id}/conversions/asset", cfg.ConversionHandler.ConvertAssetToken)
			r.Get("/{id}/conversions", cfg.ConversionHandler.ListByAccount)

			r.Get("/{id}/analytics/transactions/by-type", cfg.AnalyticsHandler.TransactionsByType)
			r.Get("/{id}/analytics/transactions/by-status", cfg.AnalyticsHandler.TransactionsByStatus)
			r.Get("/{id}/analytics/transactions/by-day", cfg.AnalyticsHandler.TransactionsByDay)
		})

		r.Get("/users/{userID}/account", cfg.AccountHandler.GetByUser)
		r.Get("/users/{userID}/transactions", cfg.LedgerHandler.ListByUser)

		r.Post("/transfers", cfg.LedgerHandler.Transfer)

		r.Route("/transactions", func(r chi.Router) {
			r.Get("/{id}", cfg.LedgerHandler.Get)
			r.Post("/{id}/reverse", cfg.LedgerHandler.Reverse)
		})

		r.Route("/conversions", func(r chi.Router) {
			r.Get("/{id}", cfg.ConversionHandler.Get)
			r.Post("/{id}/reverse", cfg.ConversionHandler.Reverse)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/conversions/by-pair", cfg.AnalyticsHandler.ConversionsByPair)
			r.Get("/balances/totals", cfg.AnalyticsHandler.BalanceTotals)
		})

		r.Route("/audit-logs", func(r chi.Router) {
			r.Get("/", cfg.AuditHandler.List)
			r.Get("/{resourceType}/{resourceID}", cfg.AuditHandler.ResourceTrail)
		})
	})

	return r
}
