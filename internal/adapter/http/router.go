package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/finwatch/finwatch/internal/adapter/http/handler"
	"github.com/finwatch/finwatch/internal/adapter/http/middleware"
	"github.com/finwatch/finwatch/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	ObligationHandler *handler.ObligationHandler
	BudgetHandler     *handler.BudgetHandler
	GoalHandler       *handler.GoalHandler
	ReportHandler     *handler.ReportHandler
	AlertHandler      *handler.AlertHandler
	ForecastHandler   *handler.ForecastHandler
	HealthHandler     *handler.HealthHandler

	Logger           zerolog.Logger
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Obligations
		r.Route("/obligations", func(r chi.Router) {
			r.Post("/", cfg.ObligationHandler.Create)
			r.Get("/", cfg.ObligationHandler.List)
			r.Get("/{id}", cfg.ObligationHandler.Get)
			r.Post("/{id}/pay", cfg.ObligationHandler.Pay)
			r.Post("/{id}/installments/{seq}/pay", cfg.ObligationHandler.PayInstallment)
		})

		// Budgets
		r.Route("/budgets/{period}", func(r chi.Router) {
			r.Put("/", cfg.BudgetHandler.Set)
			r.Get("/", cfg.BudgetHandler.Get)
		})

		// Goals
		r.Route("/goals", func(r chi.Router) {
			r.Post("/", cfg.GoalHandler.Create)
			r.Get("/", cfg.GoalHandler.List)
			r.Get("/{id}", cfg.GoalHandler.Get)
			r.Post("/{id}/deposits", cfg.GoalHandler.Deposit)
		})

		// Derived views
		r.Get("/reports/monthly/{period}", cfg.ReportHandler.Monthly)
		r.Get("/alerts", cfg.AlertHandler.List)
		r.Get("/forecast", cfg.ForecastHandler.Get)
	})

	return r
}
