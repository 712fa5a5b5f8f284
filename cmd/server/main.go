package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/finwatch/finwatch/internal/adapter/http"
	"github.com/finwatch/finwatch/internal/adapter/http/handler"
	"github.com/finwatch/finwatch/internal/adapter/http/middleware"
	postgresRepo "github.com/finwatch/finwatch/internal/adapter/repository/postgres"
	redisRepo "github.com/finwatch/finwatch/internal/adapter/repository/redis"
	"github.com/finwatch/finwatch/internal/infrastructure/config"
	"github.com/finwatch/finwatch/internal/infrastructure/logger"
	"github.com/finwatch/finwatch/internal/infrastructure/logging"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
	"github.com/finwatch/finwatch/internal/infrastructure/postgres"
	"github.com/finwatch/finwatch/internal/infrastructure/redis"
	"github.com/finwatch/finwatch/internal/infrastructure/sweeper"
	"github.com/finwatch/finwatch/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL: cfg.DatabaseURL,
		MaxConns:    cfg.DatabaseMaxConns,
		MinConns:    cfg.DatabaseMinConns,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	appMetrics := metrics.New()

	// Initialize repositories
	obligationRepo := postgresRepo.NewObligationRepository(pool, appMetrics)
	budgetRepo := postgresRepo.NewBudgetRepository(pool, appMetrics)
	goalRepo := postgresRepo.NewGoalRepository(pool, appMetrics)
	categoryRepo := postgresRepo.NewCategoryRepository(pool, appMetrics)
	idGen := postgresRepo.NewULIDGenerator()

	cache := redisRepo.NewCache(redisClient, appMetrics)
	alertState := redisRepo.NewAlertStateStore(redisClient, appMetrics)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient, appMetrics)

	// Initialize use cases
	snapshots := usecase.NewCompositeSnapshotSource(obligationRepo, budgetRepo, goalRepo, categoryRepo)
	obligationUC := usecase.NewObligationUseCase(obligationRepo, idGen, cache, appMetrics)
	budgetUC := usecase.NewBudgetUseCase(budgetRepo, appMetrics)
	goalUC := usecase.NewGoalUseCase(goalRepo, idGen, appMetrics)
	reportUC := usecase.NewReportUseCase(snapshots, cache, appMetrics)
	alertUC := usecase.NewAlertUseCase(snapshots, goalRepo, alertState, appMetrics)
	forecastUC := usecase.NewForecastUseCase(obligationRepo, categoryRepo, appMetrics)

	// Initialize handlers
	obligationHandler := handler.NewObligationHandler(obligationUC)
	budgetHandler := handler.NewBudgetHandler(budgetUC)
	goalHandler := handler.NewGoalHandler(goalUC)
	reportHandler := handler.NewReportHandler(reportUC)
	alertHandler := handler.NewAlertHandler(alertUC)
	forecastHandler := handler.NewForecastHandler(forecastUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, appMetrics)
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ObligationHandler: obligationHandler,
		BudgetHandler:     budgetHandler,
		GoalHandler:       goalHandler,
		ReportHandler:     reportHandler,
		AlertHandler:      alertHandler,
		ForecastHandler:   forecastHandler,
		HealthHandler:     healthHandler,
		Logger:            appLogger,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	// Background alert sweeper
	if cfg.AlertSweepInterval > 0 {
		sweepLogger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
		sw := sweeper.New(sweeper.Config{
			Evaluator: alertUC,
			Publisher: sweeper.NewLogPublisher(sweepLogger),
			Logger:    sweepLogger,
			Metrics:   appMetrics,
			Interval:  cfg.AlertSweepInterval,
		})
		go func() {
			if err := sw.Start(workerCtx); err != nil && workerCtx.Err() == nil {
				log.Error().Err(err).Msg("alert sweeper stopped unexpectedly")
			}
		}()
	}

	// Sample pool stats for the connection gauge
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				appMetrics.DBConnections.Set(float64(pool.Stat().TotalConns()))
			}
		}
	}()

	// Periodically reset rate limiter buckets
	if rateLimiter != nil {
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-workerCtx.Done():
					return
				case <-ticker.C:
					rateLimiter.CleanupLimiters()
				}
			}
		}()
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	stopWorkers()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
