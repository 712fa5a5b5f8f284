package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/logging"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
	"github.com/finwatch/finwatch/internal/usecase"
)

// Evaluator produces the current alert set.
type Evaluator interface {
	Evaluate(ctx context.Context) (*usecase.EvaluateResult, error)
}

// Publisher delivers a single alert to an external sink.
type Publisher interface {
	Publish(ctx context.Context, alert domain.Alert) error
}

// Sweeper periodically re-evaluates alerts and pushes new ones to a
// publisher. Evaluation is idempotent, so overlapping or repeated
// sweeps are harmless; goal completions are deduplicated upstream.
type Sweeper struct {
	evaluator Evaluator
	publisher Publisher
	logger    *logging.Logger
	metrics   *metrics.Metrics
	interval  time.Duration
}

// Config for Sweeper.
type Config struct {
	Evaluator Evaluator
	Publisher Publisher
	Logger    *logging.Logger
	Metrics   *metrics.Metrics
	Interval  time.Duration // Sweep interval
}

// New creates a new Sweeper.
func New(cfg Config) *Sweeper {
	if cfg.Interval == 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = &logging.Logger{Logger: slog.Default()}
	}

	return &Sweeper{
		evaluator: cfg.Evaluator,
		publisher: cfg.Publisher,
		logger:    cfg.Logger,
		metrics:   cfg.Metrics,
		interval:  cfg.Interval,
	}
}

// Start begins the sweep loop.
// It runs continuously until the context is cancelled.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.Info("alert sweeper started", slog.Duration("interval", s.interval))

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Sweep immediately on start
	if err := s.sweep(ctx); err != nil {
		s.logger.Error("error on initial sweep", slog.String("error", err.Error()))
	}

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("alert sweeper shutting down")
			return ctx.Err()
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logger.Error("sweep failed", slog.String("error", err.Error()))
			}
		}
	}
}

// sweep runs a single evaluation and publishes the resulting alerts.
func (s *Sweeper) sweep(ctx context.Context) error {
	ctx = context.WithValue(ctx, logging.SweepIDKey, ulid.Make().String())
	start := time.Now()

	result, err := s.evaluator.Evaluate(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.SweepErrors.Inc()
		}
		return err
	}

	if s.metrics != nil {
		s.metrics.SweepRuns.Inc()
		s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}

	if result.Incomplete {
		s.logger.WarnCtx(ctx, "sweep ran on a partial snapshot")
	}

	if len(result.Alerts) == 0 {
		s.logger.DebugCtx(ctx, "sweep produced no alerts")
		return nil
	}

	s.logger.InfoCtx(ctx, "publishing alerts", slog.Int("count", len(result.Alerts)))

	for _, alert := range result.Alerts {
		if err := s.publisher.Publish(ctx, alert); err != nil {
			s.logger.ErrorCtx(ctx, "failed to publish alert",
				slog.String("kind", string(alert.Kind)),
				slog.String("error", err.Error()))
			// Continue publishing the remaining alerts even if one fails
			continue
		}

		if s.metrics != nil {
			s.metrics.AlertsEmitted.Inc()
			s.metrics.AlertsByKind.WithLabelValues(string(alert.Kind)).Inc()
		}
	}

	return nil
}

// LogPublisher is a simple publisher that logs alerts.
type LogPublisher struct {
	logger *logging.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger *logging.Logger) *LogPublisher {
	if logger == nil {
		logger = &logging.Logger{Logger: slog.Default()}
	}
	return &LogPublisher{logger: logger}
}

// Publish logs the alert.
func (p *LogPublisher) Publish(ctx context.Context, alert domain.Alert) error {
	attrs := []any{
		slog.String("kind", string(alert.Kind)),
		slog.String("message", alert.Message),
	}
	if alert.ObligationID != "" {
		attrs = append(attrs, slog.String("obligation_id", alert.ObligationID))
	}
	if alert.GoalID != "" {
		attrs = append(attrs, slog.String("goal_id", alert.GoalID))
	}
	if alert.DueDate != nil {
		attrs = append(attrs, slog.Time("due_date", *alert.DueDate))
	}

	p.logger.InfoCtx(ctx, "ALERT", attrs...)

	return nil
}
