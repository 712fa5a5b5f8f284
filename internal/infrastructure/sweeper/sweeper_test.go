package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/logging"
	"github.com/finwatch/finwatch/internal/usecase"
)

func TestSweepPublishesAlerts(t *testing.T) {
	eval := &stubEvaluator{
		result: &usecase.EvaluateResult{
			Alerts: []domain.Alert{
				{Kind: domain.AlertDueDate, Message: "Rent is due tomorrow (900.00)", ObligationID: "ob-1"},
				{Kind: domain.AlertBudgetWarning, Message: "Food budget almost used"},
			},
		},
	}
	pub := &stubPublisher{}
	sw := newTestSweeper(eval, pub)

	if err := sw.sweep(context.Background()); err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if len(pub.published) != 2 {
		t.Fatalf("expected two published alerts, got %d", len(pub.published))
	}
	if pub.published[0].ObligationID != "ob-1" {
		t.Fatalf("expected due-date alert first, got %#v", pub.published[0])
	}
}

func TestSweepContinuesOnPublishError(t *testing.T) {
	eval := &stubEvaluator{
		result: &usecase.EvaluateResult{
			Alerts: []domain.Alert{
				{Kind: domain.AlertDueDate, ObligationID: "ob-1"},
				{Kind: domain.AlertGoalDeadline, GoalID: "goal-1"},
			},
		},
	}
	pub := &stubPublisher{
		errorsByKind: map[domain.AlertKind]error{domain.AlertDueDate: errors.New("fail")},
	}
	sw := newTestSweeper(eval, pub)

	if err := sw.sweep(context.Background()); err != nil {
		t.Fatalf("sweep returned error: %v", err)
	}

	if len(pub.published) != 1 || pub.published[0].GoalID != "goal-1" {
		t.Fatalf("expected only the goal alert to be published, got %#v", pub.published)
	}
}

func TestSweepPropagatesEvaluationError(t *testing.T) {
	eval := &stubEvaluator{err: errors.New("snapshot unavailable")}
	pub := &stubPublisher{}
	sw := newTestSweeper(eval, pub)

	if err := sw.sweep(context.Background()); err == nil {
		t.Fatal("expected evaluation error to propagate")
	}
	if len(pub.published) != 0 {
		t.Fatalf("expected no alerts published, got %d", len(pub.published))
	}
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	eval := &stubEvaluator{result: &usecase.EvaluateResult{}}
	sw := newTestSweeper(eval, &stubPublisher{})
	sw.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- sw.Start(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}

func newTestSweeper(eval Evaluator, pub Publisher) *Sweeper {
	logger := &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))}
	return New(Config{
		Evaluator: eval,
		Publisher: pub,
		Logger:    logger,
		Interval:  5 * time.Millisecond,
	})
}

type stubEvaluator struct {
	result *usecase.EvaluateResult
	err    error
}

func (s *stubEvaluator) Evaluate(ctx context.Context) (*usecase.EvaluateResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

type stubPublisher struct {
	published    []domain.Alert
	errorsByKind map[domain.AlertKind]error
}

func (s *stubPublisher) Publish(ctx context.Context, alert domain.Alert) error {
	if err := s.errorsByKind[alert.Kind]; err != nil {
		return err
	}
	s.published = append(s.published, alert)
	return nil
}
