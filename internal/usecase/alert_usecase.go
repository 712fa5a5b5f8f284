package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// goalCompletedKey prefixes the announcement markers for completed goals.
const goalCompletedKey = "goal-completed:"

// AlertUseCase derives the current alert set from a fresh snapshot. The
// evaluation itself is pure and idempotent; this layer adds the one
// stateful concern, announcing goal completion exactly once: emission is
// guarded by an atomic marker in the alert state store, and the goal's
// completion flag is persisted so the guarantee survives restarts.
type AlertUseCase struct {
	snapshots  SnapshotSource
	goalRepo   GoalRepository
	alertState AlertStateStore
	metrics    *metrics.Metrics
}

// NewAlertUseCase creates a new AlertUseCase. m may be nil.
func NewAlertUseCase(snapshots SnapshotSource, goalRepo GoalRepository, alertState AlertStateStore, m *metrics.Metrics) *AlertUseCase {
	return &AlertUseCase{
		snapshots:  snapshots,
		goalRepo:   goalRepo,
		alertState: alertState,
		metrics:    m,
	}
}

// EvaluateResult carries the alert set plus snapshot quality.
type EvaluateResult struct {
	Alerts     []domain.Alert
	Incomplete bool
	AsOf       time.Time
}

// Evaluate derives alerts as of now.
func (uc *AlertUseCase) Evaluate(ctx context.Context) (*EvaluateResult, error) {
	return uc.EvaluateAt(ctx, time.Now().UTC())
}

// EvaluateAt derives alerts as of the given day. A partial snapshot
// degrades gracefully: alerts are computed from the available data and
// the result is flagged.
func (uc *AlertUseCase) EvaluateAt(ctx context.Context, today time.Time) (*EvaluateResult, error) {
	snap, err := uc.snapshots.Fetch(ctx, domain.PeriodKey(today))
	if err != nil && !errors.Is(err, domain.ErrPartialData) {
		return nil, err
	}

	agg := domain.AggregateMonth(snap, today.Year(), today.Month())
	alerts := domain.EvaluateAlerts(today, snap, agg)

	kept := alerts[:0]
	droppedHeadline := false
	for _, a := range alerts {
		if a.Kind == domain.AlertGoalCompleted {
			announced, err := uc.announceCompletion(ctx, a.GoalID)
			if err != nil {
				return nil, err
			}
			if !announced {
				// Another evaluation got there first. If the dropped
				// alert carried the goal-family headline, another goal
				// alert inherits it below.
				if a.Headline {
					droppedHeadline = true
				}
				continue
			}
		}
		kept = append(kept, a)
	}
	if droppedHeadline {
		promoteGoalHeadline(kept)
	}

	return &EvaluateResult{
		Alerts:     kept,
		Incomplete: snap.Partial,
		AsOf:       today,
	}, nil
}

// announceCompletion claims the one-shot completion announcement for a
// goal and persists the monotonic completion flag. Returns false when a
// concurrent evaluation already claimed it. A claim whose persist fails
// is rolled back so a later evaluation can retry; otherwise the
// announcement would be lost with the flag still unset.
func (uc *AlertUseCase) announceCompletion(ctx context.Context, goalID string) (bool, error) {
	key := goalCompletedKey + goalID

	first, err := uc.alertState.MarkAnnounced(ctx, key, 0)
	if err != nil {
		return false, err
	}
	if !first {
		return false, nil
	}

	if err := uc.goalRepo.MarkCompleted(ctx, goalID); err != nil {
		_ = uc.alertState.ClearAnnounced(ctx, key)
		return false, err
	}

	if uc.metrics != nil {
		uc.metrics.GoalsCompleted.Inc()
	}

	return true, nil
}

// promoteGoalHeadline re-designates the goal-family headline after a
// suppressed completion alert: the first remaining completion alert, or
// failing one the deadline alert closest to its deadline.
func promoteGoalHeadline(alerts []domain.Alert) {
	idx := -1
	for i := range alerts {
		if alerts[i].Kind == domain.AlertGoalCompleted {
			idx = i
			break
		}
	}
	if idx < 0 {
		for i := range alerts {
			if alerts[i].Kind != domain.AlertGoalDeadline {
				continue
			}
			if idx < 0 || alerts[i].DueDate.Before(*alerts[idx].DueDate) {
				idx = i
			}
		}
	}
	if idx >= 0 {
		alerts[idx].Headline = true
	}
}
