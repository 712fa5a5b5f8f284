package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
)

// CompositeSnapshotSource implements SnapshotSource over the individual
// repositories. The independent reads are combined into one snapshot;
// the engine never fetches anything itself.
//
// Degradation policy: a failed read does not abort the fetch. The
// snapshot is returned with what could be read, Partial set, and an
// error matching domain.ErrPartialData describing what is missing.
// Callers decide whether to warn or proceed. A missing budget for the
// period is not a failure; it simply means no budget alerts.
type CompositeSnapshotSource struct {
	obligationRepo ObligationRepository
	budgetRepo     BudgetRepository
	goalRepo       GoalRepository
	categoryRepo   CategoryRepository
}

// NewCompositeSnapshotSource creates a new CompositeSnapshotSource.
func NewCompositeSnapshotSource(
	obligationRepo ObligationRepository,
	budgetRepo BudgetRepository,
	goalRepo GoalRepository,
	categoryRepo CategoryRepository,
) *CompositeSnapshotSource {
	return &CompositeSnapshotSource{
		obligationRepo: obligationRepo,
		budgetRepo:     budgetRepo,
		goalRepo:       goalRepo,
		categoryRepo:   categoryRepo,
	}
}

// Fetch composes a snapshot for the given period key.
func (s *CompositeSnapshotSource) Fetch(ctx context.Context, period string) (*domain.Snapshot, error) {
	if err := domain.ValidatePeriodKey(period); err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Categories: domain.CategoryMap{},
		FetchedAt:  time.Now().UTC(),
	}
	var missing []string

	obligations, err := s.obligationRepo.ListAll(ctx)
	if err != nil {
		snap.Partial = true
		missing = append(missing, fmt.Sprintf("obligations: %v", err))
	} else {
		snap.Obligations = obligations
	}

	budget, err := s.budgetRepo.GetByPeriod(ctx, period)
	switch {
	case err == nil:
		snap.Budget = budget
	case errors.Is(err, domain.ErrBudgetNotFound):
		// No budget configured for this period: not a failure.
	default:
		snap.Partial = true
		missing = append(missing, fmt.Sprintf("budget: %v", err))
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		snap.Partial = true
		missing = append(missing, fmt.Sprintf("categories: %v", err))
	} else {
		snap.Categories = categories
	}

	goals, err := s.goalRepo.List(ctx)
	if err != nil {
		snap.Partial = true
		missing = append(missing, fmt.Sprintf("goals: %v", err))
	} else {
		snap.Goals = goals
	}

	if snap.Partial {
		return snap, fmt.Errorf("%w: %v", domain.ErrPartialData, missing)
	}

	return snap, nil
}
