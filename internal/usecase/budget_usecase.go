package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// BudgetUseCase manages per-period budget configuration.
type BudgetUseCase struct {
	budgetRepo BudgetRepository
	metrics    *metrics.Metrics
}

// NewBudgetUseCase creates a new BudgetUseCase. m may be nil.
func NewBudgetUseCase(budgetRepo BudgetRepository, m *metrics.Metrics) *BudgetUseCase {
	return &BudgetUseCase{budgetRepo: budgetRepo, metrics: m}
}

// SetBudgetInput represents input for configuring a period's budget.
type SetBudgetInput struct {
	Period          string
	Global          string
	PerCategory     map[string]string
	AlertWindowDays int
}

// SetBudget creates or replaces the budget for a period.
func (uc *BudgetUseCase) SetBudget(ctx context.Context, input SetBudgetInput) (*domain.Budget, error) {
	global, err := parseLimit(input.Global)
	if err != nil {
		return nil, fmt.Errorf("global limit: %w", err)
	}

	perCategory := make(map[string]decimal.Decimal, len(input.PerCategory))
	for id, raw := range input.PerCategory {
		limit, err := parseLimit(raw)
		if err != nil {
			return nil, fmt.Errorf("category %q limit: %w", id, err)
		}
		perCategory[id] = limit
	}

	budget := &domain.Budget{
		Period:          input.Period,
		Global:          global,
		PerCategory:     perCategory,
		AlertWindowDays: input.AlertWindowDays,
	}
	if err := budget.Validate(); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Upsert(ctx, budget); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.BudgetsUpserted.Inc()
	}

	return budget, nil
}

// GetBudget retrieves the budget for a period.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, period string) (*domain.Budget, error) {
	if err := domain.ValidatePeriodKey(period); err != nil {
		return nil, err
	}
	return uc.budgetRepo.GetByPeriod(ctx, period)
}

// parseLimit parses a non-negative budget limit. Unlike payment amounts,
// a zero limit is allowed and means "no limit configured".
func parseLimit(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: limit %q is not numeric", domain.ErrValidation, raw)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: limit cannot be negative", domain.ErrValidation)
	}
	return d.Round(2), nil
}
