package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool    *pgxpool.Pool
	retrier *Retrier
	metrics *metrics.Metrics
}

// NewBudgetRepository creates a new BudgetRepository. m may be nil.
func NewBudgetRepository(pool *pgxpool.Pool, m *metrics.Metrics) *BudgetRepository {
	return &BudgetRepository{
		pool:    pool,
		retrier: NewRetrier(),
		metrics: m,
	}
}

const upsertBudgetSQL = `
INSERT INTO budgets (period, global_limit, alert_window_days)
VALUES ($1, $2, $3)
ON CONFLICT (period) DO UPDATE SET
    global_limit = EXCLUDED.global_limit,
    alert_window_days = EXCLUDED.alert_window_days`

// Upsert replaces the budget configuration for a period. Per-category
// limits are replaced wholesale so removed categories do not linger.
func (r *BudgetRepository) Upsert(ctx context.Context, budget *domain.Budget) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "upsert", "budgets", start, err) }()

	return r.retrier.Retry(ctx, func() error {
		return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, upsertBudgetSQL,
				budget.Period,
				decimalToNumeric(budget.Global),
				budget.AlertWindowDays,
			)
			if err != nil {
				return err
			}

			_, err = tx.Exec(ctx, `DELETE FROM budget_categories WHERE period = $1`, budget.Period)
			if err != nil {
				return err
			}

			for id, limit := range budget.PerCategory {
				_, err := tx.Exec(ctx,
					`INSERT INTO budget_categories (period, category_id, category_limit) VALUES ($1, $2, $3)`,
					budget.Period, id, decimalToNumeric(limit))
				if err != nil {
					return err
				}
			}

			return nil
		})
	})
}

// GetByPeriod retrieves the budget for a period.
func (r *BudgetRepository) GetByPeriod(ctx context.Context, period string) (_ *domain.Budget, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "get", "budgets", start, err) }()

	budget := &domain.Budget{
		Period:      period,
		PerCategory: make(map[string]decimal.Decimal),
	}

	var global pgtype.Numeric
	err = r.pool.QueryRow(ctx,
		`SELECT global_limit, alert_window_days FROM budgets WHERE period = $1`,
		period).Scan(&global, &budget.AlertWindowDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBudgetNotFound
		}

		return nil, err
	}
	budget.Global = numericToDecimal(global)

	rows, err := r.pool.Query(ctx,
		`SELECT category_id, category_limit FROM budget_categories WHERE period = $1`,
		period)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			categoryID string
			limit      pgtype.Numeric
		)
		if err := rows.Scan(&categoryID, &limit); err != nil {
			return nil, err
		}
		budget.PerCategory[categoryID] = numericToDecimal(limit)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return budget, nil
}
