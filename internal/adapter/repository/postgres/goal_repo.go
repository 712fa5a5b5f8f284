package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// GoalRepository implements usecase.GoalRepository.
type GoalRepository struct {
	pool    *pgxpool.Pool
	metrics *metrics.Metrics
}

// NewGoalRepository creates a new GoalRepository. m may be nil.
func NewGoalRepository(pool *pgxpool.Pool, m *metrics.Metrics) *GoalRepository {
	return &GoalRepository{pool: pool, metrics: m}
}

// Create creates a new goal.
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "create", "goals", start, err) }()

	_, err = r.pool.Exec(ctx,
		`INSERT INTO goals (id, name, target_amount, deadline, completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		goal.ID,
		goal.Name,
		decimalToNumeric(goal.TargetAmount),
		timeToPgDate(goal.Deadline),
		goal.Completed,
		timeToPgTimestamptz(goal.CreatedAt),
	)

	return err
}

const selectGoalSQL = `
SELECT id, name, target_amount, deadline, completed, created_at
FROM goals`

// GetByID retrieves a goal by ID, deposits included.
func (r *GoalRepository) GetByID(ctx context.Context, id string) (_ *domain.Goal, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "get", "goals", start, err) }()

	row := r.pool.QueryRow(ctx, selectGoalSQL+" WHERE id = $1", id)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGoalNotFound
		}

		return nil, err
	}

	if err := r.loadDeposits(ctx, []*domain.Goal{goal}); err != nil {
		return nil, err
	}

	return goal, nil
}

// List retrieves all goals, deposits included.
func (r *GoalRepository) List(ctx context.Context) (_ []*domain.Goal, err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "list", "goals", start, err) }()

	rows, err := r.pool.Query(ctx, selectGoalSQL+" ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []*domain.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadDeposits(ctx, goals); err != nil {
		return nil, err
	}

	return goals, nil
}

// AddDeposit appends a deposit to a goal.
func (r *GoalRepository) AddDeposit(ctx context.Context, deposit *domain.Deposit) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "insert", "deposits", start, err) }()

	tag, err := r.pool.Exec(ctx,
		`INSERT INTO deposits (id, goal_id, amount, deposited_on)
		 SELECT $1, $2, $3, $4 WHERE EXISTS (SELECT 1 FROM goals WHERE id = $2)`,
		deposit.ID,
		deposit.GoalID,
		decimalToNumeric(deposit.Amount),
		timeToPgDate(deposit.Date),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

// MarkCompleted sets the monotonic completion flag.
func (r *GoalRepository) MarkCompleted(ctx context.Context, id string) (err error) {
	start := time.Now()
	defer func() { observe(r.metrics, "mark_completed", "goals", start, err) }()

	tag, err := r.pool.Exec(ctx, `UPDATE goals SET completed = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrGoalNotFound
	}

	return nil
}

const selectDepositsSQL = `
SELECT id, goal_id, amount, deposited_on
FROM deposits
WHERE goal_id = ANY($1)
ORDER BY deposited_on, id`

func (r *GoalRepository) loadDeposits(ctx context.Context, goals []*domain.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	byID := make(map[string]*domain.Goal, len(goals))
	ids := make([]string, 0, len(goals))
	for _, g := range goals {
		byID[g.ID] = g
		ids = append(ids, g.ID)
	}

	rows, err := r.pool.Query(ctx, selectDepositsSQL, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			dep    domain.Deposit
			amount pgtype.Numeric
			date   pgtype.Date
		)
		if err := rows.Scan(&dep.ID, &dep.GoalID, &amount, &date); err != nil {
			return err
		}
		dep.Amount = numericToDecimal(amount)
		dep.Date = date.Time

		if g, ok := byID[dep.GoalID]; ok {
			g.Deposits = append(g.Deposits, dep)
		}
	}

	return rows.Err()
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var (
		goal         domain.Goal
		targetAmount pgtype.Numeric
		deadline     pgtype.Date
		createdAt    pgtype.Timestamptz
	)

	err := row.Scan(&goal.ID, &goal.Name, &targetAmount, &deadline, &goal.Completed, &createdAt)
	if err != nil {
		return nil, err
	}

	goal.TargetAmount = numericToDecimal(targetAmount)
	goal.Deadline = deadline.Time
	goal.CreatedAt = createdAt.Time

	return &goal, nil
}
