package usecase

import (
	"context"
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/infrastructure/metrics"
)

// GoalUseCase manages savings goals. Deposits are append-only; the
// completion flag is set by alert evaluation, not here, so completion is
// announced exactly once.
type GoalUseCase struct {
	goalRepo GoalRepository
	idGen    IDGenerator
	metrics  *metrics.Metrics
}

// NewGoalUseCase creates a new GoalUseCase. m may be nil.
func NewGoalUseCase(goalRepo GoalRepository, idGen IDGenerator, m *metrics.Metrics) *GoalUseCase {
	return &GoalUseCase{
		goalRepo: goalRepo,
		idGen:    idGen,
		metrics:  m,
	}
}

// CreateGoalInput represents input for creating a goal.
type CreateGoalInput struct {
	Name         string
	TargetAmount string
	Deadline     time.Time
}

// CreateGoal creates a new goal.
func (uc *GoalUseCase) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	target, err := domain.ParseAmount(input.TargetAmount)
	if err != nil {
		return nil, err
	}

	goal := &domain.Goal{
		ID:           uc.idGen.Generate(),
		Name:         input.Name,
		TargetAmount: target,
		Deadline:     input.Deadline.UTC(),
		CreatedAt:    time.Now().UTC(),
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Create(ctx, goal); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.GoalsCreated.Inc()
	}

	return goal, nil
}

// GetGoal retrieves a goal by ID.
func (uc *GoalUseCase) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	return uc.goalRepo.GetByID(ctx, id)
}

// ListGoals lists all goals.
func (uc *GoalUseCase) ListGoals(ctx context.Context) ([]*domain.Goal, error) {
	return uc.goalRepo.List(ctx)
}

// RecordDepositInput represents input for recording a deposit.
type RecordDepositInput struct {
	GoalID string
	Amount string
	Date   time.Time
}

// RecordDeposit appends a deposit to a goal and returns the updated
// goal. It does not flip the completion flag; a later alert evaluation
// notices the reached target and announces it once.
func (uc *GoalUseCase) RecordDeposit(ctx context.Context, input RecordDepositInput) (*domain.Goal, error) {
	amount, err := domain.ParseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	if _, err := uc.goalRepo.GetByID(ctx, input.GoalID); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	deposit := &domain.Deposit{
		ID:     uc.idGen.Generate(),
		GoalID: input.GoalID,
		Amount: amount,
		Date:   date.UTC(),
	}
	if err := uc.goalRepo.AddDeposit(ctx, deposit); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DepositsRecorded.Inc()
	}

	return uc.goalRepo.GetByID(ctx, input.GoalID)
}
