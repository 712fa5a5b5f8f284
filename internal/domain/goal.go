package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Deposit is one contribution towards a goal. Deposits are append-only.
type Deposit struct {
	ID     string
	GoalID string
	Amount decimal.Decimal
	Date   time.Time
}

// Goal is a savings goal with a target amount and a deadline. Completed
// is monotonic: it is set once the accumulated deposits reach the target
// and never reset, so completion is announced exactly once.
type Goal struct {
	ID           string
	Name         string
	TargetAmount decimal.Decimal
	Deadline     time.Time
	Deposits     []Deposit
	Completed    bool
	CreatedAt    time.Time
}

// CurrentAmount is the sum of all deposits.
func (g *Goal) CurrentAmount() decimal.Decimal {
	sum := decimal.Zero
	for _, d := range g.Deposits {
		sum = sum.Add(d.Amount)
	}
	return sum
}

// ReachedTarget reports whether the accumulated deposits cover the target.
func (g *Goal) ReachedTarget() bool {
	return g.CurrentAmount().GreaterThanOrEqual(g.TargetAmount)
}

// Validate checks the goal definition.
func (g *Goal) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("%w: goal name is required", ErrValidation)
	}
	if g.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: target amount must be greater than zero", ErrValidation)
	}
	if g.Deadline.IsZero() {
		return fmt.Errorf("%w: goal deadline is required", ErrValidation)
	}
	return nil
}
