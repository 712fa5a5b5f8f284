package dto

import (
	"time"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/usecase"
)

// BillingCycleRequest carries a card's closing/due day pair.
type BillingCycleRequest struct {
	ClosingDay int `json:"closingDay"`
	DueDay     int `json:"dueDay"`
}

// CreateObligationRequest represents a request to enter a purchase.
// Amounts travel as strings and are parsed exactly once, server side.
type CreateObligationRequest struct {
	Description string `json:"description"`
	CategoryID  string `json:"categoryId"`
	TotalAmount string `json:"totalAmount"`
	PaymentMode string `json:"paymentMode"`

	// Single only.
	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`

	// Installment only.
	PurchaseDate     *time.Time           `json:"purchaseDate,omitempty"`
	InstallmentCount int                  `json:"installmentCount,omitempty"`
	Cycle            *BillingCycleRequest `json:"cycle,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateObligationRequest) ToUseCaseInput() usecase.CreatePurchaseInput {
	input := usecase.CreatePurchaseInput{
		Description:      r.Description,
		CategoryID:       r.CategoryID,
		TotalAmount:      r.TotalAmount,
		PaymentMode:      r.PaymentMode,
		EffectiveDate:    r.EffectiveDate,
		InstallmentCount: r.InstallmentCount,
	}
	if r.PurchaseDate != nil {
		input.PurchaseDate = *r.PurchaseDate
	}
	if r.Cycle != nil {
		input.Cycle = &domain.BillingCycle{
			ClosingDay: r.Cycle.ClosingDay,
			DueDay:     r.Cycle.DueDay,
		}
	}
	return input
}

// SetBudgetRequest represents a request to configure a period's budget.
type SetBudgetRequest struct {
	Global          string            `json:"global,omitempty"`
	PerCategory     map[string]string `json:"perCategory,omitempty"`
	AlertWindowDays int               `json:"alertWindowDays"`
}

// ToUseCaseInput converts to use case input for the given period.
func (r *SetBudgetRequest) ToUseCaseInput(period string) usecase.SetBudgetInput {
	return usecase.SetBudgetInput{
		Period:          period,
		Global:          r.Global,
		PerCategory:     r.PerCategory,
		AlertWindowDays: r.AlertWindowDays,
	}
}

// CreateGoalRequest represents a request to create a savings goal.
type CreateGoalRequest struct {
	Name         string    `json:"name"`
	TargetAmount string    `json:"targetAmount"`
	Deadline     time.Time `json:"deadline"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGoalRequest) ToUseCaseInput() usecase.CreateGoalInput {
	return usecase.CreateGoalInput{
		Name:         r.Name,
		TargetAmount: r.TargetAmount,
		Deadline:     r.Deadline,
	}
}

// RecordDepositRequest represents a request to record a deposit.
type RecordDepositRequest struct {
	Amount string     `json:"amount"`
	Date   *time.Time `json:"date,omitempty"`
}

// ToUseCaseInput converts to use case input for the given goal.
func (r *RecordDepositRequest) ToUseCaseInput(goalID string) usecase.RecordDepositInput {
	input := usecase.RecordDepositInput{
		GoalID: goalID,
		Amount: r.Amount,
	}
	if r.Date != nil {
		input.Date = *r.Date
	}
	return input
}
