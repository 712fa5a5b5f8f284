package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/usecase"
)

// InstallmentResponse represents one installment in API responses.
type InstallmentResponse struct {
	SequenceNumber int             `json:"sequenceNumber"`
	Amount         decimal.Decimal `json:"amount"`
	DueDate        time.Time       `json:"dueDate"`
	Paid           bool            `json:"paid"`
	PaidDate       *time.Time      `json:"paidDate,omitempty"`
}

// ObligationResponse represents an obligation in API responses.
type ObligationResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	CategoryID  string          `json:"categoryId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	PaymentMode string          `json:"paymentMode"`

	EffectiveDate *time.Time `json:"effectiveDate,omitempty"`
	Paid          bool       `json:"paid"`
	PaidDate      *time.Time `json:"paidDate,omitempty"`

	Cycle        *BillingCycleRequest  `json:"cycle,omitempty"`
	Installments []InstallmentResponse `json:"installments,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// ObligationFromDomain converts a domain obligation to a response.
func ObligationFromDomain(o *domain.ObligationRecord) *ObligationResponse {
	resp := &ObligationResponse{
		ID:            o.ID,
		Description:   o.Description,
		CategoryID:    o.CategoryID,
		TotalAmount:   o.TotalAmount,
		PaymentMode:   string(o.PaymentMode),
		EffectiveDate: o.EffectiveDate,
		Paid:          o.Paid,
		PaidDate:      o.PaidDate,
		CreatedAt:     o.CreatedAt,
	}
	if o.Cycle != nil {
		resp.Cycle = &BillingCycleRequest{
			ClosingDay: o.Cycle.ClosingDay,
			DueDay:     o.Cycle.DueDay,
		}
	}
	for _, ins := range o.Installments {
		resp.Installments = append(resp.Installments, InstallmentResponse{
			SequenceNumber: ins.SequenceNumber,
			Amount:         ins.Amount,
			DueDate:        ins.DueDate,
			Paid:           ins.Paid,
			PaidDate:       ins.PaidDate,
		})
	}
	return resp
}

// ObligationsFromDomain converts domain obligations to responses.
func ObligationsFromDomain(records []*domain.ObligationRecord) []*ObligationResponse {
	result := make([]*ObligationResponse, len(records))
	for i, o := range records {
		result[i] = ObligationFromDomain(o)
	}
	return result
}

// ListObligationsResponse wraps an obligation listing.
type ListObligationsResponse struct {
	Obligations []*ObligationResponse `json:"obligations"`
	Total       int64                 `json:"total"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	Period          string                     `json:"period"`
	Global          decimal.Decimal            `json:"global"`
	PerCategory     map[string]decimal.Decimal `json:"perCategory"`
	AlertWindowDays int                        `json:"alertWindowDays"`
}

// BudgetFromDomain converts a domain budget to a response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	return &BudgetResponse{
		Period:          b.Period,
		Global:          b.Global,
		PerCategory:     b.PerCategory,
		AlertWindowDays: b.AlertWindowDays,
	}
}

// GoalResponse represents a goal in API responses.
type GoalResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	TargetAmount  decimal.Decimal   `json:"targetAmount"`
	CurrentAmount decimal.Decimal   `json:"currentAmount"`
	Deadline      time.Time         `json:"deadline"`
	Completed     bool              `json:"completed"`
	Deposits      []DepositResponse `json:"deposits"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// DepositResponse represents one deposit in API responses.
type DepositResponse struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// GoalFromDomain converts a domain goal to a response.
func GoalFromDomain(g *domain.Goal) *GoalResponse {
	resp := &GoalResponse{
		ID:            g.ID,
		Name:          g.Name,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount(),
		Deadline:      g.Deadline,
		Completed:     g.Completed,
		Deposits:      make([]DepositResponse, 0, len(g.Deposits)),
		CreatedAt:     g.CreatedAt,
	}
	for _, d := range g.Deposits {
		resp.Deposits = append(resp.Deposits, DepositResponse{
			ID:     d.ID,
			Amount: d.Amount,
			Date:   d.Date,
		})
	}
	return resp
}

// GoalsFromDomain converts domain goals to responses.
func GoalsFromDomain(goals []*domain.Goal) []*GoalResponse {
	result := make([]*GoalResponse, len(goals))
	for i, g := range goals {
		result[i] = GoalFromDomain(g)
	}
	return result
}

// AlertsResponse wraps an alert evaluation.
type AlertsResponse struct {
	Alerts     []domain.Alert `json:"alerts"`
	Incomplete bool           `json:"incomplete"`
	AsOf       time.Time      `json:"asOf"`
}

// AlertsFromResult converts an evaluation result to a response.
func AlertsFromResult(res *usecase.EvaluateResult) *AlertsResponse {
	alerts := res.Alerts
	if alerts == nil {
		alerts = []domain.Alert{}
	}
	return &AlertsResponse{
		Alerts:     alerts,
		Incomplete: res.Incomplete,
		AsOf:       res.AsOf,
	}
}

// ForecastResponse represents a spending forecast in API responses.
type ForecastResponse struct {
	Historical []decimal.Decimal `json:"historical"`
	Predicted  []decimal.Decimal `json:"predicted"`
	Slope      float64           `json:"slope"`
	Intercept  float64           `json:"intercept"`
	Trend      string            `json:"trend"`
}

// ForecastFromDomain converts a domain forecast to a response.
func ForecastFromDomain(f *domain.Forecast) *ForecastResponse {
	return &ForecastResponse{
		Historical: f.Historical,
		Predicted:  f.Predicted[:],
		Slope:      f.Slope,
		Intercept:  f.Intercept,
		Trend:      string(f.Trend),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
