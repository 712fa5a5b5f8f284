package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finwatch/finwatch/internal/adapter/http/dto"
	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/usecase"
)

// BudgetService defines the behavior needed by BudgetHandler.
type BudgetService interface {
	SetBudget(ctx context.Context, input usecase.SetBudgetInput) (*domain.Budget, error)
	GetBudget(ctx context.Context, period string) (*domain.Budget, error)
}

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC BudgetService
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// Set creates or replaces the budget for a period.
func (h *BudgetHandler) Set(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	var req dto.SetBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.SetBudget(r.Context(), req.ToUseCaseInput(period))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Get retrieves the budget for a period.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	budget, err := h.budgetUC.GetBudget(r.Context(), period)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get budget", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}
