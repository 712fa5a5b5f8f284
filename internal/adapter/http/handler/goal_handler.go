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

// GoalService defines the behavior needed by GoalHandler.
type GoalService interface {
	CreateGoal(ctx context.Context, input usecase.CreateGoalInput) (*domain.Goal, error)
	GetGoal(ctx context.Context, id string) (*domain.Goal, error)
	ListGoals(ctx context.Context) ([]*domain.Goal, error)
	RecordDeposit(ctx context.Context, input usecase.RecordDepositInput) (*domain.Goal, error)
}

// GoalHandler handles goal-related HTTP requests.
type GoalHandler struct {
	goalUC GoalService
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalUC GoalService) *GoalHandler {
	return &GoalHandler{goalUC: goalUC}
}

// Create creates a new goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.CreateGoal(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create goal", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(goal))
}

// Get retrieves a goal by ID.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing goal ID", "")
		return
	}

	goal, err := h.goalUC.GetGoal(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get goal", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// List lists all goals.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	goals, err := h.goalUC.ListGoals(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list goals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(goals))
}

// Deposit records a deposit towards a goal.
func (h *GoalHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing goal ID", "")
		return
	}

	var req dto.RecordDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.RecordDeposit(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record deposit", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(goal))
}
