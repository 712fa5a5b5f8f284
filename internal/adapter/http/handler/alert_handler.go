package handler

import (
	"context"
	"net/http"

	"github.com/finwatch/finwatch/internal/adapter/http/dto"
	"github.com/finwatch/finwatch/internal/usecase"
)

// AlertService defines the behavior needed by AlertHandler.
type AlertService interface {
	Evaluate(ctx context.Context) (*usecase.EvaluateResult, error)
}

// AlertHandler handles alert HTTP requests.
type AlertHandler struct {
	alertUC AlertService
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertUC AlertService) *AlertHandler {
	return &AlertHandler{alertUC: alertUC}
}

// List evaluates and returns the current alert set.
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.alertUC.Evaluate(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to evaluate alerts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AlertsFromResult(result))
}
