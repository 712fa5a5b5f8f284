package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/finwatch/finwatch/internal/domain"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	MonthlyReport(ctx context.Context, year int, month time.Month) (*domain.MonthlyAggregate, error)
}

// ReportHandler handles reporting HTTP requests.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Monthly returns the per-category aggregate for one calendar month. The
// aggregate already carries JSON tags; it is returned as is.
func (h *ReportHandler) Monthly(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")
	if err := domain.ValidatePeriodKey(period); err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	t, err := time.Parse("2006-01", period)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	agg, err := h.reportUC.MonthlyReport(r.Context(), t.Year(), t.Month())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build report", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, agg)
}
