package handler

import (
	"context"
	"net/http"

	"github.com/finwatch/finwatch/internal/adapter/http/dto"
	"github.com/finwatch/finwatch/internal/domain"
)

// ForecastService defines the behavior needed by ForecastHandler.
type ForecastService interface {
	SpendingForecast(ctx context.Context, historyMonths int) (*domain.Forecast, error)
}

// ForecastHandler handles forecast HTTP requests.
type ForecastHandler struct {
	forecastUC ForecastService
}

// NewForecastHandler creates a new ForecastHandler.
func NewForecastHandler(forecastUC ForecastService) *ForecastHandler {
	return &ForecastHandler{forecastUC: forecastUC}
}

// Get projects spending for the next months.
func (h *ForecastHandler) Get(w http.ResponseWriter, r *http.Request) {
	months := parseIntQuery(r, "months", 0)

	forecast, err := h.forecastUC.SpendingForecast(r.Context(), months)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to build forecast", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ForecastFromDomain(forecast))
}
