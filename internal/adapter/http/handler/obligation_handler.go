package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finwatch/finwatch/internal/adapter/http/dto"
	"github.com/finwatch/finwatch/internal/domain"
	"github.com/finwatch/finwatch/internal/usecase"
)

// ObligationService defines the behavior needed by ObligationHandler.
type ObligationService interface {
	CreatePurchase(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.ObligationRecord, error)
	GetObligation(ctx context.Context, id string) (*domain.ObligationRecord, error)
	ListObligations(ctx context.Context, input usecase.ListObligationsInput) ([]*domain.ObligationRecord, error)
	MarkPaid(ctx context.Context, id string) (*domain.ObligationRecord, error)
	MarkInstallmentPaid(ctx context.Context, id string, sequenceNumber int) (*domain.ObligationRecord, error)
}

// ObligationHandler handles obligation-related HTTP requests.
type ObligationHandler struct {
	obligationUC ObligationService
}

// NewObligationHandler creates a new ObligationHandler.
func NewObligationHandler(obligationUC ObligationService) *ObligationHandler {
	return &ObligationHandler{obligationUC: obligationUC}
}

// Create enters a new purchase.
func (h *ObligationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateObligationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	rec, err := h.obligationUC.CreatePurchase(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create obligation", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ObligationFromDomain(rec))
}

// Get retrieves an obligation by ID.
func (h *ObligationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing obligation ID", "")
		return
	}

	rec, err := h.obligationUC.GetObligation(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get obligation", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ObligationFromDomain(rec))
}

// List lists obligations.
func (h *ObligationHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	records, err := h.obligationUC.ListObligations(r.Context(), usecase.ListObligationsInput{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list obligations", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListObligationsResponse{
		Obligations: dto.ObligationsFromDomain(records),
		Total:       int64(len(records)),
	})
}

// Pay marks a single-payment obligation paid.
func (h *ObligationHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing obligation ID", "")
		return
	}

	rec, err := h.obligationUC.MarkPaid(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to mark obligation paid", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ObligationFromDomain(rec))
}

// PayInstallment marks one installment paid.
func (h *ObligationHandler) PayInstallment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	seq, err := strconv.Atoi(chi.URLParam(r, "seq"))
	if id == "" || err != nil {
		writeError(w, http.StatusBadRequest, "missing obligation ID or installment number", "")
		return
	}

	rec, err := h.obligationUC.MarkInstallmentPaid(r.Context(), id, seq)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to mark installment paid", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ObligationFromDomain(rec))
}
