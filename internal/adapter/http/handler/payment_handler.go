package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/domain"
)

// PaymentService defines the behavior needed by PaymentHandler.
type PaymentService interface {
	GetContribution(ctx context.Context, id string) (*domain.Contribution, error)
	RecordManualPayment(ctx context.Context, contributionID string, amount int64) (*domain.Contribution, error)
	SetPaid(ctx context.Context, contributionID string, amount int64) (*domain.Contribution, error)
}

// PaymentHandler handles contribution payment HTTP requests.
type PaymentHandler struct {
	ledgerUC PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(ledgerUC PaymentService) *PaymentHandler {
	return &PaymentHandler{ledgerUC: ledgerUC}
}

// Get retrieves a contribution by ID.
func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contribution ID", "")
		return
	}

	contribution, err := h.ledgerUC.GetContribution(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get contribution", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ContributionFromDomain(contribution))
}

// RecordPayment records a manual payment against a contribution.
func (h *PaymentHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contribution ID", "")
		return
	}

	var req dto.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contribution, err := h.ledgerUC.RecordManualPayment(r.Context(), id, req.Amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to record payment", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ContributionFromDomain(contribution))
}

// SetPaid overrides a contribution's paid amount to an absolute value.
func (h *PaymentHandler) SetPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing contribution ID", "")
		return
	}

	var req dto.SetPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	contribution, err := h.ledgerUC.SetPaid(r.Context(), id, req.Amount)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to set paid amount", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ContributionFromDomain(contribution))
}
