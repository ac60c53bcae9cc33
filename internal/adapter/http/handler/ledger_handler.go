package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	ListEvents(ctx context.Context, expenseID string, limit, offset int) ([]*domain.PaymentEvent, error)
	GetOutstanding(ctx context.Context, expenseID string) ([]*domain.Contribution, error)
	Snapshot(ctx context.Context, planID string) (*usecase.PlanSnapshot, error)
}

// LedgerHandler serves read views of the ledger: audit events,
// outstanding contributions and per-plan snapshots.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// ListEvents lists an expense's audit events.
func (h *LedgerHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 100)
	offset := parseIntQuery(r, "offset", 0)

	events, err := h.ledgerUC.ListEvents(r.Context(), expenseID, limit, offset)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list events", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.PaymentEventsFromDomain(events))
}

// ListOutstanding lists an expense's unsettled contributions.
func (h *LedgerHandler) ListOutstanding(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "id")
	if expenseID == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	contributions, err := h.ledgerUC.GetOutstanding(r.Context(), expenseID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list outstanding contributions", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ContributionsFromDomain(contributions))
}

// Snapshot renders a plan's per-participant due/paid aggregate.
func (h *LedgerHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	planID := chi.URLParam(r, "id")
	if planID == "" {
		writeError(w, http.StatusBadRequest, "missing plan ID", "")
		return
	}

	snapshot, err := h.ledgerUC.Snapshot(r.Context(), planID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build snapshot", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
