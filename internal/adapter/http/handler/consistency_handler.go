package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/usecase"
)

// ConsistencyService defines the behavior needed by ConsistencyHandler.
type ConsistencyService interface {
	CheckAll(ctx context.Context) (*usecase.ConsistencyReport, error)
	CheckExpense(ctx context.Context, expenseID string) (*usecase.ExpenseConsistencyResult, error)
}

// ConsistencyHandler serves ledger invariant checks.
type ConsistencyHandler struct {
	consistencyUC ConsistencyService
}

// NewConsistencyHandler creates a new ConsistencyHandler.
func NewConsistencyHandler(consistencyUC ConsistencyService) *ConsistencyHandler {
	return &ConsistencyHandler{consistencyUC: consistencyUC}
}

// CheckAll sweeps every expense and reports discrepancies.
func (h *ConsistencyHandler) CheckAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.consistencyUC.CheckAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to run consistency check", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// CheckExpense verifies one expense's invariants.
func (h *ConsistencyHandler) CheckExpense(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	result, err := h.consistencyUC.CheckExpense(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check expense", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, result)
}
