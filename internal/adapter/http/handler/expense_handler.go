package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	CreateExpense(ctx context.Context, input usecase.CreateExpenseInput) (*domain.Expense, []*domain.Contribution, error)
	GetExpense(ctx context.Context, id string) (*domain.Expense, []*domain.Contribution, error)
	UpdateExpenseTotal(ctx context.Context, expenseID string, total int64) (*domain.Expense, error)
	DeleteExpense(ctx context.Context, expenseID string) error
}

// ExpenseHandler handles expense-related HTTP requests.
type ExpenseHandler struct {
	splitUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(splitUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{splitUC: splitUC}
}

// Create creates a new expense and splits it across its roster.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, contributions, err := h.splitUC.CreateExpense(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to create expense", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseWithContributionsResponse{
		Expense:       dto.ExpenseFromDomain(expense),
		Contributions: dto.ContributionsFromDomain(contributions),
	})
}

// Get retrieves an expense with its contributions.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	expense, contributions, err := h.splitUC.GetExpense(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get expense", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseWithContributionsResponse{
		Expense:       dto.ExpenseFromDomain(expense),
		Contributions: dto.ContributionsFromDomain(contributions),
	})
}

// UpdateTotal changes an expense total and re-splits all dues.
func (h *ExpenseHandler) UpdateTotal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	var req dto.UpdateExpenseTotalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.splitUC.UpdateExpenseTotal(r.Context(), id, req.Total)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to update expense total", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense and its contributions.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing expense ID", "")
		return
	}

	if err := h.splitUC.DeleteExpense(r.Context(), id); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete expense", err.Error())

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
