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

// CheckoutService defines the behavior needed by CheckoutHandler.
type CheckoutService interface {
	InitiateCheckout(ctx context.Context, input usecase.InitiateCheckoutInput) (*domain.PaymentOrder, error)
	GetOrder(ctx context.Context, id string) (*domain.PaymentOrder, error)
}

// CheckoutHandler handles checkout HTTP requests.
type CheckoutHandler struct {
	checkoutUC CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(checkoutUC CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: checkoutUC}
}

// Create initiates a checkout over outstanding contributions.
func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.checkoutUC.InitiateCheckout(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to initiate checkout", err.Error())

		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// GetOrder retrieves a payment order by ID.
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing order ID", "")
		return
	}

	order, err := h.checkoutUC.GetOrder(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get order", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.OrderFromDomain(order))
}
