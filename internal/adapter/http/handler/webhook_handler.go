package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/iho/tripledger/internal/adapter/http/dto"
	"github.com/iho/tripledger/internal/usecase"
)

// NotificationService defines the behavior needed by WebhookHandler.
type NotificationService interface {
	HandleNotification(ctx context.Context, input usecase.NotificationInput) (*usecase.NotificationResult, error)
}

// WebhookHandler receives payment gateway notifications. The gateway
// retries deliveries, so the endpoint must answer 200 for anything it has
// already fully processed.
type WebhookHandler struct {
	reconcileUC NotificationService
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconcileUC NotificationService) *WebhookHandler {
	return &WebhookHandler{reconcileUC: reconcileUC}
}

// Notify applies one gateway notification to the ledger.
func (h *WebhookHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var req dto.GatewayNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification body", err.Error())
		return
	}

	result, err := h.reconcileUC.HandleNotification(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to process notification", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.NotificationFromResult(result))
}
