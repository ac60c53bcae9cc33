package dto

import (
	"github.com/iho/tripledger/internal/usecase"
)

// CreateExpenseRequest represents a request to create an expense.
type CreateExpenseRequest struct {
	PlanID         string   `json:"plan_id"`
	Name           string   `json:"name"`
	Category       string   `json:"category,omitempty"`
	Total          int64    `json:"total"`
	ParticipantIDs []string `json:"participant_ids"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput() usecase.CreateExpenseInput {
	return usecase.CreateExpenseInput{
		PlanID:         r.PlanID,
		Name:           r.Name,
		Category:       r.Category,
		Total:          r.Total,
		ParticipantIDs: r.ParticipantIDs,
	}
}

// UpdateExpenseTotalRequest represents a request to change an expense total.
type UpdateExpenseTotalRequest struct {
	Total int64 `json:"total"`
}

// CreateParticipantRequest represents a request to add a plan member.
type CreateParticipantRequest struct {
	PlanID      string `json:"plan_id"`
	DisplayName string `json:"display_name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateParticipantRequest) ToUseCaseInput() usecase.CreateParticipantInput {
	return usecase.CreateParticipantInput{
		PlanID:      r.PlanID,
		DisplayName: r.DisplayName,
	}
}

// RecordPaymentRequest represents a manual payment against a contribution.
type RecordPaymentRequest struct {
	Amount int64 `json:"amount"`
}

// SetPaidRequest represents an absolute paid-amount override.
type SetPaidRequest struct {
	Amount int64 `json:"amount"`
}

// CheckoutRequest represents a request to initiate a gateway checkout.
type CheckoutRequest struct {
	ParticipantID   string   `json:"participant_id"`
	ContributionIDs []string `json:"contribution_ids"`
}

// ToUseCaseInput converts to use case input.
func (r *CheckoutRequest) ToUseCaseInput() usecase.InitiateCheckoutInput {
	return usecase.InitiateCheckoutInput{
		ParticipantID:   r.ParticipantID,
		ContributionIDs: r.ContributionIDs,
	}
}

// GatewayNotificationRequest is the webhook payload posted by the payment
// gateway. Field names follow the gateway's wire format; gross_amount stays
// a string because it participates in the signature.
type GatewayNotificationRequest struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *GatewayNotificationRequest) ToUseCaseInput() usecase.NotificationInput {
	return usecase.NotificationInput{
		OrderID:           r.OrderID,
		StatusCode:        r.StatusCode,
		GrossAmount:       r.GrossAmount,
		Signature:         r.SignatureKey,
		TransactionStatus: r.TransactionStatus,
		FraudStatus:       r.FraudStatus,
	}
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
