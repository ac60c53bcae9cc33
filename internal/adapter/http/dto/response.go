package dto

import (
	"time"

	"github.com/iho/tripledger/internal/domain"
	"github.com/iho/tripledger/internal/usecase"
)

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID        string    `json:"id"`
	PlanID    string    `json:"plan_id"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Total     int64     `json:"total"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExpenseFromDomain converts a domain expense to a response.
func ExpenseFromDomain(e *domain.Expense) *ExpenseResponse {
	return &ExpenseResponse{
		ID:        e.ID,
		PlanID:    e.PlanID,
		Name:      e.Name,
		Category:  e.Category,
		Total:     e.Total,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ContributionResponse represents a contribution in API responses.
type ContributionResponse struct {
	ID            string    `json:"id"`
	ExpenseID     string    `json:"expense_id"`
	ParticipantID string    `json:"participant_id"`
	AmountDue     int64     `json:"amount_due"`
	AmountPaid    int64     `json:"amount_paid"`
	Remaining     int64     `json:"remaining"`
	Settled       bool      `json:"settled"`
	OrderID       string    `json:"order_id,omitempty"`
	Method        string    `json:"method,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ContributionFromDomain converts a domain contribution to a response.
func ContributionFromDomain(c *domain.Contribution) *ContributionResponse {
	return &ContributionResponse{
		ID:            c.ID,
		ExpenseID:     c.ExpenseID,
		ParticipantID: c.ParticipantID,
		AmountDue:     c.AmountDue,
		AmountPaid:    c.AmountPaid,
		Remaining:     c.Remaining(),
		Settled:       c.Settled(),
		OrderID:       c.OrderID,
		Method:        c.Method,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ContributionsFromDomain converts domain contributions to responses.
func ContributionsFromDomain(contributions []*domain.Contribution) []*ContributionResponse {
	result := make([]*ContributionResponse, len(contributions))
	for i, c := range contributions {
		result[i] = ContributionFromDomain(c)
	}
	return result
}

// ExpenseWithContributionsResponse bundles an expense with its split.
type ExpenseWithContributionsResponse struct {
	Expense       *ExpenseResponse        `json:"expense"`
	Contributions []*ContributionResponse `json:"contributions"`
}

// ParticipantResponse represents a participant in API responses.
type ParticipantResponse struct {
	ID          string    `json:"id"`
	PlanID      string    `json:"plan_id"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParticipantFromDomain converts a domain participant to a response.
func ParticipantFromDomain(p *domain.Participant) *ParticipantResponse {
	return &ParticipantResponse{
		ID:          p.ID,
		PlanID:      p.PlanID,
		DisplayName: p.DisplayName,
		CreatedAt:   p.CreatedAt,
	}
}

// PaymentEventResponse represents an audit event in API responses.
type PaymentEventResponse struct {
	ID             string    `json:"id"`
	ContributionID string    `json:"contribution_id"`
	ExpenseID      string    `json:"expense_id"`
	ParticipantID  string    `json:"participant_id"`
	Kind           string    `json:"kind"`
	PreviousAmount int64     `json:"previous_amount"`
	NewAmount      int64     `json:"new_amount"`
	Delta          int64     `json:"delta"`
	Method         string    `json:"method"`
	OrderID        string    `json:"order_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaymentEventFromDomain converts a domain event to a response.
func PaymentEventFromDomain(e *domain.PaymentEvent) *PaymentEventResponse {
	return &PaymentEventResponse{
		ID:             e.ID,
		ContributionID: e.ContributionID,
		ExpenseID:      e.ExpenseID,
		ParticipantID:  e.ParticipantID,
		Kind:           string(e.Kind),
		PreviousAmount: e.PreviousAmount,
		NewAmount:      e.NewAmount,
		Delta:          e.Delta,
		Method:         e.Method,
		OrderID:        e.OrderID,
		CreatedAt:      e.CreatedAt,
	}
}

// PaymentEventsFromDomain converts domain events to responses.
func PaymentEventsFromDomain(events []*domain.PaymentEvent) []*PaymentEventResponse {
	result := make([]*PaymentEventResponse, len(events))
	for i, e := range events {
		result[i] = PaymentEventFromDomain(e)
	}
	return result
}

// OrderResponse represents a payment order in API responses.
type OrderResponse struct {
	ID              string    `json:"id"`
	PlanID          string    `json:"plan_id"`
	ParticipantID   string    `json:"participant_id"`
	ContributionIDs []string  `json:"contribution_ids"`
	NetAmount       int64     `json:"net_amount"`
	ServiceFee      int64     `json:"service_fee"`
	GrossAmount     int64     `json:"gross_amount"`
	Overpayment     int64     `json:"overpayment,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// OrderFromDomain converts a domain order to a response.
func OrderFromDomain(o *domain.PaymentOrder) *OrderResponse {
	return &OrderResponse{
		ID:              o.ID,
		PlanID:          o.PlanID,
		ParticipantID:   o.ParticipantID,
		ContributionIDs: o.ContributionIDs,
		NetAmount:       o.NetAmount,
		ServiceFee:      o.ServiceFee,
		GrossAmount:     o.GrossAmount,
		Overpayment:     o.Overpayment,
		Status:          string(o.Status),
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// NotificationResponse acknowledges a gateway webhook.
type NotificationResponse struct {
	Status      string `json:"status"`
	OrderStatus string `json:"order_status"`
	Duplicate   bool   `json:"duplicate,omitempty"`
	Credited    int64  `json:"credited,omitempty"`
	Overpayment int64  `json:"overpayment,omitempty"`
}

// NotificationFromResult converts a reconciliation result to a response.
func NotificationFromResult(res *usecase.NotificationResult) *NotificationResponse {
	return &NotificationResponse{
		Status:      "ok",
		OrderStatus: string(res.Status),
		Duplicate:   res.Duplicate,
		Credited:    res.Credited,
		Overpayment: res.Overpayment,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
