package domain

import "time"

// EventKind says which contribution amount an event transitions.
type EventKind string

const (
	EventKindPaid EventKind = "paid"
	EventKindDue  EventKind = "due"
)

// Mutation methods recorded on events.
const (
	MethodGateway = "gateway"
	MethodManual  = "manual"
	MethodResplit = "resplit"
)

// PaymentEvent is an append-only audit record of one state transition on
// one contribution. Events are never mutated or deleted and survive the
// deletion of their contribution, so the history of a removed participant
// stays reconstructable. For paid-kind events of a live contribution the
// deltas sum to its current AmountPaid.
type PaymentEvent struct {
	ID             string
	ContributionID string
	ExpenseID      string
	ParticipantID  string
	Kind           EventKind
	PreviousAmount int64
	NewAmount      int64
	Delta          int64
	Method         string
	OrderID        string
	CreatedAt      time.Time
}
