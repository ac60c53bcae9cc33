package domain

import "time"

// OrderStatus is the reconciliation state of a payment order.
// pending -> {success, failed}; success and failed are terminal.
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusSuccess OrderStatus = "success"
	OrderStatusFailed  OrderStatus = "failed"
)

// Gateway transaction statuses understood by the reconciler.
const (
	TxStatusCapture    = "capture"
	TxStatusSettlement = "settlement"
	TxStatusPending    = "pending"
	TxStatusCancel     = "cancel"
	TxStatusDeny       = "deny"
	TxStatusExpire     = "expire"

	FraudStatusAccept = "accept"
)

// PaymentOrder links one gateway order id to the contributions it was
// created to settle. The service fee is computed once at checkout;
// reconciliation subtracts it from the notified gross amount instead of
// recomputing it, so a manipulated notification cannot shift the fee.
type PaymentOrder struct {
	ID              string
	PlanID          string
	ParticipantID   string
	ContributionIDs []string
	NetAmount       int64
	ServiceFee      int64
	GrossAmount     int64
	Overpayment     int64
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Terminal reports whether the order reached a final state. Notifications
// for terminal orders are acknowledged without any ledger mutation.
func (o *PaymentOrder) Terminal() bool {
	return o.Status == OrderStatusSuccess || o.Status == OrderStatusFailed
}

// NotificationOutcome maps a gateway transaction status (and fraud status)
// to the order status it should produce. Unrecognized statuses leave the
// order pending so a later retry can still land.
func NotificationOutcome(transactionStatus, fraudStatus string) OrderStatus {
	switch transactionStatus {
	case TxStatusCapture:
		if fraudStatus == FraudStatusAccept {
			return OrderStatusSuccess
		}

		return OrderStatusPending
	case TxStatusSettlement:
		return OrderStatusSuccess
	case TxStatusCancel, TxStatusDeny, TxStatusExpire:
		return OrderStatusFailed
	default:
		return OrderStatusPending
	}
}
