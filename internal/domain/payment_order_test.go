package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iho/tripledger/internal/domain"
)

func TestNotificationOutcome(t *testing.T) {
	tests := []struct {
		name        string
		txStatus    string
		fraudStatus string
		expected    domain.OrderStatus
	}{
		{name: "capture with accepted fraud check", txStatus: "capture", fraudStatus: "accept", expected: domain.OrderStatusSuccess},
		{name: "capture under fraud review stays pending", txStatus: "capture", fraudStatus: "challenge", expected: domain.OrderStatusPending},
		{name: "settlement", txStatus: "settlement", fraudStatus: "", expected: domain.OrderStatusSuccess},
		{name: "cancel", txStatus: "cancel", fraudStatus: "", expected: domain.OrderStatusFailed},
		{name: "deny", txStatus: "deny", fraudStatus: "accept", expected: domain.OrderStatusFailed},
		{name: "expire", txStatus: "expire", fraudStatus: "", expected: domain.OrderStatusFailed},
		{name: "pending", txStatus: "pending", fraudStatus: "", expected: domain.OrderStatusPending},
		{name: "unknown status is a no-op", txStatus: "refund", fraudStatus: "", expected: domain.OrderStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NotificationOutcome(tt.txStatus, tt.fraudStatus))
		})
	}
}

func TestOrderTerminal(t *testing.T) {
	assert.False(t, (&domain.PaymentOrder{Status: domain.OrderStatusPending}).Terminal())
	assert.True(t, (&domain.PaymentOrder{Status: domain.OrderStatusSuccess}).Terminal())
	assert.True(t, (&domain.PaymentOrder{Status: domain.OrderStatusFailed}).Terminal())
}

func TestContributionRemaining(t *testing.T) {
	c := &domain.Contribution{AmountDue: 300, AmountPaid: 100}
	assert.Equal(t, int64(200), c.Remaining())
	assert.False(t, c.Settled())

	c.AmountPaid = 300
	assert.Zero(t, c.Remaining())
	assert.True(t, c.Settled())

	// Manual override past the due amount never yields a negative remainder.
	c.AmountPaid = 500
	assert.Zero(t, c.Remaining())
	assert.True(t, c.Settled())
}
