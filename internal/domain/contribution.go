package domain

import "time"

// Contribution is one participant's due/paid record against one expense.
// AmountPaid only grows through automated reconciliation and never exceeds
// AmountDue from it; manual overrides are separate audited actions.
type Contribution struct {
	ID            string
	ExpenseID     string
	ParticipantID string
	AmountDue     int64
	AmountPaid    int64
	OrderID       string
	Method        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Settled reports whether the due amount is fully covered.
func (c *Contribution) Settled() bool {
	return c.AmountPaid >= c.AmountDue
}

// Remaining returns the amount still owed. Zero once settled.
func (c *Contribution) Remaining() int64 {
	if c.Settled() {
		return 0
	}

	return c.AmountDue - c.AmountPaid
}

// ValidateCredit checks whether amount can be credited.
func (c *Contribution) ValidateCredit(amount int64) error {
	if amount < 0 {
		return ErrInvalidAmount
	}

	return nil
}
