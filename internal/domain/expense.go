package domain

import "time"

// Expense represents one shared cost inside a plan. Its total is immutable
// once contributions exist, except through an explicit update that re-splits.
type Expense struct {
	ID        string
	PlanID    string
	Name      string
	Total     int64
	Category  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates expense fields.
func (e *Expense) Validate() error {
	if e.Total < 0 {
		return ErrInvalidInput
	}

	if e.PlanID == "" {
		return ErrInvalidInput
	}

	return nil
}
