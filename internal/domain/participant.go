package domain

import "time"

// Participant is a plan member sharing expenses. Removal triggers a
// re-split of every expense the participant contributes to.
type Participant struct {
	ID          string
	PlanID      string
	DisplayName string
	CreatedAt   time.Time
}
