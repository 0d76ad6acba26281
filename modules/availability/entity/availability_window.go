package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is one contiguous free-time interval a participant
// declares for one calendar date. Date is YYYY-MM-DD and times are HH:MM
// wall-clock strings; a window never spans midnight.
//
// Position preserves submission order: windows are returned the way the
// participant submitted them, never sorted.
type AvailabilityWindow struct {
	ID             uuid.UUID `db:"id" json:"id"`
	InterventionID uuid.UUID `db:"intervention_id" json:"intervention_id"`
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Date           string    `db:"date" json:"date"`
	StartTime      string    `db:"start_time" json:"start_time"`
	EndTime        string    `db:"end_time" json:"end_time"`
	Position       int       `db:"position" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}
