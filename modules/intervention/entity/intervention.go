package entity

import (
	"time"

	"github.com/google/uuid"
)

// Intervention represents a maintenance intervention on a building/lot whose
// appointment is coordinated among tenant, manager and provider.
//
// Dates are timezone-naive calendar dates (YYYY-MM-DD) and times are
// wall-clock HH:MM strings; no timezone arithmetic is performed anywhere in
// the scheduling flow.
type Intervention struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	Reference         string          `db:"reference" json:"reference"`
	Title             string          `db:"title" json:"title"`
	Description       *string         `db:"description" json:"description,omitempty"`
	Building          string          `db:"building" json:"building"`
	Lot               *string         `db:"lot" json:"lot,omitempty"`
	ManagerID         uuid.UUID       `db:"manager_id" json:"manager_id"`
	Status            SchedulingState `db:"status" json:"status"`
	ScheduledDate     *string         `db:"scheduled_date" json:"scheduled_date,omitempty"`
	ScheduledStart    *string         `db:"scheduled_start" json:"scheduled_start,omitempty"`
	ScheduledEnd      *string         `db:"scheduled_end" json:"scheduled_end,omitempty"`
	SchedulingComment *string         `db:"scheduling_comment" json:"scheduling_comment,omitempty"`
	MatchVersion      int             `db:"match_version" json:"match_version"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at" json:"updated_at"`
}

// IsScheduled reports whether the appointment has been committed.
func (i *Intervention) IsScheduled() bool {
	return i.Status == StateScheduled
}
