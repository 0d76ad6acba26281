package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// NotificationKind identifies what a notification is about.
type NotificationKind string

const (
	KindSlotSelected NotificationKind = "slot_selected"
)

// Notification is one pending message for a participant. Delivery (email,
// push) is an out-of-scope channel reading this table; the scheduling flow
// only enqueues and persists, never awaits delivery.
type Notification struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	UserID         uuid.UUID        `db:"user_id" json:"user_id"`
	InterventionID uuid.UUID        `db:"intervention_id" json:"intervention_id"`
	Kind           NotificationKind `db:"kind" json:"kind"`
	Title          string           `db:"title" json:"title"`
	Message        string           `db:"message" json:"message"`
	Data           JSONB            `db:"data" json:"data"`
	IsRead         bool             `db:"is_read" json:"is_read"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
}

type JSONB map[string]interface{}

func (a JSONB) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *JSONB) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &a)
}
