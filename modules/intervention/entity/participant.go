package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of participant roles. Authorization for the
// manager-only actions (running the matching, committing a slot) goes through
// CanManage and nowhere else.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleManager  Role = "manager"
	RoleProvider Role = "provider"
)

func (r Role) Valid() bool {
	switch r {
	case RoleTenant, RoleManager, RoleProvider:
		return true
	}
	return false
}

// CanManage reports whether the role may trigger matching, commit slots, or
// edit other participants' availabilities.
func (r Role) CanManage() bool {
	return r == RoleManager
}

// Participant is one tracked participant of an intervention. Tracked means
// expected to attend, whether or not availabilities have been submitted yet.
type Participant struct {
	InterventionID   uuid.UUID `db:"intervention_id" json:"intervention_id"`
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName      string    `db:"display_name" json:"display_name"`
	Role             Role      `db:"role" json:"role"`
	ProviderCategory *string   `db:"provider_category" json:"provider_category,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}
