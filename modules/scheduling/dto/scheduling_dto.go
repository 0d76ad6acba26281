package dto

import (
	availabilitydto "syndic-api/modules/availability/dto"
	interventiondto "syndic-api/modules/intervention/dto"
	"syndic-api/modules/scheduling/entity"
)

// ===================== Request DTOs =====================

// SelectedSlot is the slot a manager commits
type SelectedSlot struct {
	Date      string `json:"date" validate:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" validate:"required"` // HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM
}

// SelectSlotRequest commits the intervention's appointment
type SelectSlotRequest struct {
	SelectedSlot SelectedSlot `json:"selected_slot"`
	Comment      string       `json:"comment"`
}

// ===================== Response DTOs =====================

// ParticipantWindowsResponse carries one tracked participant and their
// submitted windows in submission order
type ParticipantWindowsResponse struct {
	UserID           string                           `json:"user_id"`
	DisplayName      string                           `json:"display_name"`
	Role             string                           `json:"role"`
	ProviderCategory string                           `json:"provider_category,omitempty"`
	Windows          []availabilitydto.WindowResponse `json:"windows"`
}

// AvailabilityDataResponse aggregates everything a caller needs to drive the
// scheduling workflow, including the action-gating flags
type AvailabilityDataResponse struct {
	Intervention      *interventiondto.InterventionResponse `json:"intervention"`
	MyAvailabilities  []availabilitydto.WindowResponse      `json:"my_availabilities"`
	Participants      []ParticipantWindowsResponse          `json:"participants"`
	Matching          *entity.MatchingResult                `json:"matching,omitempty"`
	Stats             entity.MatchingStats                  `json:"stats"`
	ShouldRunMatching bool                                  `json:"should_run_matching"`
	CanSelectSlot     bool                                  `json:"can_select_slot"`
	NextAction        string                                `json:"next_action"`
}

// RunMatchingResponse returns the freshly computed result
type RunMatchingResponse struct {
	InterventionID string                 `json:"intervention_id"`
	MatchVersion   int                    `json:"match_version"`
	Result         *entity.MatchingResult `json:"result"`
}

// SelectSlotResponse confirms the committed appointment
type SelectSlotResponse struct {
	InterventionID string       `json:"intervention_id"`
	Status         string       `json:"status"`
	SelectedSlot   SelectedSlot `json:"selected_slot"`
	Comment        string       `json:"comment,omitempty"`
}
