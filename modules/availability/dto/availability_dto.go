package dto

import (
	"syndic-api/modules/availability/entity"
)

// ===================== Request DTOs =====================

// WindowRequest is one free-time window in a submission
type WindowRequest struct {
	Date      string `json:"date" validate:"required"`       // YYYY-MM-DD
	StartTime string `json:"start_time" validate:"required"` // HH:MM (HH:MM:SS accepted)
	EndTime   string `json:"end_time" validate:"required"`   // HH:MM (HH:MM:SS accepted)
}

// SubmitAvailabilitiesRequest replaces the actor's entire window set
type SubmitAvailabilitiesRequest struct {
	Windows []WindowRequest `json:"windows"`
}

// ===================== Response DTOs =====================

// WindowResponse is one stored window
type WindowResponse struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SubmitAvailabilitiesResponse confirms a full-replace submission
type SubmitAvailabilitiesResponse struct {
	InterventionID string           `json:"intervention_id"`
	UserID         string           `json:"user_id"`
	Windows        []WindowResponse `json:"windows"`
}

// ===================== Mapper Functions =====================

// ToWindowResponse maps entity to DTO
func ToWindowResponse(w *entity.AvailabilityWindow) WindowResponse {
	return WindowResponse{
		ID:        w.ID.String(),
		Date:      w.Date,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
	}
}

// ToWindowResponses maps a window list preserving submission order
func ToWindowResponses(windows []entity.AvailabilityWindow) []WindowResponse {
	result := make([]WindowResponse, 0, len(windows))
	for i := range windows {
		result = append(result, ToWindowResponse(&windows[i]))
	}
	return result
}
