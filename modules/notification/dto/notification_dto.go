package dto

import (
	"time"

	"syndic-api/modules/notification/entity"
)

// NotificationResponse for a single notification
type NotificationResponse struct {
	ID             string         `json:"id"`
	InterventionID string         `json:"intervention_id"`
	Kind           string         `json:"kind"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	Data           map[string]any `json:"data,omitempty"`
	IsRead         bool           `json:"is_read"`
	CreatedAt      time.Time      `json:"created_at"`
}

// UnreadCountResponse for the unread badge
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// ToNotificationResponse maps entity to DTO
func ToNotificationResponse(n *entity.Notification) NotificationResponse {
	return NotificationResponse{
		ID:             n.ID.String(),
		InterventionID: n.InterventionID.String(),
		Kind:           string(n.Kind),
		Title:          n.Title,
		Message:        n.Message,
		Data:           n.Data,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
	}
}

// ToNotificationResponses maps a notification list
func ToNotificationResponses(notifications []entity.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		result = append(result, ToNotificationResponse(&notifications[i]))
	}
	return result
}
