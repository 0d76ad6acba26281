package dto

import (
	"time"

	"syndic-api/modules/intervention/entity"
)

// ===================== Request DTOs =====================

// CreateInterventionRequest for creating a new intervention
type CreateInterventionRequest struct {
	Title        string               `json:"title" validate:"required"`
	Description  string               `json:"description"`
	Building     string               `json:"building" validate:"required"`
	Lot          string               `json:"lot"`
	Participants []ParticipantRequest `json:"participants"`
}

// ParticipantRequest for adding a tracked participant
type ParticipantRequest struct {
	UserID           string `json:"user_id" validate:"required"`
	DisplayName      string `json:"display_name" validate:"required"`
	Role             string `json:"role" validate:"required,oneof=tenant manager provider"`
	ProviderCategory string `json:"provider_category"`
}

// ===================== Response DTOs =====================

// InterventionResponse for intervention details
type InterventionResponse struct {
	ID                string                `json:"id"`
	Reference         string                `json:"reference"`
	Title             string                `json:"title"`
	Description       string                `json:"description,omitempty"`
	Building          string                `json:"building"`
	Lot               string                `json:"lot,omitempty"`
	ManagerID         string                `json:"manager_id"`
	Status            string                `json:"status"`
	ScheduledDate     string                `json:"scheduled_date,omitempty"`
	ScheduledStart    string                `json:"scheduled_start,omitempty"`
	ScheduledEnd      string                `json:"scheduled_end,omitempty"`
	SchedulingComment string                `json:"scheduling_comment,omitempty"`
	Participants      []ParticipantResponse `json:"participants,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
}

// ParticipantResponse for a tracked participant
type ParticipantResponse struct {
	UserID           string `json:"user_id"`
	DisplayName      string `json:"display_name"`
	Role             string `json:"role"`
	ProviderCategory string `json:"provider_category,omitempty"`
}

// ===================== Mapper Functions =====================

// ToInterventionResponse maps entity to DTO
func ToInterventionResponse(i *entity.Intervention, participants []entity.Participant) *InterventionResponse {
	resp := &InterventionResponse{
		ID:        i.ID.String(),
		Reference: i.Reference,
		Title:     i.Title,
		Building:  i.Building,
		ManagerID: i.ManagerID.String(),
		Status:    string(i.Status),
		CreatedAt: i.CreatedAt,
	}

	if i.Description != nil {
		resp.Description = *i.Description
	}
	if i.Lot != nil {
		resp.Lot = *i.Lot
	}
	if i.ScheduledDate != nil {
		resp.ScheduledDate = *i.ScheduledDate
	}
	if i.ScheduledStart != nil {
		resp.ScheduledStart = *i.ScheduledStart
	}
	if i.ScheduledEnd != nil {
		resp.ScheduledEnd = *i.ScheduledEnd
	}
	if i.SchedulingComment != nil {
		resp.SchedulingComment = *i.SchedulingComment
	}

	for _, p := range participants {
		resp.Participants = append(resp.Participants, ToParticipantResponse(&p))
	}

	return resp
}

// ToParticipantResponse maps entity to DTO
func ToParticipantResponse(p *entity.Participant) ParticipantResponse {
	resp := ParticipantResponse{
		UserID:      p.UserID.String(),
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
	}
	if p.ProviderCategory != nil {
		resp.ProviderCategory = *p.ProviderCategory
	}
	return resp
}
