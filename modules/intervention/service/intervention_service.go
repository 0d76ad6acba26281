package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"syndic-api/core/errors"
	"syndic-api/core/utils"
	"syndic-api/modules/intervention/dto"
	"syndic-api/modules/intervention/entity"
	"syndic-api/modules/intervention/repository"
)

// InterventionService handles intervention business logic
type InterventionService struct {
	repo repository.InterventionRepositoryInterface
}

// InterventionServiceInterface defines the service contract
type InterventionServiceInterface interface {
	CreateIntervention(ctx context.Context, managerID uuid.UUID, req *dto.CreateInterventionRequest) (*dto.InterventionResponse, *errors.AppError)
	GetInterventionByID(ctx context.Context, id uuid.UUID) (*dto.InterventionResponse, *errors.AppError)
	GetInterventionByReference(ctx context.Context, reference string) (*dto.InterventionResponse, *errors.AppError)
	GetMyInterventions(ctx context.Context, managerID uuid.UUID) ([]dto.InterventionResponse, *errors.AppError)
	AddParticipant(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *dto.ParticipantRequest) (*dto.InterventionResponse, *errors.AppError)
	RemoveParticipant(ctx context.Context, interventionID, userID uuid.UUID, actor *utils.TokenClaims) *errors.AppError
}

// NewInterventionService creates a new intervention service
func NewInterventionService(repo repository.InterventionRepositoryInterface) InterventionServiceInterface {
	return &InterventionService{repo: repo}
}

// buildReference derives a stable human-facing reference from the title,
// e.g. "fuite-salle-de-bain-Xa91bQ2".
func buildReference(title string) string {
	s := slug.Make(title)
	if len(s) > 40 {
		s = strings.TrimRight(s[:40], "-")
	}
	return s + "-" + utils.GenerateID()
}

// CreateIntervention creates a new intervention with its tracked participants
func (s *InterventionService) CreateIntervention(ctx context.Context, managerID uuid.UUID, req *dto.CreateInterventionRequest) (*dto.InterventionResponse, *errors.AppError) {
	if req.Title == "" || req.Building == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Title and building are required", nil)
	}

	intervention := &entity.Intervention{
		Reference: buildReference(req.Title),
		Title:     req.Title,
		Building:  req.Building,
		ManagerID: managerID,
		Status:    entity.StateCollecting,
	}
	if req.Description != "" {
		intervention.Description = &req.Description
	}
	if req.Lot != "" {
		intervention.Lot = &req.Lot
	}

	created, err := s.repo.CreateIntervention(ctx, intervention)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to create intervention", err)
	}

	participants := make([]entity.Participant, 0, len(req.Participants))
	for _, pr := range req.Participants {
		participant, appErr := participantFromRequest(created.ID, &pr)
		if appErr != nil {
			return nil, appErr
		}

		if err := s.repo.AddParticipant(ctx, participant); err != nil {
			return nil, errors.NewAppError(errors.ErrStore, "Failed to add participant", err)
		}
		participants = append(participants, *participant)
	}

	return dto.ToInterventionResponse(created, participants), nil
}

// GetInterventionByID retrieves an intervention with its participants
func (s *InterventionService) GetInterventionByID(ctx context.Context, id uuid.UUID) (*dto.InterventionResponse, *errors.AppError) {
	intervention, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get intervention", err)
	}
	if intervention == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
	}

	participants, err := s.repo.GetParticipants(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get participants", err)
	}

	return dto.ToInterventionResponse(intervention, participants), nil
}

// GetInterventionByReference retrieves an intervention by its human-facing
// reference
func (s *InterventionService) GetInterventionByReference(ctx context.Context, reference string) (*dto.InterventionResponse, *errors.AppError) {
	intervention, err := s.repo.GetByReference(ctx, reference)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get intervention", err)
	}
	if intervention == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
	}

	participants, err := s.repo.GetParticipants(ctx, intervention.ID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get participants", err)
	}

	return dto.ToInterventionResponse(intervention, participants), nil
}

// GetMyInterventions retrieves all interventions managed by the actor
func (s *InterventionService) GetMyInterventions(ctx context.Context, managerID uuid.UUID) ([]dto.InterventionResponse, *errors.AppError) {
	interventions, err := s.repo.GetByManagerID(ctx, managerID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get interventions", err)
	}

	result := make([]dto.InterventionResponse, 0, len(interventions))
	for i := range interventions {
		participants, err := s.repo.GetParticipants(ctx, interventions[i].ID)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrStore, "Failed to get participants", err)
		}
		result = append(result, *dto.ToInterventionResponse(&interventions[i], participants))
	}

	return result, nil
}

// AddParticipant adds a tracked participant (manager only, not after scheduling)
func (s *InterventionService) AddParticipant(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *dto.ParticipantRequest) (*dto.InterventionResponse, *errors.AppError) {
	intervention, appErr := s.loadForMutation(ctx, interventionID, actor)
	if appErr != nil {
		return nil, appErr
	}

	participant, appErr := participantFromRequest(intervention.ID, req)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.AddParticipant(ctx, participant); err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to add participant", err)
	}

	return s.GetInterventionByID(ctx, interventionID)
}

// RemoveParticipant removes a tracked participant (manager only, not after scheduling)
func (s *InterventionService) RemoveParticipant(ctx context.Context, interventionID, userID uuid.UUID, actor *utils.TokenClaims) *errors.AppError {
	if _, appErr := s.loadForMutation(ctx, interventionID, actor); appErr != nil {
		return appErr
	}

	if err := s.repo.RemoveParticipant(ctx, interventionID, userID); err != nil {
		return errors.NewAppError(errors.ErrStore, "Failed to remove participant", err)
	}

	return nil
}

// loadForMutation loads the intervention and enforces the manager-only and
// not-yet-scheduled guards shared by participant mutations.
func (s *InterventionService) loadForMutation(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims) (*entity.Intervention, *errors.AppError) {
	intervention, err := s.repo.GetByID(ctx, interventionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get intervention", err)
	}
	if intervention == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
	}

	if !entity.Role(actor.Role).CanManage() {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only a manager may modify participants", nil)
	}
	if intervention.IsScheduled() {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Intervention is already scheduled", nil)
	}

	return intervention, nil
}

func participantFromRequest(interventionID uuid.UUID, req *dto.ParticipantRequest) (*entity.Participant, *errors.AppError) {
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid participant user ID", err)
	}

	role := entity.Role(req.Role)
	if !role.Valid() {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Invalid participant role", nil)
	}

	participant := &entity.Participant{
		InterventionID: interventionID,
		UserID:         userID,
		DisplayName:    req.DisplayName,
		Role:           role,
	}
	if req.ProviderCategory != "" {
		participant.ProviderCategory = &req.ProviderCategory
	}

	return participant, nil
}
