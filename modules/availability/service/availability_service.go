package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"syndic-api/core/errors"
	"syndic-api/core/utils"
	"syndic-api/modules/availability/dto"
	"syndic-api/modules/availability/entity"
	"syndic-api/modules/availability/repository"
	interventionentity "syndic-api/modules/intervention/entity"
	interventionrepo "syndic-api/modules/intervention/repository"
)

// AvailabilityService is the availability store accessor: it validates and
// persists a participant's free-time windows for one intervention.
type AvailabilityService struct {
	repo             repository.AvailabilityRepositoryInterface
	interventionRepo interventionrepo.InterventionRepositoryInterface
}

// AvailabilityServiceInterface defines the service contract
type AvailabilityServiceInterface interface {
	SubmitAvailabilities(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *dto.SubmitAvailabilitiesRequest) (*dto.SubmitAvailabilitiesResponse, *errors.AppError)
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(repo repository.AvailabilityRepositoryInterface, interventionRepo interventionrepo.InterventionRepositoryInterface) AvailabilityServiceInterface {
	return &AvailabilityService{
		repo:             repo,
		interventionRepo: interventionRepo,
	}
}

// SubmitAvailabilities replaces the actor's entire window set for the
// intervention. The batch is rejected as a whole on the first invalid window,
// consistent with the full-replace semantics.
func (s *AvailabilityService) SubmitAvailabilities(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *dto.SubmitAvailabilitiesRequest) (*dto.SubmitAvailabilitiesResponse, *errors.AppError) {
	intervention, err := s.interventionRepo.GetByID(ctx, interventionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get intervention", err)
	}
	if intervention == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
	}

	if !interventionentity.AcceptsAvailabilities(intervention.Status) {
		return nil, errors.NewAppError(errors.ErrInvalidState, "Intervention is already scheduled", nil)
	}

	// Windows always belong to a tracked participant. A manager who wants to
	// submit their own set must be on the roster like anyone else.
	participant, err := s.interventionRepo.GetParticipant(ctx, interventionID, actor.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to get participant", err)
	}
	if participant == nil {
		return nil, errors.NewAppError(errors.ErrForbidden, "Actor is not a participant of this intervention", nil)
	}

	windows, appErr := validateWindows(req.Windows)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.repo.ReplaceForUser(ctx, interventionID, actor.UserID, windows); err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to save availabilities", err)
	}

	stored, err := s.repo.ListByUser(ctx, interventionID, actor.UserID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to reload availabilities", err)
	}

	return &dto.SubmitAvailabilitiesResponse{
		InterventionID: interventionID.String(),
		UserID:         actor.UserID.String(),
		Windows:        dto.ToWindowResponses(stored),
	}, nil
}

// validateWindows enforces the window invariants: valid calendar date not in
// the past, minute-precision times on the same day, start strictly before
// end. The first violation rejects the whole batch.
func validateWindows(reqs []dto.WindowRequest) ([]entity.AvailabilityWindow, *errors.AppError) {
	today := utils.Today()
	windows := make([]entity.AvailabilityWindow, 0, len(reqs))

	for i, wr := range reqs {
		date, err := utils.ParseDate(wr.Date)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Window %d: %v", i+1, err), nil)
		}
		if date.Before(today) {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Window %d: date %s is in the past", i+1, wr.Date), nil)
		}

		start, err := utils.NormalizeClock(wr.StartTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Window %d: %v", i+1, err), nil)
		}
		end, err := utils.NormalizeClock(wr.EndTime)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrInvalidInput, fmt.Sprintf("Window %d: %v", i+1, err), nil)
		}

		startMin, _ := utils.ClockToMinutes(start)
		endMin, _ := utils.ClockToMinutes(end)
		if startMin >= endMin {
			return nil, errors.NewAppError(errors.ErrInvalidInput,
				fmt.Sprintf("Window %d: start time %s must be before end time %s", i+1, start, end), nil)
		}

		windows = append(windows, entity.AvailabilityWindow{
			Date:      wr.Date,
			StartTime: start,
			EndTime:   end,
			Position:  i,
		})
	}

	return windows, nil
}
