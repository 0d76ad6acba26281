package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"syndic-api/core/cache"
	"syndic-api/core/constants"
	"syndic-api/core/database"
	"syndic-api/core/errors"
	"syndic-api/core/logger"
	"syndic-api/core/utils"
	availabilitydto "syndic-api/modules/availability/dto"
	availabilityentity "syndic-api/modules/availability/entity"
	availabilityrepo "syndic-api/modules/availability/repository"
	availabilityservice "syndic-api/modules/availability/service"
	interventiondto "syndic-api/modules/intervention/dto"
	interventionentity "syndic-api/modules/intervention/entity"
	interventionrepo "syndic-api/modules/intervention/repository"
	notificationservice "syndic-api/modules/notification/service"
	"syndic-api/modules/scheduling/dto"
	"syndic-api/modules/scheduling/entity"
	"syndic-api/modules/scheduling/repository"
)

// SchedulingService coordinates the availability store, the matching engine
// and the scheduling state machine. It is stateless: every call carries its
// full inputs and reads whatever it needs from the store.
type SchedulingService struct {
	db               database.IDatabase
	repo             repository.SchedulingRepositoryInterface
	interventionRepo interventionrepo.InterventionRepositoryInterface
	availabilityRepo availabilityrepo.AvailabilityRepositoryInterface
	availability     availabilityservice.AvailabilityServiceInterface
	engine           *MatchingEngine
	cache            *cache.Cache
	notifier         notificationservice.EnqueuerInterface
}

// SchedulingServiceInterface defines the service contract
type SchedulingServiceInterface interface {
	GetAvailabilityData(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims) (*dto.AvailabilityDataResponse, *errors.AppError)
	SubmitAvailabilities(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *availabilitydto.SubmitAvailabilitiesRequest) (*availabilitydto.SubmitAvailabilitiesResponse, *errors.AppError)
	RunMatching(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims) (*dto.RunMatchingResponse, *errors.AppError)
	SelectSlot(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *dto.SelectSlotRequest) (*dto.SelectSlotResponse, *errors.AppError)
}

// NewSchedulingService creates a new scheduling service
func NewSchedulingService(
	db database.IDatabase,
	repo repository.SchedulingRepositoryInterface,
	interventionRepo interventionrepo.InterventionRepositoryInterface,
	availabilityRepo availabilityrepo.AvailabilityRepositoryInterface,
	availability availabilityservice.AvailabilityServiceInterface,
	resultCache *cache.Cache,
	notifier notificationservice.EnqueuerInterface,
) SchedulingServiceInterface {
	return &SchedulingService{
		db:               db,
		repo:             repo,
		interventionRepo: interventionRepo,
		availabilityRepo: availabilityRepo,
		availability:     availability,
		engine:           NewMatchingEngine(),
		cache:            resultCache,
		notifier:         notifier,
	}
}

func matchingCacheKey(interventionID uuid.UUID) string {
	return "matching:" + interventionID.String()
}

// GetAvailabilityData aggregates the intervention, everyone's windows, the
// latest matching result and the action-gating flags. Read-only.
func (s *SchedulingService) GetAvailabilityData(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims) (*dto.AvailabilityDataResponse, *errors.AppError) {
	intervention, participants, appErr := s.loadIntervention(ctx, interventionID)
	if appErr != nil {
		return nil, appErr
	}

	if appErr := authorizeRead(actor, participants); appErr != nil {
		return nil, appErr
	}

	windows, err := s.availabilityRepo.ListByIntervention(ctx, interventionID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStore, "Failed to load availabilities", err)
	}

	// Only the tracked roster counts: windows left behind by untracked users
	// must influence neither the stats nor the gating flags.
	windows = rosterWindows(windows, participants)
	usersWith := countDistinctUsers(windows)

	var matching *entity.MatchingResult
	if intervention.Status == interventionentity.StateMatched || intervention.Status == interventionentity.StateScheduled {
		matching = s.loadMatchingResult(ctx, interventionID, participants, windows, usersWith)
	}

	response := &dto.AvailabilityDataResponse{
		Intervention:      interventionResponse(intervention, participants, usersWith),
		MyAvailabilities:  ownWindows(windows, actor.UserID),
		Participants:      participantWindows(participants, windows),
		Matching:          matching,
		ShouldRunMatching: interventionentity.CanRunMatching(intervention.Status, usersWith),
		CanSelectSlot:     interventionentity.CanSelectSlot(intervention.Status),
		NextAction:        string(interventionentity.NextActionFor(intervention.Status, usersWith)),
	}

	response.Stats = entity.MatchingStats{
		TotalUsers:              len(participants),
		UsersWithAvailabilities: usersWith,
		TotalAvailabilitySlots:  len(windows),
	}
	if matching != nil {
		response.Stats.BestMatchScore = matching.Stats.BestMatchScore
	}

	return response, nil
}

// SubmitAvailabilities delegates to the availability store accessor and
// invalidates the cached matching result, which is stale the moment any
// window set changes.
func (s *SchedulingService) SubmitAvailabilities(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *availabilitydto.SubmitAvailabilitiesRequest) (*availabilitydto.SubmitAvailabilitiesResponse, *errors.AppError) {
	response, appErr := s.availability.SubmitAvailabilities(ctx, interventionID, actor, req)
	if appErr != nil {
		return nil, appErr
	}

	if err := s.cache.Delete(ctx, matchingCacheKey(interventionID)); err != nil {
		logger.Warn("SchedulingService:SubmitAvailabilities cache invalidation failed", "error", err)
	}

	return response, nil
}

// RunMatching loads everyone's windows, runs the engine and persists the
// result, advancing the intervention to matched. Manager only. Re-running
// overwrites the previous result as long as the intervention is not
// scheduled.
func (s *SchedulingService) RunMatching(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims) (*dto.RunMatchingResponse, *errors.AppError) {
	if !interventionentity.Role(actor.Role).CanManage() {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only a manager may run the matching", nil)
	}

	var result *entity.MatchingResult
	var version int

	err := s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		intervention, err := s.interventionRepo.GetForUpdate(ctx, tx, interventionID)
		if err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to load intervention", err)
		}
		if intervention == nil {
			return errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
		}
		if intervention.Status == interventionentity.StateScheduled {
			return errors.NewAppError(errors.ErrInvalidState, "Intervention is already scheduled", nil)
		}

		count, err := s.availabilityRepo.CountDistinctUsersTx(ctx, tx, interventionID)
		if err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to count submitters", err)
		}
		if count < interventionentity.MinParticipantsForMatching {
			return errors.NewAppError(errors.ErrInsufficientData,
				fmt.Sprintf("Matching requires availabilities from at least %d participants", interventionentity.MinParticipantsForMatching), nil)
		}

		participants, err := s.interventionRepo.GetParticipants(ctx, interventionID)
		if err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to load participants", err)
		}
		windows, err := s.availabilityRepo.ListByIntervention(ctx, interventionID)
		if err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to load availabilities", err)
		}

		result = s.engine.ComputeMatches(buildEngineInput(participants, windows))
		version = intervention.MatchVersion + 1

		if err := s.repo.ClearMatches(ctx, tx, interventionID); err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to clear previous matches", err)
		}
		if err := s.repo.SaveResult(ctx, tx, interventionID, version, result); err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to persist matches", err)
		}
		if err := s.interventionRepo.SetMatched(ctx, tx, interventionID, version); err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to update intervention state", err)
		}

		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	if cacheErr := s.cache.Set(ctx, matchingCacheKey(interventionID), result, constants.MatchingCacheTTLSeconds*time.Second); cacheErr != nil {
		logger.Warn("SchedulingService:RunMatching cache store failed", "error", cacheErr)
	}

	return &dto.RunMatchingResponse{
		InterventionID: interventionID.String(),
		MatchVersion:   version,
		Result:         result,
	}, nil
}

// SelectSlot commits one slot as the intervention's appointment. Manager
// only, valid only from the matched state. The slot and the scheduled state
// are written atomically: either both land or neither does.
//
// The slot is validated for shape and ordering, not for membership in the
// computed matches: a manager may commit a manual override.
func (s *SchedulingService) SelectSlot(ctx context.Context, interventionID uuid.UUID, actor *utils.TokenClaims, req *dto.SelectSlotRequest) (*dto.SelectSlotResponse, *errors.AppError) {
	if !interventionentity.Role(actor.Role).CanManage() {
		return nil, errors.NewAppError(errors.ErrForbidden, "Only a manager may select a slot", nil)
	}

	slot, appErr := validateSlot(&req.SelectedSlot)
	if appErr != nil {
		return nil, appErr
	}

	var intervention *interventionentity.Intervention
	var participants []interventionentity.Participant

	err := s.db.WithinTx(ctx, func(tx *sqlx.Tx) error {
		loaded, err := s.interventionRepo.GetForUpdate(ctx, tx, interventionID)
		if err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to load intervention", err)
		}
		if loaded == nil {
			return errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
		}
		if !interventionentity.CanSelectSlot(loaded.Status) {
			if loaded.Status == interventionentity.StateScheduled {
				return errors.NewAppError(errors.ErrInvalidState, "Intervention is already scheduled", nil)
			}
			return errors.NewAppError(errors.ErrInvalidState, "Slot selection requires a completed matching run", nil)
		}

		var comment *string
		if req.Comment != "" {
			comment = &req.Comment
		}
		if err := s.interventionRepo.CommitSchedule(ctx, tx, interventionID, slot.Date, slot.StartTime, slot.EndTime, comment); err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to commit slot", err)
		}

		intervention = loaded
		participants, err = s.interventionRepo.GetParticipants(ctx, interventionID)
		if err != nil {
			return errors.NewAppError(errors.ErrStore, "Failed to load participants", err)
		}

		return nil
	})
	if err != nil {
		return nil, asAppError(err)
	}

	if cacheErr := s.cache.Delete(ctx, matchingCacheKey(interventionID)); cacheErr != nil {
		logger.Warn("SchedulingService:SelectSlot cache invalidation failed", "error", cacheErr)
	}

	// Fire-and-forget: the commit already happened, a queue hiccup must not
	// fail the request.
	payload := notificationservice.SlotSelectedPayload{
		InterventionID: interventionID.String(),
		Reference:      intervention.Reference,
		Title:          intervention.Title,
		Date:           slot.Date,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
	}
	for _, p := range participants {
		payload.ParticipantIDs = append(payload.ParticipantIDs, p.UserID.String())
	}
	if enqErr := s.notifier.EnqueueSlotSelected(ctx, payload); enqErr != nil {
		logger.Error("SchedulingService:SelectSlot notification enqueue failed", "error", enqErr)
	}

	return &dto.SelectSlotResponse{
		InterventionID: interventionID.String(),
		Status:         string(interventionentity.StateScheduled),
		SelectedSlot:   *slot,
		Comment:        req.Comment,
	}, nil
}

// ===================== helpers =====================

func (s *SchedulingService) loadIntervention(ctx context.Context, interventionID uuid.UUID) (*interventionentity.Intervention, []interventionentity.Participant, *errors.AppError) {
	intervention, err := s.interventionRepo.GetByID(ctx, interventionID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrStore, "Failed to load intervention", err)
	}
	if intervention == nil {
		return nil, nil, errors.NewAppError(errors.ErrNotFound, "Intervention not found", nil)
	}

	participants, err := s.interventionRepo.GetParticipants(ctx, interventionID)
	if err != nil {
		return nil, nil, errors.NewAppError(errors.ErrStore, "Failed to load participants", err)
	}

	return intervention, participants, nil
}

// loadMatchingResult serves the cached result when fresh, otherwise
// reassembles it from the persisted matches and rebuilds the derived
// suggestions and stats.
func (s *SchedulingService) loadMatchingResult(ctx context.Context, interventionID uuid.UUID, participants []interventionentity.Participant, windows []availabilityentity.AvailabilityWindow, usersWith int) *entity.MatchingResult {
	var cached entity.MatchingResult
	found, err := s.cache.Get(ctx, matchingCacheKey(interventionID), &cached)
	if err != nil {
		logger.Warn("SchedulingService:loadMatchingResult cache read failed", "error", err)
	}
	if found {
		return &cached
	}

	result, ok, err := s.repo.LoadResult(ctx, interventionID)
	if err != nil || !ok {
		if err != nil {
			logger.Error("SchedulingService:loadMatchingResult", "error", err)
		}
		return nil
	}

	result.Suggestions = s.engine.BuildSuggestions(result)
	result.Stats = entity.MatchingStats{
		TotalUsers:              len(participants),
		UsersWithAvailabilities: usersWith,
		TotalAvailabilitySlots:  len(windows),
		BestMatchScore:          bestScore(result),
	}

	if cacheErr := s.cache.Set(ctx, matchingCacheKey(interventionID), result, constants.MatchingCacheTTLSeconds*time.Second); cacheErr != nil {
		logger.Warn("SchedulingService:loadMatchingResult cache store failed", "error", cacheErr)
	}

	return result
}

// authorizeRead allows tracked participants and manager-role actors.
func authorizeRead(actor *utils.TokenClaims, participants []interventionentity.Participant) *errors.AppError {
	if interventionentity.Role(actor.Role).CanManage() {
		return nil
	}
	for _, p := range participants {
		if p.UserID == actor.UserID {
			return nil
		}
	}
	return errors.NewAppError(errors.ErrForbidden, "Actor is not a participant of this intervention", nil)
}

// buildEngineInput joins the tracked roster with everyone's windows,
// preserving roster order and each participant's submission order.
func buildEngineInput(participants []interventionentity.Participant, windows []availabilityentity.AvailabilityWindow) []entity.ParticipantAvailability {
	byUser := map[uuid.UUID][]entity.Window{}
	for _, w := range windows {
		byUser[w.UserID] = append(byUser[w.UserID], entity.Window{
			Date:      w.Date,
			StartTime: w.StartTime,
			EndTime:   w.EndTime,
		})
	}

	input := make([]entity.ParticipantAvailability, 0, len(participants))
	for _, p := range participants {
		input = append(input, entity.ParticipantAvailability{
			UserID:           p.UserID,
			DisplayName:      p.DisplayName,
			Role:             string(p.Role),
			ProviderCategory: p.ProviderCategory,
			Windows:          byUser[p.UserID],
		})
	}

	return input
}

// rosterWindows drops windows whose submitter is not on the tracked roster,
// e.g. rows left by a participant removed after submitting.
func rosterWindows(windows []availabilityentity.AvailabilityWindow, participants []interventionentity.Participant) []availabilityentity.AvailabilityWindow {
	tracked := map[uuid.UUID]bool{}
	for _, p := range participants {
		tracked[p.UserID] = true
	}

	kept := make([]availabilityentity.AvailabilityWindow, 0, len(windows))
	for _, w := range windows {
		if tracked[w.UserID] {
			kept = append(kept, w)
		}
	}
	return kept
}

func countDistinctUsers(windows []availabilityentity.AvailabilityWindow) int {
	seen := map[uuid.UUID]bool{}
	for _, w := range windows {
		seen[w.UserID] = true
	}
	return len(seen)
}

func ownWindows(windows []availabilityentity.AvailabilityWindow, userID uuid.UUID) []availabilitydto.WindowResponse {
	var own []availabilityentity.AvailabilityWindow
	for _, w := range windows {
		if w.UserID == userID {
			own = append(own, w)
		}
	}
	return availabilitydto.ToWindowResponses(own)
}

func participantWindows(participants []interventionentity.Participant, windows []availabilityentity.AvailabilityWindow) []dto.ParticipantWindowsResponse {
	byUser := map[uuid.UUID][]availabilityentity.AvailabilityWindow{}
	for _, w := range windows {
		byUser[w.UserID] = append(byUser[w.UserID], w)
	}

	result := make([]dto.ParticipantWindowsResponse, 0, len(participants))
	for _, p := range participants {
		entry := dto.ParticipantWindowsResponse{
			UserID:      p.UserID.String(),
			DisplayName: p.DisplayName,
			Role:        string(p.Role),
			Windows:     availabilitydto.ToWindowResponses(byUser[p.UserID]),
		}
		if p.ProviderCategory != nil {
			entry.ProviderCategory = *p.ProviderCategory
		}
		result = append(result, entry)
	}

	return result
}

// interventionResponse surfaces the derived state: a collecting intervention
// with enough submitters reports ready_to_match.
func interventionResponse(intervention *interventionentity.Intervention, participants []interventionentity.Participant, usersWith int) *interventiondto.InterventionResponse {
	response := interventiondto.ToInterventionResponse(intervention, participants)
	response.Status = string(interventionentity.DeriveState(intervention.Status, usersWith))
	return response
}

// validateSlot checks shape and ordering of a committed slot.
func validateSlot(slot *dto.SelectedSlot) (*dto.SelectedSlot, *errors.AppError) {
	if _, err := utils.ParseDate(slot.Date); err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}

	start, err := utils.NormalizeClock(slot.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}
	end, err := utils.NormalizeClock(slot.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidInput, err.Error(), nil)
	}

	startMin, _ := utils.ClockToMinutes(start)
	endMin, _ := utils.ClockToMinutes(end)
	if startMin >= endMin {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "Slot start time must be before end time", nil)
	}

	return &dto.SelectedSlot{Date: slot.Date, StartTime: start, EndTime: end}, nil
}

func asAppError(err error) *errors.AppError {
	if appErr, ok := err.(*errors.AppError); ok {
		return appErr
	}
	return errors.NewAppError(errors.ErrStore, "Operation failed", err)
}
