package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"syndic-api/core/logger"
	"syndic-api/modules/notification/entity"
	"syndic-api/modules/notification/repository"
)

type NotificationService struct {
	repo repository.NotificationRepositoryInterface
}

func NewNotificationService(repo repository.NotificationRepositoryInterface) *NotificationService {
	return &NotificationService{repo: repo}
}

func (s *NotificationService) GetMyNotifications(ctx context.Context, userID uuid.UUID) ([]entity.Notification, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// HandleSlotSelectedTask fans the committed slot out as one notification row
// per participant. Registered on the asynq mux under TypeSlotSelected.
func (s *NotificationService) HandleSlotSelectedTask(ctx context.Context, task *asynq.Task) error {
	var payload SlotSelectedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode %s payload: %w", TypeSlotSelected, err)
	}

	interventionID, err := uuid.Parse(payload.InterventionID)
	if err != nil {
		return fmt.Errorf("invalid intervention id in %s payload: %w", TypeSlotSelected, err)
	}

	for _, idStr := range payload.ParticipantIDs {
		userID, err := uuid.Parse(idStr)
		if err != nil {
			logger.Warn("NotificationService:HandleSlotSelectedTask skipping invalid user id", "user_id", idStr)
			continue
		}

		notification := &entity.Notification{
			UserID:         userID,
			InterventionID: interventionID,
			Kind:           entity.KindSlotSelected,
			Title:          fmt.Sprintf("Intervention %s scheduled", payload.Reference),
			Message: fmt.Sprintf("%s is scheduled on %s from %s to %s",
				payload.Title, payload.Date, payload.StartTime, payload.EndTime),
			Data: entity.JSONB{
				"date":       payload.Date,
				"start_time": payload.StartTime,
				"end_time":   payload.EndTime,
			},
			IsRead: false,
		}

		if err := s.repo.Create(ctx, notification); err != nil {
			// Returning the error lets asynq retry the whole fan-out; Create
			// is idempotent enough for the handful of rows involved.
			return err
		}
	}

	logger.Info("NotificationService:HandleSlotSelectedTask",
		"intervention_id", payload.InterventionID,
		"participants", len(payload.ParticipantIDs),
	)
	return nil
}
