package service

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"syndic-api/core/logger"
)

// TypeSlotSelected is the asynq task enqueued when a manager commits an
// intervention's appointment slot.
const TypeSlotSelected = "notification:slot_selected"

// SlotSelectedPayload carries everything the handler needs to fan out one
// notification per participant.
type SlotSelectedPayload struct {
	InterventionID string   `json:"intervention_id"`
	Reference      string   `json:"reference"`
	Title          string   `json:"title"`
	Date           string   `json:"date"`
	StartTime      string   `json:"start_time"`
	EndTime        string   `json:"end_time"`
	ParticipantIDs []string `json:"participant_ids"`
}

// EnqueuerInterface is the fire-and-forget hook the scheduling service calls.
// Enqueue failures are logged by the caller, never surfaced to the user.
type EnqueuerInterface interface {
	EnqueueSlotSelected(ctx context.Context, payload SlotSelectedPayload) error
}

// Enqueuer enqueues notification tasks on asynq.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueSlotSelected(ctx context.Context, payload SlotSelectedPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeSlotSelected, raw, asynq.MaxRetry(5))
	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	logger.Info("Enqueuer:EnqueueSlotSelected", "task_id", info.ID, "intervention_id", payload.InterventionID)
	return nil
}
