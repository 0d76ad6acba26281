package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"syndic-api/core/database"
	"syndic-api/core/logger"
	"syndic-api/modules/intervention/entity"
)

// InterventionRepository handles intervention and participant persistence.
type InterventionRepository struct {
	DB database.Database
}

func NewInterventionRepository(db database.Database) *InterventionRepository {
	return &InterventionRepository{DB: db}
}

// InterventionRepositoryInterface defines the repository contract.
type InterventionRepositoryInterface interface {
	CreateIntervention(ctx context.Context, intervention *entity.Intervention) (*entity.Intervention, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Intervention, error)
	GetByReference(ctx context.Context, reference string) (*entity.Intervention, error)
	GetByManagerID(ctx context.Context, managerID uuid.UUID) ([]entity.Intervention, error)

	// GetForUpdate locks the intervention row for the duration of the
	// enclosing transaction, serializing concurrent matching runs and slot
	// commits for the same intervention.
	GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entity.Intervention, error)
	SetMatched(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, matchVersion int) error
	CommitSchedule(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, date, startTime, endTime string, comment *string) error

	AddParticipant(ctx context.Context, participant *entity.Participant) error
	GetParticipants(ctx context.Context, interventionID uuid.UUID) ([]entity.Participant, error)
	GetParticipant(ctx context.Context, interventionID, userID uuid.UUID) (*entity.Participant, error)
	RemoveParticipant(ctx context.Context, interventionID, userID uuid.UUID) error
}

const interventionColumns = `
	id, reference, title, description, building, lot, manager_id, status,
	scheduled_date, scheduled_start, scheduled_end, scheduling_comment,
	match_version, created_at, updated_at`

// ===================== Intervention =====================

func (r *InterventionRepository) CreateIntervention(ctx context.Context, intervention *entity.Intervention) (*entity.Intervention, error) {
	query := `
		INSERT INTO interventions (reference, title, description, building, lot, manager_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + interventionColumns

	var created entity.Intervention
	err := r.DB.GetContext(ctx, &created, query,
		intervention.Reference, intervention.Title, intervention.Description,
		intervention.Building, intervention.Lot, intervention.ManagerID, intervention.Status)
	if err != nil {
		logger.Error("InterventionRepository:CreateIntervention", err)
		return nil, err
	}

	return &created, nil
}

func (r *InterventionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE id = $1`

	var intervention entity.Intervention
	err := r.DB.GetContext(ctx, &intervention, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InterventionRepository:GetByID", err)
		return nil, err
	}

	return &intervention, nil
}

func (r *InterventionRepository) GetByReference(ctx context.Context, reference string) (*entity.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE reference = $1`

	var intervention entity.Intervention
	err := r.DB.GetContext(ctx, &intervention, query, reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InterventionRepository:GetByReference", err)
		return nil, err
	}

	return &intervention, nil
}

func (r *InterventionRepository) GetByManagerID(ctx context.Context, managerID uuid.UUID) ([]entity.Intervention, error) {
	query := `SELECT ` + interventionColumns + `
		FROM interventions
		WHERE manager_id = $1
		ORDER BY created_at DESC`

	var interventions []entity.Intervention
	err := r.DB.SelectContext(ctx, &interventions, query, managerID)
	if err != nil {
		logger.Error("InterventionRepository:GetByManagerID", err)
		return nil, err
	}

	return interventions, nil
}

func (r *InterventionRepository) GetForUpdate(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*entity.Intervention, error) {
	query := `SELECT ` + interventionColumns + ` FROM interventions WHERE id = $1 FOR UPDATE`

	var intervention entity.Intervention
	err := tx.GetContext(ctx, &intervention, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InterventionRepository:GetForUpdate", err)
		return nil, err
	}

	return &intervention, nil
}

func (r *InterventionRepository) SetMatched(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, matchVersion int) error {
	query := `
		UPDATE interventions
		SET status = $2, match_version = $3, updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, id, entity.StateMatched, matchVersion); err != nil {
		logger.Error("InterventionRepository:SetMatched", err)
		return err
	}
	return nil
}

// CommitSchedule writes the chosen slot and the scheduled status in a single
// statement so the transition is atomic: there is no intermediate state where
// the slot is stored but the intervention still reports matched.
func (r *InterventionRepository) CommitSchedule(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, date, startTime, endTime string, comment *string) error {
	query := `
		UPDATE interventions
		SET status = $2, scheduled_date = $3, scheduled_start = $4, scheduled_end = $5,
		    scheduling_comment = $6, updated_at = NOW()
		WHERE id = $1`

	if _, err := tx.ExecContext(ctx, query, id, entity.StateScheduled, date, startTime, endTime, comment); err != nil {
		logger.Error("InterventionRepository:CommitSchedule", err)
		return err
	}
	return nil
}

// ===================== Participants =====================

func (r *InterventionRepository) AddParticipant(ctx context.Context, participant *entity.Participant) error {
	query := `
		INSERT INTO intervention_participants (intervention_id, user_id, display_name, role, provider_category)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (intervention_id, user_id) DO UPDATE
		SET display_name = $3, role = $4, provider_category = $5`

	err := r.DB.ExecContext(ctx, query,
		participant.InterventionID, participant.UserID, participant.DisplayName,
		participant.Role, participant.ProviderCategory)
	if err != nil {
		logger.Error("InterventionRepository:AddParticipant", err)
		return err
	}

	return nil
}

func (r *InterventionRepository) GetParticipants(ctx context.Context, interventionID uuid.UUID) ([]entity.Participant, error) {
	query := `
		SELECT intervention_id, user_id, display_name, role, provider_category, created_at
		FROM intervention_participants
		WHERE intervention_id = $1
		ORDER BY created_at, user_id`

	var participants []entity.Participant
	err := r.DB.SelectContext(ctx, &participants, query, interventionID)
	if err != nil {
		logger.Error("InterventionRepository:GetParticipants", err)
		return nil, err
	}

	return participants, nil
}

func (r *InterventionRepository) GetParticipant(ctx context.Context, interventionID, userID uuid.UUID) (*entity.Participant, error) {
	query := `
		SELECT intervention_id, user_id, display_name, role, provider_category, created_at
		FROM intervention_participants
		WHERE intervention_id = $1 AND user_id = $2`

	var participant entity.Participant
	err := r.DB.GetContext(ctx, &participant, query, interventionID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("InterventionRepository:GetParticipant", err)
		return nil, err
	}

	return &participant, nil
}

// RemoveParticipant removes the roster row together with the user's
// availability windows; untracked users must not leave windows behind that
// could feed the submitter counts.
func (r *InterventionRepository) RemoveParticipant(ctx context.Context, interventionID, userID uuid.UUID) error {
	return r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		participantQuery := `DELETE FROM intervention_participants WHERE intervention_id = $1 AND user_id = $2`
		if _, err := tx.ExecContext(ctx, participantQuery, interventionID, userID); err != nil {
			logger.Error("InterventionRepository:RemoveParticipant", err)
			return err
		}

		windowsQuery := `DELETE FROM availability_windows WHERE intervention_id = $1 AND user_id = $2`
		if _, err := tx.ExecContext(ctx, windowsQuery, interventionID, userID); err != nil {
			logger.Error("InterventionRepository:RemoveParticipant windows", err)
			return err
		}

		return nil
	})
}
