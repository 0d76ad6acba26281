package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"syndic-api/core/database"
	"syndic-api/core/logger"
	"syndic-api/modules/availability/entity"
)

// AvailabilityRepository handles availability window persistence.
type AvailabilityRepository struct {
	DB database.Database
}

func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{DB: db}
}

// AvailabilityRepositoryInterface defines the repository contract.
type AvailabilityRepositoryInterface interface {
	// ReplaceForUser atomically replaces the user's entire window set for an
	// intervention (full replace, not merge). Either all windows are written
	// or none are.
	ReplaceForUser(ctx context.Context, interventionID, userID uuid.UUID, windows []entity.AvailabilityWindow) error
	ListByIntervention(ctx context.Context, interventionID uuid.UUID) ([]entity.AvailabilityWindow, error)
	ListByUser(ctx context.Context, interventionID, userID uuid.UUID) ([]entity.AvailabilityWindow, error)
	CountDistinctUsers(ctx context.Context, interventionID uuid.UUID) (int, error)
	CountDistinctUsersTx(ctx context.Context, tx *sqlx.Tx, interventionID uuid.UUID) (int, error)
}

func (r *AvailabilityRepository) ReplaceForUser(ctx context.Context, interventionID, userID uuid.UUID, windows []entity.AvailabilityWindow) error {
	return r.DB.WithinTx(ctx, func(tx *sqlx.Tx) error {
		deleteQuery := `DELETE FROM availability_windows WHERE intervention_id = $1 AND user_id = $2`
		if _, err := tx.ExecContext(ctx, deleteQuery, interventionID, userID); err != nil {
			logger.Error("AvailabilityRepository:ReplaceForUser delete", err)
			return err
		}

		insertQuery := `
			INSERT INTO availability_windows (intervention_id, user_id, date, start_time, end_time, position)
			VALUES ($1, $2, $3, $4, $5, $6)`

		for i, w := range windows {
			if _, err := tx.ExecContext(ctx, insertQuery,
				interventionID, userID, w.Date, w.StartTime, w.EndTime, i); err != nil {
				logger.Error("AvailabilityRepository:ReplaceForUser insert", err)
				return err
			}
		}

		return nil
	})
}

func (r *AvailabilityRepository) ListByIntervention(ctx context.Context, interventionID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	query := `
		SELECT id, intervention_id, user_id, date, start_time, end_time, position, created_at
		FROM availability_windows
		WHERE intervention_id = $1
		ORDER BY user_id, position`

	var windows []entity.AvailabilityWindow
	if err := r.DB.SelectContext(ctx, &windows, query, interventionID); err != nil {
		logger.Error("AvailabilityRepository:ListByIntervention", err)
		return nil, err
	}

	return windows, nil
}

func (r *AvailabilityRepository) ListByUser(ctx context.Context, interventionID, userID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	query := `
		SELECT id, intervention_id, user_id, date, start_time, end_time, position, created_at
		FROM availability_windows
		WHERE intervention_id = $1 AND user_id = $2
		ORDER BY position`

	var windows []entity.AvailabilityWindow
	if err := r.DB.SelectContext(ctx, &windows, query, interventionID, userID); err != nil {
		logger.Error("AvailabilityRepository:ListByUser", err)
		return nil, err
	}

	return windows, nil
}

// countDistinctUsersQuery counts submitters on the tracked roster only;
// windows left by users who are not (or no longer) participants must not
// satisfy the matching gate.
const countDistinctUsersQuery = `
	SELECT COUNT(DISTINCT w.user_id)
	FROM availability_windows w
	JOIN intervention_participants p
	  ON p.intervention_id = w.intervention_id AND p.user_id = w.user_id
	WHERE w.intervention_id = $1`

func (r *AvailabilityRepository) CountDistinctUsers(ctx context.Context, interventionID uuid.UUID) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, countDistinctUsersQuery, interventionID); err != nil {
		logger.Error("AvailabilityRepository:CountDistinctUsers", err)
		return 0, err
	}

	return count, nil
}

// CountDistinctUsersTx is the same count evaluated inside a caller-held
// transaction, used under the intervention row lock.
func (r *AvailabilityRepository) CountDistinctUsersTx(ctx context.Context, tx *sqlx.Tx, interventionID uuid.UUID) (int, error) {
	var count int
	if err := tx.GetContext(ctx, &count, countDistinctUsersQuery, interventionID); err != nil {
		logger.Error("AvailabilityRepository:CountDistinctUsersTx", err)
		return 0, err
	}

	return count, nil
}
