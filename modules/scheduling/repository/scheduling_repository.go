package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"syndic-api/core/database"
	"syndic-api/core/logger"
	"syndic-api/modules/scheduling/entity"
)

// SchedulingRepository persists computed matching results. Results are
// versioned by the intervention's match_version; only the latest version is
// kept (clear-then-save under the intervention row lock).
type SchedulingRepository struct {
	DB database.Database
}

func NewSchedulingRepository(db database.Database) *SchedulingRepository {
	return &SchedulingRepository{DB: db}
}

// SchedulingRepositoryInterface defines the repository contract.
type SchedulingRepositoryInterface interface {
	ClearMatches(ctx context.Context, tx *sqlx.Tx, interventionID uuid.UUID) error
	SaveResult(ctx context.Context, tx *sqlx.Tx, interventionID uuid.UUID, matchVersion int, result *entity.MatchingResult) error
	// LoadResult reassembles the persisted matches and conflicts. Suggestions
	// and stats are derived data and are rebuilt by the service.
	LoadResult(ctx context.Context, interventionID uuid.UUID) (*entity.MatchingResult, bool, error)
}

// row types with database array/jsonb columns

type matchedSlotRow struct {
	ID                 uuid.UUID      `db:"id"`
	InterventionID     uuid.UUID      `db:"intervention_id"`
	MatchVersion       int            `db:"match_version"`
	Date               string         `db:"date"`
	StartTime          string         `db:"start_time"`
	EndTime            string         `db:"end_time"`
	ParticipantUserIDs pq.StringArray `db:"participant_user_ids"`
	ParticipantNames   pq.StringArray `db:"participant_names"`
	MatchScore         float64        `db:"match_score"`
	OverlapMinutes     int            `db:"overlap_minutes"`
	CreatedAt          time.Time      `db:"created_at"`
}

type partialMatchRow struct {
	ID             uuid.UUID `db:"id"`
	InterventionID uuid.UUID `db:"intervention_id"`
	MatchVersion   int       `db:"match_version"`
	Date           string    `db:"date"`
	StartTime      string    `db:"start_time"`
	EndTime        string    `db:"end_time"`
	AvailableUsers []byte    `db:"available_users"`
	MissingUsers   []byte    `db:"missing_users"`
	MatchScore     float64   `db:"match_score"`
	OverlapMinutes int       `db:"overlap_minutes"`
	CreatedAt      time.Time `db:"created_at"`
}

type selfConflictRow struct {
	ID               uuid.UUID `db:"id"`
	InterventionID   uuid.UUID `db:"intervention_id"`
	MatchVersion     int       `db:"match_version"`
	UserID           string    `db:"user_id"`
	UserName         string    `db:"user_name"`
	ConflictingSlots []byte    `db:"conflicting_slots"`
	CreatedAt        time.Time `db:"created_at"`
}

func (r *SchedulingRepository) ClearMatches(ctx context.Context, tx *sqlx.Tx, interventionID uuid.UUID) error {
	for _, query := range []string{
		`DELETE FROM matched_slots WHERE intervention_id = $1`,
		`DELETE FROM partial_matches WHERE intervention_id = $1`,
		`DELETE FROM self_conflicts WHERE intervention_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, query, interventionID); err != nil {
			logger.Error("SchedulingRepository:ClearMatches", err)
			return err
		}
	}
	return nil
}

func (r *SchedulingRepository) SaveResult(ctx context.Context, tx *sqlx.Tx, interventionID uuid.UUID, matchVersion int, result *entity.MatchingResult) error {
	slotQuery := `
		INSERT INTO matched_slots (intervention_id, match_version, date, start_time, end_time,
		                           participant_user_ids, participant_names, match_score, overlap_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, m := range result.PerfectMatches {
		if _, err := tx.ExecContext(ctx, slotQuery,
			interventionID, matchVersion, m.Date, m.StartTime, m.EndTime,
			pq.StringArray(m.ParticipantUserIDs), pq.StringArray(m.ParticipantNames),
			m.MatchScore, m.OverlapDurationMinutes); err != nil {
			logger.Error("SchedulingRepository:SaveResult matched_slots", err)
			return err
		}
	}

	partialQuery := `
		INSERT INTO partial_matches (intervention_id, match_version, date, start_time, end_time,
		                             available_users, missing_users, match_score, overlap_minutes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, m := range result.PartialMatches {
		available, err := json.Marshal(m.AvailableUsers)
		if err != nil {
			return err
		}
		missing, err := json.Marshal(m.MissingUsers)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, partialQuery,
			interventionID, matchVersion, m.Date, m.StartTime, m.EndTime,
			available, missing, m.MatchScore, m.OverlapDurationMinutes); err != nil {
			logger.Error("SchedulingRepository:SaveResult partial_matches", err)
			return err
		}
	}

	conflictQuery := `
		INSERT INTO self_conflicts (intervention_id, match_version, user_id, user_name, conflicting_slots)
		VALUES ($1, $2, $3, $4, $5)`

	for _, c := range result.Conflicts {
		slots, err := json.Marshal(c.ConflictingSlots)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, conflictQuery,
			interventionID, matchVersion, c.UserID, c.UserName, slots); err != nil {
			logger.Error("SchedulingRepository:SaveResult self_conflicts", err)
			return err
		}
	}

	return nil
}

func (r *SchedulingRepository) LoadResult(ctx context.Context, interventionID uuid.UUID) (*entity.MatchingResult, bool, error) {
	slotQuery := `
		SELECT id, intervention_id, match_version, date, start_time, end_time,
		       participant_user_ids, participant_names, match_score, overlap_minutes, created_at
		FROM matched_slots
		WHERE intervention_id = $1
		ORDER BY match_score DESC, date, start_time`

	var slotRows []matchedSlotRow
	if err := r.DB.SelectContext(ctx, &slotRows, slotQuery, interventionID); err != nil {
		logger.Error("SchedulingRepository:LoadResult matched_slots", err)
		return nil, false, err
	}

	partialQuery := `
		SELECT id, intervention_id, match_version, date, start_time, end_time,
		       available_users, missing_users, match_score, overlap_minutes, created_at
		FROM partial_matches
		WHERE intervention_id = $1
		ORDER BY match_score DESC, date, start_time`

	var partialRows []partialMatchRow
	if err := r.DB.SelectContext(ctx, &partialRows, partialQuery, interventionID); err != nil {
		logger.Error("SchedulingRepository:LoadResult partial_matches", err)
		return nil, false, err
	}

	conflictQuery := `
		SELECT id, intervention_id, match_version, user_id, user_name, conflicting_slots, created_at
		FROM self_conflicts
		WHERE intervention_id = $1
		ORDER BY user_id`

	var conflictRows []selfConflictRow
	if err := r.DB.SelectContext(ctx, &conflictRows, conflictQuery, interventionID); err != nil {
		logger.Error("SchedulingRepository:LoadResult self_conflicts", err)
		return nil, false, err
	}

	if len(slotRows) == 0 && len(partialRows) == 0 && len(conflictRows) == 0 {
		return nil, false, nil
	}

	result := &entity.MatchingResult{
		PerfectMatches: make([]entity.MatchedSlot, 0, len(slotRows)),
		PartialMatches: make([]entity.PartialMatch, 0, len(partialRows)),
		Conflicts:      make([]entity.SelfConflict, 0, len(conflictRows)),
		Suggestions:    []entity.Suggestion{},
	}

	for _, row := range slotRows {
		result.PerfectMatches = append(result.PerfectMatches, entity.MatchedSlot{
			Date:                   row.Date,
			StartTime:              row.StartTime,
			EndTime:                row.EndTime,
			ParticipantUserIDs:     []string(row.ParticipantUserIDs),
			ParticipantNames:       []string(row.ParticipantNames),
			MatchScore:             row.MatchScore,
			OverlapDurationMinutes: row.OverlapMinutes,
		})
	}

	for _, row := range partialRows {
		pm := entity.PartialMatch{
			Date:                   row.Date,
			StartTime:              row.StartTime,
			EndTime:                row.EndTime,
			MatchScore:             row.MatchScore,
			OverlapDurationMinutes: row.OverlapMinutes,
		}
		if err := json.Unmarshal(row.AvailableUsers, &pm.AvailableUsers); err != nil {
			logger.Error("SchedulingRepository:LoadResult decode available_users", err)
			return nil, false, err
		}
		if err := json.Unmarshal(row.MissingUsers, &pm.MissingUsers); err != nil {
			logger.Error("SchedulingRepository:LoadResult decode missing_users", err)
			return nil, false, err
		}
		result.PartialMatches = append(result.PartialMatches, pm)
	}

	for _, row := range conflictRows {
		c := entity.SelfConflict{
			UserID:   row.UserID,
			UserName: row.UserName,
		}
		if err := json.Unmarshal(row.ConflictingSlots, &c.ConflictingSlots); err != nil {
			logger.Error("SchedulingRepository:LoadResult decode conflicting_slots", err)
			return nil, false, err
		}
		result.Conflicts = append(result.Conflicts, c)
	}

	return result, true, nil
}
