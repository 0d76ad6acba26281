package entity

import (
	"github.com/google/uuid"
)

// ParticipantAvailability is the engine's input: one tracked participant's
// identity plus every window they submitted. Participants who have not
// submitted anything appear with an empty Windows slice so the engine knows
// the full tracked roster.
type ParticipantAvailability struct {
	UserID           uuid.UUID `json:"user_id"`
	DisplayName      string    `json:"display_name"`
	Role             string    `json:"role"`
	ProviderCategory *string   `json:"provider_category,omitempty"`
	Windows          []Window  `json:"windows"`
}

// Window is a date-bound free interval, HH:MM wall-clock on one calendar day.
type Window struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// MatchUser identifies a participant inside a match payload.
type MatchUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// MatchedSlot is a perfect match: an interval where every tracked participant
// is simultaneously free.
type MatchedSlot struct {
	Date                   string   `json:"date"`
	StartTime              string   `json:"start_time"`
	EndTime                string   `json:"end_time"`
	ParticipantUserIDs     []string `json:"participant_user_ids"`
	ParticipantNames       []string `json:"participant_names"`
	MatchScore             float64  `json:"match_score"`
	OverlapDurationMinutes int      `json:"overlap_duration_minutes"`
}

// PartialMatch is an interval where a strict subset of tracked participants
// overlaps.
type PartialMatch struct {
	Date                   string      `json:"date"`
	StartTime              string      `json:"start_time"`
	EndTime                string      `json:"end_time"`
	AvailableUsers         []MatchUser `json:"available_users"`
	MissingUsers           []MatchUser `json:"missing_users"`
	MatchScore             float64     `json:"match_score"`
	OverlapDurationMinutes int         `json:"overlap_duration_minutes"`
}

// TimeRange is a bare HH:MM interval, used in conflict reports.
type TimeRange struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// DateConflict groups a participant's mutually overlapping windows on one date.
type DateConflict struct {
	Date  string      `json:"date"`
	Slots []TimeRange `json:"slots"`
}

// SelfConflict reports overlapping windows within a single participant's own
// submission. It is a data-quality signal, not a cross-participant mismatch.
type SelfConflict struct {
	UserID           string         `json:"user_id"`
	UserName         string         `json:"user_name"`
	ConflictingSlots []DateConflict `json:"conflicting_slots"`
}

// Suggestion is a derived recommendation for a date with high partial
// coverage but no perfect match.
type Suggestion struct {
	Date         string        `json:"date"`
	Reason       string        `json:"reason"`
	Alternatives []MatchedSlot `json:"alternatives"`
}

// MatchingStats accompany every result.
type MatchingStats struct {
	TotalUsers              int     `json:"total_users"`
	UsersWithAvailabilities int     `json:"users_with_availabilities"`
	TotalAvailabilitySlots  int     `json:"total_availability_slots"`
	BestMatchScore          float64 `json:"best_match_score"`
}

// MatchingResult is the engine's full output. An empty result with
// BestMatchScore 0 is a valid outcome, never an error.
type MatchingResult struct {
	PerfectMatches []MatchedSlot  `json:"perfect_matches"`
	PartialMatches []PartialMatch `json:"partial_matches"`
	Conflicts      []SelfConflict `json:"conflicts"`
	Suggestions    []Suggestion   `json:"suggestions"`
	Stats          MatchingStats  `json:"stats"`
}
