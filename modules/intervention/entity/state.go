package entity

// SchedulingState is the lifecycle of an intervention's appointment:
// collecting -> ready_to_match -> matched -> scheduled.
//
// ready_to_match is derived, never stored: a row persists only collecting,
// matched or scheduled, and the derived state is recomputed from the number
// of participants with submitted availabilities every time data is loaded.
type SchedulingState string

const (
	StateCollecting   SchedulingState = "collecting"
	StateReadyToMatch SchedulingState = "ready_to_match"
	StateMatched      SchedulingState = "matched"
	StateScheduled    SchedulingState = "scheduled"
)

// MinParticipantsForMatching is the threshold at which collecting becomes
// ready_to_match; matching needs at least two parties to compare.
const MinParticipantsForMatching = 2

// NextAction is the recommendation surfaced to callers alongside the gating
// flags.
type NextAction string

const (
	ActionNeedMoreAvailabilities NextAction = "need_more_availabilities"
	ActionRunMatching            NextAction = "run_matching"
	ActionSelectSlot             NextAction = "select_slot"
	ActionInterventionScheduled  NextAction = "intervention_scheduled"
)

// DeriveState promotes a stored collecting state to ready_to_match once
// enough participants have submitted windows.
func DeriveState(stored SchedulingState, usersWithAvailabilities int) SchedulingState {
	if stored == StateCollecting && usersWithAvailabilities >= MinParticipantsForMatching {
		return StateReadyToMatch
	}
	return stored
}

// CanRunMatching gates the matching trigger: at least two submitters and not
// yet scheduled. Re-running while matched is allowed (idempotent overwrite).
func CanRunMatching(stored SchedulingState, usersWithAvailabilities int) bool {
	return usersWithAvailabilities >= MinParticipantsForMatching && stored != StateScheduled
}

// CanSelectSlot is true only when a matching pass has produced output and the
// intervention is not already scheduled.
func CanSelectSlot(stored SchedulingState) bool {
	return stored == StateMatched
}

// AcceptsAvailabilities is false once the appointment is committed; further
// submissions require an out-of-band reset.
func AcceptsAvailabilities(stored SchedulingState) bool {
	return stored != StateScheduled
}

// NextActionFor computes the caller-facing recommendation.
func NextActionFor(stored SchedulingState, usersWithAvailabilities int) NextAction {
	switch {
	case stored == StateScheduled:
		return ActionInterventionScheduled
	case stored == StateMatched:
		return ActionSelectSlot
	case usersWithAvailabilities >= MinParticipantsForMatching:
		return ActionRunMatching
	default:
		return ActionNeedMoreAvailabilities
	}
}
