package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndic-api/modules/scheduling/entity"
)

func participant(name string, windows ...entity.Window) entity.ParticipantAvailability {
	return entity.ParticipantAvailability{
		UserID:      uuid.New(),
		DisplayName: name,
		Role:        "tenant",
		Windows:     windows,
	}
}

func window(date, start, end string) entity.Window {
	return entity.Window{Date: date, StartTime: start, EndTime: end}
}

func TestComputeMatchesIdenticalWindows(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice", window("2025-07-10", "10:00", "12:00")),
		participant("Bob", window("2025-07-10", "10:00", "12:00")),
	})

	require.Len(t, result.PerfectMatches, 1)
	slot := result.PerfectMatches[0]
	assert.Equal(t, "2025-07-10", slot.Date)
	assert.Equal(t, "10:00", slot.StartTime)
	assert.Equal(t, "12:00", slot.EndTime)
	assert.Equal(t, 120, slot.OverlapDurationMinutes)
	assert.Equal(t, 100.0, slot.MatchScore)
	assert.Equal(t, []string{"Alice", "Bob"}, slot.ParticipantNames)

	assert.Empty(t, result.PartialMatches)
	assert.Empty(t, result.Conflicts)
	assert.Equal(t, 100.0, result.Stats.BestMatchScore)
}

func TestComputeMatchesShortOverlapPenalty(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice", window("2025-07-10", "10:00", "12:00")),
		participant("Bob", window("2025-07-10", "11:45", "13:00")),
	})

	require.Len(t, result.PerfectMatches, 1)
	slot := result.PerfectMatches[0]
	assert.Equal(t, "11:45", slot.StartTime)
	assert.Equal(t, "12:00", slot.EndTime)
	assert.Equal(t, 15, slot.OverlapDurationMinutes)
	assert.Equal(t, 80.0, slot.MatchScore)

	// The non-shared remainders cover a single participant each and two
	// participants submitted, so they yield no partials.
	assert.Empty(t, result.PartialMatches)
}

func TestComputeMatchesPartialSubset(t *testing.T) {
	engine := NewMatchingEngine()

	carol := participant("Carol", window("2025-07-11", "09:00", "10:00"))
	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice", window("2025-07-10", "14:00", "16:00")),
		participant("Bob", window("2025-07-10", "14:00", "16:00")),
		carol,
	})

	assert.Empty(t, result.PerfectMatches)

	require.Len(t, result.PartialMatches, 1)
	pm := result.PartialMatches[0]
	assert.Equal(t, "2025-07-10", pm.Date)
	assert.Equal(t, "14:00", pm.StartTime)
	assert.Equal(t, "16:00", pm.EndTime)
	assert.Equal(t, 66.67, pm.MatchScore)
	require.Len(t, pm.AvailableUsers, 2)
	require.Len(t, pm.MissingUsers, 1)
	assert.Equal(t, "Carol", pm.MissingUsers[0].DisplayName)

	require.Len(t, result.Suggestions, 1)
	sg := result.Suggestions[0]
	assert.Equal(t, "2025-07-10", sg.Date)
	assert.Equal(t, "2 of 3 participants available", sg.Reason)
	require.Len(t, sg.Alternatives, 1)
	assert.Equal(t, 66.67, sg.Alternatives[0].MatchScore)
}

func TestComputeMatchesSingleSubmitterDegenerate(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice", window("2025-07-10", "10:00", "12:00")),
		participant("Bob"),
	})

	assert.Empty(t, result.PerfectMatches)

	require.Len(t, result.PartialMatches, 1)
	pm := result.PartialMatches[0]
	assert.Equal(t, 50.0, pm.MatchScore)
	require.Len(t, pm.AvailableUsers, 1)
	assert.Equal(t, "Alice", pm.AvailableUsers[0].DisplayName)

	// 50 is below the suggestion threshold.
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 1, result.Stats.UsersWithAvailabilities)
	assert.Equal(t, 2, result.Stats.TotalUsers)
}

func TestComputeMatchesMaximalRegions(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice", window("2025-07-10", "09:00", "17:00")),
		participant("Bob",
			window("2025-07-10", "10:00", "12:00"),
			window("2025-07-10", "14:00", "15:00"),
		),
	})

	// One maximal perfect slot per shared region, nothing split at interior
	// boundaries.
	require.Len(t, result.PerfectMatches, 2)
	assert.Equal(t, "10:00", result.PerfectMatches[0].StartTime)
	assert.Equal(t, "12:00", result.PerfectMatches[0].EndTime)
	assert.Equal(t, "14:00", result.PerfectMatches[1].StartTime)
	assert.Equal(t, "15:00", result.PerfectMatches[1].EndTime)
	assert.Equal(t, 100.0, result.PerfectMatches[0].MatchScore)
	assert.Equal(t, 100.0, result.PerfectMatches[1].MatchScore)
}

func TestComputeMatchesOrdering(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice",
			window("2025-07-11", "10:00", "12:00"),
			window("2025-07-10", "09:00", "09:10"),
		),
		participant("Bob",
			window("2025-07-11", "10:00", "12:00"),
			window("2025-07-10", "09:00", "09:10"),
		),
	})

	require.Len(t, result.PerfectMatches, 2)
	// The long slot scores 100, the 10-minute one is penalized, so score
	// ordering beats date ordering.
	assert.Equal(t, "2025-07-11", result.PerfectMatches[0].Date)
	assert.Equal(t, 100.0, result.PerfectMatches[0].MatchScore)
	assert.Equal(t, "2025-07-10", result.PerfectMatches[1].Date)
	assert.InDelta(t, 73.33, result.PerfectMatches[1].MatchScore, 0.001)
}

func TestComputeMatchesSelfConflicts(t *testing.T) {
	engine := NewMatchingEngine()

	alice := participant("Alice",
		window("2025-07-10", "11:00", "13:00"),
		window("2025-07-10", "10:00", "12:00"),
		window("2025-07-10", "15:00", "16:00"),
	)
	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		alice,
		participant("Bob", window("2025-07-10", "10:00", "12:00")),
	})

	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, alice.UserID.String(), conflict.UserID)
	assert.Equal(t, "Alice", conflict.UserName)

	require.Len(t, conflict.ConflictingSlots, 1)
	group := conflict.ConflictingSlots[0]
	assert.Equal(t, "2025-07-10", group.Date)
	// The disjoint 15:00 window is not part of the conflict, and the involved
	// windows come out sorted by start time.
	require.Len(t, group.Slots, 2)
	assert.Equal(t, "10:00", group.Slots[0].StartTime)
	assert.Equal(t, "11:00", group.Slots[1].StartTime)
}

func TestComputeMatchesAdjacentWindowsNoConflict(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice",
			window("2025-07-10", "10:00", "12:00"),
			window("2025-07-10", "12:00", "14:00"),
		),
		participant("Bob", window("2025-07-10", "10:00", "14:00")),
	})

	assert.Empty(t, result.Conflicts)
	// Adjacent windows merge into one maximal perfect region.
	require.Len(t, result.PerfectMatches, 1)
	assert.Equal(t, "10:00", result.PerfectMatches[0].StartTime)
	assert.Equal(t, "14:00", result.PerfectMatches[0].EndTime)
}

func TestComputeMatchesIgnoresInvalidWindows(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice",
			window("2025-07-10", "12:00", "10:00"), // inverted
			window("2025-07-10", "23:00", "01:00"), // crosses midnight
		),
		participant("Bob", window("2025-07-10", "10:00", "12:00")),
	})

	assert.Empty(t, result.PerfectMatches)
	// Alice still counts as a submitter, so Bob's lone window is a skipped
	// single-coverage region, not a degenerate partial.
	assert.Empty(t, result.PartialMatches)
	assert.Equal(t, 2, result.Stats.UsersWithAvailabilities)
}

func TestComputeMatchesEmptyRoster(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches(nil)

	assert.Empty(t, result.PerfectMatches)
	assert.Empty(t, result.PartialMatches)
	assert.Empty(t, result.Conflicts)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 0, result.Stats.TotalUsers)
	assert.Equal(t, 0.0, result.Stats.BestMatchScore)
}

func TestComputeMatchesDeterministic(t *testing.T) {
	engine := NewMatchingEngine()

	input := []entity.ParticipantAvailability{
		participant("Alice",
			window("2025-07-10", "09:00", "11:00"),
			window("2025-07-12", "08:00", "08:20"),
		),
		participant("Bob",
			window("2025-07-10", "10:00", "12:00"),
			window("2025-07-12", "08:00", "08:20"),
		),
		participant("Carol", window("2025-07-10", "10:30", "11:30")),
	}

	first := engine.ComputeMatches(input)
	second := engine.ComputeMatches(input)

	assert.Equal(t, first, second)
}

func TestBuildSuggestionsSkipsDatesWithPerfectMatch(t *testing.T) {
	engine := NewMatchingEngine()

	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice",
			window("2025-07-10", "10:00", "12:00"),
			window("2025-07-10", "14:00", "16:00"),
			window("2025-07-11", "09:00", "11:00"),
		),
		participant("Bob",
			window("2025-07-10", "10:00", "12:00"),
			window("2025-07-11", "09:00", "11:00"),
		),
		participant("Carol",
			window("2025-07-10", "10:00", "12:00"),
			window("2025-07-10", "14:00", "16:00"),
		),
	})

	// 2025-07-10 has a perfect match, so its 2-of-3 partial earns no
	// suggestion; 2025-07-11's 66.67 partial does.
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, "2025-07-11", result.Suggestions[0].Date)
}

func TestBuildSuggestionsCapsAlternatives(t *testing.T) {
	engine := NewMatchingEngine()

	windows := []entity.Window{
		window("2025-07-10", "08:00", "09:00"),
		window("2025-07-10", "10:00", "11:00"),
		window("2025-07-10", "12:00", "13:00"),
		window("2025-07-10", "14:00", "15:00"),
	}
	result := engine.ComputeMatches([]entity.ParticipantAvailability{
		participant("Alice", windows...),
		participant("Bob", windows...),
		participant("Carol"),
	})

	require.Len(t, result.PartialMatches, 4)
	require.Len(t, result.Suggestions, 1)
	assert.Len(t, result.Suggestions[0].Alternatives, 3)
}

func TestOverlapFactor(t *testing.T) {
	engine := NewMatchingEngine()

	assert.Equal(t, 1.0, engine.overlapFactor(30))
	assert.Equal(t, 1.0, engine.overlapFactor(120))
	assert.InDelta(t, 0.8, engine.overlapFactor(15), 0.0001)
	assert.InDelta(t, 0.6, engine.overlapFactor(0), 0.0001)
}
