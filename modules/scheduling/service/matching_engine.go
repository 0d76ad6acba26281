package service

import (
	"fmt"
	"math"
	"sort"

	"syndic-api/modules/scheduling/entity"
)

// MatchingEngine computes mutually compatible meeting slots from the tracked
// participants' availability windows. ComputeMatches is pure: no I/O, no
// clock, no randomness, so the same input always produces the same output in
// the same order.
type MatchingEngine struct {
	// ShortOverlapMinutes is the overlap length below which scores are
	// penalized proportionally.
	ShortOverlapMinutes int
	// SuggestionThreshold is the minimum partial score for a date to earn a
	// suggestion when it has no perfect match.
	SuggestionThreshold float64
	// SuggestionAlternatives caps the alternatives carried per suggestion.
	SuggestionAlternatives int
}

// NewMatchingEngine creates an engine with the default tuning
func NewMatchingEngine() *MatchingEngine {
	return &MatchingEngine{
		ShortOverlapMinutes:    30,
		SuggestionThreshold:    60,
		SuggestionAlternatives: 3,
	}
}

// interval is a window normalized to minutes since midnight.
type interval struct {
	start int
	end   int
}

// ComputeMatches runs the full matching pass over the tracked roster.
// Participants with no windows still count toward the tracked total, which
// is what keeps a single submitter's windows degenerate partials instead of
// perfect matches.
func (e *MatchingEngine) ComputeMatches(participants []entity.ParticipantAvailability) *entity.MatchingResult {
	result := &entity.MatchingResult{
		PerfectMatches: []entity.MatchedSlot{},
		PartialMatches: []entity.PartialMatch{},
		Conflicts:      []entity.SelfConflict{},
		Suggestions:    []entity.Suggestion{},
	}

	totalTracked := len(participants)
	byDate := map[string][][]interval{} // date -> per-participant intervals, indexed like participants

	usersWithData := 0
	totalSlots := 0
	for i, p := range participants {
		if len(p.Windows) > 0 {
			usersWithData++
		}
		totalSlots += len(p.Windows)

		for _, w := range p.Windows {
			iv, ok := normalizeWindow(w)
			if !ok {
				continue
			}
			if byDate[w.Date] == nil {
				byDate[w.Date] = make([][]interval, totalTracked)
			}
			byDate[w.Date][i] = append(byDate[w.Date][i], iv)
		}
	}

	result.Stats = entity.MatchingStats{
		TotalUsers:              totalTracked,
		UsersWithAvailabilities: usersWithData,
		TotalAvailabilitySlots:  totalSlots,
	}

	if totalTracked == 0 || usersWithData == 0 {
		return result
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	for _, date := range dates {
		e.matchDate(result, participants, date, byDate[date], totalTracked, usersWithData)
	}

	result.Conflicts = detectSelfConflicts(participants)

	e.sortMatches(result)
	result.Suggestions = e.BuildSuggestions(result)
	result.Stats.BestMatchScore = bestScore(result)

	return result
}

// matchDate emits the perfect and partial matches for one date. It sweeps the
// interval boundaries and merges adjacent segments with identical coverage, so
// every emitted match is a maximal interval for its exact participant set.
func (e *MatchingEngine) matchDate(result *entity.MatchingResult, participants []entity.ParticipantAvailability, date string, perParticipant [][]interval, totalTracked, usersWithData int) {
	points := map[int]struct{}{}
	for _, ivs := range perParticipant {
		for _, iv := range ivs {
			points[iv.start] = struct{}{}
			points[iv.end] = struct{}{}
		}
	}
	if len(points) < 2 {
		return
	}

	bounds := make([]int, 0, len(points))
	for p := range points {
		bounds = append(bounds, p)
	}
	sort.Ints(bounds)

	type region struct {
		start, end int
		covered    []int // participant indices, roster order
	}

	var regions []region
	for i := 0; i < len(bounds)-1; i++ {
		segStart, segEnd := bounds[i], bounds[i+1]

		var covered []int
		for pIdx, ivs := range perParticipant {
			for _, iv := range ivs {
				if iv.start <= segStart && iv.end >= segEnd {
					covered = append(covered, pIdx)
					break
				}
			}
		}
		if len(covered) == 0 {
			continue
		}

		if n := len(regions); n > 0 && regions[n-1].end == segStart && equalInts(regions[n-1].covered, covered) {
			regions[n-1].end = segEnd
			continue
		}
		regions = append(regions, region{start: segStart, end: segEnd, covered: covered})
	}

	for _, reg := range regions {
		overlap := reg.end - reg.start
		factor := e.overlapFactor(overlap)

		if len(reg.covered) == totalTracked {
			slot := entity.MatchedSlot{
				Date:                   date,
				StartTime:              minutesToClock(reg.start),
				EndTime:                minutesToClock(reg.end),
				MatchScore:             round2(100 * factor),
				OverlapDurationMinutes: overlap,
			}
			for _, pIdx := range reg.covered {
				slot.ParticipantUserIDs = append(slot.ParticipantUserIDs, participants[pIdx].UserID.String())
				slot.ParticipantNames = append(slot.ParticipantNames, participants[pIdx].DisplayName)
			}
			result.PerfectMatches = append(result.PerfectMatches, slot)
			continue
		}

		// A strict subset only counts from two participants up, except in the
		// degenerate case where a single participant is the only submitter.
		if len(reg.covered) < 2 && usersWithData > 1 {
			continue
		}

		partial := entity.PartialMatch{
			Date:                   date,
			StartTime:              minutesToClock(reg.start),
			EndTime:                minutesToClock(reg.end),
			MatchScore:             round2(float64(len(reg.covered)) / float64(totalTracked) * 100 * factor),
			OverlapDurationMinutes: overlap,
		}
		coveredSet := map[int]bool{}
		for _, pIdx := range reg.covered {
			coveredSet[pIdx] = true
			partial.AvailableUsers = append(partial.AvailableUsers, entity.MatchUser{
				UserID:      participants[pIdx].UserID.String(),
				DisplayName: participants[pIdx].DisplayName,
			})
		}
		for pIdx := range participants {
			if !coveredSet[pIdx] {
				partial.MissingUsers = append(partial.MissingUsers, entity.MatchUser{
					UserID:      participants[pIdx].UserID.String(),
					DisplayName: participants[pIdx].DisplayName,
				})
			}
		}
		result.PartialMatches = append(result.PartialMatches, partial)
	}
}

// detectSelfConflicts reports, per participant, windows on the same date that
// overlap each other. One entry per participant, one date group per date.
func detectSelfConflicts(participants []entity.ParticipantAvailability) []entity.SelfConflict {
	conflicts := []entity.SelfConflict{}

	for _, p := range participants {
		perDate := map[string][]interval{}
		for _, w := range p.Windows {
			if iv, ok := normalizeWindow(w); ok {
				perDate[w.Date] = append(perDate[w.Date], iv)
			}
		}

		dates := make([]string, 0, len(perDate))
		for d := range perDate {
			dates = append(dates, d)
		}
		sort.Strings(dates)

		var groups []entity.DateConflict
		for _, date := range dates {
			ivs := perDate[date]
			involved := map[int]bool{}
			for i := 0; i < len(ivs); i++ {
				for j := i + 1; j < len(ivs); j++ {
					if ivs[i].start < ivs[j].end && ivs[j].start < ivs[i].end {
						involved[i] = true
						involved[j] = true
					}
				}
			}
			if len(involved) == 0 {
				continue
			}

			var slots []entity.TimeRange
			for i, iv := range ivs {
				if involved[i] {
					slots = append(slots, entity.TimeRange{
						StartTime: minutesToClock(iv.start),
						EndTime:   minutesToClock(iv.end),
					})
				}
			}
			sort.Slice(slots, func(a, b int) bool {
				if slots[a].StartTime != slots[b].StartTime {
					return slots[a].StartTime < slots[b].StartTime
				}
				return slots[a].EndTime < slots[b].EndTime
			})
			groups = append(groups, entity.DateConflict{Date: date, Slots: slots})
		}

		if len(groups) > 0 {
			conflicts = append(conflicts, entity.SelfConflict{
				UserID:           p.UserID.String(),
				UserName:         p.DisplayName,
				ConflictingSlots: groups,
			})
		}
	}

	return conflicts
}

// BuildSuggestions derives the per-date recommendations from an already
// sorted result: any date whose best partial reaches the threshold but has no
// perfect match earns one suggestion with the top alternatives.
func (e *MatchingEngine) BuildSuggestions(result *entity.MatchingResult) []entity.Suggestion {
	perfectDates := map[string]bool{}
	for _, m := range result.PerfectMatches {
		perfectDates[m.Date] = true
	}

	partialsByDate := map[string][]entity.PartialMatch{}
	for _, pm := range result.PartialMatches {
		partialsByDate[pm.Date] = append(partialsByDate[pm.Date], pm)
	}

	dates := make([]string, 0, len(partialsByDate))
	for d := range partialsByDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	suggestions := []entity.Suggestion{}
	for _, date := range dates {
		if perfectDates[date] {
			continue
		}

		partials := partialsByDate[date]
		// PartialMatches arrive sorted by score desc, so the first entry is
		// the date's best.
		if partials[0].MatchScore < e.SuggestionThreshold {
			continue
		}

		maxAvailable := 0
		total := 0
		for _, pm := range partials {
			if len(pm.AvailableUsers) > maxAvailable {
				maxAvailable = len(pm.AvailableUsers)
			}
			total = len(pm.AvailableUsers) + len(pm.MissingUsers)
		}

		alternatives := make([]entity.MatchedSlot, 0, e.SuggestionAlternatives)
		for _, pm := range partials {
			if len(alternatives) == e.SuggestionAlternatives {
				break
			}
			alt := entity.MatchedSlot{
				Date:                   pm.Date,
				StartTime:              pm.StartTime,
				EndTime:                pm.EndTime,
				MatchScore:             pm.MatchScore,
				OverlapDurationMinutes: pm.OverlapDurationMinutes,
			}
			for _, u := range pm.AvailableUsers {
				alt.ParticipantUserIDs = append(alt.ParticipantUserIDs, u.UserID)
				alt.ParticipantNames = append(alt.ParticipantNames, u.DisplayName)
			}
			alternatives = append(alternatives, alt)
		}

		suggestions = append(suggestions, entity.Suggestion{
			Date:         date,
			Reason:       fmt.Sprintf("%d of %d participants available", maxAvailable, total),
			Alternatives: alternatives,
		})
	}

	return suggestions
}

// sortMatches applies the ordering contract callers rely on: descending
// score, then ascending date, then ascending start time.
func (e *MatchingEngine) sortMatches(result *entity.MatchingResult) {
	sort.Slice(result.PerfectMatches, func(i, j int) bool {
		a, b := result.PerfectMatches[i], result.PerfectMatches[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	})

	sort.Slice(result.PartialMatches, func(i, j int) bool {
		a, b := result.PartialMatches[i], result.PartialMatches[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		return a.StartTime < b.StartTime
	})
}

// overlapFactor is the short-overlap penalty: full score from 30 minutes up,
// otherwise 60 + (overlap/30)*40 percent of the base score.
func (e *MatchingEngine) overlapFactor(overlapMinutes int) float64 {
	if overlapMinutes >= e.ShortOverlapMinutes {
		return 1
	}
	return (60 + (float64(overlapMinutes)/float64(e.ShortOverlapMinutes))*40) / 100
}

func bestScore(result *entity.MatchingResult) float64 {
	best := 0.0
	for _, m := range result.PerfectMatches {
		if m.MatchScore > best {
			best = m.MatchScore
		}
	}
	for _, m := range result.PartialMatches {
		if m.MatchScore > best {
			best = m.MatchScore
		}
	}
	return best
}

func normalizeWindow(w entity.Window) (interval, bool) {
	start, ok1 := clockToMinutes(w.StartTime)
	end, ok2 := clockToMinutes(w.EndTime)
	if !ok1 || !ok2 || start >= end {
		return interval{}, false
	}
	return interval{start: start, end: end}, true
}

func clockToMinutes(s string) (int, bool) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, false
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
