package schedule

import "sort"

// Booking is an occupied window on the day being scored, in minutes of day.
type Booking struct {
	StartMinutes    int
	DurationMinutes int
}

// End returns the booking's end in minutes of day.
func (b Booking) End() int {
	return b.StartMinutes + b.DurationMinutes
}

// Slot is a candidate appointment window.
type Slot struct {
	StartMinutes    int
	DurationMinutes int
}

// End returns the slot's end in minutes of day.
func (s Slot) End() int {
	return s.StartMinutes + s.DurationMinutes
}

// Scoring weights. Scores are relative ranking signals, not probabilities.
const (
	adjacencyBonus       = 40
	tinyGapPenalty       = 50
	doubleAdjacencyBonus = 100
	outOfBoundsPenalty   = 100
)

// Score rates how desirable a candidate slot is against the day's existing
// bookings. Candidates that butt up against a booking with zero gap score
// higher; candidates that would strand an idle gap smaller than the step
// granularity score lower; candidates outside business hours are heavily
// deprioritized but not excluded (exclusion is the caller's pre-filter).
// Pure function: identical inputs yield identical scores regardless of the
// order of bookings.
func Score(start, duration int, bookings []Booking, stepMinutes, openMinutes, closeMinutes int) int {
	end := start + duration
	score := 0
	doubleAdjacent := false

	for _, b := range bookings {
		bStart := b.StartMinutes
		bEnd := b.End()

		if start == bEnd || end == bStart {
			score += adjacencyBonus
		}
		if gap := start - bEnd; gap > 0 && gap < stepMinutes {
			score -= tinyGapPenalty
		}
		if gap := bStart - end; gap > 0 && gap < stepMinutes {
			score -= tinyGapPenalty
		}
		// A single booking sitting flush on both sides of the candidate.
		// Only reachable with zero-duration bookings; kept as-is until the
		// heuristic is revisited with real scheduling data.
		if start == bEnd && end == bStart {
			doubleAdjacent = true
		}
	}

	if doubleAdjacent {
		score += doubleAdjacencyBonus
	}
	if start < openMinutes || end > closeMinutes {
		score -= outOfBoundsPenalty
	}
	return score
}

// Overlaps reports whether the slot intersects the booking.
func Overlaps(s Slot, b Booking) bool {
	return s.StartMinutes < b.End() && b.StartMinutes < s.End()
}

// Candidates enumerates in-hours slots of the given duration at stepMinutes
// granularity, excluding any that overlap an existing booking.
func Candidates(openMinutes, closeMinutes, stepMinutes, duration int, bookings []Booking) []Slot {
	if stepMinutes <= 0 || duration <= 0 {
		return nil
	}
	var slots []Slot
	for start := openMinutes; start+duration <= closeMinutes; start += stepMinutes {
		slot := Slot{StartMinutes: start, DurationMinutes: duration}
		taken := false
		for _, b := range bookings {
			if Overlaps(slot, b) {
				taken = true
				break
			}
		}
		if !taken {
			slots = append(slots, slot)
		}
	}
	return slots
}

// ScoredSlot pairs a candidate with its score.
type ScoredSlot struct {
	Slot
	Score int
}

// Rank scores every candidate and orders them by descending score, breaking
// ties by earliest start. At most limit slots are returned (limit <= 0 means
// no cap).
func Rank(slots []Slot, bookings []Booking, stepMinutes, openMinutes, closeMinutes, limit int) []ScoredSlot {
	ranked := make([]ScoredSlot, 0, len(slots))
	for _, s := range slots {
		ranked = append(ranked, ScoredSlot{
			Slot:  s,
			Score: Score(s.StartMinutes, s.DurationMinutes, bookings, stepMinutes, openMinutes, closeMinutes),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].StartMinutes < ranked[j].StartMinutes
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
