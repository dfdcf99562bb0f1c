package schedule

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"00:00", 0, false},
		{"23:59", 1439, false},
		{" 10:30 ", 630, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"0900", 0, true},
		{"nine", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(540); got != "09:00" {
		t.Errorf("FormatClock(540) = %q", got)
	}
	if got := FormatClock(635); got != "10:35" {
		t.Errorf("FormatClock(635) = %q", got)
	}
}

func TestScoreAdjacencyBonus(t *testing.T) {
	// Candidate 10:00-10:30 abutting a booking at 10:30 scores exactly
	// +40 over the same candidate with no neighbors.
	booked := []Booking{{StartMinutes: 630, DurationMinutes: 30}} // 10:30-11:00

	with := Score(600, 30, booked, 30, 480, 1200)
	without := Score(600, 30, nil, 30, 480, 1200)

	if with-without != 40 {
		t.Errorf("adjacency delta = %d, want 40", with-without)
	}
	if with < 40 {
		t.Errorf("adjacent candidate score = %d, want >= 40", with)
	}
}

func TestScoreTinyGapPenalty(t *testing.T) {
	// Candidate 10:00-10:30 with a booking ending 09:45 leaves a 15-minute
	// sliver before it (< 30-minute step): -50.
	booked := []Booking{{StartMinutes: 555, DurationMinutes: 30}} // 09:15-09:45

	got := Score(600, 30, booked, 30, 480, 1200)
	if got != -50 {
		t.Errorf("score = %d, want -50", got)
	}

	// Symmetric sliver after the candidate.
	booked = []Booking{{StartMinutes: 645, DurationMinutes: 30}} // 10:45-11:15
	got = Score(600, 30, booked, 30, 480, 1200)
	if got != -50 {
		t.Errorf("score = %d, want -50", got)
	}
}

func TestScoreGapEqualToStepIsNotPenalized(t *testing.T) {
	// Exactly one step of idle time is bookable, not a sliver.
	booked := []Booking{{StartMinutes: 540, DurationMinutes: 30}} // 09:00-09:30, gap 09:30-10:00

	if got := Score(600, 30, booked, 30, 480, 1200); got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
}

func TestScoreBoundsPenalty(t *testing.T) {
	booked := []Booking{{StartMinutes: 630, DurationMinutes: 30}}

	in := Score(600, 30, booked, 30, 480, 1200)
	beforeOpen := Score(600, 30, booked, 30, 610, 1200)
	afterClose := Score(600, 30, booked, 30, 480, 620)

	if in-beforeOpen != 100 {
		t.Errorf("before-open delta = %d, want exactly 100", in-beforeOpen)
	}
	if in-afterClose != 100 {
		t.Errorf("after-close delta = %d, want exactly 100", in-afterClose)
	}
}

func TestScoreDoubleAdjacencyAppliedOnce(t *testing.T) {
	// A zero-duration booking at both edges of the candidate triggers the
	// flat +100 exactly once even when two such bookings exist. Each booking
	// is also exactly adjacent on both sides, so adjacency counts twice per
	// booking as well.
	booked := []Booking{
		{StartMinutes: 600, DurationMinutes: 0},
		{StartMinutes: 600, DurationMinutes: 0},
	}

	got := Score(600, 0, booked, 30, 480, 1200)
	// Per booking: start==bEnd (+40) and end==bStart (+40). Double
	// adjacency bonus once overall (+100). 2*80 + 100 = 260.
	if got != 260 {
		t.Errorf("score = %d, want 260", got)
	}
}

func TestScoreOrderInvariant(t *testing.T) {
	a := []Booking{
		{StartMinutes: 540, DurationMinutes: 30},
		{StartMinutes: 630, DurationMinutes: 45},
		{StartMinutes: 720, DurationMinutes: 60},
	}
	b := []Booking{a[2], a[0], a[1]}

	for start := 480; start <= 1170; start += 15 {
		if Score(start, 30, a, 30, 480, 1200) != Score(start, 30, b, 30, 480, 1200) {
			t.Fatalf("score at start=%d depends on booking order", start)
		}
	}
}

func TestCandidatesExcludeOverlapsAndOutOfHours(t *testing.T) {
	booked := []Booking{{StartMinutes: 600, DurationMinutes: 60}} // 10:00-11:00

	slots := Candidates(540, 720, 30, 30, booked) // 09:00-12:00
	want := map[int]bool{540: true, 570: true, 660: true, 690: true}
	if len(slots) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(slots), len(want), slots)
	}
	for _, s := range slots {
		if !want[s.StartMinutes] {
			t.Errorf("unexpected candidate at %s", FormatClock(s.StartMinutes))
		}
		if s.End() > 720 {
			t.Errorf("candidate %s runs past closing", FormatClock(s.StartMinutes))
		}
	}
}

func TestRankPrefersAdjacentThenEarliest(t *testing.T) {
	booked := []Booking{{StartMinutes: 600, DurationMinutes: 60}} // 10:00-11:00

	slots := Candidates(540, 720, 30, 30, booked)
	ranked := Rank(slots, booked, 30, 540, 720, 0)

	// 09:30 (end abuts 10:00) and 11:00 (start abuts 11:00) both score +40;
	// the earlier one wins the tie.
	if ranked[0].StartMinutes != 570 {
		t.Errorf("top slot starts %s, want 09:30", FormatClock(ranked[0].StartMinutes))
	}
	if ranked[1].StartMinutes != 660 {
		t.Errorf("second slot starts %s, want 11:00", FormatClock(ranked[1].StartMinutes))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("ranking not descending at %d", i)
		}
	}
}

func TestRankLimit(t *testing.T) {
	slots := Candidates(540, 1020, 30, 30, nil)
	ranked := Rank(slots, nil, 30, 540, 1020, 6)
	if len(ranked) != 6 {
		t.Errorf("got %d ranked slots, want 6", len(ranked))
	}
}
