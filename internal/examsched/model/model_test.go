package model

import (
	"testing"
	"time"
)

func TestClockRoundTrip(t *testing.T) {
	c, err := ParseClock("07:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.String(); got != "07:30" {
		t.Fatalf("expected 07:30, got %s", got)
	}
	if got := c.Add(90).String(); got != "09:00" {
		t.Fatalf("expected 09:00 after +90m, got %s", got)
	}
}

func TestPlacedExamOverlapsSameDateOnly(t *testing.T) {
	d1 := NewDate(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	d2 := NewDate(time.Date(2026, 8, 2, 0, 0, 0, 0, time.UTC))

	a := PlacedExam{Date: d1, Start: 0, End: 60}
	b := PlacedExam{Date: d1, Start: 30, End: 90}
	c := PlacedExam{Date: d2, Start: 0, End: 60}

	if !a.Overlaps(b) {
		t.Fatalf("expected overlap on same date with intersecting windows")
	}
	if a.Overlaps(c) {
		t.Fatalf("expected no overlap across different dates")
	}
}

func TestPlacedExamHalfOpenBoundary(t *testing.T) {
	d := NewDate(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	a := PlacedExam{Date: d, Start: 0, End: 60}
	b := PlacedExam{Date: d, Start: 60, End: 120}

	if a.Overlaps(b) {
		t.Fatalf("back-to-back placements sharing a boundary should not overlap")
	}
}

func TestSolutionCloneIsIndependent(t *testing.T) {
	orig := Solution{Placements: []PlacedExam{{Subject: "Math", Group: []string{"a", "b"}}}}
	clone := orig.Clone()
	clone.Placements[0].Group[0] = "z"

	if orig.Placements[0].Group[0] == "z" {
		t.Fatalf("expected clone's group mutation not to affect the original")
	}
}

func TestConfigValidateRejectsBadHorizon(t *testing.T) {
	cfg := Config{
		StartDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected an error for end before start")
	}
}

func TestWeekday0MondayIsZero(t *testing.T) {
	monday := NewDate(time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC))
	if got := monday.Weekday0(); got != 0 {
		t.Fatalf("expected Monday=0, got %d", got)
	}
}
