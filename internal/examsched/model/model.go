// Package model holds the value types shared by the scheduler: students,
// subjects, shifts, rooms, dates, configuration, and the placements that make
// up a solution. Nothing in this package does any scheduling; it only
// defines the shapes other packages compute with.
package model

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Sentinel error kinds, matched with errors.Is by callers.
var (
	ErrInvalidHorizon = errors.New("end_date before start_date")
	ErrEmptyHorizon   = errors.New("no working dates in horizon")
	ErrEmptyRoster    = errors.New("no students to schedule")
)

// Clock is a time of day expressed as minutes since midnight.
type Clock int

// ParseClock parses an "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parsing clock %q: %w", s, err)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// String renders the clock back as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Add returns the clock advanced by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// Date is a calendar date truncated to day granularity.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight UTC of its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// String renders the date as "YYYY-MM-DD".
func (d Date) String() string {
	return d.Time.Format("2006-01-02")
}

// Before reports whether d is chronologically before other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Weekday0 returns the weekday with the Monday=0 convention used throughout
// this package, instead of Go's native Sunday=0.
func (d Date) Weekday0() int {
	w := int(d.Time.Weekday())
	return (w + 6) % 7
}

// Student is a single exam-taker: a stable id, a display name, and the
// subjects they are enrolled in mapped to exam duration in minutes.
type Student struct {
	ID       string         `json:"student_id" validate:"required"`
	Name     string         `json:"name"`
	Subjects map[string]int `json:"subjects" validate:"required,min=1"`
}

// Subject is the derived aggregate of every student enrolled under a given
// subject name: its duration and the full set of enrolled student ids. It is
// built once by the subject package and is immutable afterward.
type Subject struct {
	Name      string
	Duration  int
	StudentID []string // the subject's full cohort, in deterministic order
}

// Shift is a named window of a working date during which exams may be
// placed; Start is inclusive, End is exclusive.
type Shift struct {
	Name  string
	Start Clock
	End   Clock
}

// Minutes returns the length of the shift window in minutes.
func (s Shift) Minutes() int {
	return int(s.End) - int(s.Start)
}

// Room is a named location capable of hosting one exam session at a time.
type Room struct {
	Name string
}

// Config is the full set of knobs governing a solve: the horizon, the
// off-days, the shifts and their time windows, the break between back to
// back exams, the rooms (possibly empty, triggering auto-sizing), and the
// optional group-size bounds.
type Config struct {
	StartDate          time.Time         `validate:"required"`
	EndDate            time.Time         `validate:"required,gtefield=StartDate"`
	OffDays            map[int]bool      // weekday, 0=Monday
	Shifts             []string          `validate:"required,min=1"`
	ShiftTimes         map[string]Shift
	BreakMinutes       int `validate:"gte=0"`
	Rooms              []Room
	MinStudentsPerRoom int // 0 means unset
	MaxStudentsPerRoom int // 0 means unset
}

// DefaultConfig returns a Config matching the defaults named in spec.md §6:
// Morning/Afternoon shifts, weekends off, a 30-minute break, auto-sized rooms.
func DefaultConfig(start, end time.Time) Config {
	return Config{
		StartDate: start,
		EndDate:   end,
		OffDays:   map[int]bool{5: true, 6: true},
		Shifts:    []string{"Morning", "Afternoon"},
		ShiftTimes: map[string]Shift{
			"Morning":   {Name: "Morning", Start: 7*60 + 30, End: 11*60 + 30},
			"Afternoon": {Name: "Afternoon", Start: 13*60 + 30, End: 17*60 + 30},
		},
		BreakMinutes: 30,
	}
}

// Validate checks the hard configuration invariants named in spec.md §7. It
// returns a wrapped ErrInvalidHorizon when EndDate is before StartDate, and a
// plain error for a shift with missing or non-increasing times or a negative
// break. It does not check for an
// empty working-date horizon; that is Calendar's job, since it depends on
// OffDays as well.
func (c Config) Validate() error {
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: start=%s end=%s", ErrInvalidHorizon,
			c.StartDate.Format("2006-01-02"), c.EndDate.Format("2006-01-02"))
	}
	for _, name := range c.Shifts {
		sh, ok := c.ShiftTimes[name]
		if !ok {
			return fmt.Errorf("shift %q has no configured start/end times", name)
		}
		if sh.Start >= sh.End {
			return fmt.Errorf("shift %q: start %s is not before end %s", name, sh.Start, sh.End)
		}
	}
	if c.BreakMinutes < 0 {
		return fmt.Errorf("break_time must be >= 0, got %d", c.BreakMinutes)
	}
	return nil
}

// PlacedExam is one unit of a solution: a subject's group of students seated
// in one room for one (date, shift, start, end) window.
type PlacedExam struct {
	Date     Date
	Shift    string
	Start    Clock
	End      Clock
	Room     string
	Subject  string
	Duration int
	Group    []string
}

// Overlaps reports whether two placements' [start, end) windows intersect on
// the same date, using the half-open semantics from spec.md §4.7.
func (p PlacedExam) Overlaps(other PlacedExam) bool {
	if !p.Date.Time.Equal(other.Date.Time) {
		return false
	}
	return p.Start < other.End && p.End > other.Start
}

// HasStudent reports whether id is a member of this placement's group.
func (p PlacedExam) HasStudent(id string) bool {
	for _, s := range p.Group {
		if s == id {
			return true
		}
	}
	return false
}

// Solution is an ordered collection of placements plus the warnings
// accumulated while building it. The optimizer perturbs a Clone of its
// working solution in place and keeps its best solution as a separate Clone,
// so the best snapshot is never mutated after it is taken.
type Solution struct {
	Placements []PlacedExam
	Warnings   []string
}

// Clone makes a deep, independent copy of the solution so that a promoted
// "best" snapshot is never aliased with the optimizer's working state.
func (s Solution) Clone() Solution {
	placements := make([]PlacedExam, len(s.Placements))
	for i, p := range s.Placements {
		group := make([]string, len(p.Group))
		copy(group, p.Group)
		p.Group = group
		placements[i] = p
	}
	warnings := make([]string, len(s.Warnings))
	copy(warnings, s.Warnings)
	return Solution{Placements: placements, Warnings: warnings}
}

// SubjectsByName returns subjects sorted by name, used wherever a
// deterministic iteration order over subjects is required for testing (the
// initializer itself shuffles a private copy).
func SubjectsByName(subjects map[string]*Subject) []*Subject {
	out := make([]*Subject, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ResultRow is one flattened (student, subject, placement) row produced by
// the result formatter.
type ResultRow struct {
	StudentID   string
	StudentName string
	Subject     string
	ExamDate    Date
	Shift       string
	StartTime   string
	EndTime     string
	Room        string
}
