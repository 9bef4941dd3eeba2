package schedule

import (
	"testing"

	"github.com/rgrono/examsched/internal/examsched/model"
)

func TestFormatResultsResolvesNames(t *testing.T) {
	students := []model.Student{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	}
	sol := model.Solution{Placements: []model.PlacedExam{
		{Subject: "Math", Date: model.NewDate(parseOrPanic("2026-08-01")), Shift: "Morning", Start: 0, End: 60, Room: "R1", Group: []string{"a", "b"}},
	}}

	rows := FormatResults(sol, students)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	for _, r := range rows {
		if r.StudentName == "" {
			t.Fatalf("expected a resolved name for every row")
		}
	}
}

func TestFormatResultsFallsBackToUnknown(t *testing.T) {
	sol := model.Solution{Placements: []model.PlacedExam{
		{Subject: "Math", Date: model.NewDate(parseOrPanic("2026-08-01")), Shift: "Morning", Start: 0, End: 60, Room: "R1", Group: []string{"ghost"}},
	}}

	rows := FormatResults(sol, nil)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].StudentName != unknownStudentName {
		t.Fatalf("expected fallback name %q, got %q", unknownStudentName, rows[0].StudentName)
	}
}

func TestFormatResultsSortedByStudentNameThenDate(t *testing.T) {
	students := []model.Student{
		{ID: "b", Name: "Bob"},
		{ID: "a", Name: "Alice"},
	}
	sol := model.Solution{Placements: []model.PlacedExam{
		{Subject: "Physics", Date: model.NewDate(parseOrPanic("2026-08-02")), Shift: "Morning", Start: 0, End: 60, Room: "R1", Group: []string{"b"}},
		{Subject: "Math", Date: model.NewDate(parseOrPanic("2026-08-01")), Shift: "Morning", Start: 0, End: 60, Room: "R1", Group: []string{"a"}},
	}}

	rows := FormatResults(sol, students)
	if rows[0].StudentName != "Alice" || rows[1].StudentName != "Bob" {
		t.Fatalf("expected Alice before Bob, got %v then %v", rows[0].StudentName, rows[1].StudentName)
	}
}
