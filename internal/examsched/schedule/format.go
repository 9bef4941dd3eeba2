package schedule

import (
	"sort"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// unknownStudentName is substituted for any student id present in a
// placement's group but absent from the roster passed to FormatResults,
// per spec.md §4.9.
const unknownStudentName = "Unknown"

// FormatResults flattens a solution's placements into one row per
// (student, exam) pair, resolving each student id to a display name via
// students. Rows are sorted by student name, then exam date, then start
// time, for stable, readable output.
func FormatResults(sol model.Solution, students []model.Student) []model.ResultRow {
	names := make(map[string]string, len(students))
	for _, s := range students {
		names[s.ID] = s.Name
	}

	var rows []model.ResultRow
	for _, p := range sol.Placements {
		for _, sid := range p.Group {
			name, ok := names[sid]
			if !ok {
				name = unknownStudentName
			}
			rows = append(rows, model.ResultRow{
				StudentID:   sid,
				StudentName: name,
				Subject:     p.Subject,
				ExamDate:    p.Date,
				Shift:       p.Shift,
				StartTime:   p.Start.String(),
				EndTime:     p.End.String(),
				Room:        p.Room,
			})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].StudentName != rows[j].StudentName {
			return rows[i].StudentName < rows[j].StudentName
		}
		if !rows[i].ExamDate.Time.Equal(rows[j].ExamDate.Time) {
			return rows[i].ExamDate.Before(rows[j].ExamDate)
		}
		return rows[i].StartTime < rows[j].StartTime
	})

	return rows
}
