// Package subject builds the derived per-subject aggregates (duration plus
// enrolled cohort) from a raw list of students.
package subject

import (
	"fmt"
	"sort"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// Index is the immutable result of aggregating a student roster: one
// model.Subject per distinct subject name, plus any duration-inconsistency
// warnings raised along the way.
type Index struct {
	Subjects map[string]*model.Subject
	Warnings []string
}

// Build aggregates subjects across students. For each (subject name,
// duration) pair seen, the student id is added to that subject's cohort. If
// the same subject name is later seen with a different duration, the first
// observed duration is kept and a DurationInconsistency warning is recorded
// (spec.md §4.2, §7) — it is not fatal.
func Build(students []model.Student) (Index, error) {
	if len(students) == 0 {
		return Index{}, model.ErrEmptyRoster
	}

	type accum struct {
		duration int
		ids      []string
		seen     map[string]bool
	}
	order := make([]string, 0)
	subjects := make(map[string]*accum)
	var warnings []string

	for _, st := range students {
		// deterministic iteration over this student's subjects for
		// reproducible warning ordering
		names := make([]string, 0, len(st.Subjects))
		for name := range st.Subjects {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			duration := st.Subjects[name]
			a, ok := subjects[name]
			if !ok {
				a = &accum{duration: duration, seen: make(map[string]bool)}
				subjects[name] = a
				order = append(order, name)
			}
			if duration != a.duration {
				warnings = append(warnings, fmt.Sprintf(
					"subject %q: duration %d for student %s conflicts with previously recorded duration %d; keeping %d",
					name, duration, st.ID, a.duration, a.duration))
			}
			if !a.seen[st.ID] {
				a.seen[st.ID] = true
				a.ids = append(a.ids, st.ID)
			}
		}
	}

	out := make(map[string]*model.Subject, len(subjects))
	for _, name := range order {
		a := subjects[name]
		out[name] = &model.Subject{Name: name, Duration: a.duration, StudentID: a.ids}
	}

	return Index{Subjects: out, Warnings: warnings}, nil
}
