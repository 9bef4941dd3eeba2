// Package schedule holds the greedy constructor, the perturbation operator,
// the cost model, and the hill-climbing optimizer that together make up the
// scheduler's core (spec.md §4.5-§4.9).
package schedule

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/rgrono/examsched/internal/examsched/grouping"
	"github.com/rgrono/examsched/internal/examsched/model"
)

// roomClock tracks, for one room on one (date, shift), the next time an
// exam may begin there.
type roomClock struct {
	room  string
	date  int // index into dates
	shift string
}

// Initialize builds one candidate solution via the greedy constructor
// described in spec.md §4.5: a randomized subject order is placed one at a
// time into the earliest (date, shift) that can host it, balancing day load
// and splitting the cohort across rooms as needed.
func Initialize(subjects map[string]*model.Subject, dates []model.Date, cfg model.Config, rng *rand.Rand) model.Solution {
	order := make([]*model.Subject, 0, len(subjects))
	for _, s := range model.SubjectsByName(subjects) {
		order = append(order, s)
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	nextFree := make(map[roomClock]model.Clock)
	for _, r := range cfg.Rooms {
		for di := range dates {
			for _, sh := range cfg.Shifts {
				nextFree[roomClock{r.Name, di, sh}] = cfg.ShiftTimes[sh].Start
			}
		}
	}

	dateLoad := make([]int, len(dates))
	var placements []model.PlacedExam
	var warnings []string

	// one entry per student id that already has a placed exam, used for the
	// per-group conflict check in step 2e
	studentPlacements := make(map[string][]int) // student id -> indices into placements

	for _, sub := range order {
		if placeSubject(sub, dates, cfg, &nextFree, dateLoad, &placements, studentPlacements) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("cannot schedule subject %s (%d students)", sub.Name, len(sub.StudentID)))
	}

	return model.Solution{Placements: placements, Warnings: warnings}
}

// placeSubject attempts to place sub into the earliest viable (date, shift)
// and reports whether it succeeded.
func placeSubject(
	sub *model.Subject,
	dates []model.Date,
	cfg model.Config,
	nextFree *map[roomClock]model.Clock,
	dateLoad []int,
	placements *[]model.PlacedExam,
	studentPlacements map[string][]int,
) bool {
	dateOrder := make([]int, len(dates))
	for i := range dateOrder {
		dateOrder[i] = i
	}
	sort.SliceStable(dateOrder, func(i, j int) bool {
		return dateLoad[dateOrder[i]] < dateLoad[dateOrder[j]]
	})

	for _, di := range dateOrder {
		for _, shiftName := range cfg.Shifts {
			sh := cfg.ShiftTimes[shiftName]

			type option struct {
				room  string
				start model.Clock
				end   model.Clock
			}
			var available []option
			for _, r := range cfg.Rooms {
				start := (*nextFree)[roomClock{r.Name, di, shiftName}]
				end := start.Add(sub.Duration)
				if end <= sh.End {
					available = append(available, option{room: r.Name, start: start, end: end})
				}
			}
			if len(available) == 0 {
				continue
			}

			targetRooms := targetRoomCount(len(sub.StudentID), len(available), cfg)
			if targetRooms <= 0 {
				continue
			}

			groups := grouping.Split(sub.StudentID, targetRooms)

			// per-group conflict check (spec.md §4.5 step 2e): reject the
			// whole (date, shift) attempt if any group member already has an
			// overlapping placement
			candidate := model.PlacedExam{
				Date:     dates[di],
				Shift:    shiftName,
				Duration: sub.Duration,
				Subject:  sub.Name,
			}
			conflict := false
			for gi, grp := range groups {
				if len(grp) == 0 {
					continue
				}
				opt := available[gi]
				c := candidate
				c.Start, c.End, c.Room, c.Group = opt.start, opt.end, opt.room, grp
				for _, sid := range grp {
					for _, idx := range studentPlacements[sid] {
						if c.Overlaps((*placements)[idx]) {
							conflict = true
							break
						}
					}
					if conflict {
						break
					}
				}
				if conflict {
					break
				}
			}
			if conflict {
				continue
			}

			// commit
			for gi, grp := range groups {
				if len(grp) == 0 {
					continue
				}
				opt := available[gi]
				placed := model.PlacedExam{
					Date:     dates[di],
					Shift:    shiftName,
					Start:    opt.start,
					End:      opt.end,
					Room:     opt.room,
					Subject:  sub.Name,
					Duration: sub.Duration,
					Group:    grp,
				}
				idx := len(*placements)
				*placements = append(*placements, placed)
				(*nextFree)[roomClock{opt.room, di, shiftName}] = opt.end.Add(cfg.BreakMinutes)
				dateLoad[di] += len(grp)
				for _, sid := range grp {
					studentPlacements[sid] = append(studentPlacements[sid], idx)
				}
			}
			return true
		}
	}
	return false
}

// targetRoomCount implements spec.md §4.5.1's target-room selection.
func targetRoomCount(n, maxRooms int, cfg model.Config) int {
	minS, maxS := cfg.MinStudentsPerRoom, cfg.MaxStudentsPerRoom

	switch {
	case minS > 0 && maxS > 0 && minS <= maxS:
		if n < minS {
			return 1
		}
		minR := ceilDiv(n, maxS)
		maxRAllowed := n / minS

		upper := maxRAllowed
		if maxRooms < upper {
			upper = maxRooms
		}
		for r := upper; r >= minR; r-- {
			if r > 0 {
				return r
			}
		}
		if minR <= maxRooms {
			return minR
		}
		return 0

	case maxS > 0:
		required := ceilDiv(n, maxS)
		if required > maxRooms {
			return 0
		}
		return maxRooms

	default:
		return maxRooms
	}
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return int(math.Ceil(float64(a) / float64(b)))
}
