package schedule

import (
	"math"
	"sort"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// Cost weights from spec.md §4.7.
const (
	weightMinBreach    = 500
	weightMaxBreach    = 1000
	weightRoomOverlap  = 5000
	weightStudentClash = 2000
	weightOverloadBase = 50
	overloadThreshold  = 2
	largeGapThreshold  = 120 // minutes
)

// Cost computes the weighted penalty for a candidate solution per spec.md
// §4.7: hard-constraint violations (min/max breach, room overlap, student
// clash) plus soft penalties (overloaded days, large gaps, room-occupancy
// imbalance).
func Cost(sol model.Solution, cfg model.Config) float64 {
	var total float64

	roomGroupSizes := make(map[string][]int) // room -> group sizes, for imbalance
	roomDay := make(map[roomDayKey][]int)     // room+date -> indices into sol.Placements, for overlap scan
	studentDay := make(map[studentDayKey][]int)
	studentIntervals := make(map[string][]int)

	for i, p := range sol.Placements {
		n := len(p.Group)

		if cfg.MinStudentsPerRoom > 0 && n < cfg.MinStudentsPerRoom {
			total += weightMinBreach
		}
		if cfg.MaxStudentsPerRoom > 0 && n > cfg.MaxStudentsPerRoom {
			total += weightMaxBreach
		}
		roomGroupSizes[p.Room] = append(roomGroupSizes[p.Room], n)

		rdk := roomDayKey{room: p.Room, date: p.Date.String()}
		for _, j := range roomDay[rdk] {
			if p.Overlaps(sol.Placements[j]) {
				total += weightRoomOverlap
			}
		}
		roomDay[rdk] = append(roomDay[rdk], i)

		for _, sid := range p.Group {
			for _, j := range studentIntervals[sid] {
				if p.Overlaps(sol.Placements[j]) {
					total += weightStudentClash
				}
			}
			studentIntervals[sid] = append(studentIntervals[sid], i)

			sdk := studentDayKey{student: sid, date: p.Date.String()}
			studentDay[sdk] = append(studentDay[sdk], i)
		}
	}

	// OverloadedDay and LargeGap: group each student's placements by date
	perStudentDay := make(map[string]map[string][]int)
	for sdk, idxs := range studentDay {
		m, ok := perStudentDay[sdk.student]
		if !ok {
			m = make(map[string][]int)
			perStudentDay[sdk.student] = m
		}
		m[sdk.date] = idxs
	}
	for _, byDate := range perStudentDay {
		for _, idxs := range byDate {
			c := len(idxs)
			if c > overloadThreshold {
				total += weightOverloadBase * math.Pow(2, float64(c-overloadThreshold))
			}
			if c >= 2 {
				// Matches the original's ordering exactly: the end of the
				// earliest-starting exam to the start of the latest-starting
				// one, not the tightest end/start across the whole day.
				byStart := make([]int, len(idxs))
				copy(byStart, idxs)
				sort.Slice(byStart, func(i, j int) bool {
					return sol.Placements[byStart[i]].Start < sol.Placements[byStart[j]].Start
				})
				firstEnd := sol.Placements[byStart[0]].End
				lastStart := sol.Placements[byStart[len(byStart)-1]].Start
				gap := int(lastStart) - int(firstEnd)
				if gap > largeGapThreshold {
					total += float64(gap) / 60.0
				}
			}
		}
	}

	// Imbalance: biased-estimator (divide by N) standard deviation of all
	// placed group sizes, per spec.md §9's resolved open question.
	var allSizes []int
	for _, sizes := range roomGroupSizes {
		allSizes = append(allSizes, sizes...)
	}
	if len(allSizes) > 1 {
		total += stddev(allSizes)
	}

	return total
}

type roomDayKey struct {
	room string
	date string
}

type studentDayKey struct {
	student string
	date    string
}

func stddev(values []int) float64 {
	n := float64(len(values))
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	mean := sum / n
	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}
	return math.Sqrt(sq / n)
}
