package schedule

import (
	"math/rand"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// Neighbor perturbs a candidate solution by exchanging the subject payload
// (subject name, duration, student group) between two distinct occupied
// placements, then re-deriving the end time at each slot from its fixed
// start time and new duration (spec.md §4.6). It does not verify
// feasibility; the cost model is the sole arbiter of whether the result is
// an improvement. cur is mutated in place and also returned.
func Neighbor(cur *model.Solution, rng *rand.Rand) *model.Solution {
	n := len(cur.Placements)
	if n < 2 {
		return cur
	}

	i := rng.Intn(n)
	j := rng.Intn(n)
	for j == i {
		j = rng.Intn(n)
	}

	pi, pj := &cur.Placements[i], &cur.Placements[j]
	pi.Subject, pj.Subject = pj.Subject, pi.Subject
	pi.Duration, pj.Duration = pj.Duration, pi.Duration
	pi.Group, pj.Group = pj.Group, pi.Group

	pi.End = pi.Start.Add(pi.Duration)
	pj.End = pj.Start.Add(pj.Duration)

	return cur
}
