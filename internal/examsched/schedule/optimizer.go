package schedule

import (
	"math/rand"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// Optimizer bounds, per spec.md §4.8.
const (
	MaxRestarts             = 5
	MaxIterationsPerRestart = 1000
)

// RestartLog records one random restart's outcome, useful for diagnostics
// and for the CLI's restart metrics.
type RestartLog struct {
	Restart    int
	Iterations int
	FinalCost  float64
	Accepted   int
}

// Optimize runs the hill-climbing search with random restarts described in
// spec.md §4.8: each restart builds a fresh greedy initial solution, then
// repeatedly perturbs it and keeps the perturbation only if it strictly
// lowers cost, for up to MaxIterationsPerRestart iterations or until cost
// reaches zero. The best solution seen across all restarts is returned.
func Optimize(
	subjects map[string]*model.Subject,
	dates []model.Date,
	cfg model.Config,
	rng *rand.Rand,
) (model.Solution, []RestartLog) {
	var best model.Solution
	bestCost := -1.0
	logs := make([]RestartLog, 0, MaxRestarts)

	for restart := 0; restart < MaxRestarts; restart++ {
		cur := Initialize(subjects, dates, cfg, rng)
		curCost := Cost(cur, cfg)

		log := RestartLog{Restart: restart}
		iterations := 0
		for ; iterations < MaxIterationsPerRestart; iterations++ {
			if curCost == 0 {
				break
			}

			candidate := cur.Clone()
			Neighbor(&candidate, rng)
			candidateCost := Cost(candidate, cfg)

			if candidateCost < curCost {
				cur = candidate
				curCost = candidateCost
				log.Accepted++
			}
		}
		log.Iterations = iterations
		log.FinalCost = curCost
		logs = append(logs, log)

		if bestCost < 0 || curCost < bestCost {
			best = cur.Clone()
			bestCost = curCost
		}
		if bestCost == 0 {
			break
		}
	}

	return best, logs
}
