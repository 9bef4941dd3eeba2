package schedule

import (
	"math/rand"
	"testing"

	"github.com/rgrono/examsched/internal/examsched/model"
)

func TestOptimizeTrivialSingleSubjectReachesZeroCost(t *testing.T) {
	subjects := map[string]*model.Subject{
		"Math": {Name: "Math", Duration: 60, StudentID: []string{"a", "b"}},
	}
	cfg := model.Config{
		Shifts:     []string{"Morning"},
		ShiftTimes: map[string]model.Shift{"Morning": {Name: "Morning", Start: 0, End: 120}},
		Rooms:      []model.Room{{Name: "R1"}},
	}
	dates := []model.Date{model.NewDate(parseOrPanic("2026-08-01"))}
	rng := rand.New(rand.NewSource(42))

	best, logs := Optimize(subjects, dates, cfg, rng)

	if len(best.Placements) != 1 {
		t.Fatalf("expected 1 placement, got %d", len(best.Placements))
	}
	if got := Cost(best, cfg); got != 0 {
		t.Fatalf("expected zero-cost solution for trivial case, got %v", got)
	}
	if len(logs) == 0 {
		t.Fatalf("expected at least one restart log")
	}
}

func TestOptimizeBestCostNotAboveAnyRestartFinalCost(t *testing.T) {
	subjects := map[string]*model.Subject{
		"Math":    {Name: "Math", Duration: 60, StudentID: []string{"a", "b", "c"}},
		"Physics": {Name: "Physics", Duration: 60, StudentID: []string{"d", "e"}},
	}
	cfg := model.Config{
		Shifts:     []string{"Morning"},
		ShiftTimes: map[string]model.Shift{"Morning": {Name: "Morning", Start: 0, End: 120}},
		Rooms:      []model.Room{{Name: "R1"}, {Name: "R2"}},
	}
	dates := []model.Date{
		model.NewDate(parseOrPanic("2026-08-01")),
		model.NewDate(parseOrPanic("2026-08-02")),
	}
	rng := rand.New(rand.NewSource(7))

	best, logs := Optimize(subjects, dates, cfg, rng)
	bestCost := Cost(best, cfg)

	for _, l := range logs {
		if bestCost > l.FinalCost {
			t.Fatalf("best cost %v should never exceed a restart's final cost %v", bestCost, l.FinalCost)
		}
	}
}

func TestOptimizeDeterministicWithSeededRand(t *testing.T) {
	subjects := map[string]*model.Subject{
		"Math": {Name: "Math", Duration: 60, StudentID: []string{"a", "b", "c", "d"}},
	}
	cfg := model.Config{
		Shifts:             []string{"Morning"},
		ShiftTimes:         map[string]model.Shift{"Morning": {Name: "Morning", Start: 0, End: 120}},
		Rooms:              []model.Room{{Name: "R1"}},
		MaxStudentsPerRoom: 2,
	}
	dates := []model.Date{model.NewDate(parseOrPanic("2026-08-01"))}

	best1, _ := Optimize(subjects, dates, cfg, rand.New(rand.NewSource(99)))
	best2, _ := Optimize(subjects, dates, cfg, rand.New(rand.NewSource(99)))

	if Cost(best1, cfg) != Cost(best2, cfg) {
		t.Fatalf("expected identical seeds to reach identical best cost")
	}
	if len(best1.Placements) != len(best2.Placements) {
		t.Fatalf("expected identical seeds to produce same placement count")
	}
}
