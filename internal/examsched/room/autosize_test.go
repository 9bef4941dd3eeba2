package room

import (
	"testing"
	"time"

	"github.com/rgrono/examsched/internal/examsched/model"
)

func TestAutoSizeUsesPeakParallelWhenCapacityIsZero(t *testing.T) {
	subjects := map[string]*model.Subject{
		"Math": {Name: "Math", Duration: 60, StudentID: []string{"a", "b", "c"}},
	}
	cfg := model.Config{MaxStudentsPerRoom: 1}
	rooms := AutoSize(subjects, nil, &cfg)
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms (peak parallel with capacity=0), got %d", len(rooms))
	}
}

func TestAutoSizeDefaultsMaxStudentsPerRoom(t *testing.T) {
	subjects := map[string]*model.Subject{
		"Math": {Name: "Math", Duration: 60, StudentID: make([]string, 60)},
	}
	cfg := model.Config{
		Shifts:     []string{"Morning"},
		ShiftTimes: map[string]model.Shift{"Morning": {Name: "Morning", Start: 0, End: 240}},
	}
	dates := []model.Date{model.NewDate(mustDate(t, "2026-08-01"))}

	rooms := AutoSize(subjects, dates, &cfg)
	// 60 students / 50 default max = 2 batches * 60 min = 120 demand minutes;
	// capacity = 240; 120*1.2/240 = 0.6 -> ceil 1; peak parallel = 2 -> room count 2
	if len(rooms) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(rooms))
	}
	if cfg.MaxStudentsPerRoom != DefaultMaxStudentsPerRoom {
		t.Fatalf("expected cfg.MaxStudentsPerRoom to be written back to %d, got %d", DefaultMaxStudentsPerRoom, cfg.MaxStudentsPerRoom)
	}
}

func TestAutoSizeAtLeastOneRoom(t *testing.T) {
	cfg := model.Config{}
	rooms := AutoSize(map[string]*model.Subject{}, nil, &cfg)
	if len(rooms) != 1 {
		t.Fatalf("expected at least 1 room, got %d", len(rooms))
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parsing date: %v", err)
	}
	return parsed
}
