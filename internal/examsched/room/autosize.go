// Package room estimates how many rooms a schedule needs when none are
// configured.
package room

import (
	"fmt"
	"math"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// DefaultMaxStudentsPerRoom is used when no max is configured at all, per
// spec.md §4.4 step 1.
const DefaultMaxStudentsPerRoom = 50

// fragmentationBuffer compensates for unused trailing shift minutes and
// break intervals (spec.md §4.4).
const fragmentationBuffer = 1.2

// AutoSize estimates a sufficient room count for the given subjects, dates,
// and shifts, following spec.md §4.4. The caller is expected to install the
// returned rooms onto cfg.Rooms. If cfg.MaxStudentsPerRoom is unset, AutoSize
// writes DefaultMaxStudentsPerRoom back into it, matching the original's
// behavior of persisting the 50 cap globally (scheduler.py's
// _auto_generate_rooms sets self.config.max_students_per_room = 50) so that
// the same cap reaches the initializer's placement branch and the cost
// model's MaxBreach penalty.
func AutoSize(subjects map[string]*model.Subject, dates []model.Date, cfg *model.Config) []model.Room {
	if cfg.MaxStudentsPerRoom <= 0 {
		cfg.MaxStudentsPerRoom = DefaultMaxStudentsPerRoom
	}
	maxPerRoom := cfg.MaxStudentsPerRoom

	totalDemandMinutes := 0
	peakParallel := 1
	for _, sub := range subjects {
		batches := int(math.Ceil(float64(len(sub.StudentID)) / float64(maxPerRoom)))
		if batches < 1 {
			batches = 1
		}
		totalDemandMinutes += batches * sub.Duration
		if batches > peakParallel {
			peakParallel = batches
		}
	}

	capacityMinutesPerRoom := 0
	for range dates {
		for _, name := range cfg.Shifts {
			sh := cfg.ShiftTimes[name]
			capacityMinutesPerRoom += sh.Minutes()
		}
	}

	estimate := 1
	if capacityMinutesPerRoom > 0 {
		estimate = int(math.Ceil(float64(totalDemandMinutes) * fragmentationBuffer / float64(capacityMinutesPerRoom)))
	}

	count := estimate
	if count < 1 {
		count = 1
	}
	if count < peakParallel {
		count = peakParallel
	}

	rooms := make([]model.Room, count)
	for i := range rooms {
		rooms[i] = model.Room{Name: fmt.Sprintf("Phòng %d", i+1)}
	}
	return rooms
}
