// Package calendar enumerates the working dates of a scheduling horizon.
package calendar

import (
	"fmt"
	"time"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// Dates returns the chronologically ordered list of working dates between
// cfg.StartDate and cfg.EndDate (inclusive) whose weekday is not in
// cfg.OffDays. It returns model.ErrEmptyHorizon if nothing qualifies.
func Dates(cfg model.Config) ([]model.Date, error) {
	if cfg.EndDate.Before(cfg.StartDate) {
		return nil, fmt.Errorf("%w: start=%s end=%s", model.ErrInvalidHorizon,
			cfg.StartDate.Format("2006-01-02"), cfg.EndDate.Format("2006-01-02"))
	}

	var dates []model.Date
	start := model.NewDate(cfg.StartDate)
	end := model.NewDate(cfg.EndDate)
	for d := start; !d.Time.After(end.Time); d = model.NewDate(d.Time.Add(24 * time.Hour)) {
		if !cfg.OffDays[d.Weekday0()] {
			dates = append(dates, d)
		}
	}
	if len(dates) == 0 {
		return nil, model.ErrEmptyHorizon
	}
	return dates, nil
}
