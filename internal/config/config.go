// Package config loads and validates the scheduler's run configuration:
// defaults, an optional YAML file, then environment variables, the way
// noah-isme-sma-adp-api's pkg/config loads its service configuration.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rgrono/examsched/internal/examsched/model"
)

const envPrefix = "EXAMSCHED"

// RunConfig is the file/env-facing shape; ToModel converts it into the
// model.Config the core actually consumes.
type RunConfig struct {
	StartDate          string            `mapstructure:"start_date" json:"start_date"`
	EndDate            string            `mapstructure:"end_date" json:"end_date"`
	OffDays            []int             `mapstructure:"off_days" json:"off_days"`
	Shifts             []string          `mapstructure:"shifts" json:"shifts"`
	ShiftStarts        map[string]string `mapstructure:"shift_starts" json:"shift_starts"`
	ShiftEnds          map[string]string `mapstructure:"shift_ends" json:"shift_ends"`
	BreakMinutes       int               `mapstructure:"break_minutes" json:"break_minutes"`
	MinStudentsPerRoom int               `mapstructure:"min_students_per_room" json:"min_students_per_room"`
	MaxStudentsPerRoom int               `mapstructure:"max_students_per_room" json:"max_students_per_room"`

	LogLevel    string `mapstructure:"log_level"`
	MetricsAddr string `mapstructure:"metrics_addr"`
	HTTPAddr    string `mapstructure:"http_addr"`
}

// Load reads defaults, an optional YAML file at path (skipped if empty or
// absent), then EXAMSCHED_-prefixed environment variables, in that order of
// increasing precedence.
func Load(path string) (RunConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return RunConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
			}
		}
	}

	var rc RunConfig
	if err := v.Unmarshal(&rc); err != nil {
		return RunConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	return rc, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("off_days", []int{5, 6})
	v.SetDefault("shifts", []string{"Morning", "Afternoon"})
	v.SetDefault("shift_starts", map[string]string{"Morning": "07:30", "Afternoon": "13:30"})
	v.SetDefault("shift_ends", map[string]string{"Morning": "11:30", "Afternoon": "17:30"})
	v.SetDefault("break_minutes", 30)
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
}

// ToModel converts the loaded RunConfig into a model.Config, parsing dates
// and clocks, then validates the result with go-playground/validator,
// joining every field-level failure into a single error.
func ToModel(rc RunConfig) (model.Config, error) {
	start, err := time.Parse("2006-01-02", rc.StartDate)
	if err != nil {
		return model.Config{}, fmt.Errorf("parsing start_date %q: %w", rc.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", rc.EndDate)
	if err != nil {
		return model.Config{}, fmt.Errorf("parsing end_date %q: %w", rc.EndDate, err)
	}

	offDays := make(map[int]bool, len(rc.OffDays))
	for _, d := range rc.OffDays {
		offDays[d] = true
	}

	shiftTimes := make(map[string]model.Shift, len(rc.Shifts))
	for _, name := range rc.Shifts {
		startClock, err := model.ParseClock(rc.ShiftStarts[name])
		if err != nil {
			return model.Config{}, fmt.Errorf("shift %q start: %w", name, err)
		}
		endClock, err := model.ParseClock(rc.ShiftEnds[name])
		if err != nil {
			return model.Config{}, fmt.Errorf("shift %q end: %w", name, err)
		}
		shiftTimes[name] = model.Shift{Name: name, Start: startClock, End: endClock}
	}

	cfg := model.Config{
		StartDate:          start,
		EndDate:            end,
		OffDays:            offDays,
		Shifts:             rc.Shifts,
		ShiftTimes:         shiftTimes,
		BreakMinutes:       rc.BreakMinutes,
		MinStudentsPerRoom: rc.MinStudentsPerRoom,
		MaxStudentsPerRoom: rc.MaxStudentsPerRoom,
	}

	if err := Validate(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

var structValidator = validator.New()

// Validate runs go-playground/validator's struct tags over cfg and folds
// every field error into one joined error, in front of the domain-level
// model.Config.Validate() check.
func Validate(cfg model.Config) error {
	var errs []error
	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q validation", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
