// Command examsched generates and optimizes an exam timetable.
package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgrono/examsched/internal/config"
	"github.com/rgrono/examsched/internal/examsched/calendar"
	"github.com/rgrono/examsched/internal/examsched/model"
	"github.com/rgrono/examsched/internal/examsched/room"
	"github.com/rgrono/examsched/internal/examsched/schedule"
	"github.com/rgrono/examsched/internal/examsched/subject"
	"github.com/rgrono/examsched/internal/ingest"
	"github.com/rgrono/examsched/internal/telemetry"
)

var (
	workers     = runtime.NumCPU()
	configPath  = "examsched.yaml"
	rosterPath  = "students.json"
	outPrefix   = "schedule"
	metricsAddr = ""
	logLevel    = "info"
)

func main() {
	root := &cobra.Command{
		Use:   "examsched",
		Short: "Exam timetable generator",
		Long:  "A tool to generate exam timetables while minimizing room overlaps,\nstudent conflicts, and overloaded days.",
	}

	gen := &cobra.Command{
		Use:   "gen",
		Short: "generate and optimize a timetable",
		RunE:  runGen,
	}
	gen.Flags().IntVar(&workers, "workers", workers, "number of concurrent workers, each running an independent restart series")
	gen.Flags().StringVar(&configPath, "config", configPath, "path to a YAML run configuration")
	gen.Flags().StringVar(&rosterPath, "roster", rosterPath, "path to the student roster (.json, .csv, or .xlsx)")
	gen.Flags().StringVar(&outPrefix, "out", outPrefix, "output file prefix (.csv suffix will be added)")
	gen.Flags().StringVar(&metricsAddr, "metrics-addr", metricsAddr, "if set, serve Prometheus metrics on this address")
	gen.Flags().StringVar(&logLevel, "log-level", logLevel, "log level: debug, info, warn, error")
	root.AddCommand(gen)

	if err := root.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func runGen(cmd *cobra.Command, args []string) error {
	logger, err := telemetry.NewLogger(logLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck

	metrics := telemetry.NewMetrics()
	if metricsAddr != "" {
		go func() {
			logger.Infow("serving metrics", "addr", metricsAddr)
			if err := http.ListenAndServe(metricsAddr, metrics.Handler()); err != nil {
				logger.Errorw("metrics server stopped", "error", err)
			}
		}()
	}

	runCfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg, err := config.ToModel(runCfg)
	if err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	students, err := readRoster(rosterPath)
	if err != nil {
		return fmt.Errorf("reading roster: %w", err)
	}
	logger.Infow("roster loaded", "students", len(students))

	dates, err := calendar.Dates(cfg)
	if err != nil {
		return fmt.Errorf("computing calendar: %w", err)
	}

	idx, err := subject.Build(students)
	if err != nil {
		return fmt.Errorf("indexing subjects: %w", err)
	}
	for _, w := range idx.Warnings {
		logger.Warnw("subject index warning", "warning", w)
	}

	if len(cfg.Rooms) == 0 {
		cfg.Rooms = room.AutoSize(idx.Subjects, dates, &cfg)
		logger.Infow("auto-sized rooms", "count", len(cfg.Rooms), "max_students_per_room", cfg.MaxStudentsPerRoom)
	}

	best, bestCost := runWorkers(cfg, idx, dates, workers, logger, metrics)
	logger.Infow("best solution found", "cost", bestCost, "placements", len(best.Placements))

	rows := schedule.FormatResults(best, students)
	if err := writeCSV(outPrefix+".csv", rows); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// runWorkers fans a worker pool across independently-seeded restart series,
// the way the teacher's main.go fans SearchState.Clone() across goroutines
// while Solve() itself stays synchronous (spec.md §5).
func runWorkers(
	cfg model.Config,
	idx subject.Index,
	dates []model.Date,
	workers int,
	logger interface {
		Infow(string, ...interface{})
	},
	metrics *telemetry.Metrics,
) (model.Solution, float64) {
	type result struct {
		sol  model.Solution
		cost float64
	}

	results := make(chan result, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			sol, logs := schedule.Optimize(idx.Subjects, dates, cfg, rng)
			cost := schedule.Cost(sol, cfg)
			runningBest := -1.0
			for _, l := range logs {
				improved := runningBest < 0 || l.FinalCost < runningBest
				if improved {
					runningBest = l.FinalCost
				}
				metrics.ObserveRestart(l.FinalCost, improved)
			}
			results <- result{sol: sol, cost: cost}
		}(time.Now().UnixNano() + int64(w))
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	var best model.Solution
	bestCost := -1.0
	for r := range results {
		if bestCost < 0 || r.cost < bestCost {
			best = r.sol
			bestCost = r.cost
			logger.Infow("new best across workers", "cost", bestCost)
		}
	}
	return best, bestCost
}

func readRoster(path string) ([]model.Student, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(path, ".csv"):
		return ingest.CSV(f)
	case strings.HasSuffix(path, ".xlsx"):
		return ingest.XLSX(f)
	default:
		return ingest.JSON(f)
	}
}

func writeCSV(path string, rows []model.ResultRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"student_id", "student_name", "subject", "date", "shift", "start", "end", "room"}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			r.StudentID, r.StudentName, r.Subject, r.ExamDate.String(), r.Shift, r.StartTime, r.EndTime, r.Room,
		}); err != nil {
			return err
		}
	}
	return nil
}
