// Package api exposes a thin HTTP surface over the scheduler core: one
// route that decodes a roster and configuration, runs a solve, and returns
// the formatted result rows.
package api

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rgrono/examsched/internal/config"
	"github.com/rgrono/examsched/internal/examsched/calendar"
	"github.com/rgrono/examsched/internal/examsched/model"
	"github.com/rgrono/examsched/internal/examsched/room"
	"github.com/rgrono/examsched/internal/examsched/schedule"
	"github.com/rgrono/examsched/internal/examsched/subject"
)

// solveRequest is the body of POST /v1/schedules.
type solveRequest struct {
	Config   config.RunConfig `json:"config"`
	Students []model.Student  `json:"students"`
}

// solveResponse mirrors ResultFormatter's rows plus any warnings collected
// during the build.
type solveResponse struct {
	Rows     []model.ResultRow `json:"rows"`
	Warnings []string          `json:"warnings"`
}

// NewRouter builds the chi router. log is attached to the request context
// with a per-request google/uuid request id for correlation, the way
// When-To-whento's middleware.RequestID feeds its own logger.
func NewRouter(log *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDLogger(log))

	r.Post("/v1/schedules", handleSolve)
	return r
}

type ctxKey int

const loggerKey ctxKey = iota

func withLogger(ctx context.Context, log *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

func loggerFrom(ctx context.Context) *zap.SugaredLogger {
	if log, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return log
	}
	return zap.NewNop().Sugar()
}

func requestIDLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqID := uuid.NewString()
			scoped := log.With("request_id", reqID)
			ctx := withLogger(req.Context(), scoped)
			w.Header().Set("X-Request-Id", reqID)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func handleSolve(w http.ResponseWriter, r *http.Request) {
	log := loggerFrom(r.Context())

	var body solveRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		log.Warnw("decoding solve request", "error", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	cfg, err := config.ToModel(body.Config)
	if err != nil {
		log.Warnw("invalid config", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	dates, err := calendar.Dates(cfg)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	idx, err := subject.Build(body.Students)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if len(cfg.Rooms) == 0 {
		cfg.Rooms = room.AutoSize(idx.Subjects, dates, &cfg)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	best, _ := schedule.Optimize(idx.Subjects, dates, cfg, rng)

	resp := solveResponse{
		Rows:     schedule.FormatResults(best, body.Students),
		Warnings: append(idx.Warnings, best.Warnings...),
	}

	log.Infow("solve complete", "placements", len(best.Placements), "warnings", len(resp.Warnings))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
