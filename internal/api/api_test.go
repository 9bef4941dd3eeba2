package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleSolveHappyPath(t *testing.T) {
	log := zap.NewNop().Sugar()
	router := NewRouter(log)

	body := map[string]any{
		"config": map[string]any{
			"start_date":    "2026-08-01",
			"end_date":      "2026-08-05",
			"off_days":      []int{5, 6},
			"shifts":        []string{"Morning"},
			"shift_starts":  map[string]string{"Morning": "07:30"},
			"shift_ends":    map[string]string{"Morning": "11:30"},
			"break_minutes": 15,
		},
		"students": []map[string]any{
			{"student_id": "a", "name": "Alice", "subjects": map[string]int{"Math": 60}},
			{"student_id": "b", "name": "Bob", "subjects": map[string]int{"Math": 60}},
		},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/v1/schedules", bytes.NewReader(raw))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)

	var resp solveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Rows, 2)
}

func TestHandleSolveRejectsMalformedBody(t *testing.T) {
	log := zap.NewNop().Sugar()
	router := NewRouter(log)

	req := httptest.NewRequest("POST", "/v1/schedules", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}
