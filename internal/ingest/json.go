// Package ingest turns uploaded rosters (JSON, CSV, XLSX) into the
// []model.Student shape the scheduler core consumes. It is an external
// collaborator, not part of the core's tested contract.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// rawStudent mirrors the tolerant shapes the original service accepted:
// subjects as either a map of name->duration, or a list of objects with
// aliased name/duration keys.
type rawStudent struct {
	StudentID string          `json:"student_id"`
	Name      string          `json:"name"`
	Subjects  json.RawMessage `json:"subjects"`
}

type rawSubjectEntry struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	SubjectName string `json:"subject_name"`
	Duration    int    `json:"duration"`
	Time        int    `json:"time"`
	Minutes     int    `json:"minutes"`
}

// JSON parses either a bare array of students or an object shaped
// {"students": [...]}, matching both envelopes the upstream service had to
// tolerate.
func JSON(r io.Reader) ([]model.Student, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading roster json: %w", err)
	}

	var list []rawStudent
	if err := json.Unmarshal(raw, &list); err != nil {
		var envelope struct {
			Students []rawStudent `json:"students"`
		}
		if err2 := json.Unmarshal(raw, &envelope); err2 != nil {
			return nil, fmt.Errorf("decoding roster json: %w", err)
		}
		list = envelope.Students
	}

	out := make([]model.Student, 0, len(list))
	for _, item := range list {
		subjects, err := decodeSubjects(item.Subjects)
		if err != nil {
			return nil, fmt.Errorf("student %q: %w", item.StudentID, err)
		}
		out = append(out, model.Student{ID: item.StudentID, Name: item.Name, Subjects: subjects})
	}
	return out, nil
}

func decodeSubjects(raw json.RawMessage) (map[string]int, error) {
	subjects := make(map[string]int)
	if len(raw) == 0 {
		return subjects, nil
	}

	var asMap map[string]int
	if err := json.Unmarshal(raw, &asMap); err == nil {
		return asMap, nil
	}

	var asList []rawSubjectEntry
	if err := json.Unmarshal(raw, &asList); err != nil {
		return nil, fmt.Errorf("subjects must be a map or a list: %w", err)
	}
	for _, e := range asList {
		name := firstNonEmpty(e.Name, e.Subject, e.SubjectName)
		duration := firstPositive(e.Duration, e.Time, e.Minutes)
		if name != "" && duration > 0 {
			subjects[name] = duration
		}
	}
	return subjects, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
