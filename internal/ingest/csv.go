package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// subjectHeader matches "Subject(Duration)" columns, e.g. "Toan(60)".
var subjectHeader = regexp.MustCompile(`^(.*)\((\d+)\)$`)

// CSV parses a roster where the first two columns are student id and name
// and every subsequent column is a subject, following the two header
// conventions named in spec.md §6: "Subject(duration)" headers carrying any
// truthy mark in the cell, or a bare "Subject" header carrying the duration
// directly in the cell.
func CSV(r io.Reader) ([]model.Student, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	if len(header) < 2 {
		return nil, fmt.Errorf("csv header must have at least id and name columns")
	}

	cols := parseSubjectColumns(header[2:])

	var out []model.Student
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		out = append(out, rowToStudent(row, cols))
	}
	return out, nil
}

type subjectColumn struct {
	index       int
	name        string
	fixedDur    int // >0 if header carried "(duration)"
	hasFixedDur bool
}

func parseSubjectColumns(headers []string) []subjectColumn {
	cols := make([]subjectColumn, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if m := subjectHeader.FindStringSubmatch(h); m != nil {
			dur, _ := strconv.Atoi(m[2])
			cols[i] = subjectColumn{index: i + 2, name: strings.TrimSpace(m[1]), fixedDur: dur, hasFixedDur: true}
			continue
		}
		cols[i] = subjectColumn{index: i + 2, name: h}
	}
	return cols
}

func rowToStudent(row []string, cols []subjectColumn) model.Student {
	s := model.Student{Subjects: make(map[string]int)}
	if len(row) > 0 {
		s.ID = strings.TrimSpace(row[0])
	}
	if len(row) > 1 {
		s.Name = strings.TrimSpace(row[1])
	}
	for _, col := range cols {
		if col.index >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[col.index])
		if val == "" {
			continue
		}
		if col.hasFixedDur {
			s.Subjects[col.name] = col.fixedDur
			continue
		}
		if dur, err := strconv.Atoi(val); err == nil && dur > 0 {
			s.Subjects[col.name] = dur
		}
	}
	return s
}
