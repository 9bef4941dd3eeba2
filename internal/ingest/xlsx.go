package ingest

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rgrono/examsched/internal/examsched/model"
)

// XLSX parses a roster workbook's first sheet using the same header
// conventions as CSV, via excelize.
func XLSX(r io.Reader) ([]model.Student, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("workbook sheet %q is empty", sheet)
	}

	header := rows[0]
	if len(header) < 2 {
		return nil, fmt.Errorf("xlsx header must have at least id and name columns")
	}
	cols := parseSubjectColumns(header[2:])

	out := make([]model.Student, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		out = append(out, rowToStudent(row, cols))
	}
	return out, nil
}
