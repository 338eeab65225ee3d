// Package parser loads the pipeline's input artifacts: a tabular
// spreadsheet with one privacy policy per row, or a single policy
// document as plain text or PDF.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrNoPolicyColumn is returned when the table header has no
	// recognizable text column.
	ErrNoPolicyColumn = errors.New("parser: no policy text column found")

	// ErrEmptyTable is returned for a table without any rows.
	ErrEmptyTable = errors.New("parser: input table contains no rows")
)

// Policy is one input row: a named policy and its full text.
type Policy struct {
	Name string
	Text string
}

// LoadTable reads policies from the first sheet of an xlsx file. The
// text column is the header named exactly "policy", else the first
// header containing "policy", "text" or "content" (case-insensitive).
// Rows with a blank text cell are skipped; rows without a name get a
// positional default.
func LoadTable(path string) ([]Policy, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptyTable
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyTable
	}

	header := rows[0]
	textCol, err := policyColumn(header)
	if err != nil {
		return nil, err
	}
	nameCol := columnNamed(header, "name")

	var policies []Policy
	for i, row := range rows[1:] {
		text := cell(row, textCol)
		if strings.TrimSpace(text) == "" {
			continue
		}
		name := strings.TrimSpace(cell(row, nameCol))
		if name == "" {
			name = fmt.Sprintf("政策_%d", i+1)
		}
		policies = append(policies, Policy{Name: name, Text: text})
	}
	return policies, nil
}

// policyColumn finds the text column: an exact "policy" header wins,
// then the first header containing one of the candidate substrings.
func policyColumn(header []string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "policy") {
			return i, nil
		}
	}
	for i, h := range header {
		lower := strings.ToLower(h)
		if strings.Contains(lower, "policy") || strings.Contains(lower, "text") || strings.Contains(lower, "content") {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w (columns: %s)", ErrNoPolicyColumn, strings.Join(header, ", "))
}

// columnNamed returns the index of the header equal to name
// (case-insensitive), or -1.
func columnNamed(header []string, name string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

// cell returns row[i], tolerating ragged rows and -1 indices.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
