package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
)

// CSVParser parses delimited-text uploads. Column names may appear in
// any order; unknown columns survive here and are dropped by schema
// enforcement.
type CSVParser struct{}

// Extension returns the file suffix this parser handles.
func (p *CSVParser) Extension() string { return ".csv" }

// Parse reads the whole upload. Rows may vary in width; short rows are
// padded with null cells during enforcement.
func (p *CSVParser) Parse(r *bytes.Reader) (schema.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // imported files are not trusted to be rectangular

	records, err := cr.ReadAll()
	if err != nil {
		return schema.Table{}, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return schema.Table{}, nil
	}
	return schema.Table{Header: records[0], Rows: records[1:]}, nil
}
