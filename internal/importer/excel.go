package importer

import (
	"bytes"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/xlsx"
)

// ExcelParser parses spreadsheet uploads via the xlsx codec.
type ExcelParser struct {
	codec xlsx.Codec
}

// Extension returns the file suffix this parser handles.
func (p *ExcelParser) Extension() string { return ".xlsx" }

// Parse reads the first sheet of the uploaded workbook.
func (p *ExcelParser) Parse(r *bytes.Reader) (schema.Table, error) {
	return p.codec.Decode(r)
}
