// Package exporter serializes the full ledger to downloadable byte
// streams.
package exporter

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/ledger"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
)

// ErrExcelUnavailable is returned when no spreadsheet encoder is wired.
// Callers degrade to an informational message instead of failing the
// whole export path.
var ErrExcelUnavailable = errors.New("spreadsheet export unavailable: no encoder configured")

// ExcelEncoder renders a canonical table as a spreadsheet workbook.
type ExcelEncoder interface {
	Encode(t schema.Table) ([]byte, error)
}

// Exporter writes the store in canonical column order.
type Exporter struct {
	excel ExcelEncoder // nil = spreadsheet export unavailable
}

// New creates an Exporter. A nil encoder is allowed.
func New(excel ExcelEncoder) *Exporter {
	return &Exporter{excel: excel}
}

// CSV serializes transactions as delimited text, header included.
func (e *Exporter) CSV(txns []model.Transaction) ([]byte, error) {
	var buf bytes.Buffer
	if err := ledger.WriteCSV(&buf, txns); err != nil {
		return nil, fmt.Errorf("exporting CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Excel serializes transactions as a spreadsheet workbook, or reports
// ErrExcelUnavailable when no encoder is wired.
func (e *Exporter) Excel(txns []model.Transaction) ([]byte, error) {
	if e.excel == nil {
		return nil, ErrExcelUnavailable
	}
	data, err := e.excel.Encode(schema.FromTransactions(txns))
	if err != nil {
		return nil, fmt.Errorf("exporting spreadsheet: %w", err)
	}
	return data, nil
}
