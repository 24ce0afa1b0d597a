// Package xlsx adapts the excelize library to the ledger's tabular
// exchange type. It is the optional spreadsheet codec: the exporter
// works without it and degrades to CSV-only.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
)

// Sheet is the worksheet name used for exports.
const Sheet = "Transactions"

// Codec encodes and decodes ledger tables as .xlsx workbooks.
type Codec struct{}

// Encode renders a table as a single-sheet workbook.
func (Codec) Encode(t schema.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", Sheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	if err := writeRow(f, 1, t.Header); err != nil {
		return nil, err
	}
	for i, row := range t.Rows {
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encoding workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode reads the first sheet of a workbook, first row as header.
func (Codec) Decode(r io.Reader) (schema.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return schema.Table{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return schema.Table{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return schema.Table{}, fmt.Errorf("reading sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return schema.Table{}, nil
	}
	return schema.Table{Header: rows[0], Rows: rows[1:]}, nil
}

func writeRow(f *excelize.File, rowNum int, cells []string) error {
	for col, val := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, rowNum)
		if err != nil {
			return fmt.Errorf("row %d col %d: %w", rowNum, col+1, err)
		}
		if err := f.SetCellValue(Sheet, cell, val); err != nil {
			return fmt.Errorf("writing cell %s: %w", cell, err)
		}
	}
	return nil
}
