package ledger

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
)

// WriteCSV serializes transactions in canonical column order, header
// included. Null dates and amounts are written as empty cells.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(schema.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalRow(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalRow converts a transaction to a canonical CSV row.
func MarshalRow(txn model.Transaction) []string {
	row := make([]string, len(schema.Columns))
	if !txn.Date.IsZero() {
		row[0] = txn.Date.Format(schema.DateFormat)
	}
	row[1] = string(txn.Kind)
	row[2] = txn.Category
	row[3] = txn.Description
	if txn.Amount.Valid {
		row[4] = txn.Amount.Decimal.StringFixed(2)
	}
	return row
}
