// Package schema enforces the five-column ledger shape on arbitrary
// tabular input.
package schema

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
)

// Columns is the canonical ledger header, in fixed order.
var Columns = []string{"Date", "Type", "Category", "Description", "Amount"}

const (
	numFields = 5
	colDate   = 0
	colType   = 1
	colCat    = 2
	colDesc   = 3
	colAmount = 4
)

// DateFormat is the canonical cell format for dates.
const DateFormat = time.RFC3339

// dateLayouts are tried in order when coercing a date cell. The
// canonical format comes first so enforcement is idempotent.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"January 2, 2006",
}

// Table is a raw tabular exchange value: a header row plus data rows.
// Cells are strings; an empty cell is the null marker.
type Table struct {
	Header []string
	Rows   [][]string
}

// Enforce maps any table onto the canonical five-column shape. Columns
// are matched by case-insensitive trimmed name, in any order; missing
// columns are created empty and extra columns are dropped. Date and
// Amount cells are coerced to their canonical forms; cells that do not
// parse become empty (null), never an error. Enforce is idempotent.
func Enforce(t Table) Table {
	// Index of each canonical column in the input header, -1 if absent.
	src := make([]int, numFields)
	for i := range src {
		src[i] = -1
	}
	for j, name := range t.Header {
		key := strings.ToLower(strings.TrimSpace(name))
		for i, canon := range Columns {
			if key == strings.ToLower(canon) && src[i] == -1 {
				src[i] = j
			}
		}
	}

	out := Table{Header: append([]string(nil), Columns...)}
	for _, row := range t.Rows {
		rec := make([]string, numFields)
		for i, j := range src {
			if j >= 0 && j < len(row) {
				rec[i] = row[j]
			}
		}
		rec[colDate] = coerceDate(rec[colDate])
		rec[colAmount] = coerceAmount(rec[colAmount])
		out.Rows = append(out.Rows, rec)
	}
	return out
}

// Transactions converts an enforced table to ledger records. IDs are
// zero; the store assigns them on append.
func Transactions(t Table) []model.Transaction {
	t = Enforce(t)
	txns := make([]model.Transaction, 0, len(t.Rows))
	for _, rec := range t.Rows {
		txns = append(txns, model.Transaction{
			Date:        ParseDate(rec[colDate]),
			Kind:        model.Kind(rec[colType]),
			Category:    rec[colCat],
			Description: rec[colDesc],
			Amount:      ParseAmount(rec[colAmount]),
		})
	}
	return txns
}

// FromTransactions renders records as a canonical table, the inverse of
// Transactions. Null dates and amounts become empty cells.
func FromTransactions(txns []model.Transaction) Table {
	t := Table{Header: append([]string(nil), Columns...)}
	for _, txn := range txns {
		rec := make([]string, numFields)
		if !txn.Date.IsZero() {
			rec[colDate] = txn.Date.Format(DateFormat)
		}
		rec[colType] = string(txn.Kind)
		rec[colCat] = txn.Category
		rec[colDesc] = txn.Description
		if txn.Amount.Valid {
			rec[colAmount] = txn.Amount.Decimal.String()
		}
		t.Rows = append(t.Rows, rec)
	}
	return t
}

// ParseDate parses a canonical or tolerated date cell. The zero time is
// the null marker.
func ParseDate(cell string) time.Time {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, cell); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// ParseAmount parses an amount cell. Unparseable cells yield the null
// marker.
func ParseAmount(cell string) decimal.NullDecimal {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return decimal.NullDecimal{}
	}
	d, err := decimal.NewFromString(cell)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}

func coerceDate(cell string) string {
	ts := ParseDate(cell)
	if ts.IsZero() {
		return ""
	}
	return ts.Format(DateFormat)
}

func coerceAmount(cell string) string {
	d := ParseAmount(cell)
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}
