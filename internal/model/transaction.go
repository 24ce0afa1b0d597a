package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money in or money out.
type Kind string

const (
	KindIncome  Kind = "Income"
	KindExpense Kind = "Expense"
)

// Valid reports whether the kind is one of the two known values.
// Imported rows may carry arbitrary kind strings; those rows are stored
// as-is but never counted as income or expense by the views.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is one row in the ledger.
type Transaction struct {
	ID          int64     // assigned by the store, immutable
	Date        time.Time // zero = unparseable or missing
	Kind        Kind
	Category    string
	Description string
	Amount      decimal.NullDecimal // invalid = unparseable or missing
	RuleID      string              // recurring rule that materialized this row, if any
}

// SignedAmount returns +amount for income and -amount for everything
// else. Rows with a null amount contribute zero.
func (t Transaction) SignedAmount() decimal.Decimal {
	if !t.Amount.Valid {
		return decimal.Zero
	}
	if t.Kind == KindIncome {
		return t.Amount.Decimal
	}
	return t.Amount.Decimal.Neg()
}
