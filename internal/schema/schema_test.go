package schema

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestEnforce_ColumnMapping(t *testing.T) {
	// Any column order, case-insensitive names, extras dropped.
	in := Table{
		Header: []string{"amount", " DESCRIPTION ", "Note", "date", "Type", "Category"},
		Rows: [][]string{
			{"42.50", "groceries", "ignored", "2025-01-02", "Expense", "Food"},
		},
	}

	got := Enforce(in)
	require.Equal(t, Columns, got.Header)
	require.Len(t, got.Rows, 1)

	row := got.Rows[0]
	require.Len(t, row, 5)
	assert.Equal(t, "2025-01-02T00:00:00Z", row[0])
	assert.Equal(t, "Expense", row[1])
	assert.Equal(t, "Food", row[2])
	assert.Equal(t, "groceries", row[3])
	assert.Equal(t, "42.50", row[4])
}

func TestEnforce_MissingColumnsCreatedEmpty(t *testing.T) {
	in := Table{
		Header: []string{"Date", "Type", "Category", "Description"},
		Rows: [][]string{
			{"2025-01-02", "Expense", "Food", "lunch"},
			{"2025-01-03", "Income", "Other", "refund"},
		},
	}

	got := Enforce(in)
	require.Len(t, got.Rows, 2, "row count unchanged")
	for _, row := range got.Rows {
		assert.Empty(t, row[4], "missing Amount column yields null cells")
	}
}

func TestEnforce_UnparseableBecomesNull(t *testing.T) {
	in := Table{
		Header: []string{"Date", "Type", "Category", "Description", "Amount"},
		Rows: [][]string{
			{"not a date", "Expense", "Food", "lunch", "not a number"},
		},
	}

	got := Enforce(in)
	require.Len(t, got.Rows, 1)
	assert.Empty(t, got.Rows[0][0])
	assert.Empty(t, got.Rows[0][4])
}

func TestEnforce_ShortRowsPadded(t *testing.T) {
	in := Table{
		Header: []string{"Date", "Type", "Category", "Description", "Amount"},
		Rows: [][]string{
			{"2025-01-02", "Expense"},
		},
	}

	got := Enforce(in)
	require.Len(t, got.Rows, 1)
	require.Len(t, got.Rows[0], 5)
	assert.Equal(t, "Expense", got.Rows[0][1])
	assert.Empty(t, got.Rows[0][4])
}

func TestEnforce_Idempotent(t *testing.T) {
	tables := []Table{
		{},
		{
			Header: []string{"Amount", "Date", "Extra"},
			Rows: [][]string{
				{"10", "2025-01-02 13:45:00", "x"},
				{"bogus", "bogus", "y"},
				{"", "", ""},
			},
		},
		{
			Header: []string{"Date", "Type", "Category", "Description", "Amount"},
			Rows: [][]string{
				{"01/15/2025", "Income", "Other", "pay", "1250.75"},
			},
		},
	}

	for _, in := range tables {
		once := Enforce(in)
		twice := Enforce(once)
		assert.Equal(t, once, twice)
	}
}

func TestTransactions_RoundTrip(t *testing.T) {
	txns := []model.Transaction{
		{
			Date:        time.Date(2025, 1, 2, 10, 30, 0, 0, time.UTC),
			Kind:        model.KindExpense,
			Category:    "Food",
			Description: "lunch",
			Amount:      decimal.NullDecimal{Decimal: dec("30"), Valid: true},
		},
		{
			Kind:        model.Kind("Transfer"), // arbitrary imported kind survives
			Category:    "Exotic",
			Description: "",
			Amount:      decimal.NullDecimal{},
		},
	}

	got := Transactions(FromTransactions(txns))
	require.Len(t, got, 2)

	assert.True(t, got[0].Date.Equal(txns[0].Date))
	assert.Equal(t, model.KindExpense, got[0].Kind)
	assert.True(t, got[0].Amount.Valid)
	assert.True(t, got[0].Amount.Decimal.Equal(dec("30")))

	assert.True(t, got[1].Date.IsZero())
	assert.Equal(t, "Exotic", got[1].Category)
	assert.False(t, got[1].Amount.Valid)
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2025-01-02T00:00:00Z", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"2025-01-02 13:45:00", time.Date(2025, 1, 2, 13, 45, 0, 0, time.UTC)},
		{"2025-01-02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"01/02/2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"garbage", time.Time{}},
		{"", time.Time{}},
	}
	for _, tc := range cases {
		got := ParseDate(tc.in)
		assert.True(t, got.Equal(tc.want), "ParseDate(%q) = %v", tc.in, got)
	}
}
