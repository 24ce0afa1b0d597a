package session

import (
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/budget"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/exporter"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/ledger"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/xlsx"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func schemaTable() schema.Table {
	return schema.Table{
		Header: []string{"Date", "Type", "Category", "Description", "Amount"},
		Rows: [][]string{
			{"2025-01-02", "Expense", "Food", "Groceries run", "42.50"},
		},
	}
}

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	clock := func() time.Time {
		return time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return New(nil, append([]Option{WithClock(clock), WithLogger(quiet)}, opts...)...)
}

func TestAddTransaction_FormRules(t *testing.T) {
	s := newTestSession(t)

	_, err := s.AddTransaction(model.KindExpense, "Food", "lunch", decimal.Zero)
	require.Error(t, err, "amount must be positive")

	_, err = s.AddTransaction(model.KindExpense, "Unicorns", "x", dec("1"))
	require.Error(t, err, "category must be a configured option")

	_, err = s.AddTransaction(model.Kind("Transfer"), "Food", "x", dec("1"))
	require.Error(t, err, "kind must be Income or Expense")

	txn, err := s.AddTransaction(model.KindExpense, "Food", "lunch", dec("30"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), txn.ID)
	assert.True(t, txn.Date.Equal(s.Now()))
	assert.Equal(t, 1, s.Ledger.Len())

	entries := s.Activity.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "add", entries[0].Action)
}

func TestEditTransaction_StampsNow(t *testing.T) {
	s := newTestSession(t)
	txn, err := s.AddTransaction(model.KindExpense, "Food", "lunch", dec("30"))
	require.NoError(t, err)

	err = s.EditTransaction(txn.ID, ledger.Update{
		Kind:        model.KindIncome,
		Category:    "Other",
		Description: "refund",
		Amount:      dec("5"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Ledger.Len())

	got, ok := s.Ledger.Get(txn.ID)
	require.True(t, ok)
	assert.Equal(t, model.KindIncome, got.Kind)
	assert.True(t, got.Date.Equal(s.Now()))

	err = s.EditTransaction(999, ledger.Update{Kind: model.KindIncome, Category: "Other", Amount: dec("5")})
	require.Error(t, err)
}

func TestRefresh_MaterializesRulesOncePerPeriod(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddRule(model.KindExpense, "Bills", "rent", dec("50"))
	require.NoError(t, err)

	added := s.Refresh()
	require.Len(t, added, 1)
	assert.Equal(t, "rent", added[0].Description)

	assert.Empty(t, s.Refresh(), "second pass in the same month adds nothing")
	assert.Equal(t, 1, s.Ledger.Len())
}

func TestImport_MissingAmountColumn(t *testing.T) {
	s := newTestSession(t)
	data := []byte("Date,Type,Category,Description\n2025-01-02,Expense,Food,lunch\n2025-01-03,Income,Other,refund\n")

	n, err := s.Import("partial.csv", data)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Equal(t, 2, s.Ledger.Len())

	for _, txn := range s.Ledger.All() {
		assert.False(t, txn.Amount.Valid, "missing Amount column coerces to null")
	}
}

func TestImport_FailureLeavesStoreUnchanged(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddTransaction(model.KindIncome, "Other", "pay", dec("100"))
	require.NoError(t, err)

	_, err = s.Import("bad.csv", []byte("Date,Type\n\"unterminated,Expense\n"))
	require.Error(t, err)
	assert.Equal(t, 1, s.Ledger.Len())

	_, err = s.Import("weird.pdf", []byte("data"))
	require.Error(t, err)
	assert.Equal(t, 1, s.Ledger.Len())
}

func TestImport_Spreadsheet(t *testing.T) {
	var codec xlsx.Codec
	data, err := codec.Encode(schemaTable())
	require.NoError(t, err)

	s := newTestSession(t)
	n, err := s.Import("budget.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, ok := s.Ledger.At(0)
	require.True(t, ok)
	assert.Equal(t, "Groceries run", got.Description)
	assert.True(t, got.Amount.Decimal.Equal(dec("42.50")))
}

func TestExportCSV(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddTransaction(model.KindExpense, "Food", "lunch", dec("30"))
	require.NoError(t, err)

	data, err := s.ExportCSV()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date,Type,Category,Description,Amount")
	assert.Contains(t, string(data), "Expense,Food,lunch,30.00")
}

func TestExportExcel_DegradesWithoutEncoder(t *testing.T) {
	s := newTestSession(t)
	_, err := s.ExportExcel()
	require.ErrorIs(t, err, exporter.ErrExcelUnavailable)

	s = newTestSession(t, WithExcelEncoder(xlsx.Codec{}))
	data, err := s.ExportExcel()
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestSetBudget_AndEvaluate(t *testing.T) {
	s := newTestSession(t)
	require.Error(t, s.SetBudget("Unicorns", dec("10")))
	require.NoError(t, s.SetBudget("Food", dec("20")))

	_, err := s.AddTransaction(model.KindExpense, "Food", "groceries", dec("30"))
	require.NoError(t, err)

	statuses := budget.Evaluate(s.Budgets, s.Ledger.All(), "January 2025")
	require.Len(t, statuses, 1)
	assert.Equal(t, budget.StateOver, statuses[0].State)
	assert.Equal(t, "30.00", statuses[0].Spent.StringFixed(2))
	assert.Equal(t, "20.00", statuses[0].Limit.StringFixed(2))
}

func TestReset(t *testing.T) {
	s := newTestSession(t)
	_, err := s.AddTransaction(model.KindExpense, "Food", "lunch", dec("30"))
	require.NoError(t, err)
	_, err = s.AddRule(model.KindExpense, "Bills", "rent", dec("50"))
	require.NoError(t, err)
	require.NoError(t, s.SetBudget("Food", dec("20")))

	s.Reset()

	assert.Equal(t, 0, s.Ledger.Len())
	assert.Equal(t, 0, s.Rules.Len())
	assert.Empty(t, s.Budgets.Categories())
	assert.Empty(t, s.Activity.Entries())
	assert.Equal(t, "$", s.Currency(), "configuration survives a reset")
}
