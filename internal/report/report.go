// Package report derives read-only views from the ledger: filtered
// subsets, monthly summaries, and the two chart aggregates. Everything
// here is recomputed from the store on each interaction cycle.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/period"
)

// Filter selects a subset of the ledger for display.
type Filter struct {
	Search     string   // case-insensitive substring on description
	Categories []string // empty = no filtering
	Period     string   // period label; "" or period.All = no filtering
}

// Apply returns the transactions passing every configured filter,
// preserving order. An empty filter passes everything through.
func Apply(txns []model.Transaction, f Filter) []model.Transaction {
	search := strings.ToLower(f.Search)
	cats := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		cats[c] = true
	}

	var out []model.Transaction
	for _, txn := range txns {
		if search != "" && !strings.Contains(strings.ToLower(txn.Description), search) {
			continue
		}
		if len(cats) > 0 && !cats[txn.Category] {
			continue
		}
		if !period.Matches(f.Period, txn.Date) {
			continue
		}
		out = append(out, txn)
	}
	return out
}

// Summary is the income/expense/balance triple for one period.
type Summary struct {
	Period   string
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// MonthlySummary totals the labeled period. A period with no
// transactions yields an all-zero summary.
func MonthlySummary(txns []model.Transaction, label string) Summary {
	s := Summary{Period: label}
	for _, txn := range txns {
		if !txn.Amount.Valid || period.Of(txn.Date) != label {
			continue
		}
		switch txn.Kind {
		case model.KindIncome:
			s.Income = s.Income.Add(txn.Amount.Decimal)
		case model.KindExpense:
			s.Expenses = s.Expenses.Add(txn.Amount.Decimal)
		}
	}
	s.Balance = s.Income.Sub(s.Expenses)
	return s
}

// CategoryTotal is one slice of the spending pie.
type CategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

// ExpenseByCategory sums Expense amounts per category over the whole
// ledger, ignoring any period filter. Sorted by category for stable
// display.
func ExpenseByCategory(txns []model.Transaction) []CategoryTotal {
	sums := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.Kind != model.KindExpense || !txn.Amount.Valid {
			continue
		}
		sums[txn.Category] = sums[txn.Category].Add(txn.Amount.Decimal)
	}

	cats := make([]string, 0, len(sums))
	for cat := range sums {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	out := make([]CategoryTotal, 0, len(cats))
	for _, cat := range cats {
		out = append(out, CategoryTotal{Category: cat, Amount: sums[cat]})
	}
	return out
}

// BalancePoint is one point on the cumulative balance line.
type BalancePoint struct {
	Date    time.Time
	Balance decimal.Decimal
}

// BalanceSeries orders all transactions by date ascending (stable, so
// insertion order breaks ties; null dates sort last) and returns the
// running balance of signed amounts.
func BalanceSeries(txns []model.Transaction) []BalancePoint {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Date, sorted[j].Date
		if a.IsZero() || b.IsZero() {
			return b.IsZero() && !a.IsZero()
		}
		return a.Before(b)
	})

	out := make([]BalancePoint, 0, len(sorted))
	balance := decimal.Zero
	for _, txn := range sorted {
		balance = balance.Add(txn.SignedAmount())
		out = append(out, BalancePoint{Date: txn.Date, Balance: balance})
	}
	return out
}

// PeriodOptions returns period.All followed by the distinct period
// labels present in the ledger, oldest first. Null dates contribute no
// label.
func PeriodOptions(txns []model.Transaction) []string {
	seen := make(map[string]bool)
	for _, txn := range txns {
		if label := period.Of(txn.Date); label != "" {
			seen[label] = true
		}
	}

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		a, _ := period.Parse(labels[i])
		b, _ := period.Parse(labels[j])
		return a.Before(b)
	})
	return append([]string{period.All}, labels...)
}

// CategoryOptions returns the distinct non-empty categories in the
// ledger, sorted.
func CategoryOptions(txns []model.Transaction) []string {
	seen := make(map[string]bool)
	for _, txn := range txns {
		if strings.TrimSpace(txn.Category) != "" {
			seen[txn.Category] = true
		}
	}
	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
