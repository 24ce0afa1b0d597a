// Package budget tracks optional per-category spending limits and
// evaluates them against a period's expenses.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/period"
)

// Map holds the configured limits. A category with no entry has no
// limit set.
type Map struct {
	limits map[string]decimal.Decimal
}

// NewMap creates an empty budget map.
func NewMap() *Map {
	return &Map{limits: make(map[string]decimal.Decimal)}
}

// Set configures a limit for a category. A non-positive limit clears
// the entry, which means "no limit set".
func (m *Map) Set(category string, limit decimal.Decimal) {
	if limit.IsPositive() {
		m.limits[category] = limit
		return
	}
	delete(m.limits, category)
}

// Limit returns the configured limit for a category, if any.
func (m *Map) Limit(category string) (decimal.Decimal, bool) {
	limit, ok := m.limits[category]
	return limit, ok
}

// Categories returns the categories with a limit set, sorted.
func (m *Map) Categories() []string {
	cats := make([]string, 0, len(m.limits))
	for cat := range m.limits {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

// State is the outcome of a budget check for one category.
type State string

const (
	StateOver   State = "over"
	StateWithin State = "within"
)

// Status reports spending against a configured limit.
type Status struct {
	Category string
	Spent    decimal.Decimal
	Limit    decimal.Decimal
	State    State
}

// Evaluate restricts to Expense rows in the labeled period, sums per
// category, and reports a status for every category that has a limit.
// Categories without a limit are absent from the output, not "ok": the
// outcome is three-way (over, within, unset). Spending exactly the
// limit counts as within.
func Evaluate(m *Map, txns []model.Transaction, label string) []Status {
	spent := make(map[string]decimal.Decimal)
	for _, txn := range txns {
		if txn.Kind != model.KindExpense || !txn.Amount.Valid {
			continue
		}
		if !period.Matches(label, txn.Date) {
			continue
		}
		spent[txn.Category] = spent[txn.Category].Add(txn.Amount.Decimal)
	}

	var out []Status
	for _, cat := range m.Categories() {
		limit := m.limits[cat]
		st := Status{Category: cat, Spent: spent[cat], Limit: limit, State: StateWithin}
		if st.Spent.GreaterThan(limit) {
			st.State = StateOver
		}
		out = append(out, st)
	}
	return out
}
