package budget

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

func expense(category, amount string, day int) model.Transaction {
	return model.Transaction{
		Date:     time.Date(2025, 1, day, 0, 0, 0, 0, time.UTC),
		Kind:     model.KindExpense,
		Category: category,
		Amount:   decimal.NullDecimal{Decimal: dec(amount), Valid: true},
	}
}

func TestEvaluate_OverBudget(t *testing.T) {
	m := NewMap()
	m.Set("Food", dec("20"))

	statuses := Evaluate(m, []model.Transaction{expense("Food", "30", 5)}, "January 2025")
	require.Len(t, statuses, 1)

	st := statuses[0]
	assert.Equal(t, "Food", st.Category)
	assert.Equal(t, StateOver, st.State)
	assert.True(t, st.Spent.Equal(dec("30")))
	assert.True(t, st.Limit.Equal(dec("20")))
}

func TestEvaluate_SpentEqualsLimitIsWithin(t *testing.T) {
	m := NewMap()
	m.Set("Food", dec("30"))

	statuses := Evaluate(m, []model.Transaction{expense("Food", "30", 5)}, "January 2025")
	require.Len(t, statuses, 1)
	assert.Equal(t, StateWithin, statuses[0].State)
}

func TestEvaluate_UnsetCategoryAbsent(t *testing.T) {
	m := NewMap()
	m.Set("Food", dec("100"))

	txns := []model.Transaction{
		expense("Food", "10", 5),
		expense("Transport", "999", 6), // no limit configured
	}
	statuses := Evaluate(m, txns, "January 2025")

	require.Len(t, statuses, 1, "unset categories produce no status")
	assert.Equal(t, "Food", statuses[0].Category)
}

func TestEvaluate_NoSpendingIsWithin(t *testing.T) {
	m := NewMap()
	m.Set("Bills", dec("50"))

	statuses := Evaluate(m, nil, "January 2025")
	require.Len(t, statuses, 1)
	assert.Equal(t, StateWithin, statuses[0].State)
	assert.True(t, statuses[0].Spent.IsZero())
}

func TestEvaluate_RestrictsToPeriodAndKind(t *testing.T) {
	m := NewMap()
	m.Set("Food", dec("20"))

	income := expense("Food", "100", 5)
	income.Kind = model.KindIncome
	lastMonth := expense("Food", "100", 5)
	lastMonth.Date = time.Date(2024, 12, 5, 0, 0, 0, 0, time.UTC)
	nullAmount := expense("Food", "0", 6)
	nullAmount.Amount = decimal.NullDecimal{}

	txns := []model.Transaction{income, lastMonth, nullAmount, expense("Food", "15", 7)}
	statuses := Evaluate(m, txns, "January 2025")

	require.Len(t, statuses, 1)
	assert.True(t, statuses[0].Spent.Equal(dec("15")))
	assert.Equal(t, StateWithin, statuses[0].State)
}

func TestSet_NonPositiveClears(t *testing.T) {
	m := NewMap()
	m.Set("Food", dec("20"))
	m.Set("Food", decimal.Zero)

	_, ok := m.Limit("Food")
	assert.False(t, ok)
	assert.Empty(t, m.Categories())

	m.Set("Bills", dec("-5"))
	_, ok = m.Limit("Bills")
	assert.False(t, ok)
}
