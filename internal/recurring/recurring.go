// Package recurring materializes template transactions once per
// calendar month.
package recurring

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/ledger"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/period"
)

// Rule is a template entry. "Recurring" means: ensure one matching
// transaction exists in the current calendar month.
type Rule struct {
	ID          string // stable identity, assigned on Add
	Kind        model.Kind
	Category    string
	Description string
	Amount      decimal.Decimal
}

// Set is the session's list of recurring rules.
type Set struct {
	rules []Rule
}

// NewSet creates an empty rule set.
func NewSet() *Set {
	return &Set{}
}

// Add stores a rule, assigning it an ID if it has none, and returns the
// stored copy.
func (s *Set) Add(r Rule) Rule {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.rules = append(s.rules, r)
	return r
}

// All returns a copy of the rules in insertion order.
func (s *Set) All() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Len returns the number of rules.
func (s *Set) Len() int {
	return len(s.rules)
}

// Reconcile runs one evaluation pass: every rule not yet satisfied for
// the current period gets one transaction dated now appended to the
// store. Returns the appended transactions. Running it again in the
// same period appends nothing, so it is safe to call on every
// interaction cycle. The pass re-scans the full store each time, which
// is fine at this scale.
func Reconcile(set *Set, store *ledger.Store, now time.Time) []model.Transaction {
	label := period.Of(now)
	txns := store.All()

	var added []model.Transaction
	for _, rule := range set.All() {
		if satisfied(rule, txns, label) {
			continue
		}
		txn := store.Append(model.Transaction{
			Date:        now,
			Kind:        rule.Kind,
			Category:    rule.Category,
			Description: rule.Description,
			Amount:      decimal.NullDecimal{Decimal: rule.Amount, Valid: true},
			RuleID:      rule.ID,
		})
		txns = append(txns, txn)
		added = append(added, txn)
	}
	return added
}

// satisfied reports whether a rule already has a transaction in the
// current period. Rows materialized by a rule match on rule identity,
// so two rules with the same description and category stay
// distinguishable. Manual or imported rows carry no rule ID and match
// on content, which keeps them suppressing a duplicate insertion.
func satisfied(rule Rule, txns []model.Transaction, label string) bool {
	for _, txn := range txns {
		if period.Of(txn.Date) != label {
			continue
		}
		if txn.RuleID != "" {
			if txn.RuleID == rule.ID {
				return true
			}
			continue
		}
		if txn.Description == rule.Description && txn.Category == rule.Category {
			return true
		}
	}
	return false
}
