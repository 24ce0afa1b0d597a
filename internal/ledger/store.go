// Package ledger holds the transaction store and its canonical CSV
// codec.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/schema"
)

// Store is the in-memory ordered collection of transactions for one
// session. It is not safe for concurrent use; the application is a
// single-user synchronous cycle.
type Store struct {
	txns   []model.Transaction
	nextID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{nextID: 1}
}

// Append adds one record at the end, assigns it the next ID, and
// returns the stored copy. No validation beyond what the caller did.
func (s *Store) Append(txn model.Transaction) model.Transaction {
	txn.ID = s.nextID
	s.nextID++
	s.txns = append(s.txns, txn)
	return txn
}

// BulkAppend schema-enforces a table and appends all its rows after the
// existing ones, preserving their relative order. Returns the number of
// rows appended.
func (s *Store) BulkAppend(t schema.Table) int {
	txns := schema.Transactions(t)
	for _, txn := range txns {
		s.Append(txn)
	}
	return len(txns)
}

// Update holds the editable fields of a transaction.
type Update struct {
	Kind        model.Kind
	Category    string
	Description string
	Amount      decimal.Decimal
}

// UpdateByID overwrites the editable fields of the identified
// transaction and stamps now as its date. The row count never changes.
func (s *Store) UpdateByID(id int64, u Update, now time.Time) error {
	for i := range s.txns {
		if s.txns[i].ID != id {
			continue
		}
		s.txns[i].Kind = u.Kind
		s.txns[i].Category = u.Category
		s.txns[i].Description = u.Description
		s.txns[i].Amount = decimal.NullDecimal{Decimal: u.Amount, Valid: true}
		s.txns[i].Date = now
		return nil
	}
	return fmt.Errorf("no transaction with id %d", id)
}

// ReplaceAll discards the current contents and loads the enforced table
// instead. IDs are reassigned.
func (s *Store) ReplaceAll(t schema.Table) {
	s.txns = nil
	s.nextID = 1
	s.BulkAppend(t)
}

// All returns a copy of the transactions in insertion order.
func (s *Store) All() []model.Transaction {
	out := make([]model.Transaction, len(s.txns))
	copy(out, s.txns)
	return out
}

// Get returns a transaction by ID.
func (s *Store) Get(id int64) (model.Transaction, bool) {
	for _, txn := range s.txns {
		if txn.ID == id {
			return txn, true
		}
	}
	return model.Transaction{}, false
}

// At returns the transaction at a display position.
func (s *Store) At(pos int) (model.Transaction, bool) {
	if pos < 0 || pos >= len(s.txns) {
		return model.Transaction{}, false
	}
	return s.txns[pos], true
}

// Len returns the row count.
func (s *Store) Len() int {
	return len(s.txns)
}
