// Package session owns the application state for one interactive run:
// the ledger, the budget map, the recurring rules, and the activity
// feed. Every user action goes through a Session method; there is no
// ambient global state.
package session

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/activity"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/budget"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/config"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/exporter"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/importer"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/ledger"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/logging"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/recurring"
)

// Session is the state shared by all UI actions within one run. It
// lives for the process lifetime and is never persisted implicitly.
type Session struct {
	Ledger   *ledger.Store
	Budgets  *budget.Map
	Rules    *recurring.Set
	Activity *activity.Log

	cfg     *config.Config
	clock   func() time.Time
	log     *logrus.Logger
	export  *exporter.Exporter
	uploads *importer.Registry
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithLogger overrides the logger.
func WithLogger(log *logrus.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithExcelEncoder wires the optional spreadsheet encoder. Without it,
// spreadsheet export reports unavailable.
func WithExcelEncoder(enc exporter.ExcelEncoder) Option {
	return func(s *Session) { s.export = exporter.New(enc) }
}

// New creates a fresh session.
func New(cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		Ledger:   ledger.NewStore(),
		Budgets:  budget.NewMap(),
		Rules:    recurring.NewSet(),
		Activity: activity.NewLog(),
		cfg:      cfg,
		clock:    time.Now,
		log:      logging.New(cfg.LogLevel),
		export:   exporter.New(nil),
		uploads:  importer.DefaultRegistry(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Reset discards all ledger, budget, rule, and activity state. The
// configuration survives.
func (s *Session) Reset() {
	s.Ledger = ledger.NewStore()
	s.Budgets = budget.NewMap()
	s.Rules = recurring.NewSet()
	s.Activity.Reset()
	s.log.Info("session state reset")
}

// Now returns the session's current time.
func (s *Session) Now() time.Time {
	return s.clock()
}

// Currency returns the configured display symbol.
func (s *Session) Currency() string {
	return s.cfg.Currency.Symbol
}

// Categories returns the configured category option set.
func (s *Session) Categories() []string {
	return s.cfg.Categories
}

// Refresh runs recurring reconciliation for the current period. Call it
// once per interaction cycle, before rendering any view. Returns the
// transactions it materialized, if any.
func (s *Session) Refresh() []model.Transaction {
	added := recurring.Reconcile(s.Rules, s.Ledger, s.clock())
	for _, txn := range added {
		s.record("recurring", fmt.Sprintf("materialized %q for %s", txn.Description, txn.Category), txn.ID)
		s.log.WithFields(logrus.Fields{
			"rule":     txn.RuleID,
			"category": txn.Category,
			"amount":   txn.Amount.Decimal.StringFixed(2),
		}).Info("recurring transaction materialized")
	}
	return added
}

// AddTransaction appends a form-entered transaction dated now. Form
// rules apply here, not in the store: amount must be positive, kind
// known, category one of the configured options.
func (s *Session) AddTransaction(kind model.Kind, category, description string, amount decimal.Decimal) (model.Transaction, error) {
	if err := s.checkEntry(kind, category, amount); err != nil {
		return model.Transaction{}, err
	}

	txn := s.Ledger.Append(model.Transaction{
		Date:        s.clock(),
		Kind:        kind,
		Category:    category,
		Description: description,
		Amount:      decimal.NullDecimal{Decimal: amount, Valid: true},
	})

	s.record("add", fmt.Sprintf("%s %s %s", kind, category, amount.StringFixed(2)), txn.ID)
	s.log.WithFields(logrus.Fields{
		"id":       txn.ID,
		"kind":     kind,
		"category": category,
		"amount":   amount.StringFixed(2),
	}).Info("transaction added")
	return txn, nil
}

// EditTransaction overwrites an existing transaction's fields and
// stamps the current time as its date.
func (s *Session) EditTransaction(id int64, u ledger.Update) error {
	if err := s.checkEntry(u.Kind, u.Category, u.Amount); err != nil {
		return err
	}
	if err := s.Ledger.UpdateByID(id, u, s.clock()); err != nil {
		return err
	}

	s.record("edit", fmt.Sprintf("%s %s %s", u.Kind, u.Category, u.Amount.StringFixed(2)), id)
	s.log.WithField("id", id).Info("transaction updated")
	return nil
}

// AddRule stores a recurring rule. The same form rules apply as for a
// direct entry. Reconciliation picks the rule up on the next Refresh.
func (s *Session) AddRule(kind model.Kind, category, description string, amount decimal.Decimal) (recurring.Rule, error) {
	if err := s.checkEntry(kind, category, amount); err != nil {
		return recurring.Rule{}, err
	}

	rule := s.Rules.Add(recurring.Rule{
		Kind:        kind,
		Category:    category,
		Description: description,
		Amount:      amount,
	})

	s.record("rule", fmt.Sprintf("%s %s %s monthly", kind, category, amount.StringFixed(2)), 0)
	s.log.WithFields(logrus.Fields{
		"rule":     rule.ID,
		"category": category,
	}).Info("recurring rule added")
	return rule, nil
}

// SetBudget configures a category limit. Non-positive limits clear it.
func (s *Session) SetBudget(category string, limit decimal.Decimal) error {
	if !s.cfg.HasCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	s.Budgets.Set(category, limit)

	s.record("budget", fmt.Sprintf("%s limit %s", category, limit.StringFixed(2)), 0)
	s.log.WithFields(logrus.Fields{
		"category": category,
		"limit":    limit.StringFixed(2),
	}).Info("budget limit set")
	return nil
}

// Import parses an uploaded file by its name suffix, enforces the
// ledger schema, and bulk-appends the rows. On any parse failure the
// store is left untouched and the error is returned for display.
func (s *Session) Import(filename string, data []byte) (int, error) {
	table, err := s.uploads.ParseUpload(filename, data)
	if err != nil {
		s.log.WithField("file", filename).WithError(err).Warn("import failed")
		return 0, err
	}

	n := s.Ledger.BulkAppend(table)
	s.record("import", fmt.Sprintf("%d rows from %s", n, filename), 0)
	s.log.WithFields(logrus.Fields{
		"file": filename,
		"rows": n,
	}).Info("data imported")
	return n, nil
}

// ExportCSV serializes the full store as delimited text.
func (s *Session) ExportCSV() ([]byte, error) {
	data, err := s.export.CSV(s.Ledger.All())
	if err != nil {
		return nil, err
	}
	s.record("export", fmt.Sprintf("CSV, %d rows", s.Ledger.Len()), 0)
	return data, nil
}

// ExportExcel serializes the full store as a spreadsheet, or reports
// exporter.ErrExcelUnavailable when no encoder is wired.
func (s *Session) ExportExcel() ([]byte, error) {
	data, err := s.export.Excel(s.Ledger.All())
	if err != nil {
		return nil, err
	}
	s.record("export", fmt.Sprintf("spreadsheet, %d rows", s.Ledger.Len()), 0)
	return data, nil
}

func (s *Session) checkEntry(kind model.Kind, category string, amount decimal.Decimal) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown kind %q", kind)
	}
	if !s.cfg.HasCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", amount)
	}
	return nil
}

func (s *Session) record(action, details string, txnID int64) {
	s.Activity.Append(activity.Entry{
		Timestamp: s.clock(),
		Action:    action,
		Details:   details,
		TxnID:     txnID,
	})
}
