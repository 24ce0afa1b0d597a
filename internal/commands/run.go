package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/budget"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/config"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/exporter"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/ledger"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/model"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/period"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/report"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/session"
	"github.com/Ebaman-1/Budget-Tracker-Pro/internal/xlsx"
)

func newRunCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive budget session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return fmt.Errorf("loading config: %w", err)
				}
				cfg = loaded
			}

			sess := session.New(cfg, session.WithExcelEncoder(xlsx.Codec{}))
			loop := &sessionLoop{sess: sess, out: cmd.OutOrStdout()}
			return loop.run(cmd.InOrStdin())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to budget.yaml (optional)")

	return cmd
}

// sessionLoop is the line-oriented presentation surface: one command per
// line, one full re-evaluation of the views per command.
type sessionLoop struct {
	sess   *session.Session
	out    io.Writer
	filter report.Filter
}

func (l *sessionLoop) run(in io.Reader) error {
	fmt.Fprintln(l.out, "Budget Tracker Pro. Type 'help' for commands.")

	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(l.out, "budget> ")
		if !sc.Scan() {
			fmt.Fprintln(l.out)
			return sc.Err()
		}

		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		verb, rest, _ := strings.Cut(line, " ")
		if verb == "quit" || verb == "exit" {
			return nil
		}

		// Every interaction re-evaluates recurring rules before
		// rendering, like a page render would.
		l.sess.Refresh()

		if err := l.dispatch(verb, strings.TrimSpace(rest)); err != nil {
			fmt.Fprintf(l.out, "error: %v\n", err)
		}
	}
}

func (l *sessionLoop) dispatch(verb, rest string) error {
	switch verb {
	case "help":
		l.printHelp()
	case "add":
		return l.addTransaction(rest)
	case "edit":
		return l.editTransaction(rest)
	case "recurring":
		return l.recurring(rest)
	case "budget":
		return l.setBudget(rest)
	case "check":
		l.printBudgetCheck()
	case "search":
		l.filter.Search = rest
	case "category":
		l.filter.Categories = splitList(rest)
	case "month":
		l.filter.Period = rest
	case "list":
		l.printTransactions()
	case "summary":
		l.printSummary()
	case "pie":
		l.printPie()
	case "balance":
		l.printBalance()
	case "import":
		return l.importFile(rest)
	case "export":
		return l.exportFile(rest)
	case "history":
		l.printHistory()
	case "options":
		l.printOptions()
	case "reset":
		l.sess.Reset()
		l.filter = report.Filter{}
		fmt.Fprintln(l.out, "Data reset.")
	default:
		return fmt.Errorf("unknown command %q (try 'help')", verb)
	}
	return nil
}

func (l *sessionLoop) printHelp() {
	fmt.Fprint(l.out, `Commands:
  add <Income|Expense> <category> <amount> [description]
  edit <id> <Income|Expense> <category> <amount> [description]
  recurring [<Income|Expense> <category> <amount> [description]]
  budget <category> <limit>        set 0 to clear
  check                            budget status for the current month
  search <text>  |  category <a,b>  |  month <label|All>
  list | summary | pie | balance | history | options
  import <file.csv|file.xlsx>
  export <file.csv|file.xlsx>
  reset | quit
`)
}

// entryArgs parses "<kind> <category> <amount> [description...]".
func entryArgs(rest string) (model.Kind, string, decimal.Decimal, string, error) {
	fields := strings.SplitN(rest, " ", 4)
	if len(fields) < 3 {
		return "", "", decimal.Zero, "", fmt.Errorf("expected <kind> <category> <amount> [description]")
	}
	amount, err := decimal.NewFromString(fields[2])
	if err != nil {
		return "", "", decimal.Zero, "", fmt.Errorf("parsing amount %q: %w", fields[2], err)
	}
	desc := ""
	if len(fields) == 4 {
		desc = fields[3]
	}
	return model.Kind(fields[0]), fields[1], amount, desc, nil
}

func (l *sessionLoop) addTransaction(rest string) error {
	kind, category, amount, desc, err := entryArgs(rest)
	if err != nil {
		return err
	}
	txn, err := l.sess.AddTransaction(kind, category, desc, amount)
	if err != nil {
		return err
	}
	fmt.Fprintf(l.out, "Transaction %d added.\n", txn.ID)
	return nil
}

func (l *sessionLoop) editTransaction(rest string) error {
	idStr, entry, _ := strings.Cut(rest, " ")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return fmt.Errorf("parsing id %q: %w", idStr, err)
	}
	kind, category, amount, desc, err := entryArgs(entry)
	if err != nil {
		return err
	}
	err = l.sess.EditTransaction(id, ledger.Update{
		Kind:        kind,
		Category:    category,
		Description: desc,
		Amount:      amount,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(l.out, "Transaction %d updated.\n", id)
	return nil
}

func (l *sessionLoop) recurring(rest string) error {
	if rest == "" {
		rules := l.sess.Rules.All()
		if len(rules) == 0 {
			fmt.Fprintln(l.out, "No recurring transactions saved yet.")
			return nil
		}
		tw := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tCATEGORY\tAMOUNT\tDESCRIPTION")
		for _, r := range rules {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Kind, r.Category, r.Amount.StringFixed(2), r.Description)
		}
		return tw.Flush()
	}

	kind, category, amount, desc, err := entryArgs(rest)
	if err != nil {
		return err
	}
	if _, err := l.sess.AddRule(kind, category, desc, amount); err != nil {
		return err
	}
	fmt.Fprintln(l.out, "Recurring transaction added.")
	return nil
}

func (l *sessionLoop) setBudget(rest string) error {
	category, limitStr, ok := strings.Cut(rest, " ")
	if !ok {
		return fmt.Errorf("expected <category> <limit>")
	}
	limit, err := decimal.NewFromString(strings.TrimSpace(limitStr))
	if err != nil {
		return fmt.Errorf("parsing limit %q: %w", limitStr, err)
	}
	return l.sess.SetBudget(category, limit)
}

func (l *sessionLoop) printBudgetCheck() {
	cur := l.sess.Currency()
	label := period.Of(l.sess.Now())
	statuses := budget.Evaluate(l.sess.Budgets, l.sess.Ledger.All(), label)
	if len(statuses) == 0 {
		fmt.Fprintln(l.out, "No budget limits set.")
		return
	}
	for _, st := range statuses {
		switch st.State {
		case budget.StateOver:
			fmt.Fprintf(l.out, "OVER budget for %s: spent %s%s / limit %s%s\n",
				st.Category, cur, st.Spent.StringFixed(2), cur, st.Limit.StringFixed(2))
		case budget.StateWithin:
			fmt.Fprintf(l.out, "Within budget for %s: spent %s%s / limit %s%s\n",
				st.Category, cur, st.Spent.StringFixed(2), cur, st.Limit.StringFixed(2))
		}
	}
}

func (l *sessionLoop) printTransactions() {
	txns := report.Apply(l.sess.Ledger.All(), l.filter)
	if len(txns) == 0 {
		fmt.Fprintln(l.out, "No transactions match your filters.")
		return
	}
	tw := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tDESCRIPTION\tAMOUNT")
	for _, txn := range txns {
		date, amount := "", ""
		if !txn.Date.IsZero() {
			date = txn.Date.Format("2006-01-02")
		}
		if txn.Amount.Valid {
			amount = txn.Amount.Decimal.StringFixed(2)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", txn.ID, date, txn.Kind, txn.Category, txn.Description, amount)
	}
	tw.Flush()
}

func (l *sessionLoop) printSummary() {
	cur := l.sess.Currency()
	label := period.Of(l.sess.Now())
	s := report.MonthlySummary(l.sess.Ledger.All(), label)
	fmt.Fprintf(l.out, "%s – Income: %s%s | Expenses: %s%s | Balance: %s%s\n",
		label, cur, s.Income.StringFixed(2), cur, s.Expenses.StringFixed(2), cur, s.Balance.StringFixed(2))
}

func (l *sessionLoop) printPie() {
	totals := report.ExpenseByCategory(l.sess.Ledger.All())
	if len(totals) == 0 {
		fmt.Fprintln(l.out, "No expense data yet.")
		return
	}
	tw := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tAMOUNT")
	for _, t := range totals {
		fmt.Fprintf(tw, "%s\t%s\n", t.Category, t.Amount.StringFixed(2))
	}
	tw.Flush()
}

func (l *sessionLoop) printBalance() {
	points := report.BalanceSeries(l.sess.Ledger.All())
	if len(points) == 0 {
		fmt.Fprintln(l.out, "No transactions yet.")
		return
	}
	tw := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tBALANCE")
	for _, p := range points {
		date := ""
		if !p.Date.IsZero() {
			date = p.Date.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\n", date, p.Balance.StringFixed(2))
	}
	tw.Flush()
}

func (l *sessionLoop) importFile(path string) error {
	if path == "" {
		return fmt.Errorf("expected a file path")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading upload: %w", err)
	}
	n, err := l.sess.Import(path, data)
	if err != nil {
		// Non-fatal: the store is unchanged.
		fmt.Fprintf(l.out, "Import failed: %v\n", err)
		return nil
	}
	fmt.Fprintf(l.out, "Imported %d rows.\n", n)
	return nil
}

func (l *sessionLoop) exportFile(path string) error {
	var data []byte
	var err error
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".csv"):
		data, err = l.sess.ExportCSV()
	case strings.HasSuffix(strings.ToLower(path), ".xlsx"):
		data, err = l.sess.ExportExcel()
		if errors.Is(err, exporter.ErrExcelUnavailable) {
			fmt.Fprintln(l.out, "Spreadsheet export is unavailable in this build.")
			return nil
		}
	default:
		return fmt.Errorf("expected a .csv or .xlsx path")
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	fmt.Fprintf(l.out, "Exported to %s.\n", path)
	return nil
}

func (l *sessionLoop) printHistory() {
	entries := l.sess.Activity.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(l.out, "Nothing has happened yet.")
		return
	}
	tw := tabwriter.NewWriter(l.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tACTION\tDETAILS")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Timestamp.Format("15:04:05"), e.Action, e.Details)
	}
	tw.Flush()
}

func (l *sessionLoop) printOptions() {
	txns := l.sess.Ledger.All()
	symbols := make([]string, 0, len(config.Currencies))
	for sym, code := range config.Currencies {
		symbols = append(symbols, sym+" ("+code+")")
	}
	sort.Strings(symbols)
	fmt.Fprintf(l.out, "Currencies: %s\n", strings.Join(symbols, ", "))
	fmt.Fprintf(l.out, "Categories: %s\n", strings.Join(l.sess.Categories(), ", "))
	fmt.Fprintf(l.out, "Months: %s\n", strings.Join(report.PeriodOptions(txns), ", "))
	if cats := report.CategoryOptions(txns); len(cats) > 0 {
		fmt.Fprintf(l.out, "In ledger: %s\n", strings.Join(cats, ", "))
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
