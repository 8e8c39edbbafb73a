package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/k0kubun/pp/v3"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cleared-dev/stmtledger/internal/export"
	"github.com/cleared-dev/stmtledger/internal/model"
	"github.com/cleared-dev/stmtledger/internal/statement"
)

type parseFlags struct {
	statementFlags
	format string
	output string
	jobs   int
}

func newParseCommand(g *globalFlags) *cobra.Command {
	var f parseFlags

	cmd := &cobra.Command{
		Use:   "parse <document>...",
		Short: "Extract the transaction ledger from statements",
		Long: "Extract the transaction ledger from one or more statements (.pdf, .xls or .txt).\n" +
			"Documents are parsed independently; output follows argument order.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd.OutOrStdout(), g, f, args)
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.format, "format", "f", "table", "output format: table, csv or debug")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", runtime.NumCPU(), "documents parsed in parallel")

	return cmd
}

func runParse(stdout io.Writer, g *globalFlags, f parseFlags, docs []string) error {
	switch f.format {
	case "table", "csv", "debug":
	default:
		return fmt.Errorf("unknown format %q (want table, csv or debug)", f.format)
	}

	p, err := loadProject(g)
	if err != nil {
		return err
	}
	opts, err := p.options(f.statementFlags)
	if err != nil {
		return err
	}

	ledgers := make([]*statement.Ledger, len(docs))
	var eg errgroup.Group
	eg.SetLimit(max(f.jobs, 1))
	for i, doc := range docs {
		eg.Go(func() error {
			l, err := p.parseDocument(doc, opts)
			ledgers[i] = l
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	w := stdout
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return fmt.Errorf("creating output: %w", err)
		}
		defer file.Close()
		w = file
	}

	var empty []error
	var records []model.TransactionRecord
	for i, l := range ledgers {
		if l.Empty() {
			empty = append(empty, fmt.Errorf("%s: %w", docs[i], statement.ErrNoTransactionsFound))
			continue
		}
		records = append(records, l.Records()...)
		p.logger.Info("parsed",
			"document", docs[i],
			"records", l.Len(),
			"dropped", l.Dropped(),
			"undecided", len(l.DiagnosticsOf(statement.DiagAmbiguousDirection)),
		)
	}

	if len(records) > 0 {
		switch f.format {
		case "csv":
			err = export.WriteLedger(w, records)
		case "debug":
			err = writeDebug(w, ledgers, docs, isTerminal(w))
		default:
			writeTable(w, records)
		}
		if err != nil {
			return err
		}
	}
	return errors.Join(empty...)
}

var (
	creditStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	debitStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	unknownStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
)

func writeTable(w io.Writer, records []model.TransactionRecord) {
	fmt.Fprintf(w, "%-10s | %-7s | %-30s | %12s | %12s | %s\n", "date", "type", "description", "amount", "balance", "category")
	for _, r := range records {
		balance := ""
		if r.Balance.Valid {
			balance = r.Balance.Decimal.StringFixed(2)
		}
		line := fmt.Sprintf("%-10s | %-7s | %-30s | %12s | %12s | %s",
			r.Date.Format("2006-01-02"), r.Type, truncate(r.Description, 30), r.Amount.StringFixed(2), balance, r.Category)

		style := unknownStyle
		switch r.Type {
		case model.DirectionCredit:
			style = creditStyle
		case model.DirectionDebit:
			style = debitStyle
		}
		fmt.Fprintln(w, style.Render(line))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// debugRecord is the pp-friendly view of a record.
type debugRecord struct {
	Line        int
	Date        string
	Type        model.Direction
	Marker      string
	Description string
	Amount      string
	Balance     string
	Category    string
}

type debugRun struct {
	Document    string
	RunID       string
	Policy      statement.Policy
	Matched     int
	Records     []debugRecord
	Diagnostics []string
}

func writeDebug(w io.Writer, ledgers []*statement.Ledger, docs []string, color bool) error {
	printer := pp.New()
	printer.SetOutput(w)
	printer.SetColoringEnabled(color)

	for i, l := range ledgers {
		run := debugRun{Document: docs[i], RunID: l.RunID(), Policy: l.Policy(), Matched: l.Matched()}
		for _, r := range l.Records() {
			dr := debugRecord{
				Line:        r.Line,
				Date:        r.Date.Format("2006-01-02"),
				Type:        r.Type,
				Marker:      r.Marker,
				Description: r.Description,
				Amount:      r.Amount.StringFixed(2),
				Category:    r.Category,
			}
			if r.Balance.Valid {
				dr.Balance = r.Balance.Decimal.StringFixed(2)
			}
			run.Records = append(run.Records, dr)
		}
		for _, d := range l.Diagnostics() {
			run.Diagnostics = append(run.Diagnostics, d.String())
		}
		if _, err := printer.Println(run); err != nil {
			return fmt.Errorf("writing debug output: %w", err)
		}
	}
	return nil
}
