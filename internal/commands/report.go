package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtledger/internal/export"
	"github.com/cleared-dev/stmtledger/internal/report"
	"github.com/cleared-dev/stmtledger/internal/summary"
)

type reportFlags struct {
	statementFlags
	output  string
	months  string
	title   string
	noChart bool
}

func newReportCommand(g *globalFlags) *cobra.Command {
	var f reportFlags

	cmd := &cobra.Command{
		Use:   "report <document|ledger.csv>",
		Short: "Render an HTML summary of a statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.OutOrStdout(), g, f, args[0])
		},
	}

	f.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "report path (default: report.output from config)")
	cmd.Flags().StringVar(&f.months, "months", "", "also write a category x month CSV to this path")
	cmd.Flags().StringVar(&f.title, "title", "", "report title")
	cmd.Flags().BoolVar(&f.noChart, "no-chart", false, "leave out the pie chart")

	return cmd
}

func runReport(out io.Writer, g *globalFlags, f reportFlags, doc string) error {
	p, err := loadProject(g)
	if err != nil {
		return err
	}
	records, err := p.loadRecords(doc, f.statementFlags)
	if err != nil {
		return err
	}

	s := summary.Compute(records, p.cfg.Report.TopSpending)

	output := f.output
	if output == "" {
		output = p.path(p.cfg.Report.Output)
	}
	if err := writeFileWith(output, func(w io.Writer) error {
		r := report.Renderer{Currency: p.cfg.Report.CurrencySymbol, Title: f.title, NoChart: f.noChart}
		return r.Render(w, s, time.Now())
	}); err != nil {
		return err
	}
	p.logger.Info("report generated", "path", output, "records", s.Records)
	fmt.Fprintf(out, "Report generated: %s\n", output)

	if f.months != "" {
		if err := writeFileWith(f.months, func(w io.Writer) error {
			return export.WriteCategoryMonths(w, summary.CategoryMonths(records))
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Monthly totals saved: %s\n", f.months)
	}
	return nil
}

// writeFileWith creates path and its parent directories and hands the file
// to write.
func writeFileWith(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
