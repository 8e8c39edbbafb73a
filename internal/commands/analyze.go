package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtledger/internal/analysis"
	"github.com/cleared-dev/stmtledger/internal/export"
	"github.com/cleared-dev/stmtledger/internal/model"
)

// apiKeyEnv lists the variables checked for a Gemini API key, in order.
var apiKeyEnv = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}

type analyzeFlags struct {
	statementFlags
	mode    string
	output  string
	model   string
	envFile string
	timeout time.Duration
}

func newAnalyzeCommand(g *globalFlags) *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze <document|ledger.csv>",
		Short: "Ask a language model to categorize and total a statement",
		Long: "Send the most recent transactions to Gemini and decode its reply.\n" +
			"--mode months writes category x month expense totals as CSV;\n" +
			"--mode summary prints incomes, expenses and totals as JSON.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), cmd.OutOrStdout(), g, f, args[0])
		},
	}

	f.register(cmd)
	cmd.Flags().StringVar(&f.mode, "mode", "months", "analysis: months or summary")
	cmd.Flags().StringVarP(&f.output, "output", "o", "output/annual-expenses.csv", "CSV path for --mode months")
	cmd.Flags().StringVar(&f.model, "model", "", "model name (default: analysis.model from config)")
	cmd.Flags().StringVar(&f.envFile, "env-file", ".env", "dotenv file with the API key")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 2*time.Minute, "request timeout")

	return cmd
}

func apiKey(envFile string) (string, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("loading %s: %w", envFile, err)
	}
	for _, name := range apiKeyEnv {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("set GEMINI_API_KEY or GOOGLE_API_KEY in the environment or %s", envFile)
}

func runAnalyze(ctx context.Context, out io.Writer, g *globalFlags, f analyzeFlags, doc string) error {
	if f.mode != "months" && f.mode != "summary" {
		return fmt.Errorf("unknown mode %q (want months or summary)", f.mode)
	}

	p, err := loadProject(g)
	if err != nil {
		return err
	}
	envFile := f.envFile
	if envFile != "" {
		envFile = p.path(envFile)
	}
	key, err := apiKey(envFile)
	if err != nil {
		return err
	}

	records, err := p.loadRecords(doc, f.statementFlags)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	modelName := f.model
	if modelName == "" {
		modelName = p.cfg.Analysis.Model
	}
	gen, err := analysis.NewGeminiGenerator(ctx, key, modelName)
	if err != nil {
		return err
	}
	a := analysis.New(gen, p.cfg.Analysis.MaxRecords, p.logger)
	p.logger.Info("sending transactions", "model", gen.Model(), "records", len(records))

	err = analyzeWith(ctx, out, a, f, p.path(f.output), records)
	var up *analysis.UpstreamError
	if errors.As(err, &up) {
		p.logger.Error("model reply was not valid JSON", "error", up.Err)
		p.logger.Debug("raw reply", "text", up.Raw)
	}
	return err
}

func analyzeWith(ctx context.Context, out io.Writer, a *analysis.Analyzer, f analyzeFlags, output string, records []model.TransactionRecord) error {
	if f.mode == "summary" {
		an, err := a.Summarize(ctx, records)
		if err != nil {
			return err
		}
		text, err := analysis.FormatAnalysis(an)
		if err != nil {
			return err
		}
		fmt.Fprint(out, text)
		return nil
	}

	cm, err := a.MonthlyExpenses(ctx, records)
	if err != nil {
		return err
	}
	if len(cm) == 0 {
		fmt.Fprintln(out, "No expenses in the model's reply; nothing written.")
		return nil
	}
	if err := writeFileWith(output, func(w io.Writer) error {
		return export.WriteCategoryMonths(w, cm)
	}); err != nil {
		return err
	}
	fmt.Fprintf(out, "Monthly expenses saved: %s\n", output)
	return nil
}
