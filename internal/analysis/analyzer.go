// Package analysis is the boundary to an external language model that
// categorizes a ledger. Replies must be strict JSON; anything else is
// reported as an *UpstreamError rather than guessed at.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// Analyzer builds prompts from a ledger and decodes the model's replies.
type Analyzer struct {
	gen        Generator
	maxRecords int
	logger     *log.Logger
}

// New creates an Analyzer. maxRecords <= 0 uses DefaultMaxRecords and a nil
// logger discards output.
func New(gen Generator, maxRecords int, logger *log.Logger) *Analyzer {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Analyzer{gen: gen, maxRecords: maxRecords, logger: logger}
}

// MonthlyExpenses asks the model for expense totals per category and month.
func (a *Analyzer) MonthlyExpenses(ctx context.Context, records []model.TransactionRecord) (model.CategoryMonths, error) {
	raw, err := a.ask(ctx, "monthly-expenses", MonthlyExpensesPrompt(records, a.maxRecords), len(records))
	if err != nil {
		return nil, err
	}
	return ParseCategoryMonths(raw)
}

// Summarize asks the model for incomes, expenses and headline totals.
func (a *Analyzer) Summarize(ctx context.Context, records []model.TransactionRecord) (Analysis, error) {
	raw, err := a.ask(ctx, "summary", SummaryPrompt(records, a.maxRecords), len(records))
	if err != nil {
		return Analysis{}, err
	}
	return ParseAnalysis(raw)
}

func (a *Analyzer) ask(ctx context.Context, kind, prompt string, records int) (string, error) {
	sent := min(records, a.maxRecords)
	a.logger.Debug("sending prompt", "kind", kind, "records", sent, "bytes", len(prompt))
	raw, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s request: %w", kind, err)
	}
	a.logger.Debug("received reply", "kind", kind, "bytes", len(raw))
	return raw, nil
}

// FormatAnalysis renders an Analysis as indented JSON.
func FormatAnalysis(an Analysis) (string, error) {
	b, err := json.MarshalIndent(an, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding analysis: %w", err)
	}
	return string(b), nil
}
