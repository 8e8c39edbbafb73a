package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// UpstreamError is returned when the model's reply cannot be used. Raw holds
// the reply as received.
type UpstreamError struct {
	Raw string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("unusable model response: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Entry is one transaction as echoed back by the model.
type Entry struct {
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
}

// Totals are the model's headline figures.
type Totals struct {
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Net           decimal.Decimal `json:"net"`
	TopCategory   string          `json:"top_category,omitempty"`
}

// Analysis is the incomes/expenses/summary reply.
type Analysis struct {
	Incomes  []Entry `json:"incomes"`
	Expenses []Entry `json:"expenses"`
	Summary  Totals  `json:"summary"`
}

// stripFences removes a surrounding markdown code fence, if any. Nothing
// else is trimmed: text around the JSON makes the reply invalid.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	idx := strings.Index(s, "\n")
	if idx == -1 {
		return s
	}
	s = strings.TrimSpace(s[idx+1:])
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// decodeStrict decodes exactly one JSON value into v, rejecting unknown
// fields and trailing data.
func decodeStrict(raw string, v any) error {
	dec := json.NewDecoder(strings.NewReader(stripFences(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}

// ParseCategoryMonths decodes a {category: {month: total}} reply. Month keys
// must be YYYY-MM and totals must not be negative.
func ParseCategoryMonths(raw string) (model.CategoryMonths, error) {
	var parsed map[string]map[string]decimal.Decimal
	if err := decodeStrict(raw, &parsed); err != nil {
		return nil, &UpstreamError{Raw: raw, Err: err}
	}
	if parsed == nil {
		return nil, &UpstreamError{Raw: raw, Err: errors.New("expected a JSON object")}
	}

	cm := make(model.CategoryMonths)
	for cat, months := range parsed {
		if strings.TrimSpace(cat) == "" {
			return nil, &UpstreamError{Raw: raw, Err: errors.New("empty category name")}
		}
		for month, total := range months {
			if _, err := time.Parse("2006-01", month); err != nil {
				return nil, &UpstreamError{Raw: raw, Err: fmt.Errorf("category %q: bad month %q", cat, month)}
			}
			if total.IsNegative() {
				return nil, &UpstreamError{Raw: raw, Err: fmt.Errorf("category %q month %s: negative total %s", cat, month, total)}
			}
			cm.Add(cat, month, total)
		}
	}
	return cm, nil
}

// ParseAnalysis decodes an {incomes, expenses, summary} reply. All three
// keys are required.
func ParseAnalysis(raw string) (Analysis, error) {
	var parsed struct {
		Incomes  *[]Entry `json:"incomes"`
		Expenses *[]Entry `json:"expenses"`
		Summary  *Totals  `json:"summary"`
	}
	if err := decodeStrict(raw, &parsed); err != nil {
		return Analysis{}, &UpstreamError{Raw: raw, Err: err}
	}

	var missing []string
	if parsed.Incomes == nil {
		missing = append(missing, "incomes")
	}
	if parsed.Expenses == nil {
		missing = append(missing, "expenses")
	}
	if parsed.Summary == nil {
		missing = append(missing, "summary")
	}
	if len(missing) > 0 {
		return Analysis{}, &UpstreamError{Raw: raw, Err: fmt.Errorf("missing %s", strings.Join(missing, ", "))}
	}

	a := Analysis{Incomes: *parsed.Incomes, Expenses: *parsed.Expenses, Summary: *parsed.Summary}
	for i, e := range append(append([]Entry(nil), a.Incomes...), a.Expenses...) {
		if _, err := time.Parse("2006-01-02", e.Date); err != nil {
			return Analysis{}, &UpstreamError{Raw: raw, Err: fmt.Errorf("entry %d: bad date %q", i+1, e.Date)}
		}
	}
	return a, nil
}
