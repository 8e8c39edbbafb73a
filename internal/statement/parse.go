package statement

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// ParseDocument extracts text from the document at path and parses it.
// Extraction failures are returned as *DocumentError.
func ParseDocument(path string, ex Extractor, opts Options) (*Ledger, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pages, err := ex.Extract(path)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return Parse(pages, opts)
}

// Parse turns ordered per-page text into a ledger in a single sequential
// pass. Per-line problems are recorded as diagnostics; the only error is an
// invalid Options.
func Parse(pages []string, opts Options) (*Ledger, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()
	logger := opts.Logger

	b := NewBuilder(opts.Year, opts.Policy)
	for i, text := range pages {
		if strings.TrimSpace(text) == "" {
			logger.Debug("page has no text", "page", i+1)
			b.Diagnose(Diagnostic{Kind: DiagEmptyPage, Page: i + 1})
		}
	}

	p := &run{
		year:     opts.Year,
		matcher:  NewMatcher(opts.Markers),
		resolver: NewResolver(opts.Policy, opts.Markers, opts.OpeningBalance),
		cat:      opts.Categorizer,
		builder:  b,
		logger:   logger,
	}
	for _, line := range Segment(pages) {
		p.line(line)
	}

	l := b.Build()
	logger.Info("parsed statement",
		"run", l.RunID(),
		"policy", l.Policy(),
		"matched", l.Matched(),
		"records", l.Len(),
		"dropped", l.Dropped(),
	)
	return l, nil
}

// run carries the per-run state of Parse.
type run struct {
	year     int
	matcher  *Matcher
	resolver *Resolver
	cat      Categorizer
	builder  *Builder
	logger   *log.Logger
}

func (p *run) line(line RawLine) {
	m, ok := p.matcher.Match(line.Text)
	if !ok {
		p.logger.Debug("no match", "line", line.DocLine, "text", line.Text)
		return
	}
	p.builder.Matched()

	date, err := ParseDate(m.DateToken, p.year)
	if err != nil {
		p.drop(line, DiagMalformedDate, err)
		return
	}
	amount, err := ParseAmount(m.AmountToken)
	if err != nil {
		p.drop(line, DiagMalformedNumeric, err)
		return
	}
	var balance decimal.NullDecimal
	if m.HasBalance() {
		b, err := ParseAmount(m.BalanceToken)
		if err != nil {
			p.drop(line, DiagMalformedNumeric, err)
			return
		}
		balance = decimal.NewNullDecimal(b)
	}

	res := p.resolver.Resolve(m.TypeToken, amount, balance)
	if res.Ambiguous {
		p.diagnose(line, DiagAmbiguousDirection, "direction undecided; kept with printed sign")
	}
	if res.Mismatch {
		p.diagnose(line, DiagBalanceMismatch, fmt.Sprintf(
			"expected balance %s, statement shows %s",
			res.Expected.StringFixed(2), balance.Decimal.StringFixed(2),
		))
	}

	p.builder.Add(model.TransactionRecord{
		Date:        date,
		Type:        res.Direction,
		Description: m.Description,
		Amount:      res.Amount,
		Balance:     balance,
		Category:    p.cat.Categorize(m.Description),
		Marker:      m.TypeToken,
		Line:        line.DocLine,
	})
}

func (p *run) drop(line RawLine, kind DiagnosticKind, err error) {
	p.logger.Warn("dropping line", "line", line.DocLine, "kind", kind, "error", err)
	p.builder.Diagnose(Diagnostic{
		Kind:   kind,
		Page:   line.Page,
		Line:   line.DocLine,
		Text:   line.Text,
		Detail: err.Error(),
	})
}

func (p *run) diagnose(line RawLine, kind DiagnosticKind, detail string) {
	p.logger.Warn(detail, "line", line.DocLine, "kind", kind)
	p.builder.Diagnose(Diagnostic{
		Kind:   kind,
		Page:   line.Page,
		Line:   line.DocLine,
		Text:   line.Text,
		Detail: detail,
	})
}
