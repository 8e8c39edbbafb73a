package statement

import "fmt"

// DiagnosticKind classifies something the pipeline skipped or could not decide.
type DiagnosticKind string

const (
	DiagEmptyPage          DiagnosticKind = "empty-page"
	DiagMalformedNumeric   DiagnosticKind = "malformed-numeric"
	DiagMalformedDate      DiagnosticKind = "malformed-date"
	DiagAmbiguousDirection DiagnosticKind = "ambiguous-direction"
	DiagBalanceMismatch    DiagnosticKind = "balance-mismatch"
)

// Diagnostic is a structured record of a recovered, per-line or per-page
// problem. Line and Page are 1-based; zero means not applicable.
type Diagnostic struct {
	Kind   DiagnosticKind
	Page   int
	Line   int
	Text   string
	Detail string
}

// Dropped reports whether the diagnostic caused a matched line to be
// left out of the ledger.
func (d Diagnostic) Dropped() bool {
	return d.Kind == DiagMalformedNumeric || d.Kind == DiagMalformedDate
}

func (d Diagnostic) String() string {
	if d.Line == 0 {
		return fmt.Sprintf("%s (page %d)", d.Kind, d.Page)
	}
	return fmt.Sprintf("%s (line %d): %s", d.Kind, d.Line, d.Detail)
}
