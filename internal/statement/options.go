package statement

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/categorizer"
)

// Policy selects how the Direction Resolver decides credit vs debit.
// One policy applies to a whole run.
type Policy string

const (
	// PolicyExplicitMarker trusts the two-letter marker printed on the line.
	PolicyExplicitMarker Policy = "explicit-marker"
	// PolicyBalanceDelta compares each running balance with the previous one.
	PolicyBalanceDelta Policy = "balance-delta"
)

// ParsePolicy accepts the canonical policy names and the short forms
// "explicit", "marker", "delta" and "balance".
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(PolicyExplicitMarker), "explicit", "marker":
		return PolicyExplicitMarker, nil
	case string(PolicyBalanceDelta), "delta", "balance":
		return PolicyBalanceDelta, nil
	default:
		return "", fmt.Errorf("unknown direction policy %q", s)
	}
}

// Categorizer assigns a category label to a description.
type Categorizer interface {
	Categorize(description string) string
}

// Extractor turns a document into ordered per-page text.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// Options configures one parse run.
type Options struct {
	// Year completes every day+month date token.
	Year int
	// Policy is required.
	Policy Policy
	// Markers defaults to DefaultMarkers.
	Markers MarkerTable
	// Categorizer defaults to the built-in rule table.
	Categorizer Categorizer
	// OpeningBalance seeds the running balance when valid.
	OpeningBalance decimal.NullDecimal
	// Logger defaults to a logger that discards everything.
	Logger *log.Logger
}

// Validate checks the fields that have no usable default.
func (o Options) Validate() error {
	if o.Year <= 0 {
		return fmt.Errorf("year must be positive, got %d", o.Year)
	}
	switch o.Policy {
	case PolicyExplicitMarker, PolicyBalanceDelta:
	default:
		return fmt.Errorf("unknown direction policy %q", o.Policy)
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Markers == nil {
		o.Markers = DefaultMarkers()
	}
	if o.Categorizer == nil {
		o.Categorizer = categorizer.Default()
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}
