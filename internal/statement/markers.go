package statement

import (
	"fmt"
	"strings"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// MarkerTable maps two-letter type markers to a direction.
type MarkerTable map[string]model.Direction

// DefaultMarkers returns the markers seen on NZ retail bank statements.
func DefaultMarkers() MarkerTable {
	return MarkerTable{
		"CR": model.DirectionCredit, // credit
		"DP": model.DirectionCredit, // deposit
		"DR": model.DirectionDebit,  // debit
		"DB": model.DirectionDebit,
		"DD": model.DirectionDebit, // direct debit
		"AP": model.DirectionDebit, // automatic payment
		"EP": model.DirectionDebit, // eftpos
		"DC": model.DirectionDebit, // debit card
		"SO": model.DirectionDebit, // standing order
	}
}

// Lookup returns the direction for a marker token.
func (t MarkerTable) Lookup(token string) (model.Direction, bool) {
	if token == "" {
		return model.DirectionUnknown, false
	}
	d, ok := t[token]
	if !ok || d == model.DirectionUnknown {
		return model.DirectionUnknown, false
	}
	return d, true
}

// ParseMarkers builds a MarkerTable from config values such as
// {"CR": "credit", "DR": "debit"}.
func ParseMarkers(raw map[string]string) (MarkerTable, error) {
	t := make(MarkerTable, len(raw))
	for k, v := range raw {
		token := strings.ToUpper(strings.TrimSpace(k))
		if len(token) != 2 {
			return nil, fmt.Errorf("marker %q: must be two letters", k)
		}
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "credit", "cr":
			t[token] = model.DirectionCredit
		case "debit", "dr":
			t[token] = model.DirectionDebit
		default:
			return nil, fmt.Errorf("marker %q: unknown direction %q", k, v)
		}
	}
	return t, nil
}
