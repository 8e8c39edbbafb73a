package statement

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// Resolution is the outcome of resolving one record's direction.
type Resolution struct {
	Direction model.Direction
	Amount    decimal.Decimal
	// Ambiguous is set when neither a marker nor a previous balance could
	// decide the direction.
	Ambiguous bool
	// Mismatch is set when the previous balance plus Amount does not equal
	// the printed balance.
	Mismatch bool
	// Expected is previous balance plus Amount; only meaningful with Mismatch.
	Expected decimal.Decimal
}

// Resolver assigns a direction and signed amount to records in document
// order. It holds the running balance for one run and must not be shared
// between runs.
type Resolver struct {
	policy  Policy
	markers MarkerTable
	prev    decimal.NullDecimal
}

// NewResolver creates a Resolver. A valid opening balance seeds the running
// balance; otherwise it starts unset.
func NewResolver(policy Policy, markers MarkerTable, opening decimal.NullDecimal) *Resolver {
	return &Resolver{policy: policy, markers: markers, prev: opening}
}

// Previous returns the running balance after the last resolved record.
func (r *Resolver) Previous() decimal.NullDecimal { return r.prev }

// Resolve decides the direction of one record. Records dropped before
// resolution never reach Resolve, so they do not move the running balance.
func (r *Resolver) Resolve(marker string, amount decimal.Decimal, balance decimal.NullDecimal) Resolution {
	prev := r.prev

	var res Resolution
	switch r.policy {
	case PolicyBalanceDelta:
		res = r.byDelta(marker, amount, balance)
	default:
		res = r.byMarker(marker, amount)
	}

	if balance.Valid {
		r.prev = balance
	} else {
		r.prev = decimal.NullDecimal{}
	}

	if prev.Valid && balance.Valid && res.Direction != model.DirectionUnknown {
		expected := prev.Decimal.Add(res.Amount)
		if !expected.Equal(balance.Decimal) {
			res.Mismatch = true
			res.Expected = expected
		}
	}
	return res
}

func (r *Resolver) byMarker(marker string, amount decimal.Decimal) Resolution {
	if dir, ok := r.markers.Lookup(marker); ok {
		return withDirection(dir, amount)
	}
	return Resolution{Direction: model.DirectionUnknown, Amount: amount, Ambiguous: true}
}

func (r *Resolver) byDelta(marker string, amount decimal.Decimal, balance decimal.NullDecimal) Resolution {
	if !balance.Valid {
		return Resolution{Direction: model.DirectionUnknown, Amount: amount, Ambiguous: true}
	}
	if !r.prev.Valid {
		// Nothing to compare against yet; a marker is the only evidence left.
		return r.byMarker(marker, amount)
	}
	if balance.Decimal.GreaterThan(r.prev.Decimal) {
		return withDirection(model.DirectionCredit, amount)
	}
	return withDirection(model.DirectionDebit, amount)
}

func withDirection(dir model.Direction, amount decimal.Decimal) Resolution {
	mag := amount.Abs()
	if dir == model.DirectionDebit {
		mag = mag.Neg()
	}
	return Resolution{Direction: dir, Amount: mag}
}
