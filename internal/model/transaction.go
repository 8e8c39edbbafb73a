package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the flow of money for a transaction.
type Direction string

const (
	DirectionCredit  Direction = "CREDIT"
	DirectionDebit   Direction = "DEBIT"
	DirectionUnknown Direction = "UNKNOWN"
)

// ParseDirection converts a stored direction string back to a Direction.
// Anything unrecognized becomes DirectionUnknown.
func ParseDirection(s string) Direction {
	switch Direction(s) {
	case DirectionCredit:
		return DirectionCredit
	case DirectionDebit:
		return DirectionDebit
	default:
		return DirectionUnknown
	}
}

// Category labels emitted by the default rule table.
const (
	CategoryGroceries     = "Groceries"
	CategoryTransport     = "Transport"
	CategoryFitness       = "Fitness"
	CategoryEatingOut     = "Eating Out"
	CategorySubscriptions = "Subscriptions"
	CategoryIncome        = "Income"
	CategoryHealth        = "Health"
	CategoryOther         = "Other"
)

// TransactionRecord is one resolved line of a bank statement.
type TransactionRecord struct {
	Date        time.Time
	Type        Direction
	Description string
	Amount      decimal.Decimal     // positive = inflow, negative = outflow
	Balance     decimal.NullDecimal // invalid when the statement omits it
	Category    string
	Marker      string // recognized type marker as printed, e.g. "DR"
	Line        int    // document-relative line ordinal
}

// IsInflow reports whether the record adds money to the account.
func (r TransactionRecord) IsInflow() bool {
	return r.Amount.IsPositive()
}

// IsOutflow reports whether the record removes money from the account.
func (r TransactionRecord) IsOutflow() bool {
	return r.Amount.IsNegative()
}

// Month returns the record's month key, e.g. "2025-03".
func (r TransactionRecord) Month() string {
	return r.Date.Format("2006-01")
}
