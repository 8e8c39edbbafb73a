package statement

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// Validation check names.
const (
	CheckSign     = "sign"
	CheckDecimals = "decimals"
	CheckYear     = "year"
	CheckBalance  = "balance"
)

// ValidationError describes a single invariant violation on a record.
type ValidationError struct {
	Check       string
	Line        int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s [line %d]: %s", e.Check, e.Line, e.Description)
}

// Validate checks the ledger's records against the ledger invariants:
// amount sign agrees with type, amounts and balances have at most two
// decimal places, dates fall in the run year and, under the balance-delta
// policy, each resolved balance follows from the previous one.
func Validate(l *Ledger) []ValidationError {
	var errs []ValidationError
	hundred := decimal.NewFromInt(100)
	records := l.records

	for i, rec := range records {
		switch {
		case rec.Type == model.DirectionCredit && rec.Amount.IsNegative():
			errs = append(errs, ValidationError{
				Check:       CheckSign,
				Line:        rec.Line,
				Description: fmt.Sprintf("credit with negative amount %s", rec.Amount.StringFixed(2)),
			})
		case rec.Type == model.DirectionDebit && rec.Amount.IsPositive():
			errs = append(errs, ValidationError{
				Check:       CheckSign,
				Line:        rec.Line,
				Description: fmt.Sprintf("debit with positive amount %s", rec.Amount.StringFixed(2)),
			})
		}

		if !rec.Amount.Mul(hundred).Equal(rec.Amount.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Check:       CheckDecimals,
				Line:        rec.Line,
				Description: fmt.Sprintf("amount %s has more than 2 decimal places", rec.Amount),
			})
		}
		if rec.Balance.Valid && !rec.Balance.Decimal.Mul(hundred).Equal(rec.Balance.Decimal.Mul(hundred).Floor()) {
			errs = append(errs, ValidationError{
				Check:       CheckDecimals,
				Line:        rec.Line,
				Description: fmt.Sprintf("balance %s has more than 2 decimal places", rec.Balance.Decimal),
			})
		}

		if rec.Date.Year() != l.year {
			errs = append(errs, ValidationError{
				Check:       CheckYear,
				Line:        rec.Line,
				Description: fmt.Sprintf("date %s not in %d", rec.Date.Format("2006-01-02"), l.year),
			})
		}

		if l.policy != PolicyBalanceDelta || i == 0 || rec.Type == model.DirectionUnknown {
			continue
		}
		prev := records[i-1]
		if !prev.Balance.Valid || !rec.Balance.Valid {
			continue
		}
		delta := rec.Balance.Decimal.Sub(prev.Balance.Decimal)
		if !delta.Equal(rec.Amount) {
			errs = append(errs, ValidationError{
				Check:       CheckBalance,
				Line:        rec.Line,
				Description: fmt.Sprintf("balance moved by %s but amount is %s", delta.StringFixed(2), rec.Amount.StringFixed(2)),
			})
		}
	}
	return errs
}
