// Package summary aggregates a ledger into the figures shown in reports.
package summary

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// DefaultTopN is the number of largest expenses kept in a Summary.
const DefaultTopN = 5

// CategoryTotal is the spending in one category.
type CategoryTotal struct {
	Name       string
	Amount     decimal.Decimal // positive magnitude
	Percentage decimal.Decimal // share of total expenses, one decimal place
}

// Spend is a single expense.
type Spend struct {
	Date        time.Time
	Description string
	Category    string
	Amount      decimal.Decimal // positive magnitude
}

// Summary holds the headline figures of a ledger.
type Summary struct {
	Records    int
	Unresolved int // records whose direction stayed UNKNOWN
	From, To   time.Time

	TotalIncome   decimal.Decimal
	TotalExpenses decimal.Decimal // positive magnitude
	NetSavings    decimal.Decimal

	ByCategory  []CategoryTotal // largest first
	TopSpending []Spend         // largest first
}

// HasExpenses reports whether any money left the account.
func (s Summary) HasExpenses() bool {
	return s.TotalExpenses.IsPositive()
}

// Compute summarizes records. Inflow and outflow are taken from the amount
// sign, so unresolved records count by their printed sign. topN <= 0 uses
// DefaultTopN.
func Compute(records []model.TransactionRecord, topN int) Summary {
	if topN <= 0 {
		topN = DefaultTopN
	}
	s := Summary{
		Records:       len(records),
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}

	byCat := make(map[string]decimal.Decimal)
	var spends []Spend
	for _, rec := range records {
		if rec.Type == model.DirectionUnknown {
			s.Unresolved++
		}
		if s.From.IsZero() || rec.Date.Before(s.From) {
			s.From = rec.Date
		}
		if rec.Date.After(s.To) {
			s.To = rec.Date
		}

		switch {
		case rec.IsInflow():
			s.TotalIncome = s.TotalIncome.Add(rec.Amount)
		case rec.IsOutflow():
			amt := rec.Amount.Abs()
			s.TotalExpenses = s.TotalExpenses.Add(amt)
			byCat[rec.Category] = byCat[rec.Category].Add(amt)
			spends = append(spends, Spend{
				Date:        rec.Date,
				Description: rec.Description,
				Category:    rec.Category,
				Amount:      amt,
			})
		}
	}
	s.NetSavings = s.TotalIncome.Sub(s.TotalExpenses)

	hundred := decimal.NewFromInt(100)
	for name, amt := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryTotal{
			Name:       name,
			Amount:     amt,
			Percentage: amt.Div(s.TotalExpenses).Mul(hundred).Round(1),
		})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		a, b := s.ByCategory[i], s.ByCategory[j]
		if c := a.Amount.Cmp(b.Amount); c != 0 {
			return c > 0
		}
		return a.Name < b.Name
	})

	sort.SliceStable(spends, func(i, j int) bool {
		return spends[i].Amount.GreaterThan(spends[j].Amount)
	})
	if len(spends) > topN {
		spends = spends[:topN]
	}
	s.TopSpending = spends
	return s
}

// CategoryMonths totals expenses per category and month, as positive
// magnitudes. Inflows are left out.
func CategoryMonths(records []model.TransactionRecord) model.CategoryMonths {
	cm := make(model.CategoryMonths)
	for _, rec := range records {
		if rec.IsOutflow() {
			cm.Add(rec.Category, rec.Month(), rec.Amount.Abs())
		}
	}
	return cm
}
