package summary

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtledger/internal/model"
)

func rec(day int, month time.Month, typ model.Direction, desc, amount, category string) model.TransactionRecord {
	return model.TransactionRecord{
		Date:        time.Date(2025, month, day, 0, 0, 0, 0, time.UTC),
		Type:        typ,
		Description: desc,
		Amount:      decimal.RequireFromString(amount),
		Category:    category,
	}
}

func sample() []model.TransactionRecord {
	return []model.TransactionRecord{
		rec(1, 3, model.DirectionCredit, "Salary", "2500.00", model.CategoryIncome),
		rec(2, 3, model.DirectionDebit, "Pak N Save", "-45.67", model.CategoryGroceries),
		rec(3, 3, model.DirectionDebit, "Countdown", "-54.33", model.CategoryGroceries),
		rec(4, 3, model.DirectionDebit, "Les Mills", "-100.00", model.CategoryFitness),
		rec(5, 3, model.DirectionUnknown, "Mystery", "-20.00", model.CategoryOther),
		rec(6, 2, model.DirectionDebit, "KFC", "-30.00", model.CategoryEatingOut),
		rec(7, 3, model.DirectionDebit, "Steam", "-30.00", model.CategorySubscriptions),
		rec(8, 3, model.DirectionDebit, "Fee", "0.00", model.CategoryOther),
	}
}

func TestCompute(t *testing.T) {
	s := Compute(sample(), 0)

	assert.Equal(t, 8, s.Records)
	assert.Equal(t, 1, s.Unresolved)
	assert.Equal(t, time.Date(2025, 2, 6, 0, 0, 0, 0, time.UTC), s.From)
	assert.Equal(t, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), s.To)
	assert.Equal(t, "2500.00", s.TotalIncome.StringFixed(2))
	assert.Equal(t, "280.00", s.TotalExpenses.StringFixed(2))
	assert.Equal(t, "2220.00", s.NetSavings.StringFixed(2))
	assert.True(t, s.HasExpenses())

	require.Len(t, s.ByCategory, 5)
	assert.Equal(t, model.CategoryFitness, s.ByCategory[0].Name)
	assert.Equal(t, model.CategoryGroceries, s.ByCategory[1].Name)
	assert.Equal(t, "100.00", s.ByCategory[1].Amount.StringFixed(2))
	assert.Equal(t, "35.7", s.ByCategory[1].Percentage.StringFixed(1))
	assert.Equal(t, model.CategoryEatingOut, s.ByCategory[2].Name, "ties sort by name")
	assert.Equal(t, model.CategorySubscriptions, s.ByCategory[3].Name)
	assert.Equal(t, model.CategoryOther, s.ByCategory[4].Name)

	require.Len(t, s.TopSpending, DefaultTopN)
	assert.Equal(t, "Les Mills", s.TopSpending[0].Description)
	assert.Equal(t, "Countdown", s.TopSpending[1].Description)
	assert.Equal(t, "Pak N Save", s.TopSpending[2].Description)
	assert.Equal(t, "KFC", s.TopSpending[3].Description, "ties keep ledger order")
	assert.Equal(t, "Steam", s.TopSpending[4].Description)
}

func TestCompute_TopN(t *testing.T) {
	s := Compute(sample(), 2)
	require.Len(t, s.TopSpending, 2)
	assert.Equal(t, "Les Mills", s.TopSpending[0].Description)
}

func TestCompute_NoExpenses(t *testing.T) {
	s := Compute([]model.TransactionRecord{
		rec(1, 3, model.DirectionCredit, "Salary", "100.00", model.CategoryIncome),
	}, 0)
	assert.False(t, s.HasExpenses())
	assert.True(t, s.TotalExpenses.IsZero())
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.TopSpending)
	assert.Equal(t, "100.00", s.NetSavings.StringFixed(2))

	empty := Compute(nil, 0)
	assert.Equal(t, 0, empty.Records)
	assert.True(t, empty.From.IsZero())
}

func TestCategoryMonths(t *testing.T) {
	cm := CategoryMonths(sample())
	assert.Equal(t, []string{
		model.CategoryEatingOut, model.CategoryFitness, model.CategoryGroceries,
		model.CategoryOther, model.CategorySubscriptions,
	}, cm.Categories())
	assert.Equal(t, []string{"2025-02", "2025-03"}, cm.Months())
	assert.Equal(t, "100.00", cm.Get(model.CategoryGroceries, "2025-03").StringFixed(2))
	assert.True(t, cm.Get(model.CategoryIncome, "2025-03").IsZero())
}
