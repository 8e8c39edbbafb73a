package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryMonths holds totals keyed by category, then by month ("2006-01").
type CategoryMonths map[string]map[string]decimal.Decimal

// Add accumulates amount into the category/month cell.
func (cm CategoryMonths) Add(category, month string, amount decimal.Decimal) {
	row, ok := cm[category]
	if !ok {
		row = make(map[string]decimal.Decimal)
		cm[category] = row
	}
	row[month] = row[month].Add(amount)
}

// Get returns the total for a cell, zero when absent.
func (cm CategoryMonths) Get(category, month string) decimal.Decimal {
	return cm[category][month]
}

// Categories returns the category keys in sorted order.
func (cm CategoryMonths) Categories() []string {
	out := make([]string, 0, len(cm))
	for c := range cm {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Months returns every month that appears in any category, sorted.
func (cm CategoryMonths) Months() []string {
	seen := make(map[string]bool)
	var out []string
	for _, row := range cm {
		for m := range row {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Total sums one category across all months.
func (cm CategoryMonths) Total(category string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range cm[category] {
		total = total.Add(v)
	}
	return total
}
