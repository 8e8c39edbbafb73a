package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// DefaultMaxRecords bounds the transaction table sent to the model.
const DefaultMaxRecords = 200

// Recent returns at most limit records, the latest by date, in chronological
// order. Records sharing a date keep their ledger order.
func Recent(records []model.TransactionRecord, limit int) []model.TransactionRecord {
	if limit <= 0 {
		limit = DefaultMaxRecords
	}
	sorted := append([]model.TransactionRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	if len(sorted) > limit {
		sorted = sorted[len(sorted)-limit:]
	}
	return sorted
}

// Table renders records as a markdown table.
func Table(records []model.TransactionRecord) string {
	var b strings.Builder
	b.WriteString("| date | description | amount | category |\n")
	b.WriteString("|------|-------------|-------:|----------|\n")
	for _, r := range records {
		desc := strings.ReplaceAll(r.Description, "|", "/")
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", r.Date.Format("2006-01-02"), desc, r.Amount.StringFixed(2), r.Category)
	}
	return b.String()
}

// MonthlyExpensesPrompt asks for expense totals per category and month.
func MonthlyExpensesPrompt(records []model.TransactionRecord, limit int) string {
	return `You are a financial assistant.

Here's a table of bank transactions:

` + Table(Recent(records, limit)) + `
Tasks:
1. Assign a category to each transaction based on its description. The category column is a rule-based guess you may refine.
2. For each category, total the expenses (amount < 0) per month (format YYYY-MM), as positive numbers.
3. Return a JSON object in exactly this shape:

{
  "Groceries": {"2025-03": 123.45, "2025-04": 234.56},
  "Subscriptions": {"2025-03": 12.99}
}

Rules:
- Only include expenses.
- Only include months and categories with expenses.
- Return ONLY raw JSON. No explanation, no markdown.
`
}

// SummaryPrompt asks for incomes, expenses and headline totals.
func SummaryPrompt(records []model.TransactionRecord, limit int) string {
	return `You are a financial assistant.

Here's a table of bank transactions:

` + Table(Recent(records, limit)) + `
Tasks:
1. Split the transactions into incomes (amount > 0) and expenses (amount < 0).
2. Assign each one a category.
3. Return a JSON object in exactly this shape:

{
  "incomes": [{"date": "2025-03-01", "description": "Salary", "amount": 2500.00, "category": "Income"}],
  "expenses": [{"date": "2025-03-02", "description": "Pak N Save", "amount": -45.67, "category": "Groceries"}],
  "summary": {"total_income": 2500.00, "total_expenses": 45.67, "net": 2454.33, "top_category": "Groceries"}
}

Rules:
- Copy dates, descriptions and amounts from the table unchanged.
- total_expenses is a positive number.
- Return ONLY raw JSON. No explanation, no markdown.
`
}
