// Package report renders a ledger summary as a standalone HTML page.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/stmtledger/internal/summary"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTmpl = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// maxBarWidth is the pixel width of the largest category bar.
const maxBarWidth = 240

// Renderer writes HTML reports.
type Renderer struct {
	// Currency is the symbol prefixed to amounts. Defaults to "$".
	Currency string
	// Title defaults to "Statement report".
	Title string
	// NoChart skips the pie chart image.
	NoChart bool
}

// Render writes the report for s using the default Renderer.
func Render(w io.Writer, s summary.Summary, generated time.Time) error {
	return Renderer{}.Render(w, s, generated)
}

type categoryRow struct {
	Name       string
	Amount     string
	Percentage string
	Width      int
}

type spendRow struct {
	Date        string
	Description string
	Category    string
	Amount      string
}

type page struct {
	Title         string
	Generated     string
	Period        string
	Records       int
	Unresolved    int
	TotalIncome   string
	TotalExpenses string
	NetSavings    string
	HasExpenses   bool
	Categories    []categoryRow
	TopSpending   []spendRow
	PieChart      template.URL
}

// Render writes the report for s. generated is printed as the report date.
func (r Renderer) Render(w io.Writer, s summary.Summary, generated time.Time) error {
	p, err := r.page(s, generated)
	if err != nil {
		return err
	}
	if err := reportTmpl.Execute(w, p); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return nil
}

func (r Renderer) page(s summary.Summary, generated time.Time) (page, error) {
	cur := r.Currency
	if cur == "" {
		cur = "$"
	}
	title := r.Title
	if title == "" {
		title = "Statement report"
	}

	p := page{
		Title:         title,
		Generated:     generated.Format("2006-01-02"),
		Records:       s.Records,
		Unresolved:    s.Unresolved,
		TotalIncome:   FormatMoney(s.TotalIncome, cur),
		TotalExpenses: FormatMoney(s.TotalExpenses, cur),
		NetSavings:    FormatMoney(s.NetSavings, cur),
		HasExpenses:   s.HasExpenses(),
	}
	if !s.From.IsZero() {
		p.Period = s.From.Format("2 Jan 2006") + " to " + s.To.Format("2 Jan 2006")
	}

	for i, c := range s.ByCategory {
		width := maxBarWidth
		if i > 0 && s.ByCategory[0].Amount.IsPositive() {
			width = int(c.Amount.Div(s.ByCategory[0].Amount).Mul(decimal.NewFromInt(maxBarWidth)).IntPart())
		}
		p.Categories = append(p.Categories, categoryRow{
			Name:       c.Name,
			Amount:     FormatMoney(c.Amount, cur),
			Percentage: c.Percentage.StringFixed(1),
			Width:      width,
		})
	}
	for _, sp := range s.TopSpending {
		p.TopSpending = append(p.TopSpending, spendRow{
			Date:        sp.Date.Format("2006-01-02"),
			Description: sp.Description,
			Category:    sp.Category,
			Amount:      FormatMoney(sp.Amount.Neg(), cur),
		})
	}

	if !r.NoChart && p.HasExpenses {
		uri, err := PieChart(s.ByCategory)
		if err != nil {
			return page{}, err
		}
		// html/template rewrites untyped data: URIs to "#ZgotmplZ".
		p.PieChart = template.URL(uri)
	}
	return p, nil
}
