package extract

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/dslipak/pdf"
)

// PDFExtractor pulls the text layer out of a PDF, one string per page.
// Scanned documents without a text layer yield empty pages.
type PDFExtractor struct{}

// Format returns the extractor name.
func (e *PDFExtractor) Format() string { return "pdf" }

// Extract returns the text of every page in order, one visual row per line.
func (e *PDFExtractor) Extract(path string) (pages []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	// The pdf package panics on malformed cross-reference tables and
	// content streams.
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("reading pdf %s: %v", path, r)
		}
	}()

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("reading pdf %s: %w", path, err)
	}

	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() || p.V.Key("Contents").IsNull() {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, layoutRows(p.Content().Text))
	}
	return pages, nil
}

// wordGap is the horizontal gap, as a fraction of the font size, above
// which two glyphs on a row are separated by a space.
const wordGap = 0.2

type textRow struct {
	y      float64
	tol    float64
	glyphs []pdf.Text
}

// layoutRows rebuilds lines from positioned glyphs: glyphs sharing a
// baseline form a row, rows run top to bottom and glyphs left to right.
// Glyphs at the same X keep content-stream order, which covers fonts
// without a width table.
func layoutRows(glyphs []pdf.Text) string {
	var rows []*textRow
	for _, g := range glyphs {
		if g.S == "" {
			continue
		}
		row := findRow(rows, g.Y)
		if row == nil {
			row = &textRow{y: g.Y, tol: math.Max(math.Abs(g.FontSize)/2, 1)}
			rows = append(rows, row)
		}
		row.glyphs = append(row.glyphs, g)
	}

	// PDF Y grows upwards.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].y > rows[j].y })

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if line := row.text(); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

func findRow(rows []*textRow, y float64) *textRow {
	for _, r := range rows {
		if math.Abs(r.y-y) <= r.tol {
			return r
		}
	}
	return nil
}

func (r *textRow) text() string {
	gs := r.glyphs
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].X < gs[j].X })

	var b strings.Builder
	for i, g := range gs {
		if i > 0 {
			prev := gs[i-1]
			gap := g.X - (prev.X + prev.W)
			if gap > wordGap*math.Max(math.Abs(g.FontSize), 1) &&
				!strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(g.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return strings.TrimSpace(b.String())
}
