package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/cleared-dev/stmtledger/internal/summary"
)

const chartSize = 480

var chartPalette = []string{"#4361ee", "#3f37c9", "#4895ef", "#4cc9f0", "#f72585", "#7209b7", "#b5179e", "#560bad"}

// PieChart draws spending by category as a PNG and returns it as a data URI
// for embedding in the report. No categories yields an empty string.
func PieChart(cats []summary.CategoryTotal) (string, error) {
	total := 0.0
	for _, c := range cats {
		total += c.Amount.InexactFloat64()
	}
	if total <= 0 {
		return "", nil
	}

	dc := gg.NewContext(chartSize, chartSize)
	dc.SetHexColor("#2b2d42")
	dc.Clear()

	cx, cy := float64(chartSize)/2, float64(chartSize)/2
	r := float64(chartSize)/2 - 20
	start := -math.Pi / 2
	for i, c := range cats {
		share := c.Amount.InexactFloat64() / total
		if share <= 0 {
			continue
		}
		end := start + share*2*math.Pi

		dc.MoveTo(cx, cy)
		dc.DrawArc(cx, cy, r, start, end)
		dc.ClosePath()
		dc.SetHexColor(chartPalette[i%len(chartPalette)])
		dc.FillPreserve()
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(1)
		dc.Stroke()

		if share >= 0.04 {
			mid := (start + end) / 2
			lx, ly := cx+math.Cos(mid)*r*0.65, cy+math.Sin(mid)*r*0.65
			dc.DrawStringAnchored(fmt.Sprintf("%.1f%%", share*100), lx, ly, 0.5, 0.5)
		}
		start = end
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encoding chart: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
