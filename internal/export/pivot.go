package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// WriteCategoryMonths writes a category x month table: one row per category,
// one column per month, sorted, with missing cells written as 0.00 and a
// trailing total column.
func WriteCategoryMonths(w io.Writer, cm model.CategoryMonths) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	months := cm.Months()
	header := append([]string{"category"}, months...)
	header = append(header, "total")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, cat := range cm.Categories() {
		row := make([]string, 0, len(months)+2)
		row = append(row, cat)
		for _, m := range months {
			row = append(row, cm.Get(cat, m).StringFixed(2))
		}
		row = append(row, cm.Total(cat).StringFixed(2))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", cat, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
