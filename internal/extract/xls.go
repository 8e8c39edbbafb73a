package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"
)

// XLSExtractor flattens legacy Excel exports into text. Each sheet becomes a
// page and each row a line, with non-empty cells joined by a space so a row
// like [01 Mar, DR, Countdown, 45.67, 4,954.33] reads as a statement line.
type XLSExtractor struct {
	// Charset defaults to utf-8.
	Charset string
}

// Format returns the extractor name.
func (e *XLSExtractor) Format() string { return "xls" }

// Extract returns one page per worksheet.
func (e *XLSExtractor) Extract(path string) (pages []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = fmt.Errorf("reading workbook %s: %v", path, r)
		}
	}()

	charset := e.Charset
	if charset == "" {
		charset = "utf-8"
	}
	wb, err := xls.OpenReader(f, charset)
	if err != nil {
		return nil, fmt.Errorf("reading workbook %s: %w", path, err)
	}

	pages = make([]string, 0, wb.NumSheets())
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			pages = append(pages, "")
			continue
		}
		var lines []string
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				continue
			}
			var cells []string
			for c := 0; c < row.LastCol(); c++ {
				if v := strings.TrimSpace(row.Col(c)); v != "" {
					cells = append(cells, v)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " "))
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return pages, nil
}
