package extract

import (
	"fmt"
	"os"
	"strings"
)

// pageBreak separates pages in plain-text statements.
const pageBreak = "\f"

// TextExtractor reads plain-text statements, such as the output of
// pdftotext, where a form feed starts a new page.
type TextExtractor struct{}

// Format returns the extractor name.
func (e *TextExtractor) Format() string { return "txt" }

// Extract returns the file's pages.
func (e *TextExtractor) Extract(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	text := strings.TrimSuffix(string(data), pageBreak)
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, pageBreak), nil
}
