package statement

import "strings"

// RawLine is one non-empty physical line of the document. All ordinals are
// 1-based.
type RawLine struct {
	Text     string
	Page     int
	PageLine int
	DocLine  int
}

// Segment splits per-page text into trimmed, non-empty lines in document
// order. Pages with no text contribute nothing.
func Segment(pages []string) []RawLine {
	var lines []RawLine
	doc := 0
	for p, text := range pages {
		if text == "" {
			continue
		}
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
		n := 0
		for _, l := range strings.Split(text, "\n") {
			l = strings.TrimSpace(l)
			if l == "" {
				continue
			}
			n++
			doc++
			lines = append(lines, RawLine{Text: l, Page: p + 1, PageLine: n, DocLine: doc})
		}
	}
	return lines
}
