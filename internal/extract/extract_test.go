package extract

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/stmtledger/internal/model"
	"github.com/cleared-dev/stmtledger/internal/statement"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"pdf", "txt", "xls"}, r.Formats())
	assert.NotNil(t, r.Get("PDF"))
	assert.NotNil(t, r.Get(".xls"))
	assert.Nil(t, r.Get("docx"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&TextExtractor{})
	assert.Panics(t, func() { r.Register(&TextExtractor{}) })
}

func TestRegistry_ForPath(t *testing.T) {
	r := DefaultRegistry()

	e, err := r.ForPath("/tmp/March.PDF")
	require.NoError(t, err)
	assert.Equal(t, "pdf", e.Format())

	_, err = r.ForPath("statement.docx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document type")
	assert.Contains(t, err.Error(), "pdf, txt, xls")

	_, err = r.ForPath("statement")
	assert.Error(t, err)
}

func TestRegistry_ExtractDispatches(t *testing.T) {
	path := writeFile(t, "march.txt", "01 Mar CR Salary 100.00 100.00\n")
	pages, err := DefaultRegistry().Extract(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"01 Mar CR Salary 100.00 100.00\n"}, pages)
}

func TestTextExtractor(t *testing.T) {
	e := &TextExtractor{}

	path := writeFile(t, "two-pages.txt", "page one\nline two\fpage two\f")
	pages, err := e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"page one\nline two", "page two"}, pages)

	path = writeFile(t, "blank-middle.txt", "a\f\fb")
	pages, err = e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "b"}, pages)

	path = writeFile(t, "empty.txt", "")
	pages, err = e.Extract(path)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestTextExtractor_Missing(t *testing.T) {
	_, err := (&TextExtractor{}).Extract(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPDFExtractor_Errors(t *testing.T) {
	e := &PDFExtractor{}

	_, err := e.Extract(filepath.Join(t.TempDir(), "nope.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bogus.pdf", "this is not a pdf")
	_, err = e.Extract(path)
	assert.Error(t, err)
}

// writePDF builds a minimal PDF with one page per content stream. An empty
// stream produces a page without /Contents.
func writePDF(t *testing.T, contents ...string) string {
	t.Helper()
	objs := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}
	var kids []string
	for _, c := range contents {
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >>"
		if c != "" {
			objs = append(objs, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c))
			page += fmt.Sprintf(" /Contents %d 0 R", len(objs))
		}
		objs = append(objs, page+" >>")
		kids = append(kids, fmt.Sprintf("%d 0 R", len(objs)))
	}
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(kids))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

const (
	pdfPageOne = "BT /F1 10 Tf 50 700 Td (01 Mar CR Salary Payment 2,500.00 5,000.00) Tj " +
		"0 -14 Td (02 Mar DR Pak N Save 45.67 4,954.33) Tj ET"
	// Columns placed separately on one baseline, then a Tm-positioned line.
	pdfPageThree = "BT /F1 10 Tf 300 650 Td (30.00 4,924.33) Tj -250 0 Td (03 Mar DR Les Mills) Tj ET " +
		"BT /F1 10 Tf 1 0 0 1 50 700 Tm (Statement period March 2025) Tj ET"
)

func TestPDFExtractor_Rows(t *testing.T) {
	path := writePDF(t, pdfPageOne, "", pdfPageThree)

	pages, err := (&PDFExtractor{}).Extract(path)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "01 Mar CR Salary Payment 2,500.00 5,000.00\n02 Mar DR Pak N Save 45.67 4,954.33", pages[0])
	assert.Equal(t, "", pages[1])
	assert.Equal(t, "Statement period March 2025\n03 Mar DR Les Mills 30.00 4,924.33", pages[2])
}

func TestPDFExtractor_FeedsParser(t *testing.T) {
	path := writePDF(t, pdfPageOne, "", pdfPageThree)

	l, err := statement.ParseDocument(path, &PDFExtractor{}, statement.Options{
		Year:   2025,
		Policy: statement.PolicyExplicitMarker,
	})
	require.NoError(t, err)

	records := l.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "Salary Payment", records[0].Description)
	assert.Equal(t, model.DirectionCredit, records[0].Type)
	assert.Equal(t, "Pak N Save", records[1].Description)
	assert.Equal(t, "-45.67", records[1].Amount.StringFixed(2))
	assert.Equal(t, "Les Mills", records[2].Description)
	assert.Equal(t, "4924.33", records[2].Balance.Decimal.StringFixed(2))
	assert.Len(t, l.DiagnosticsOf(statement.DiagEmptyPage), 1)
}

func TestXLSExtractor_Errors(t *testing.T) {
	e := &XLSExtractor{}

	_, err := e.Extract(filepath.Join(t.TempDir(), "nope.xls"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bogus.xls", "date,description,amount\n")
	_, err = e.Extract(path)
	assert.Error(t, err)
}
