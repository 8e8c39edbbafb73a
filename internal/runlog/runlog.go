// Package runlog keeps an append-only CSV record of parse runs and their
// diagnostics under logs/parse-log.csv.
package runlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/stmtledger/internal/statement"
)

// KindRun marks the summary row written once per run.
const KindRun = "run"

// Entry is one row in the parse log.
type Entry struct {
	Timestamp time.Time
	RunID     string
	Document  string
	Kind      string
	Page      int
	Line      int
	Text      string
	Detail    string
}

// Header is the CSV header for parse-log.csv.
const Header = "timestamp,run_id,document,kind,page,line,text,detail"

const (
	numFields    = 8
	logDir       = "logs"
	logName      = "parse-log.csv"
	colTimestamp = 0
	colRunID     = 1
	colDocument  = 2
	colKind      = 3
	colPage      = 4
	colLine      = 5
	colText      = 6
	colDetail    = 7
)

// FromLedger returns a run summary entry followed by one entry per
// diagnostic, in the order they were raised.
func FromLedger(l *statement.Ledger, document string, now time.Time) []Entry {
	entries := []Entry{{
		Timestamp: now,
		RunID:     l.RunID(),
		Document:  document,
		Kind:      KindRun,
		Detail: fmt.Sprintf("policy=%s year=%d matched=%d records=%d dropped=%d",
			l.Policy(), l.Year(), l.Matched(), l.Len(), l.Dropped()),
	}}
	for _, d := range l.Diagnostics() {
		entries = append(entries, Entry{
			Timestamp: now,
			RunID:     l.RunID(),
			Document:  document,
			Kind:      string(d.Kind),
			Page:      d.Page,
			Line:      d.Line,
			Text:      d.Text,
			Detail:    d.Detail,
		})
	}
	return entries
}

// MarshalEntry converts an Entry to a CSV row. Zero page and line ordinals
// are written as empty cells.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colDocument] = e.Document
	row[colKind] = e.Kind
	if e.Page > 0 {
		row[colPage] = strconv.Itoa(e.Page)
	}
	if e.Line > 0 {
		row[colLine] = strconv.Itoa(e.Line)
	}
	row[colText] = e.Text
	row[colDetail] = e.Detail
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}
	page, err := atoiOrZero(record[colPage])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing page %q: %w", record[colPage], err)
	}
	line, err := atoiOrZero(record[colLine])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing line %q: %w", record[colLine], err)
	}

	return Entry{
		Timestamp: ts,
		RunID:     record[colRunID],
		Document:  record[colDocument],
		Kind:      record[colKind],
		Page:      page,
		Line:      line,
		Text:      record[colText],
		Detail:    record[colDetail],
	}, nil
}

func atoiOrZero(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// Path returns the parse log location under a project root.
func Path(root string) string {
	return filepath.Join(root, logDir, logName)
}

// Append adds entries to the parse log under root. The header is written
// when the file is new or empty.
func Append(root string, entries []Entry) error {
	path := Path(root)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening parse log: %w", err)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat parse log: %w", err)
	}

	rows := make([][]string, 0, len(entries)+1)
	if info.Size() == 0 {
		rows = append(rows, strings.Split(Header, ","))
	}
	for _, e := range entries {
		rows = append(rows, MarshalEntry(e))
	}
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		return fmt.Errorf("writing parse log: %w", err)
	}
	return nil
}

// Read returns every entry in the parse log under root. A missing log reads
// as no entries.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening parse log: %w", err)
	}
	defer f.Close()
	return decode(f)
}

func decode(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading parse log header: %w", err)
	}
	if got := strings.Join(header, ","); got != Header {
		return nil, fmt.Errorf("unexpected parse log header %q", got)
	}

	var entries []Entry
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return entries, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading parse log: %w", err)
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		entries = append(entries, e)
	}
}
