package statement

import (
	"github.com/google/uuid"

	"github.com/cleared-dev/stmtledger/internal/model"
)

// Ledger is the immutable result of one parse run: records in document
// order plus everything that was skipped or left undecided.
type Ledger struct {
	runID       string
	year        int
	policy      Policy
	records     []model.TransactionRecord
	diagnostics []Diagnostic
	matched     int
}

// RunID identifies the run that produced the ledger.
func (l *Ledger) RunID() string { return l.runID }

// Year is the year used to complete dates.
func (l *Ledger) Year() int { return l.year }

// Policy is the direction policy the run used.
func (l *Ledger) Policy() Policy { return l.policy }

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Empty reports whether the run found no transactions.
func (l *Ledger) Empty() bool { return len(l.records) == 0 }

// Record returns the i-th record.
func (l *Ledger) Record(i int) model.TransactionRecord { return l.records[i] }

// Records returns a copy of the records.
func (l *Ledger) Records() []model.TransactionRecord {
	return append([]model.TransactionRecord(nil), l.records...)
}

// Diagnostics returns a copy of the run's diagnostics.
func (l *Ledger) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), l.diagnostics...)
}

// DiagnosticsOf returns the diagnostics of one kind.
func (l *Ledger) DiagnosticsOf(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range l.diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Matched returns how many lines matched the transaction grammar.
func (l *Ledger) Matched() int { return l.matched }

// Dropped returns how many matched lines were left out of the ledger.
func (l *Ledger) Dropped() int {
	n := 0
	for _, d := range l.diagnostics {
		if d.Dropped() {
			n++
		}
	}
	return n
}

// Builder accumulates records for a single Ledger. It cannot be reused
// after Build.
type Builder struct {
	ledger *Ledger
}

// NewBuilder starts a ledger for a run.
func NewBuilder(year int, policy Policy) *Builder {
	return &Builder{ledger: &Ledger{
		runID:  uuid.NewString(),
		year:   year,
		policy: policy,
	}}
}

// Matched counts one line that matched the grammar.
func (b *Builder) Matched() {
	b.mustOpen().matched++
}

// Add appends a record.
func (b *Builder) Add(rec model.TransactionRecord) {
	l := b.mustOpen()
	l.records = append(l.records, rec)
}

// Diagnose appends a diagnostic.
func (b *Builder) Diagnose(d Diagnostic) {
	l := b.mustOpen()
	l.diagnostics = append(l.diagnostics, d)
}

// Build returns the finished ledger.
func (b *Builder) Build() *Ledger {
	l := b.mustOpen()
	b.ledger = nil
	return l
}

func (b *Builder) mustOpen() *Ledger {
	if b.ledger == nil {
		panic("statement: Builder used after Build")
	}
	return b.ledger
}
