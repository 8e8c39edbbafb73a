package statement

import (
	"errors"
	"fmt"
)

var (
	// ErrDocumentUnreadable marks a failure to open or decode the source document.
	ErrDocumentUnreadable = errors.New("document unreadable")

	// ErrNoTransactionsFound marks a run whose document produced no records.
	// Parse never returns it; callers that treat an empty ledger as an error
	// use it to report the condition.
	ErrNoTransactionsFound = errors.New("no transactions found")
)

// DocumentError reports a document that could not be turned into text.
// It matches both ErrDocumentUnreadable and the underlying cause.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("reading document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() []error {
	return []error{ErrDocumentUnreadable, e.Err}
}
