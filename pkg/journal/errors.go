package journal

import "errors"

// Common errors returned by the journal.
var (
	// ErrJournalClosed is returned when using a closed journal.
	ErrJournalClosed = errors.New("journal is closed")

	// ErrEmptyPath is returned when no database path is configured.
	ErrEmptyPath = errors.New("journal database path is empty")
)
