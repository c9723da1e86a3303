package dispatch

import "errors"

// Common errors returned by the executor.
var (
	// ErrNoDumpFolder is returned when the executor has no dump folder.
	ErrNoDumpFolder = errors.New("dump folder not configured")

	// ErrRelativeDumpFolder is returned when the dump folder is not absolute.
	ErrRelativeDumpFolder = errors.New("dump folder must be an absolute path")
)
