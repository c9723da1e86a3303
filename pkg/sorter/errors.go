package sorter

import "errors"

var (
	// ErrNoDumpFolder is returned when no dump folder is configured.
	ErrNoDumpFolder = errors.New("dump folder not configured")

	// ErrAlreadyStarted is returned when Watch or Start is called after Start.
	ErrAlreadyStarted = errors.New("sorter is already started")

	// ErrNoRulesets is returned when Start is called with no registered roots.
	ErrNoRulesets = errors.New("no roots to watch")

	// ErrRootNotFound is returned when a root disappears before its watch
	// could be set up.
	ErrRootNotFound = errors.New("watched root not found")
)
