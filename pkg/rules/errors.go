package rules

import "errors"

// Configuration errors. They are returned when a ruleset is built, before
// any watching starts.
var (
	// ErrMissingPredicate is returned when a task has no event predicate.
	ErrMissingPredicate = errors.New("task has no event predicate")

	// ErrInvalidPattern is returned when a task's match pattern does not compile.
	ErrInvalidPattern = errors.New("invalid match pattern")

	// ErrRootWildcard is returned when a root path contains an asterisk.
	ErrRootWildcard = errors.New("root path must not contain '*'")

	// ErrInvalidIgnorePattern is returned when an ignore glob does not compile.
	ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")
)
