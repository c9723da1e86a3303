package watcher

import "errors"

// Common errors returned by the watcher.
var (
	// ErrPathNotFound is returned when the watched root does not exist.
	ErrPathNotFound = errors.New("watch path not found")

	// ErrNotDirectory is returned when the watched root is a regular file.
	ErrNotDirectory = errors.New("watch path is not a directory")
)
