package config

import "errors"

// Common errors returned by the config package.
var (
	// ErrNoDumpFolder is returned when no dump folder is specified.
	ErrNoDumpFolder = errors.New("no dump folder specified")

	// ErrInvalidPollInterval is returned when a poll interval is < 0.
	ErrInvalidPollInterval = errors.New("invalid poll interval: must be >= 0")

	// ErrInvalidTickRate is returned when tick rate is < 0.
	ErrInvalidTickRate = errors.New("invalid tick rate: must be >= 0")

	// ErrInvalidQueueCapacity is returned when queue capacity is < 0.
	ErrInvalidQueueCapacity = errors.New("invalid queue capacity: must be >= 0")

	// ErrNoJournalPath is returned when the journal is enabled without a path.
	ErrNoJournalPath = errors.New("journal enabled but no db_path specified")

	// ErrInvalidDisplayFormat is returned when display format is not recognized.
	ErrInvalidDisplayFormat = errors.New("invalid display format: must be text or json")

	// ErrInvalidColorMode is returned when color mode is not recognized.
	ErrInvalidColorMode = errors.New("invalid color mode: must be auto, always, or never")

	// ErrInvalidLogLevel is returned when log level is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level: must be debug, info, warn, or error")

	// ErrInvalidLogFormat is returned when log format is not recognized.
	ErrInvalidLogFormat = errors.New("invalid log format: must be text or json")

	// ErrEmptyRootPath is returned when a root has no path.
	ErrEmptyRootPath = errors.New("root has no path")

	// ErrRootWildcard is returned when a root path contains '*'.
	ErrRootWildcard = errors.New("root path must not contain '*'")

	// ErrInvalidTaskKind is returned when a task kind is not recognized.
	ErrInvalidTaskKind = errors.New("invalid task kind: must be files, dirs, or any")

	// ErrNoEvents is returned when a task lists no events.
	ErrNoEvents = errors.New("task lists no events")

	// ErrInvalidEvent is returned when an event name is not recognized.
	ErrInvalidEvent = errors.New("invalid event name")

	// ErrConfigNotFound is returned when config file is not found.
	ErrConfigNotFound = errors.New("config file not found")

	// ErrInvalidYAML is returned when config file has invalid YAML syntax.
	ErrInvalidYAML = errors.New("invalid YAML syntax in config file")
)
