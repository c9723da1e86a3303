// Package config provides configuration management for file-sorter.
//
// Configuration is loaded from multiple sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Configuration file
// 4. Default values (lowest priority)
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Dump folder: %s\n", cfg.DumpFolder)
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// Config represents the complete application configuration.
//
// Invariants:
// - DumpFolder must be set
// - PollInterval, TickRate and QueueCapacity must be >= 0
// - Every root has a path without '*'
// - Every task has at least one valid event.
type Config struct {
	// Directory receiving files whose destination is occupied
	DumpFolder string `yaml:"dump_folder"`

	// Debounce window
	PollInterval time.Duration `yaml:"poll_interval"`

	// Debounce tick granularity (0 = PollInterval/4)
	TickRate time.Duration `yaml:"tick_rate"`

	// Dispatch queue slots (0 = unbuffered)
	QueueCapacity int `yaml:"queue_capacity"`

	// Base-name globs that are never dispatched
	IgnorePatterns []string `yaml:"ignore_patterns"`

	// Move journal settings
	Journal JournalConfig `yaml:"journal"`

	// Display settings
	Display DisplayConfig `yaml:"display"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`

	// Watched roots
	Roots []RootConfig `yaml:"roots"`
}

// JournalConfig contains move journal settings.
type JournalConfig struct {
	// Record moves to the journal
	Enabled bool `yaml:"enabled"`

	// Path to BoltDB database file
	DBPath string `yaml:"db_path"`
}

// DisplayConfig contains display-related settings.
type DisplayConfig struct {
	// Output format (text, json)
	Format string `yaml:"format"`

	// Color mode (auto, always, never)
	Color string `yaml:"color"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level"`

	// Log output destination (stdout, stderr, file path)
	Output string `yaml:"output"`

	// Log format (text, json)
	Format string `yaml:"format"`
}

// RootConfig describes one watched directory.
type RootConfig struct {
	Path         string        `yaml:"path"`
	Recursive    bool          `yaml:"recursive,omitempty"`
	PollInterval time.Duration `yaml:"poll_interval,omitempty"`
	Tasks        []TaskConfig  `yaml:"tasks"`
}

// TaskConfig describes one sorting rule.
type TaskConfig struct {
	Label       string   `yaml:"label"`
	Description string   `yaml:"description,omitempty"`
	Kind        string   `yaml:"kind,omitempty"`
	Events      []string `yaml:"events"`
	After       string   `yaml:"after,omitempty"`
	Pattern     string   `yaml:"pattern,omitempty"`
	Destination string   `yaml:"destination,omitempty"`
	Resolver    string   `yaml:"resolver,omitempty"`
}

// Validate checks if the configuration satisfies all invariants.
//
// Thread-safety: This method is read-only and thread-safe.
func (c *Config) Validate() error {
	if c.DumpFolder == "" {
		return ErrNoDumpFolder
	}
	if c.PollInterval < 0 {
		return ErrInvalidPollInterval
	}
	if c.TickRate < 0 {
		return ErrInvalidTickRate
	}
	if c.QueueCapacity < 0 {
		return ErrInvalidQueueCapacity
	}

	if c.Journal.Enabled && c.Journal.DBPath == "" {
		return ErrNoJournalPath
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validFormats[c.Display.Format] {
		return ErrInvalidDisplayFormat
	}

	validColors := map[string]bool{
		"auto":   true,
		"always": true,
		"never":  true,
	}
	if !validColors[c.Display.Color] {
		return ErrInvalidColorMode
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}
	if !validFormats[c.Logging.Format] {
		return ErrInvalidLogFormat
	}

	for i, root := range c.Roots {
		if err := root.validate(); err != nil {
			return fmt.Errorf("roots[%d]: %w", i, err)
		}
	}

	return nil
}

func (r RootConfig) validate() error {
	if r.Path == "" {
		return ErrEmptyRootPath
	}
	if strings.Contains(r.Path, "*") {
		return fmt.Errorf("%w: %s", ErrRootWildcard, r.Path)
	}
	if r.PollInterval < 0 {
		return ErrInvalidPollInterval
	}

	for i, task := range r.Tasks {
		if err := task.validate(); err != nil {
			return fmt.Errorf("tasks[%d] (%s): %w", i, task.Label, err)
		}
	}
	return nil
}

func (t TaskConfig) validate() error {
	switch t.Kind {
	case "", "files", "dirs", "any":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTaskKind, t.Kind)
	}

	if len(t.Events) == 0 {
		return ErrNoEvents
	}
	if _, err := t.EventKinds(); err != nil {
		return err
	}

	if _, ok := watcher.ParseOp(t.After); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidEvent, t.After)
	}
	return nil
}

// EventKinds parses the task's event names.
func (t TaskConfig) EventKinds() ([]watcher.Op, error) {
	kinds := make([]watcher.Op, 0, len(t.Events))
	for _, name := range t.Events {
		op, ok := watcher.ParseOp(name)
		if !ok || op == watcher.OpNone {
			return nil, fmt.Errorf("%w: %q", ErrInvalidEvent, name)
		}
		kinds = append(kinds, op)
	}
	return kinds, nil
}

// AfterKind parses the task's previous-event requirement. OpNone means no
// requirement.
func (t TaskConfig) AfterKind() watcher.Op {
	op, _ := watcher.ParseOp(t.After)
	return op
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		DumpFolder:     defaultDumpFolder(),
		PollInterval:   2 * time.Second,
		QueueCapacity:  1,
		IgnorePatterns: defaultIgnorePatterns(),
		Journal: JournalConfig{
			Enabled: true,
			DBPath:  defaultDBPath(),
		},
		Display: DisplayConfig{
			Format: "text",
			Color:  "auto",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: "stderr",
			Format: "text",
		},
	}
}

// Example returns the defaults plus a sample root that sorts zip archives
// out of ~/Downloads.
func Example() *Config {
	cfg := Default()
	cfg.Roots = []RootConfig{
		{
			Path: "~/Downloads",
			Tasks: []TaskConfig{
				{
					Label:       "zips",
					Description: "archives to their own folder",
					Kind:        "files",
					Events:      []string{"create", "rename"},
					Pattern:     `\.zip$`,
					Destination: "./zips",
				},
			},
		},
	}
	return cfg
}
