// Package sorter wires watched roots, rule matching and the move executor
// into one running pipeline.
//
// Each registered root gets its own goroutine that receives debounced
// batches from the event source and evaluates the root's tasks. Matched
// items go through a small bounded queue to a single consumer that
// performs the moves, so a slow consumer throttles every watcher instead of
// dropping events.
//
// Example usage:
//
//	s, err := sorter.New(sorter.Config{DumpFolder: "/home/me/__DUPLICATES__"}, sorter.Deps{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = s.Watch("/home/me/Downloads", func(rs *rules.Ruleset) error {
//	    return rs.Add(rules.NewTask("zips").MatchPattern(`\.zip$`).Destination("./zips").OnCreate())
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = s.Start(ctx) // blocks until ctx is cancelled
package sorter

import (
	"io"
	"time"

	"github.com/0xmhha/file-sorter/pkg/dispatch"
	"github.com/0xmhha/file-sorter/pkg/display"
	"github.com/0xmhha/file-sorter/pkg/journal"
	"github.com/0xmhha/file-sorter/pkg/logger"
	"github.com/0xmhha/file-sorter/pkg/rules"
	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// DefaultPollInterval is the debounce window used when none is configured.
const DefaultPollInterval = 2 * time.Second

// readyPollInterval is how often Start checks the watcher ready flags.
const readyPollInterval = 10 * time.Millisecond

// Config holds the configuration for the sorter.
type Config struct {
	// DumpFolder receives files whose destination is already occupied.
	// Created if missing. Required.
	DumpFolder string

	// PollInterval is the debounce window. Roots may override it.
	// Default: 2s.
	PollInterval time.Duration

	// TickRate is the debounce tick granularity.
	// Default: PollInterval/4.
	TickRate time.Duration

	// QueueCapacity is the number of dispatch queue slots. 0 makes every
	// send wait for the consumer.
	QueueCapacity int

	// RootFilter, when set, skips roots whose path does not contain it.
	RootFilter string
}

// Deps holds the collaborators of the sorter. Zero values are replaced by
// defaults.
type Deps struct {
	// Source produces debounced event batches.
	// Default: the fsnotify source.
	Source watcher.Source

	// Journal records move attempts. Optional.
	Journal journal.Journal

	// Ignore suppresses partial downloads.
	// Default: rules.DefaultIgnorePatterns.
	Ignore *rules.IgnoreList

	// Logger receives diagnostics.
	// Default: logger.Default().
	Logger logger.Logger

	// Output receives one line per outcome and lifecycle notices.
	// Default: os.Stdout.
	Output io.Writer

	// Formatter renders outcomes.
	// Default: uncolored text.
	Formatter display.Formatter

	// Observer, if set, is called with every outcome after it is printed.
	Observer func(dispatch.Outcome)

	// Now is the executor clock.
	// Default: time.Now.
	Now func() time.Time
}
