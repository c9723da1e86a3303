// Package dispatch carries matched work from the watchers to the single
// move executor and turns each item into a reportable outcome.
//
// The executor never overwrites a file: an occupied destination sends the
// file to the dump folder, and an occupied dump slot gets a timestamp
// suffix. The final rename is the only step that touches the source.
package dispatch

import (
	"time"

	"github.com/0xmhha/file-sorter/pkg/journal"
	"github.com/0xmhha/file-sorter/pkg/watcher"
)

// Kind is the instruction carried by an Item.
type Kind int

const (
	// KindNone asks for nothing to be done or printed.
	KindNone Kind = iota

	// KindMove relocates Src to Dest.
	KindMove

	// KindReport prints Message (or Path) without touching the filesystem.
	KindReport
)

// Level is the outcome class used for presentation.
type Level int

const (
	LevelNone    Level = iota // nothing to print
	LevelPath                 // informational path
	LevelInfo                 // informational message
	LevelSuccess              // completed move or success report
	LevelWarning              // failure
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelPath:
		return "path"
	case LevelInfo:
		return "info"
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	default:
		return "none"
	}
}

// Item is one unit of work on the dispatch queue. It is consumed once and
// never retried.
type Item struct {
	Kind Kind

	// Src and Dest are set for KindMove.
	Src  string
	Dest string

	// Level, Path and Message are set for KindReport.
	Level   Level
	Path    string
	Message string

	// Event is the event kind that produced the item.
	Event watcher.Op

	// Task and Root identify the producing rule.
	Task string
	Root string
}

// Move builds a move instruction.
func Move(src, dest string) Item {
	return Item{Kind: KindMove, Src: src, Dest: dest}
}

// Report builds a report-only instruction.
func Report(level Level, path, message string) Item {
	return Item{Kind: KindReport, Level: level, Path: path, Message: message}
}

// None builds an instruction that does nothing.
func None() Item {
	return Item{Kind: KindNone}
}

// Collision describes how an occupied destination was avoided.
type Collision string

const (
	CollisionNone      Collision = ""
	CollisionDump      Collision = "dump"
	CollisionTimestamp Collision = "timestamp"
)

// Outcome is the result of executing one Item.
type Outcome struct {
	Level Level

	// Path is the final destination on success, the source on failure, or
	// the reported path.
	Path string

	// Message is the report text or the error text.
	Message string

	// Src is the original source of a move.
	Src string

	// Err is the underlying I/O error of a failed move.
	Err error

	Collision Collision
	Event     watcher.Op
	Task      string
	Root      string
}

// Config contains executor configuration.
type Config struct {
	// DumpFolder receives files whose destination is already occupied.
	// Required, absolute.
	DumpFolder string

	// Journal records every move attempt. Optional.
	Journal journal.Journal

	// Now is the clock used for timestamp suffixes.
	// Default: time.Now.
	Now func() time.Time
}
