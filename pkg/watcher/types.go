// Package watcher provides the filesystem event source for file-sorter.
//
// Each watched root gets its own fsnotify watcher. Raw notifications are
// coalesced per path and delivered as debounced batches, so a burst of
// writes to one download ends up as a single event.
//
// Example usage:
//
//	src := watcher.NewSource(logger.Default())
//	batches, err := src.Watch(ctx, "/home/me/Downloads", watcher.Options{
//	    PollInterval: 2 * time.Second,
//	})
//	if errors.Is(err, watcher.ErrPathNotFound) {
//	    log.Fatal(err)
//	}
//
//	for batch := range batches {
//	    for _, event := range batch.Events {
//	        fmt.Printf("%s %s\n", event.Kind, event.Path())
//	    }
//	}
package watcher

import (
	"context"
	"strings"
	"time"
)

// Op describes a file operation type.
type Op uint32

// File operation types.
const (
	OpCreate Op = 1 << iota // File or directory created
	OpModify                // File contents modified
	OpRemove                // File deleted
	OpRename                // File renamed/moved away
	OpChmod                 // File permissions changed
)

// OpNone marks the absence of an event, e.g. no previous event for a file.
const OpNone Op = 0

// String returns a human-readable operation name.
func (op Op) String() string {
	switch op {
	case OpNone:
		return "NONE"
	case OpCreate:
		return "CREATE"
	case OpModify:
		return "MODIFY"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	case OpChmod:
		return "CHMOD"
	default:
		return "UNKNOWN"
	}
}

// ParseOp converts a configuration name (create, modify, ...) to an Op.
func ParseOp(name string) (Op, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "create", "created":
		return OpCreate, true
	case "modify", "modified", "write":
		return OpModify, true
	case "remove", "removed", "delete":
		return OpRemove, true
	case "rename", "renamed", "move":
		return OpRename, true
	case "chmod":
		return OpChmod, true
	case "", "none":
		return OpNone, true
	default:
		return OpNone, false
	}
}

// Event represents one debounced file system event.
type Event struct {
	// Paths affected by the event. The last entry is the current location.
	Paths []string

	// Kind is the coalesced operation.
	Kind Op

	// Time is when the first raw notification for this path arrived.
	Time time.Time
}

// Path returns the current location of the event subject.
func (e Event) Path() string {
	if len(e.Paths) == 0 {
		return ""
	}
	return e.Paths[len(e.Paths)-1]
}

// Batch is one debounced delivery. Either Events or Err is set.
type Batch struct {
	Events []Event
	Err    error
}

// Options control how a single root is watched.
type Options struct {
	// Recursive also watches every subdirectory, including ones created later.
	Recursive bool

	// PollInterval is the debounce window: a path must be quiet this long
	// before its event is delivered.
	// Default: 2s.
	PollInterval time.Duration

	// TickRate is how often pending paths are checked.
	// Default: PollInterval / 4.
	TickRate time.Duration
}

// Source produces debounced event batches for a watched root.
type Source interface {
	// Watch starts watching root and returns the batch channel.
	//
	// The channel is closed when ctx is cancelled. A missing root yields an
	// error wrapping ErrPathNotFound.
	Watch(ctx context.Context, root string, opts Options) (<-chan Batch, error)
}
