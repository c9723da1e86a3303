// Package journal keeps an audit trail of relocation outcomes.
//
// Every move the executor attempts is appended with its final destination
// (or the error that stopped it) so that a file can be found again after it
// was sorted away, dumped, or timestamp-renamed. The journal is history
// only: rules never read it.
//
// Example usage:
//
//	j, err := journal.Open(journal.Config{
//	    DBPath: "~/.config/file-sorter/journal.db",
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer j.Close()
//
//	entries, err := j.Recent(20)
package journal

import "time"

// Status values for Entry.Status.
const (
	StatusMoved  = "moved"
	StatusFailed = "failed"
)

// Entry is one recorded move attempt.
type Entry struct {
	// Seq is assigned by the journal on Record.
	Seq uint64 `json:"seq"`

	// Time is when the move finished.
	Time time.Time `json:"time"`

	// Root is the watched root the event came from.
	Root string `json:"root,omitempty"`

	// Task is the label of the matching task.
	Task string `json:"task,omitempty"`

	// Event is the event kind that triggered the move.
	Event string `json:"event,omitempty"`

	// Source is the original path.
	Source string `json:"source"`

	// Destination is the final path (empty on failure).
	Destination string `json:"destination,omitempty"`

	// Status is StatusMoved or StatusFailed.
	Status string `json:"status"`

	// Collision describes how an occupied destination was avoided
	// ("dump", "timestamp" or empty).
	Collision string `json:"collision,omitempty"`

	// Error holds the I/O error text of a failed move.
	Error string `json:"error,omitempty"`
}

// Journal records move outcomes.
type Journal interface {
	// Record appends an entry and assigns its sequence number.
	Record(entry Entry) error

	// Recent returns up to n entries, newest first.
	Recent(n int) ([]Entry, error)

	// Close releases the underlying storage.
	Close() error
}

// Config contains journal configuration.
type Config struct {
	// DBPath is the BoltDB file path. "~" is expanded.
	DBPath string

	// Timeout is how long to wait for the database file lock.
	// Default: 1s.
	Timeout time.Duration
}
