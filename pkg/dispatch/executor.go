package dispatch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/0xmhha/file-sorter/pkg/journal"
	"github.com/0xmhha/file-sorter/pkg/logger"
)

// Executor performs collision-safe moves.
type Executor struct {
	dumpFolder string
	journal    journal.Journal
	now        func() time.Time
	logger     logger.Logger

	mu        sync.Mutex
	lastStamp int64
}

// NewExecutor creates an executor. The dump folder is not created here; the
// sorter does that once at startup.
func NewExecutor(cfg Config, log logger.Logger) (*Executor, error) {
	if cfg.DumpFolder == "" {
		return nil, ErrNoDumpFolder
	}
	if !filepath.IsAbs(cfg.DumpFolder) {
		return nil, fmt.Errorf("%w: %s", ErrRelativeDumpFolder, cfg.DumpFolder)
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Executor{
		dumpFolder: filepath.Clean(cfg.DumpFolder),
		journal:    cfg.Journal,
		now:        cfg.Now,
		logger:     log,
	}, nil
}

// DumpFolder returns the configured dump folder.
func (e *Executor) DumpFolder() string {
	return e.dumpFolder
}

// Execute runs one item and reports its outcome.
func (e *Executor) Execute(item Item) Outcome {
	outcome := Outcome{
		Event: item.Event,
		Task:  item.Task,
		Root:  item.Root,
	}

	switch item.Kind {
	case KindMove:
		if SamePath(item.Src, item.Dest) {
			outcome.Level = LevelInfo
			outcome.Path = item.Src
			outcome.Message = "already in place"
			return outcome
		}
		e.move(item.Src, item.Dest, &outcome)
		e.record(outcome)
	case KindReport:
		outcome.Level = item.Level
		outcome.Path = item.Path
		outcome.Message = item.Message
	default:
		outcome.Level = LevelNone
	}

	return outcome
}

// move relocates src, steering around occupied destinations.
func (e *Executor) move(src, dest string, outcome *Outcome) {
	outcome.Src = src

	if exists(dest) {
		dest = filepath.Join(e.dumpFolder, filepath.Base(src))
		outcome.Collision = CollisionDump
	}

	if exists(dest) {
		dest = e.disambiguate(dest)
		outcome.Collision = CollisionTimestamp
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		e.fail(src, fmt.Errorf("failed to create destination directory: %w", err), outcome)
		return
	}

	if err := os.Rename(src, dest); err != nil {
		e.fail(src, err, outcome)
		return
	}

	outcome.Level = LevelSuccess
	outcome.Path = dest

	e.logger.Debug("moved",
		"src", src,
		"dest", dest,
		"collision", string(outcome.Collision))
}

func (e *Executor) fail(src string, err error, outcome *Outcome) {
	outcome.Level = LevelWarning
	outcome.Path = src
	outcome.Err = err
	outcome.Message = err.Error()

	e.logger.Warn("move failed", "src", src, "error", err)
}

// disambiguate appends a timestamp to dest until the name is free.
func (e *Executor) disambiguate(dest string) string {
	for {
		candidate := dest + "." + strconv.FormatInt(e.nextStamp(), 10)
		if !exists(candidate) {
			return candidate
		}
	}
}

// nextStamp returns wall-clock seconds, strictly increasing across calls so
// two collisions within one second still get distinct names.
func (e *Executor) nextStamp() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	stamp := e.now().Unix()
	if stamp <= e.lastStamp {
		stamp = e.lastStamp + 1
	}
	e.lastStamp = stamp
	return stamp
}

// record appends the move outcome to the journal, if any.
func (e *Executor) record(outcome Outcome) {
	if e.journal == nil {
		return
	}

	entry := journal.Entry{
		Time:      e.now(),
		Root:      outcome.Root,
		Task:      outcome.Task,
		Event:     outcome.Event.String(),
		Source:    outcome.Src,
		Status:    journal.StatusMoved,
		Collision: string(outcome.Collision),
	}
	if outcome.Err != nil {
		entry.Status = journal.StatusFailed
		entry.Error = outcome.Err.Error()
	} else {
		entry.Destination = outcome.Path
	}

	if err := e.journal.Record(entry); err != nil {
		e.logger.Warn("failed to record move", "src", outcome.Src, "error", err)
	}
}

// SamePath reports whether a and b name the same location.
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}

// exists reports whether something occupies path. A dangling symlink counts
// as occupied, and so does a path whose status cannot be read.
func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !os.IsNotExist(err)
}
