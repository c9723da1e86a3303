package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0xmhha/file-sorter/pkg/logger"
	"github.com/fsnotify/fsnotify"
)

const defaultPollInterval = 2 * time.Second

// source implements the Source interface using fsnotify.
type source struct {
	logger logger.Logger
}

// NewSource creates an fsnotify backed event source.
func NewSource(log logger.Logger) Source {
	return &source{logger: log}
}

// rootWatcher owns the fsnotify watcher and debounce state of one root.
// All fields are touched only by the run goroutine after Watch returns.
type rootWatcher struct {
	fsw     *fsnotify.Watcher
	root    string
	opts    Options
	logger  logger.Logger
	pending *pending
	out     chan Batch
}

// Watch implements Source.Watch.
func (s *source) Watch(ctx context.Context, root string, opts Options) (<-chan Batch, error) {
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.TickRate <= 0 {
		opts.TickRate = opts.PollInterval / 4
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
		}
		return nil, fmt.Errorf("failed to stat path %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &rootWatcher{
		fsw:     fsw,
		root:    root,
		opts:    opts,
		logger:  logger.ForRoot(s.logger, root),
		pending: newPending(opts.PollInterval),
		out:     make(chan Batch),
	}

	if err := w.add(root); err != nil {
		if closeErr := fsw.Close(); closeErr != nil {
			w.logger.Error("failed to close fsnotify watcher", "error", closeErr)
		}
		return nil, err
	}

	w.logger.Debug("event source started",
		"recursive", opts.Recursive,
		"poll_interval", opts.PollInterval,
		"tick_rate", opts.TickRate)

	go w.run(ctx)

	return w.out, nil
}

// run drives the fsnotify channels and the debounce ticker until ctx ends.
func (w *rootWatcher) run(ctx context.Context) {
	ticker := time.NewTicker(w.opts.TickRate)
	defer func() {
		ticker.Stop()
		if err := w.fsw.Close(); err != nil {
			w.logger.Error("failed to close fsnotify watcher", "error", err)
		}
		close(w.out)
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("event source stopped", "reason", "context cancelled")
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				w.logger.Warn("fsnotify events channel closed")
				return
			}
			w.handleEvent(event, time.Now())

		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.logger.Warn("fsnotify errors channel closed")
				return
			}
			if !w.send(ctx, Batch{Err: err}) {
				return
			}

		case now := <-ticker.C:
			events := w.pending.flush(now)
			if len(events) == 0 {
				continue
			}
			if !w.send(ctx, Batch{Events: events}) {
				return
			}
		}
	}
}

// send blocks until the batch is taken or ctx ends.
func (w *rootWatcher) send(ctx context.Context, batch Batch) bool {
	select {
	case w.out <- batch:
		return true
	case <-ctx.Done():
		return false
	}
}

// handleEvent converts a raw fsnotify event and queues it for debouncing.
func (w *rootWatcher) handleEvent(event fsnotify.Event, now time.Time) {
	var op Op
	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		op = OpCreate
	case event.Op&fsnotify.Write == fsnotify.Write:
		op = OpModify
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		op = OpRemove
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		op = OpRename
	case event.Op&fsnotify.Chmod == fsnotify.Chmod:
		op = OpChmod
	default:
		w.logger.Debug("unknown fsnotify operation",
			"op", event.Op,
			"path", event.Name)
		return
	}

	if op == OpCreate && w.opts.Recursive {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if addErr := w.add(event.Name); addErr != nil {
				w.logger.Warn("failed to watch new directory",
					"path", event.Name,
					"error", addErr)
			}
		}
	}

	w.pending.add(event.Name, op, now)
}

// add watches path, and every directory below it in recursive mode.
func (w *rootWatcher) add(path string) error {
	if err := w.fsw.Add(path); err != nil {
		return fmt.Errorf("failed to add path %s: %w", path, err)
	}

	if !w.opts.Recursive {
		return nil
	}

	return filepath.Walk(path, func(subPath string, info os.FileInfo, err error) error {
		if err != nil {
			w.logger.Warn("error walking path",
				"path", subPath,
				"error", err)
			return nil
		}
		if !info.IsDir() || subPath == path {
			return nil
		}
		if addErr := w.fsw.Add(subPath); addErr != nil {
			w.logger.Warn("failed to add subdirectory",
				"path", subPath,
				"error", addErr)
		}
		return nil
	})
}
