package watcher

import (
	"sort"
	"time"
)

// pending coalesces raw notifications per path until the path has been
// quiet for the debounce window.
type pending struct {
	window  time.Duration
	entries map[string]*pendingEntry
}

type pendingEntry struct {
	kind  Op
	first time.Time
	last  time.Time
}

func newPending(window time.Duration) *pending {
	return &pending{
		window:  window,
		entries: make(map[string]*pendingEntry),
	}
}

// add records a raw notification for path.
func (p *pending) add(path string, op Op, now time.Time) {
	entry, exists := p.entries[path]
	if !exists {
		p.entries[path] = &pendingEntry{kind: op, first: now, last: now}
		return
	}

	entry.last = now
	entry.kind = coalesce(entry.kind, op)
}

// flush removes and returns every entry idle for at least the window,
// ordered by first notification.
func (p *pending) flush(now time.Time) []Event {
	var ready []Event
	for path, entry := range p.entries {
		if now.Sub(entry.last) < p.window {
			continue
		}
		ready = append(ready, Event{
			Paths: []string{path},
			Kind:  entry.kind,
			Time:  entry.first,
		})
		delete(p.entries, path)
	}

	sort.Slice(ready, func(i, j int) bool {
		if ready[i].Time.Equal(ready[j].Time) {
			return ready[i].Path() < ready[j].Path()
		}
		return ready[i].Time.Before(ready[j].Time)
	})

	return ready
}

// len returns the number of paths still waiting.
func (p *pending) len() int {
	return len(p.entries)
}

// coalesce merges a new notification into the pending kind. A freshly
// created file stays a creation while it is being written.
func coalesce(prev, next Op) Op {
	if prev == OpCreate && (next == OpModify || next == OpChmod) {
		return OpCreate
	}
	return next
}
