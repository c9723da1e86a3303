package journal

import "sync"

// memoryJournal implements Journal in memory.
// Useful for testing.
type memoryJournal struct {
	mu      sync.RWMutex
	entries []Entry
	closed  bool
}

// NewMemory creates an in-memory journal.
func NewMemory() Journal {
	return &memoryJournal{}
}

// Record implements Journal.Record.
func (j *memoryJournal) Record(entry Entry) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.closed {
		return ErrJournalClosed
	}

	entry.Seq = uint64(len(j.entries) + 1)
	j.entries = append(j.entries, entry)
	return nil
}

// Recent implements Journal.Recent.
func (j *memoryJournal) Recent(n int) ([]Entry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		return nil, ErrJournalClosed
	}

	result := make([]Entry, 0)
	for i := len(j.entries) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, j.entries[i])
	}
	return result, nil
}

// Close implements Journal.Close.
func (j *memoryJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.closed = true
	return nil
}
