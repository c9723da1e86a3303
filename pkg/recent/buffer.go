// Package recent keeps a short, bounded history of the last event seen for
// each file stem.
//
// Rules use it to tell a rename sequence (a file disappearing under one name
// and appearing under another with the same stem) apart from independent
// events. Lookups are one-shot: Take removes the entry it returns.
package recent

import "sync"

// DefaultCapacity is the number of entries kept before the oldest is evicted.
const DefaultCapacity = 9

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Buffer is a fixed-capacity FIFO of key/value entries. It is safe for
// concurrent use.
type Buffer[K comparable, V any] struct {
	mu       sync.Mutex
	entries  []entry[K, V]
	capacity int
}

// New creates a buffer holding at most capacity entries. A capacity below one
// uses DefaultCapacity.
func New[K comparable, V any](capacity int) *Buffer[K, V] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer[K, V]{
		entries:  make([]entry[K, V], 0, capacity),
		capacity: capacity,
	}
}

// Push appends an entry, evicting the oldest one when full.
func (b *Buffer[K, V]) Push(key K, value V) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.entries) == b.capacity {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
	b.entries = append(b.entries, entry[K, V]{key: key, value: value})
}

// Take returns and removes the oldest entry stored under key.
func (b *Buffer[K, V]) Take(key K) (V, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, e := range b.entries {
		if e.key != key {
			continue
		}
		b.entries = append(b.entries[:i], b.entries[i+1:]...)
		return e.value, true
	}

	var zero V
	return zero, false
}

// Len returns the number of stored entries.
func (b *Buffer[K, V]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Cap returns the buffer capacity.
func (b *Buffer[K, V]) Cap() int {
	return b.capacity
}
