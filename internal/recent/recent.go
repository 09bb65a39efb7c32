// Package recent keeps a small in-memory log of the most recently
// viewed venues and artists.  The log lives for the lifetime of the
// process, is never persisted, and is shared by every request, so all
// access goes through a mutex.
package recent

import "sync"

// DefaultCapacity is the number of entries the home view displays.
const DefaultCapacity = 10

// Kind values for Entry.Kind.
const (
	KindVenue  = "venue"
	KindArtist = "artist"
)

// Entry identifies one viewed record.
type Entry struct {
	Kind string `json:"kind"`
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// Log is a fixed-capacity FIFO buffer of view entries.  Adding an
// entry that is already present anywhere in the buffer (same kind, id
// and name) is a no-op; when the buffer is full the oldest entry is
// evicted.
type Log struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

// NewLog creates an empty log holding at most capacity entries.
func NewLog(capacity int) *Log {
	if capacity < 1 {
		capacity = 1
	}
	return &Log{cap: capacity, entries: make([]Entry, 0, capacity)}
}

// Add records a view.  Exact duplicates are suppressed; overflow
// evicts the oldest entry.  Append and evict happen under one lock so
// concurrent requests cannot tear the buffer.
func (l *Log) Add(e Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, cur := range l.entries {
		if cur == e {
			return
		}
	}
	l.entries = append(l.entries, e)
	if len(l.entries) > l.cap {
		l.entries = l.entries[1:]
	}
}

// Snapshot returns a copy of the current entries, oldest first.
func (l *Log) Snapshot() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}
