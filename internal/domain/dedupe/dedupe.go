// Package dedupe tracks identifiers that have already been applied so that
// replaying the same event is a no-op.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen event IDs to ensure at-most-once application.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Seen reports whether id has been recorded without recording it.
	Seen(ctx context.Context, id string) bool

	// Unrecord removes an ID so it can be applied again. Used when applying
	// an event failed after it was recorded.
	Unrecord(ctx context.Context, id string)

	// Reset forgets every recorded ID.
	Reset()

	Size() int64
}

// inMemoryDeduper keeps IDs in a map. In bounded mode (maxSize > 0) a ring of
// insertion order evicts the oldest ID once the set is full. In unbounded
// mode (maxSize <= 0) nothing is ever evicted.
type inMemoryDeduper struct {
	mu      sync.RWMutex
	seen    map[string]int // id -> ring slot, -1 in unbounded mode
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a new in-memory deduper. Games record one ID per
// revealed event, so the default is unbounded.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]int)
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

// SeenAndRecord atomically checks if id was seen and records it if not.
func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}

	if d.maxSize <= 0 {
		d.seen[id] = -1
		d.size.Add(1)
		return false
	}

	// Slot is occupied once the ring has wrapped; evict its owner.
	if old := d.ring[d.next]; old != "" {
		delete(d.seen, old)
		d.size.Add(-1)
	}
	d.ring[d.next] = id
	d.seen[id] = d.next
	d.next = (d.next + 1) % d.maxSize
	d.size.Add(1)
	return false
}

// Seen reports whether id has been recorded.
func (d *inMemoryDeduper) Seen(_ context.Context, id string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.seen[id]
	return ok
}

// Unrecord removes an ID from the seen set.
func (d *inMemoryDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	slot, exists := d.seen[id]
	if !exists {
		return
	}
	delete(d.seen, id)
	if slot >= 0 {
		d.ring[slot] = ""
	}
	d.size.Add(-1)
}

// Reset clears every recorded ID.
func (d *inMemoryDeduper) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seen = make(map[string]int)
	for i := range d.ring {
		d.ring[i] = ""
	}
	d.next = 0
	d.size.Store(0)
}

// Size returns the current number of entries in the deduper.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
