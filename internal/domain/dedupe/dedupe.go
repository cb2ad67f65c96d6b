// Package dedupe tracks already-seen identifiers so ingestion and feedback
// submissions stay idempotent.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records seen ids to ensure at-most-once processing.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it if
	// not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id from the seen set so it can be retried. Use it
	// only when a recorded submission failed downstream (e.g. queue
	// backpressure), otherwise the retry would be rejected as a duplicate.
	Unrecord(ctx context.Context, id string)

	// Size returns the current number of tracked ids.
	Size() int64
}

// Option applies a configuration option to the deduper.
type Option func(*ringDeduper)

// WithMaxSize bounds the number of ids kept in memory. Zero or negative
// means unbounded.
func WithMaxSize(n int) Option {
	return func(d *ringDeduper) {
		d.maxSize = n
	}
}

// ringDeduper implements Deduper with a map plus a fixed-size ring of ids in
// insertion order. When the ring is full the oldest id is evicted, which is
// acceptable for ingestion: a re-submission of a very old movie just gets
// re-processed and overwrites the same record.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// New creates a deduper with configuration options.
func New(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: 50000}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	if d.maxSize > 0 {
		if old := d.ring[d.next]; old != "" {
			delete(d.seen, old)
			d.size.Add(-1)
		}
		d.ring[d.next] = id
		d.next = (d.next + 1) % d.maxSize
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *ringDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; !ok {
		return
	}
	delete(d.seen, id)
	d.size.Add(-1)
	for i, v := range d.ring {
		if v == id {
			d.ring[i] = ""
			break
		}
	}
}

func (d *ringDeduper) Size() int64 {
	return d.size.Load()
}
