package api

import (
	"context"
	"sync"
)

type inflightEntry struct {
	id     uint64
	cancel context.CancelCauseFunc
}

// inflightRegistry tracks one cancellation handle per dedup key. Starting a
// request with a key already present cancels the older request.
type inflightRegistry struct {
	mu      sync.Mutex
	seq     uint64
	entries map[string]inflightEntry
}

func newInflightRegistry() *inflightRegistry {
	return &inflightRegistry{entries: make(map[string]inflightEntry)}
}

// begin registers key and returns the context the request must run under plus
// the func that removes the registration. Removal only deletes the entry the
// caller created, never a newer one under the same key.
func (r *inflightRegistry) begin(ctx context.Context, key string) (context.Context, func()) {
	ctx, cancel := context.WithCancelCause(ctx)

	r.mu.Lock()
	if prev, ok := r.entries[key]; ok {
		prev.cancel(ErrCancelled)
	}
	r.seq++
	id := r.seq
	r.entries[key] = inflightEntry{id: id, cancel: cancel}
	r.mu.Unlock()

	return ctx, func() {
		r.mu.Lock()
		if e, ok := r.entries[key]; ok && e.id == id {
			delete(r.entries, key)
		}
		r.mu.Unlock()
		cancel(nil)
	}
}

func (r *inflightRegistry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
