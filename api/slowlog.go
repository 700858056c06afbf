package api

import (
	"context"
	"sort"
	"sync"
	"time"
)

const (
	slowLogMaxEntries  = 200
	slowLogKeepEntries = 100
)

// SlowRequest is one request that exceeded the slow threshold.
type SlowRequest struct {
	Method    string
	Path      string
	Status    int
	Duration  time.Duration
	Timestamp time.Time
}

// SlowLog is a bounded, in-process record of slow requests. The oldest entry
// is dropped once the cap is reached; Trim cuts back to the most recent
// entries and is what Run calls periodically.
type SlowLog struct {
	mu      sync.Mutex
	entries []SlowRequest
	max     int
	keep    int
}

func NewSlowLog() *SlowLog {
	return &SlowLog{max: slowLogMaxEntries, keep: slowLogKeepEntries}
}

func (l *SlowLog) Record(r SlowRequest) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, r)
	if over := len(l.entries) - l.max; over > 0 {
		l.entries = append(l.entries[:0:0], l.entries[over:]...)
	}
}

func (l *SlowLog) Trim() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.entries) > l.keep {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-l.keep:]...)
	}
}

// Run trims the log every interval until ctx is done.
func (l *SlowLog) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Trim()
		}
	}
}

// Entries returns a copy in recording order.
func (l *SlowLog) Entries() []SlowRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]SlowRequest, len(l.entries))
	copy(out, l.entries)
	return out
}

// Slowest returns up to n entries, longest first.
func (l *SlowLog) Slowest(n int) []SlowRequest {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Duration > out[j].Duration
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func (l *SlowLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *SlowLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
