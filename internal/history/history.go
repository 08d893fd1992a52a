// Package history keeps a bounded in-memory record of recent
// invocations so that hosts can inspect what the bridge ran.
package history

import (
	"sync"
	"time"

	"github.com/tkoster/scriptbridge/internal/outcome"
)

// Entry summarises one completed invocation.
type Entry struct {
	ID      string          `json:"id"`
	Command string          `json:"command"`
	Script  string          `json:"script"`
	Outcome outcome.Outcome `json:"outcome"`
	Message string          `json:"message,omitempty"`
	Time    time.Time       `json:"time"`
}

// Recorder retains the most recent entries, newest first. It is safe
// for concurrent use. The zero value is not usable; use New.
type Recorder struct {
	mu      sync.Mutex
	cap     int
	entries []Entry
}

// New creates a Recorder that keeps up to cap entries. Capacity must
// be >= 1.
func New(cap int) *Recorder {
	if cap < 1 {
		cap = 1
	}
	return &Recorder{cap: cap}
}

// Add records an entry, evicting the oldest when full.
func (r *Recorder) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all
// retained entries.
func (r *Recorder) Recent(n int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}
	out := make([]Entry, 0, n)
	for i := len(r.entries) - 1; i >= len(r.entries)-n; i-- {
		out = append(out, r.entries[i])
	}
	return out
}
