package watch

import (
	"context"
	"sync"

	"github.com/clbarnes/yarqueue/internal/store"
)

// Status is one queue's progress triple. InProgress is nonzero only for
// joinable queues, whose task counter exceeds the list length while items
// are being processed.
type Status struct {
	Queued     int `json:"queued"`
	InProgress int `json:"inProgress"`
	Total      int `json:"total,omitempty"`
}

// Done returns how many of Total items are finished. Zero Total means the
// total is unknown and no done count can be derived.
func (s Status) Done() int {
	if s.Total == 0 {
		return 0
	}
	return s.Total - s.Queued - s.InProgress
}

// Watcher reads one queue's derived status. It never writes to the store,
// and is safe for concurrent snapshots (the HTTP server snapshots from
// every request goroutine).
type Watcher struct {
	name string
	st   store.Store

	mu    sync.Mutex
	total int
}

// New creates a watcher for the named queue. total is the caller-known
// number of items put in; pass 0 to infer it from the first snapshot.
func New(name string, st store.Store, total int) *Watcher {
	return &Watcher{name: name, st: st, total: total}
}

// Name returns the watched queue's name.
func (w *Watcher) Name() string { return w.name }

// Snapshot reads the queue's current status. With no caller-supplied
// total, the first observation's outstanding count becomes the total.
func (w *Watcher) Snapshot(ctx context.Context) (Status, error) {
	queued, err := w.st.Len(ctx)
	if err != nil {
		return Status{}, err
	}
	tasks, err := w.st.Counter(ctx, store.CounterKey(w.name))
	if err != nil {
		return Status{}, err
	}
	inProgress := int(tasks) - queued
	if inProgress < 0 {
		// Non-joinable queue (no counter) or counter cleared mid-read.
		inProgress = 0
	}
	w.mu.Lock()
	if w.total == 0 {
		w.total = queued + inProgress
	}
	total := w.total
	w.mu.Unlock()
	return Status{Queued: queued, InProgress: inProgress, Total: total}, nil
}

// Set polls several watchers as one unit.
type Set []*Watcher

// Snapshot reads every member's status, keyed by queue name.
func (s Set) Snapshot(ctx context.Context) (map[string]Status, error) {
	out := make(map[string]Status, len(s))
	for _, w := range s {
		st, err := w.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		out[w.Name()] = st
	}
	return out, nil
}
