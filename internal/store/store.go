package store

import (
	"context"
	"errors"
	"time"
)

// End selects which side of the list an operation addresses.
type End int

const (
	// Head is the left end of the list, where FIFO consumers pop.
	Head End = iota
	// Tail is the right end, where FIFO producers push.
	Tail
)

func (e End) String() string {
	if e == Head {
		return "head"
	}
	return "tail"
}

// Opposite returns the other end.
func (e End) Opposite() End {
	if e == Head {
		return Tail
	}
	return Head
}

var (
	// ErrEmpty reports that a non-blocking Pop found no items.
	ErrEmpty = errors.New("store: list empty")
	// ErrTimeout reports that a blocking Pop waited out its deadline.
	ErrTimeout = errors.New("store: pop timed out")
	// ErrCounterUnderflow reports a DecrCheck that would have taken a
	// counter below zero. The counter is left unchanged.
	ErrCounterUnderflow = errors.New("store: counter underflow")
)

// Store is one logical queue's view of the backing store: a single list
// addressed by End, plus named counters. Implementations must be safe for
// concurrent use from independent clients; multi-step operations
// (PushCount, DecrCheck, Clear) are atomic with respect to every other
// client of the same store.
type Store interface {
	// Push places the payloads at the given end as one contiguous run whose
	// left-to-right list order matches input order: a Tail push appends
	// [a, b] after the existing items, a Head push prepends [a, b] before
	// them. A batch is never interleaved with other clients' pushes and is
	// never reversed.
	Push(ctx context.Context, end End, payloads ...[]byte) error

	// PushCount is Push plus an atomic increment of the named counter by
	// len(payloads). No interleaving observes the push without the count
	// or vice versa.
	PushCount(ctx context.Context, end End, counter string, payloads ...[]byte) error

	// Pop removes and returns one payload from the given end. wait < 0
	// blocks until an item arrives, wait == 0 fails fast with ErrEmpty,
	// wait > 0 blocks up to that duration and fails with ErrTimeout.
	Pop(ctx context.Context, end End, wait time.Duration) ([]byte, error)

	// Len returns the current number of items in the list.
	Len(ctx context.Context) (int, error)

	// Clear deletes the list and resets the named counters to zero, as one
	// atomic operation.
	Clear(ctx context.Context, counters ...string) error

	// IncrBy atomically adds n to the named counter, returning the result.
	IncrBy(ctx context.Context, counter string, n int64) (int64, error)

	// DecrCheck atomically decrements the named counter by one, failing
	// with ErrCounterUnderflow (and leaving the counter untouched) if the
	// result would be negative.
	DecrCheck(ctx context.Context, counter string) error

	// Counter returns the named counter's value, zero if unset.
	Counter(ctx context.Context, counter string) (int64, error)

	// Close releases the store handle. Shared state in the backing store
	// is not affected.
	Close() error
}

// CounterKey returns the conventional counter key for a queue name. The
// suffix matches what other yarqueue clients use, so counters line up
// across processes and implementations.
func CounterKey(name string) string {
	return name + "__counter"
}
