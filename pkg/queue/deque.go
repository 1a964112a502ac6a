package queue

import (
	"context"
	"iter"
	"time"

	"github.com/clbarnes/yarqueue/internal/store"
)

// Deque is the double-ended variant: explicit left/right methods push and
// pop at either end, while the plain Put/Get methods keep FIFO semantics
// (tail push, head pop) so a Deque is a drop-in Queue.
//
// Batch pushes at either end write the batch as one contiguous run in input
// order: after PutManyLeft(ctx, []T{a, b}) the leftmost items read a then b.
// This is deliberately not equivalent to repeated single-item PutLeft calls,
// which would reverse the batch.
type Deque[T any] struct {
	engine[T]
}

// NewDeque opens a double-ended queue handle named name over cfg.Store.
func NewDeque[T any](name string, cfg Config[T]) (*Deque[T], error) {
	e, err := newEngine(name, cfg, store.Tail, store.Head, false)
	if err != nil {
		return nil, err
	}
	return &Deque[T]{engine: e}, nil
}

// PutLeft pushes one item at the left end.
func (q *Deque[T]) PutLeft(ctx context.Context, v T) error {
	return q.put(ctx, store.Head, v)
}

// PutRight pushes one item at the right end.
func (q *Deque[T]) PutRight(ctx context.Context, v T) error {
	return q.put(ctx, store.Tail, v)
}

// PutManyLeft pushes the batch at the left end as a contiguous run in
// input order.
func (q *Deque[T]) PutManyLeft(ctx context.Context, vs []T) error {
	return q.put(ctx, store.Head, vs...)
}

// PutManyRight pushes the batch at the right end as a contiguous run in
// input order.
func (q *Deque[T]) PutManyRight(ctx context.Context, vs []T) error {
	return q.put(ctx, store.Tail, vs...)
}

// GetLeft pops from the left end, blocking until an item is available.
func (q *Deque[T]) GetLeft(ctx context.Context) (T, error) {
	return q.get(ctx, store.Head, -1)
}

// GetRight pops from the right end, blocking until an item is available.
func (q *Deque[T]) GetRight(ctx context.Context) (T, error) {
	return q.get(ctx, store.Tail, -1)
}

// GetLeftWait is GetLeft with a deadline, failing with ErrTimeout.
func (q *Deque[T]) GetLeftWait(ctx context.Context, timeout time.Duration) (T, error) {
	return q.get(ctx, store.Head, timeout)
}

// GetRightWait is GetRight with a deadline, failing with ErrTimeout.
func (q *Deque[T]) GetRightWait(ctx context.Context, timeout time.Duration) (T, error) {
	return q.get(ctx, store.Tail, timeout)
}

// GetLeftNoWait pops from the left end without suspending, failing with
// ErrEmpty when nothing is available.
func (q *Deque[T]) GetLeftNoWait(ctx context.Context) (T, error) {
	return q.get(ctx, store.Head, 0)
}

// GetRightNoWait pops from the right end without suspending, failing with
// ErrEmpty when nothing is available.
func (q *Deque[T]) GetRightNoWait(ctx context.Context) (T, error) {
	return q.get(ctx, store.Tail, 0)
}

// GetManyLeft lazily pops up to n items from the left end, each fetch
// subject to the same policy as GetLeftWait.
func (q *Deque[T]) GetManyLeft(ctx context.Context, n int, timeout time.Duration) iter.Seq2[T, error] {
	return q.getMany(ctx, store.Head, n, timeout)
}

// GetManyRight lazily pops up to n items from the right end, each fetch
// subject to the same policy as GetRightWait.
func (q *Deque[T]) GetManyRight(ctx context.Context, n int, timeout time.Duration) iter.Seq2[T, error] {
	return q.getMany(ctx, store.Tail, n, timeout)
}
