package queue

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/clbarnes/yarqueue/internal/store"
	"github.com/clbarnes/yarqueue/pkg/codec"
)

// defaultPollInterval is how often Join and Wait re-read the task counter.
const defaultPollInterval = 200 * time.Millisecond

// Config configures a queue over a backing store.
type Config[T any] struct {
	// Store is the backing-store handle for this queue's name. Required.
	// Queues sharing a store connection and a name are the same logical
	// queue, regardless of process.
	Store store.Store
	// Codec serializes items at the queue boundary. Defaults to
	// codec.Gob[T]. Use codec.Raw with Queue[[]byte] to pass payloads
	// through unchanged.
	Codec codec.Codec[T]
	// PollInterval is the counter poll period for Join and Wait on
	// joinable queues. Defaults to 200ms.
	PollInterval time.Duration
}

// engine is the shared queue machinery. Ordering variants are push/pop end
// combinations over it; joinable variants set counter so every put counts.
type engine[T any] struct {
	name    string
	st      store.Store
	codec   codec.Codec[T]
	poll    time.Duration
	putEnd  store.End
	getEnd  store.End
	counter string
}

func newEngine[T any](name string, cfg Config[T], putEnd, getEnd store.End, joinable bool) (engine[T], error) {
	if name == "" {
		return engine[T]{}, errors.New("queue: name is required")
	}
	if cfg.Store == nil {
		return engine[T]{}, errors.New("queue: Config.Store is required")
	}
	e := engine[T]{
		name:   name,
		st:     cfg.Store,
		codec:  cfg.Codec,
		poll:   cfg.PollInterval,
		putEnd: putEnd,
		getEnd: getEnd,
	}
	if e.codec == nil {
		e.codec = codec.Gob[T]{}
	}
	if e.poll <= 0 {
		e.poll = defaultPollInterval
	}
	if joinable {
		e.counter = store.CounterKey(name)
	}
	return e, nil
}

// Name returns the queue name scoping its keys in the backing store.
func (e *engine[T]) Name() string { return e.name }

// Put serializes v and pushes it at this variant's put end. The core is
// unbounded, so Put never blocks on capacity.
func (e *engine[T]) Put(ctx context.Context, v T) error {
	return e.put(ctx, e.putEnd, v)
}

// PutNoWait is equivalent to Put on the unbounded core. It exists for
// drop-in parity with bounded blocking queues.
func (e *engine[T]) PutNoWait(ctx context.Context, v T) error {
	return e.put(ctx, e.putEnd, v)
}

// PutMany pushes all items as one atomic contiguous batch. A FIFO consumer
// dequeues them in the order given here.
func (e *engine[T]) PutMany(ctx context.Context, vs []T) error {
	return e.put(ctx, e.putEnd, vs...)
}

// Get pops one item from this variant's get end, blocking until one is
// available or ctx is done.
func (e *engine[T]) Get(ctx context.Context) (T, error) {
	return e.get(ctx, e.getEnd, -1)
}

// GetWait is Get with a deadline: it fails with ErrTimeout if no item
// arrived within timeout.
func (e *engine[T]) GetWait(ctx context.Context, timeout time.Duration) (T, error) {
	return e.get(ctx, e.getEnd, timeout)
}

// GetNoWait pops an item if one is immediately available and fails with
// ErrEmpty otherwise, never suspending.
func (e *engine[T]) GetNoWait(ctx context.Context) (T, error) {
	return e.get(ctx, e.getEnd, 0)
}

// GetMany returns a lazy sequence of up to n items, each fetched with the
// same policy as GetWait (timeout < 0 blocks indefinitely per item,
// timeout == 0 never blocks). The sequence as a whole is not atomic:
// concurrent clients may interleave between fetches. It stops after the
// first failed fetch, yielding that error.
func (e *engine[T]) GetMany(ctx context.Context, n int, timeout time.Duration) iter.Seq2[T, error] {
	return e.getMany(ctx, e.getEnd, n, timeout)
}

// Drain returns a lazy, non-restartable sequence that pops items until the
// first empty observation, then stops. It never blocks waiting for new
// arrivals, and stop-on-empty is success, not failure.
func (e *engine[T]) Drain(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for {
			v, err := e.get(ctx, e.getEnd, 0)
			if errors.Is(err, ErrEmpty) {
				return
			}
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Len returns the current number of items in the queue.
func (e *engine[T]) Len(ctx context.Context) (int, error) {
	return e.st.Len(ctx)
}

// Empty reports whether the queue currently holds no items.
func (e *engine[T]) Empty(ctx context.Context) (bool, error) {
	n, err := e.st.Len(ctx)
	return n == 0, err
}

// Full always reports false: the core is unbounded.
func (e *engine[T]) Full(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return false, nil
}

// Clear deletes the queue's list from the backing store and, for joinable
// queues, resets the task counter in the same atomic operation.
func (e *engine[T]) Clear(ctx context.Context) error {
	if e.counter != "" {
		return e.st.Clear(ctx, e.counter)
	}
	return e.st.Clear(ctx)
}

func (e *engine[T]) put(ctx context.Context, end store.End, vs ...T) error {
	if len(vs) == 0 {
		return nil
	}
	payloads := make([][]byte, len(vs))
	for i, v := range vs {
		b, err := e.codec.Encode(v)
		if err != nil {
			return fmt.Errorf("queue %q: encode: %w", e.name, err)
		}
		payloads[i] = b
	}
	if e.counter != "" {
		return e.st.PushCount(ctx, end, e.counter, payloads...)
	}
	return e.st.Push(ctx, end, payloads...)
}

func (e *engine[T]) get(ctx context.Context, end store.End, wait time.Duration) (T, error) {
	var zero T
	b, err := e.st.Pop(ctx, end, wait)
	if err != nil {
		return zero, mapStoreErr(err)
	}
	v, err := e.codec.Decode(b)
	if err != nil {
		return zero, fmt.Errorf("queue %q: decode: %w", e.name, err)
	}
	return v, nil
}

func (e *engine[T]) getMany(ctx context.Context, end store.End, n int, wait time.Duration) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for i := 0; i < n; i++ {
			v, err := e.get(ctx, end, wait)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// Queue is the FIFO variant: items are pushed at the tail and popped from
// the head, so they come out in the order they went in.
type Queue[T any] struct {
	engine[T]
}

// New opens a FIFO queue handle named name over cfg.Store.
func New[T any](name string, cfg Config[T]) (*Queue[T], error) {
	e, err := newEngine(name, cfg, store.Tail, store.Head, false)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{engine: e}, nil
}

// LIFO is the stack variant: both pushes and pops use the tail, so Get
// returns the most recently put item first.
type LIFO[T any] struct {
	engine[T]
}

// NewLIFO opens a LIFO queue handle named name over cfg.Store.
func NewLIFO[T any](name string, cfg Config[T]) (*LIFO[T], error) {
	e, err := newEngine(name, cfg, store.Tail, store.Tail, false)
	if err != nil {
		return nil, err
	}
	return &LIFO[T]{engine: e}, nil
}
