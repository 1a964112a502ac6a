package queue

import (
	"context"
	"time"

	"github.com/clbarnes/yarqueue/internal/store"
)

// tasker provides the task-tracking operations shared by every joinable
// variant. It points at the variant's engine, whose counter key makes all
// puts count atomically with their push.
type tasker[T any] struct {
	e *engine[T]
}

// TaskDone marks one formerly gotten item as processed, decrementing the
// task counter. Calling it more times than items were put is a usage error
// and fails with ErrTaskCount, leaving the counter unchanged.
func (t tasker[T]) TaskDone(ctx context.Context) error {
	return mapStoreErr(t.e.st.DecrCheck(ctx, t.e.counter))
}

// NTasks returns the number of items put without a matching TaskDone call.
func (t tasker[T]) NTasks(ctx context.Context) (int, error) {
	v, err := t.e.st.Counter(ctx, t.e.counter)
	return int(v), err
}

// NInProgress returns the number of items popped from the queue whose
// TaskDone call is still outstanding.
func (t tasker[T]) NInProgress(ctx context.Context) (int, error) {
	n, err := t.NTasks(ctx)
	if err != nil {
		return 0, err
	}
	l, err := t.e.st.Len(ctx)
	if err != nil {
		return 0, err
	}
	return n - l, nil
}

// Join blocks until the task counter reaches zero, re-reading it every
// poll interval so puts arriving mid-wait are observed. It returns early
// only when ctx is done.
func (t tasker[T]) Join(ctx context.Context) error {
	return t.poll(ctx, nil)
}

// Wait is Join with a deadline: it fails with ErrTimeout if the counter
// has not reached zero within timeout.
func (t tasker[T]) Wait(ctx context.Context, timeout time.Duration) error {
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	return t.poll(ctx, deadline.C)
}

func (t tasker[T]) poll(ctx context.Context, deadline <-chan time.Time) error {
	ticker := time.NewTicker(t.e.poll)
	defer ticker.Stop()
	for {
		n, err := t.NTasks(ctx)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		select {
		case <-ticker.C:
		case <-deadline:
			return ErrTimeout
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Joinable is a FIFO queue whose puts are tracked as outstanding tasks
// until consumers acknowledge them with TaskDone. Clear also resets the
// task counter, atomically with deleting the list.
type Joinable[T any] struct {
	Queue[T]
	tasker[T]
}

// NewJoinable opens a joinable FIFO queue handle named name over cfg.Store.
func NewJoinable[T any](name string, cfg Config[T]) (*Joinable[T], error) {
	e, err := newEngine(name, cfg, store.Tail, store.Head, true)
	if err != nil {
		return nil, err
	}
	q := &Joinable[T]{Queue: Queue[T]{engine: e}}
	q.tasker.e = &q.Queue.engine
	return q, nil
}

// JoinableLIFO is the task-tracking stack variant.
type JoinableLIFO[T any] struct {
	LIFO[T]
	tasker[T]
}

// NewJoinableLIFO opens a joinable LIFO queue handle named name over
// cfg.Store.
func NewJoinableLIFO[T any](name string, cfg Config[T]) (*JoinableLIFO[T], error) {
	e, err := newEngine(name, cfg, store.Tail, store.Tail, true)
	if err != nil {
		return nil, err
	}
	q := &JoinableLIFO[T]{LIFO: LIFO[T]{engine: e}}
	q.tasker.e = &q.LIFO.engine
	return q, nil
}

// JoinableDeque is the task-tracking double-ended variant. Directional puts
// count toward the task counter exactly like plain puts.
type JoinableDeque[T any] struct {
	Deque[T]
	tasker[T]
}

// NewJoinableDeque opens a joinable double-ended queue handle named name
// over cfg.Store.
func NewJoinableDeque[T any](name string, cfg Config[T]) (*JoinableDeque[T], error) {
	e, err := newEngine(name, cfg, store.Tail, store.Head, true)
	if err != nil {
		return nil, err
	}
	q := &JoinableDeque[T]{Deque: Deque[T]{engine: e}}
	q.tasker.e = &q.Deque.engine
	return q, nil
}
