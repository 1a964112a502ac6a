package pebblestore

import (
	"context"
	"sync"
	"time"

	"github.com/clbarnes/yarqueue/internal/store"
)

// Queue implements store.Store for one named queue on an embedded DB.
// Obtain instances via DB.Queue so cursor state and the notify channel are
// shared per name within the process.
type Queue struct {
	db   *DB
	name string

	mu sync.Mutex
	// Items occupy seqs in the open interval (left, right).
	left, right uint64
	notifyCh    chan struct{}
}

var _ store.Store = (*Queue)(nil)

func openQueue(db *DB, name string) (*Queue, error) {
	q := &Queue{
		db:       db,
		name:     name,
		left:     seqOrigin,
		right:    seqOrigin + 1,
		notifyCh: make(chan struct{}),
	}
	meta, err := db.get(metaKey(name))
	if err != nil {
		return nil, err
	}
	if l, r, ok := decodeCursors(meta); ok {
		q.left, q.right = l, r
	}
	return q, nil
}

func (q *Queue) count() int {
	return int(q.right - q.left - 1)
}

// notify wakes every blocked popper. Callers hold q.mu.
func (q *Queue) notify() {
	close(q.notifyCh)
	q.notifyCh = make(chan struct{})
}

func (q *Queue) Push(ctx context.Context, end store.End, payloads ...[]byte) error {
	return q.push(ctx, end, "", payloads)
}

func (q *Queue) PushCount(ctx context.Context, end store.End, counter string, payloads ...[]byte) error {
	return q.push(ctx, end, counter, payloads)
}

func (q *Queue) push(ctx context.Context, end store.End, counter string, payloads [][]byte) error {
	if len(payloads) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	b := q.db.newBatch()
	defer b.Close()

	left, right := q.left, q.right
	if end == store.Tail {
		for _, p := range payloads {
			if err := b.Set(itemKey(q.name, right), p, nil); err != nil {
				return err
			}
			right++
		}
	} else {
		// Walk the batch backwards so the run reads in input order from
		// the left.
		for i := len(payloads) - 1; i >= 0; i-- {
			if err := b.Set(itemKey(q.name, left), payloads[i], nil); err != nil {
				return err
			}
			left--
		}
	}
	if err := b.Set(metaKey(q.name), encodeCursors(left, right), nil); err != nil {
		return err
	}
	if counter != "" {
		v, err := q.counterLocked(counter)
		if err != nil {
			return err
		}
		if err := b.Set(counterKey(counter), encodeCounter(v+int64(len(payloads))), nil); err != nil {
			return err
		}
	}
	if err := q.db.commit(b); err != nil {
		return err
	}
	q.left, q.right = left, right
	q.notify()
	return nil
}

func (q *Queue) Pop(ctx context.Context, end store.End, wait time.Duration) ([]byte, error) {
	var deadline <-chan time.Time
	if wait > 0 {
		t := time.NewTimer(wait)
		defer t.Stop()
		deadline = t.C
	}

	for {
		payload, notifyCh, err := q.tryPop(end)
		if err != nil {
			return nil, err
		}
		if payload != nil {
			return payload, nil
		}
		if wait == 0 {
			return nil, store.ErrEmpty
		}
		select {
		case <-notifyCh:
		case <-deadline:
			return nil, store.ErrTimeout
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// tryPop removes one item from the given end, returning (nil, ch, nil) with
// the current notify channel when the list is empty.
func (q *Queue) tryPop(end store.End) ([]byte, chan struct{}, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count() == 0 {
		return nil, q.notifyCh, nil
	}

	var seq uint64
	left, right := q.left, q.right
	if end == store.Head {
		seq = left + 1
		left++
	} else {
		seq = right - 1
		right--
	}
	key := itemKey(q.name, seq)
	payload, err := q.db.get(key)
	if err != nil {
		return nil, nil, err
	}

	b := q.db.newBatch()
	defer b.Close()
	if err := b.Delete(key, nil); err != nil {
		return nil, nil, err
	}
	if err := b.Set(metaKey(q.name), encodeCursors(left, right), nil); err != nil {
		return nil, nil, err
	}
	if err := q.db.commit(b); err != nil {
		return nil, nil, err
	}
	q.left, q.right = left, right
	return payload, nil, nil
}

func (q *Queue) Len(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count(), nil
}

func (q *Queue) Clear(ctx context.Context, counters ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	b := q.db.newBatch()
	defer b.Close()

	start, end := itemRange(q.name)
	if err := b.DeleteRange(start, end, nil); err != nil {
		return err
	}
	if err := b.Delete(metaKey(q.name), nil); err != nil {
		return err
	}
	for _, c := range counters {
		if err := b.Delete(counterKey(c), nil); err != nil {
			return err
		}
	}
	if err := q.db.commit(b); err != nil {
		return err
	}
	q.left, q.right = seqOrigin, seqOrigin+1
	return nil
}

func (q *Queue) IncrBy(ctx context.Context, counter string, n int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	v, err := q.counterLocked(counter)
	if err != nil {
		return 0, err
	}
	v += n
	if err := q.setCounterLocked(counter, v); err != nil {
		return 0, err
	}
	return v, nil
}

func (q *Queue) DecrCheck(ctx context.Context, counter string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	v, err := q.counterLocked(counter)
	if err != nil {
		return err
	}
	if v <= 0 {
		return store.ErrCounterUnderflow
	}
	return q.setCounterLocked(counter, v-1)
}

func (q *Queue) Counter(ctx context.Context, counter string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.counterLocked(counter)
}

// Close is a no-op: the queue's lifetime is the DB's.
func (q *Queue) Close() error { return nil }

func (q *Queue) counterLocked(counter string) (int64, error) {
	b, err := q.db.get(counterKey(counter))
	if err != nil {
		return 0, err
	}
	return decodeCounter(b), nil
}

func (q *Queue) setCounterLocked(counter string, v int64) error {
	b := q.db.newBatch()
	defer b.Close()
	if err := b.Set(counterKey(counter), encodeCounter(v), nil); err != nil {
		return err
	}
	return q.db.commit(b)
}
