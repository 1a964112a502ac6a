package pebblestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clbarnes/yarqueue/internal/store"
)

func openTestQueue(t *testing.T, name string) *Queue {
	t.Helper()
	dir := t.TempDir()
	db, err := Open(Options{DataDir: dir, Fsync: FsyncModeNever})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	q, err := db.Queue(name)
	if err != nil {
		t.Fatalf("open queue: %v", err)
	}
	return q
}

func mustPop(t *testing.T, q *Queue, end store.End) string {
	t.Helper()
	b, err := q.Pop(context.Background(), end, 0)
	if err != nil {
		t.Fatalf("pop %v: %v", end, err)
	}
	return string(b)
}

func TestPushPopEnds(t *testing.T) {
	q := openTestQueue(t, "ends")
	ctx := context.Background()

	// [b, a, c] after a tail push, a head push and another tail push.
	if err := q.Push(ctx, store.Tail, []byte("a")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := q.Push(ctx, store.Head, []byte("b")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := q.Push(ctx, store.Tail, []byte("c")); err != nil {
		t.Fatalf("push: %v", err)
	}

	if n, _ := q.Len(ctx); n != 3 {
		t.Fatalf("len = %d, want 3", n)
	}
	for i, want := range []string{"b", "a", "c"} {
		if got := mustPop(t, q, store.Head); got != want {
			t.Fatalf("pop %d = %q, want %q", i, got, want)
		}
	}
}

func TestBatchPushKeepsInputOrder(t *testing.T) {
	q := openTestQueue(t, "batch")
	ctx := context.Background()

	if err := q.Push(ctx, store.Tail, []byte("x")); err != nil {
		t.Fatalf("push: %v", err)
	}
	// A head batch must read in input order from the left, ahead of x.
	if err := q.Push(ctx, store.Head, []byte("a"), []byte("b")); err != nil {
		t.Fatalf("push batch: %v", err)
	}
	for i, want := range []string{"a", "b", "x"} {
		if got := mustPop(t, q, store.Head); got != want {
			t.Fatalf("pop %d = %q, want %q", i, got, want)
		}
	}
}

func TestPopTail(t *testing.T) {
	q := openTestQueue(t, "tail")
	ctx := context.Background()
	if err := q.Push(ctx, store.Tail, []byte("1"), []byte("2"), []byte("3")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if got := mustPop(t, q, store.Tail); got != "3" {
		t.Fatalf("tail pop = %q, want 3", got)
	}
	if got := mustPop(t, q, store.Head); got != "1" {
		t.Fatalf("head pop = %q, want 1", got)
	}
}

func TestPopEmptyAndTimeout(t *testing.T) {
	q := openTestQueue(t, "empty")
	ctx := context.Background()

	if _, err := q.Pop(ctx, store.Head, 0); !errors.Is(err, store.ErrEmpty) {
		t.Fatalf("want ErrEmpty, got %v", err)
	}
	start := time.Now()
	if _, err := q.Pop(ctx, store.Head, 50*time.Millisecond); !errors.Is(err, store.ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Fatalf("timed out early")
	}
}

func TestBlockingPopWokenByPush(t *testing.T) {
	q := openTestQueue(t, "wake")
	ctx := context.Background()

	done := make(chan string, 1)
	go func() {
		b, err := q.Pop(ctx, store.Head, 2*time.Second)
		if err != nil {
			done <- "err: " + err.Error()
			return
		}
		done <- string(b)
	}()

	time.Sleep(50 * time.Millisecond)
	if err := q.Push(ctx, store.Tail, []byte("v")); err != nil {
		t.Fatalf("push: %v", err)
	}

	select {
	case got := <-done:
		if got != "v" {
			t.Fatalf("got %q", got)
		}
	case <-time.After(time.Second):
		t.Fatalf("popper was not woken")
	}
}

func TestPopContextCancel(t *testing.T) {
	q := openTestQueue(t, "cancel")
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(30 * time.Millisecond)
		cancel()
	}()
	if _, err := q.Pop(ctx, store.Head, -1); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestPushCountAndCounters(t *testing.T) {
	q := openTestQueue(t, "counted")
	ctx := context.Background()
	counter := store.CounterKey("counted")

	if err := q.PushCount(ctx, store.Tail, counter, []byte("a"), []byte("b")); err != nil {
		t.Fatalf("pushcount: %v", err)
	}
	if v, _ := q.Counter(ctx, counter); v != 2 {
		t.Fatalf("counter = %d, want 2", v)
	}
	if err := q.DecrCheck(ctx, counter); err != nil {
		t.Fatalf("decr: %v", err)
	}
	if err := q.DecrCheck(ctx, counter); err != nil {
		t.Fatalf("decr: %v", err)
	}
	if err := q.DecrCheck(ctx, counter); !errors.Is(err, store.ErrCounterUnderflow) {
		t.Fatalf("want ErrCounterUnderflow, got %v", err)
	}
	if v, _ := q.Counter(ctx, counter); v != 0 {
		t.Fatalf("underflow changed counter to %d", v)
	}
}

func TestClearResetsListAndCounters(t *testing.T) {
	q := openTestQueue(t, "cleared")
	ctx := context.Background()
	counter := store.CounterKey("cleared")

	if err := q.PushCount(ctx, store.Tail, counter, []byte("a"), []byte("b"), []byte("c")); err != nil {
		t.Fatalf("pushcount: %v", err)
	}
	if err := q.Clear(ctx, counter); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if n, _ := q.Len(ctx); n != 0 {
		t.Fatalf("len after clear = %d", n)
	}
	if v, _ := q.Counter(ctx, counter); v != 0 {
		t.Fatalf("counter after clear = %d", v)
	}
	// The queue is usable again after a clear.
	if err := q.Push(ctx, store.Tail, []byte("z")); err != nil {
		t.Fatalf("push after clear: %v", err)
	}
	if got := mustPop(t, q, store.Head); got != "z" {
		t.Fatalf("got %q", got)
	}
}

func TestCursorsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	db, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	q, err := db.Queue("persist")
	if err != nil {
		t.Fatalf("open queue: %v", err)
	}
	ctx := context.Background()
	if err := q.Push(ctx, store.Tail, []byte("1"), []byte("2")); err != nil {
		t.Fatalf("push: %v", err)
	}
	if _, err := q.Pop(ctx, store.Head, 0); err != nil {
		t.Fatalf("pop: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := Open(Options{DataDir: dir, Fsync: FsyncModeAlways})
	if err != nil {
		t.Fatalf("reopen pebble: %v", err)
	}
	t.Cleanup(func() { _ = db2.Close() })
	q2, err := db2.Queue("persist")
	if err != nil {
		t.Fatalf("reopen queue: %v", err)
	}
	if n, _ := q2.Len(ctx); n != 1 {
		t.Fatalf("len after reopen = %d, want 1", n)
	}
	if got := mustPop(t, q2, store.Head); got != "2" {
		t.Fatalf("got %q, want 2", got)
	}
}
