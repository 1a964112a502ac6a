package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/clbarnes/yarqueue/internal/store"
	"github.com/clbarnes/yarqueue/internal/store/pebblestore"
	"github.com/clbarnes/yarqueue/internal/watch"
	logpkg "github.com/clbarnes/yarqueue/pkg/log"
)

func runYarq(t *testing.T, args ...string) (string, error) {
	t.Helper()
	logger := logpkg.New(logpkg.Options{Level: logpkg.ErrorLevel, Output: io.Discard})
	root := NewRootCommand(logger)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// seedQueue writes n items into the named queue at dir and closes the
// database, so the command under test can reopen it.
func seedQueue(t *testing.T, dir, name string, n int, counted bool) {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	q, err := db.Queue(name)
	if err != nil {
		t.Fatalf("queue: %v", err)
	}
	ctx := context.Background()
	for i := 0; i < n; i++ {
		payload := []byte(fmt.Sprintf("item-%d", i))
		if counted {
			err = q.PushCount(ctx, store.Tail, store.CounterKey(name), payload)
		} else {
			err = q.Push(ctx, store.Tail, payload)
		}
		if err != nil {
			t.Fatalf("push: %v", err)
		}
	}
}

func TestQueueLen(t *testing.T) {
	dir := t.TempDir()
	seedQueue(t, dir, "jobs", 3, false)

	out, err := runYarq(t, "queue", "len", "--name", "jobs", "--data-dir", dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "3" {
		t.Fatalf("len = %q, want 3", out)
	}
}

func TestQueueTasks(t *testing.T) {
	dir := t.TempDir()
	seedQueue(t, dir, "jobs", 4, true)

	out, err := runYarq(t, "queue", "tasks", "--name", "jobs", "--data-dir", dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "4" {
		t.Fatalf("tasks = %q, want 4", out)
	}
}

func TestQueueClear(t *testing.T) {
	dir := t.TempDir()
	seedQueue(t, dir, "jobs", 5, true)

	if _, err := runYarq(t, "queue", "clear", "--name", "jobs", "--data-dir", dir); err != nil {
		t.Fatalf("clear: %v", err)
	}

	out, err := runYarq(t, "queue", "len", "--name", "jobs", "--data-dir", dir)
	if err != nil {
		t.Fatalf("len: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("len after clear = %q, want 0", out)
	}
	out, err = runYarq(t, "queue", "tasks", "--name", "jobs", "--data-dir", dir)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if strings.TrimSpace(out) != "0" {
		t.Fatalf("tasks after clear = %q, want 0", out)
	}
}

func TestWatchOnce(t *testing.T) {
	dir := t.TempDir()
	seedQueue(t, dir, "render", 2, true)

	out, err := runYarq(t, "watch", "--once", "--name", "render", "--data-dir", dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out, "render") || !strings.Contains(out, "2 queued") {
		t.Fatalf("unexpected watch output: %q", out)
	}
}

func TestRenderLoopWaitsForFirstItem(t *testing.T) {
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	st, err := db.Queue("late")
	if err != nil {
		t.Fatalf("queue: %v", err)
	}

	ctx := context.Background()
	set := watch.Set{watch.New("late", st, 0)}
	done := make(chan error, 1)
	go func() {
		done <- renderLoop(ctx, io.Discard, []string{"late"}, set, 5*time.Millisecond)
	}()

	// The producer has not started yet; the loop must keep polling.
	select {
	case err := <-done:
		t.Fatalf("returned before any items: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	if err := st.Push(ctx, store.Tail, []byte("x")); err != nil {
		t.Fatalf("push: %v", err)
	}
	// Let the loop observe the item before draining it.
	time.Sleep(100 * time.Millisecond)
	if _, err := st.Pop(ctx, store.Head, 0); err != nil {
		t.Fatalf("pop: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("render loop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("render loop did not exit after drain")
	}
}

func TestWatchRequiresName(t *testing.T) {
	if _, err := runYarq(t, "watch", "--once", "--data-dir", t.TempDir()); err == nil {
		t.Fatalf("expected error without --name")
	}
}

func TestFsyncModeInvalid(t *testing.T) {
	if _, err := fsyncMode("sometimes"); err == nil {
		t.Fatalf("expected error for invalid fsync mode")
	}
}
