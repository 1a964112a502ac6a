package httpserver

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clbarnes/yarqueue/internal/store/pebblestore"
	"github.com/clbarnes/yarqueue/internal/watch"
	"github.com/clbarnes/yarqueue/pkg/log"
	"github.com/clbarnes/yarqueue/pkg/queue"
)

func newTestServer(t *testing.T) (*Server, *queue.Joinable[int]) {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: t.TempDir(), Fsync: pebblestore.FsyncModeNever})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	st, err := db.Queue("render")
	if err != nil {
		t.Fatalf("open store queue: %v", err)
	}
	q, err := queue.NewJoinable[int]("render", queue.Config[int]{Store: st})
	if err != nil {
		t.Fatalf("new joinable: %v", err)
	}
	s := New(watch.Set{watch.New("render", st, 0)}, log.New(log.Options{Level: log.ErrorLevel, Output: io.Discard}))
	return s, q
}

func TestHealthHandler(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
}

func TestStatusHandler(t *testing.T) {
	s, q := newTestServer(t)
	ctx := context.Background()
	if err := q.PutMany(ctx, []int{1, 2, 3}); err != nil {
		t.Fatalf("putmany: %v", err)
	}
	if _, err := q.Get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var out map[string]watch.Status
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got := out["render"]
	if got.Queued != 2 || got.InProgress != 1 || got.Total != 3 {
		t.Fatalf("status = %+v", got)
	}
}

func TestStatusHandlerNameFilter(t *testing.T) {
	s, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/status?name=absent", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	var out map[string]watch.Status
	if err := json.NewDecoder(w.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("filter leaked: %v", out)
	}
}
