package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/budgetwise/internal/cache"
	"github.com/mmynk/budgetwise/internal/events"
	"github.com/mmynk/budgetwise/internal/metrics"
	"github.com/mmynk/budgetwise/internal/middleware"
	"github.com/mmynk/budgetwise/internal/storage"
	"github.com/mmynk/budgetwise/internal/storage/memory"
	"github.com/mmynk/budgetwise/internal/storage/sqlite"
)

// recorder collects published changes.
type recorder struct {
	mu      sync.Mutex
	changes []events.Change
}

func (r *recorder) Publish(_ context.Context, c events.Change) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, c)
	return nil
}

func (r *recorder) ops() []events.Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ops []events.Op
	for _, c := range r.changes {
		ops = append(ops, c.Op)
	}
	return ops
}

type testServer struct {
	budget   *BudgetServiceClient
	summary  *SummaryServiceClient
	changes  *recorder
	cache    *cache.SummaryCache
	metrics  *metrics.Metrics
	store    storage.Store
	shutdown func()
}

// setupTestServer wires both services over a real HTTP server, the way
// cmd/server does.
func setupTestServer(t *testing.T, store storage.Store) *testServer {
	t.Helper()

	m := metrics.New()
	summaries := cache.NewSummaryCache(16, time.Minute, m)
	changes := &recorder{}

	budgetSvc := NewBudgetService(store, events.Fanout{summaries, changes})
	summarySvc := NewSummaryService(store, summaries, m)

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor(), middleware.MetricsInterceptor(m))
	budgetPath, budgetHandler := NewBudgetServiceHandler(budgetSvc, interceptors)
	summaryPath, summaryHandler := NewSummaryServiceHandler(summarySvc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(budgetPath, budgetHandler)
	mux.Handle(summaryPath, summaryHandler)
	server := httptest.NewServer(mux)

	return &testServer{
		budget:   NewBudgetServiceClient(http.DefaultClient, server.URL),
		summary:  NewSummaryServiceClient(http.DefaultClient, server.URL),
		changes:  changes,
		cache:    summaries,
		metrics:  m,
		store:    store,
		shutdown: server.Close,
	}
}

func setupMemoryServer(t *testing.T) *testServer {
	t.Helper()
	ts := setupTestServer(t, memory.New())
	t.Cleanup(ts.shutdown)
	return ts
}

func setupSQLiteServer(t *testing.T) *testServer {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	ts := setupTestServer(t, store)
	t.Cleanup(func() {
		ts.shutdown()
		store.Close()
		os.Remove(tmpFile.Name())
	})
	return ts
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
