package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilsonmoraes/starships-backend/internal/reconcile"
	"github.com/wilsonmoraes/starships-backend/internal/testing/fakestore"
	"github.com/wilsonmoraes/starships-backend/internal/worker"
)

const testAPIKey = "test-key"

type countingQueue struct {
	accepted atomic.Int32
	full     bool
}

func (q *countingQueue) TryEnqueue(worker.Job) bool {
	if q.full {
		return false
	}
	q.accepted.Add(1)
	return true
}

type noopSyncer struct{}

func (noopSyncer) Sync(context.Context) (*reconcile.Result, error) {
	return &reconcile.Result{RunID: "inline"}, nil
}

func newTestRouter(queue *countingQueue) http.Handler {
	return NewRouter(Dependencies{
		APIKey: testAPIKey,
		Store:  fakestore.New(),
		Queue:  queue,
		Syncer: noopSyncer{},
	})
}

func TestRouter_PublicEndpoints(t *testing.T) {
	router := newTestRouter(&countingQueue{})

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestRouter_AdminRequiresKey(t *testing.T) {
	queue := &countingQueue{}
	router := newTestRouter(queue)

	tests := []struct {
		name   string
		method string
		path   string
		key    string
		want   int
	}{
		{"trigger without key", http.MethodPost, "/api/v1/admin/sync", "", http.StatusUnauthorized},
		{"trigger wrong key", http.MethodPost, "/api/v1/admin/sync", "nope", http.StatusUnauthorized},
		{"status without key", http.MethodGet, "/api/v1/admin/sync/status", "", http.StatusUnauthorized},
		{"trigger", http.MethodPost, "/api/v1/admin/sync", testAPIKey, http.StatusAccepted},
		{"trigger inline", http.MethodPost, "/api/v1/admin/sync?wait=true", testAPIKey, http.StatusOK},
		{"status", http.MethodGet, "/api/v1/admin/sync/status", testAPIKey, http.StatusOK},
		{"wrong method", http.MethodGet, "/api/v1/admin/sync", testAPIKey, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(""))
			if tt.key != "" {
				req.Header.Set(HeaderAPIKey, tt.key)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	assert.Equal(t, int32(1), queue.accepted.Load(), "only the authorised async trigger is queued")
}

func TestRouter_TriggerWhenQueueFull(t *testing.T) {
	router := newTestRouter(&countingQueue{full: true})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sync", nil)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_NotFound(t *testing.T) {
	router := newTestRouter(&countingQueue{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/planets", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
