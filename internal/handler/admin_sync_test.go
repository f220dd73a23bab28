package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/reconcile"
	"github.com/wilsonmoraes/starships-backend/internal/testing/fakestore"
	"github.com/wilsonmoraes/starships-backend/internal/worker"
)

// MockQueue records enqueued jobs
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) TryEnqueue(job worker.Job) bool {
	return m.Called(job).Bool(0)
}

// MockSyncer is a mock implementation of worker.Syncer
type MockSyncer struct {
	mock.Mock
}

func (m *MockSyncer) Sync(ctx context.Context) (*reconcile.Result, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reconcile.Result), args.Error(1)
}

func TestHandleTriggerSync(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		accepted   bool
		wantStatus int
		wantBody   string
	}{
		{"empty body defaults to starships", "", true, http.StatusAccepted, MsgSyncQueued},
		{"explicit starships", `{"entity_type":"starships"}`, true, http.StatusAccepted, MsgSyncQueued},
		{"queue full", `{"entity_type":"starships"}`, false, http.StatusConflict, ErrMsgSyncAlreadyQueued},
		{"unknown entity type", `{"entity_type":"planets"}`, false, http.StatusBadRequest, "Unsupported entity type"},
		{"missing entity type", `{"entity_type":""}`, false, http.StatusBadRequest, "This field is required"},
		{"malformed json", `{"entity_type":`, false, http.StatusBadRequest, ErrMsgInvalidRequest},
		{"unknown field", `{"entity":"starships"}`, false, http.StatusBadRequest, ErrMsgInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := &MockQueue{}
			queue.On("TryEnqueue", mock.AnythingOfType("*worker.SyncJob")).Return(tt.accepted).Maybe()
			h := NewAdminSyncHandler(queue, &MockSyncer{}, fakestore.New())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sync", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.HandleTriggerSync(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestHandleTriggerSync_BadRequestDoesNotEnqueue(t *testing.T) {
	queue := &MockQueue{}
	h := NewAdminSyncHandler(queue, &MockSyncer{}, fakestore.New())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sync", strings.NewReader(`{"entity_type":"films"}`))
	w := httptest.NewRecorder()
	h.HandleTriggerSync(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	queue.AssertNotCalled(t, "TryEnqueue", mock.Anything)
}

func TestHandleTriggerSync_Inline(t *testing.T) {
	tests := []struct {
		name       string
		res        *reconcile.Result
		err        error
		wantStatus int
		wantBody   string
	}{
		{"success", &reconcile.Result{RunID: "run-1", Inserted: 3}, nil, http.StatusOK, `"inserted":3`},
		{"lock busy", nil, domain.ErrLockBusy, http.StatusConflict, ErrMsgLockBusyError},
		{"remote down", nil, fmt.Errorf("%w: 503", domain.ErrRemoteUnavailable), http.StatusBadGateway, ErrMsgUnavailableError},
		{"store failure", nil, fmt.Errorf("%w: disk", domain.ErrPersistence), http.StatusInternalServerError, ErrMsgPersistenceError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &MockSyncer{}
			syncer.On("Sync", mock.Anything).Return(tt.res, tt.err)
			queue := &MockQueue{}
			h := NewAdminSyncHandler(queue, syncer, fakestore.New())

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sync?wait=true", nil)
			w := httptest.NewRecorder()
			h.HandleTriggerSync(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			queue.AssertNotCalled(t, "TryEnqueue", mock.Anything)
			syncer.AssertExpectations(t)
		})
	}
}

// ctxSyncer records the context state a run starts with
type ctxSyncer struct {
	ctxErr error
	reqID  string
}

func (s *ctxSyncer) Sync(ctx context.Context) (*reconcile.Result, error) {
	s.ctxErr = ctx.Err()
	s.reqID = logger.GetRequestID(ctx)
	return &reconcile.Result{EntityType: domain.EntityTypeStarships}, nil
}

func TestHandleTriggerSync_InlineSurvivesClientCancel(t *testing.T) {
	syncer := &ctxSyncer{}
	h := NewAdminSyncHandler(&MockQueue{}, syncer, fakestore.New())

	ctx, cancel := context.WithCancel(logger.WithRequestID(context.Background(), "req-7"))
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/sync?wait=true", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	h.HandleTriggerSync(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, syncer.ctxErr, "run is not cancelled with the request")
	assert.Equal(t, "req-7", syncer.reqID, "request values are kept")
}

func TestHandleSyncStatus(t *testing.T) {
	t.Run("never synced", func(t *testing.T) {
		h := NewAdminSyncHandler(&MockQueue{}, &MockSyncer{}, fakestore.New())
		w := httptest.NewRecorder()
		h.HandleSyncStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/sync/status", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp SyncStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.NeverSynced)
		assert.False(t, resp.Running)
		assert.Equal(t, domain.EntityTypeStarships, resp.EntityType)
	})

	t.Run("running", func(t *testing.T) {
		store := fakestore.New()
		last := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
		store.SeedCheckpoint(domain.SyncCheckpoint{EntityType: domain.EntityTypeStarships, Running: true, LastSynced: &last})
		store.SeedStarship(domain.Starship{ID: "2", Name: "CR90 corvette"})

		h := NewAdminSyncHandler(&MockQueue{}, &MockSyncer{}, store)
		w := httptest.NewRecorder()
		h.HandleSyncStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/sync/status", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp SyncStatusResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Running)
		assert.False(t, resp.NeverSynced)
		assert.Equal(t, int64(1), resp.Starships)
		require.NotNil(t, resp.LastSynced)
		assert.True(t, last.Equal(*resp.LastSynced))
	})

	t.Run("store failure", func(t *testing.T) {
		store := fakestore.New()
		store.FailOn("GetCheckpoint", assert.AnError)

		h := NewAdminSyncHandler(&MockQueue{}, &MockSyncer{}, store)
		w := httptest.NewRecorder()
		h.HandleSyncStatus(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/sync/status", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgGetStatusFailed)
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})
}
