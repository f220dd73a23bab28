package worker

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/reconcile"
)

// MockSyncer is a mock implementation of Syncer
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

func TestSyncJob_Process(t *testing.T) {
	tests := []struct {
		name    string
		res     *reconcile.Result
		err     error
		wantErr error
	}{
		{"success", &reconcile.Result{RunID: "r1"}, nil, nil},
		{"busy lock is not an error", &reconcile.Result{}, domain.ErrLockBusy, nil},
		{"remote failure surfaces", &reconcile.Result{}, fmt.Errorf("%w: 502", domain.ErrRemoteUnavailable), domain.ErrRemoteUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := new(MockSyncer)
			syncer.On("Sync", mock.Anything).Return(tt.res, tt.err)

			err := NewSyncJob(syncer, TriggerSchedule).Process(context.Background())

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			syncer.AssertExpectations(t)
		})
	}
}
