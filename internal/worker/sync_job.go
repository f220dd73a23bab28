package worker

import (
	"context"
	"errors"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/reconcile"
)

// Syncer runs one reconciliation
type Syncer interface {
	Sync(ctx context.Context) (*reconcile.Result, error)
}

// SyncJob runs a reconciliation from the pool
type SyncJob struct {
	syncer  Syncer
	trigger string
}

// NewSyncJob creates a job; trigger names where it came from in logs
func NewSyncJob(syncer Syncer, trigger string) *SyncJob {
	return &SyncJob{syncer: syncer, trigger: trigger}
}

// Process runs the sync. A busy lock is not a failure: another process is
// already doing the work.
func (j *SyncJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx).With("trigger", j.trigger)
	log.Info(LogMsgSyncJobStarting)

	res, err := j.syncer.Sync(ctx)
	if errors.Is(err, domain.ErrLockBusy) {
		log.Info(LogMsgSyncJobBusy)
		return nil
	}
	if err != nil {
		return err
	}
	log.Info(LogMsgSyncJobDone, "run_id", res.RunID, "duration", res.Duration.String())
	return nil
}
