// Package synclock implements the persisted sync mutex kept in the
// sync_checkpoint table.
package synclock

import (
	"context"
	"fmt"
	"time"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/metrics"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// Outcome is the result of an acquire attempt
type Outcome int

const (
	Busy Outcome = iota
	Granted
)

func (o Outcome) String() string {
	if o == Granted {
		return "granted"
	}
	return "busy"
}

// Lock guards runs of one process or many through the checkpoint row
type Lock struct {
	store repository.Catalog
	now   func() time.Time
}

// Option configures a Lock
type Option func(*Lock)

// WithClock replaces time.Now, for tests
func WithClock(now func() time.Time) Option {
	return func(l *Lock) { l.now = now }
}

// New creates a lock over store
func New(store repository.Catalog, opts ...Option) *Lock {
	l := &Lock{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Acquire takes the lock for entityType. A lock held for longer than
// staleAfter is taken over. Busy means nothing was written.
func (l *Lock) Acquire(ctx context.Context, entityType string, staleAfter time.Duration) (Outcome, error) {
	log := logger.FromContext(ctx)

	tx, err := l.store.BeginTx(ctx)
	if err != nil {
		return Busy, fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgAcquire, err)
	}
	defer repository.SafeRollback(ctx, tx)

	cp, err := tx.GetCheckpointForUpdate(ctx, entityType)
	if err != nil {
		return Busy, fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgAcquire, err)
	}
	if cp == nil {
		if cp, err = tx.CreateCheckpoint(ctx, entityType); err != nil {
			return Busy, fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgAcquire, err)
		}
	}

	now := l.now().UTC()
	if cp.Running {
		if !cp.IsStale(now, staleAfter) {
			log.Info(LogMsgLockBusy, "entity_type", entityType, "last_synced", cp.LastSynced)
			return Busy, nil
		}
		log.Warn(LogMsgStaleLockOverride,
			"entity_type", entityType,
			"last_synced", cp.LastSynced,
			"stale_after", staleAfter.String())
		metrics.SyncLockOverridesTotal.WithLabelValues(entityType).Inc()
	}

	cp.Running = true
	cp.LastSynced = &now
	if err := tx.UpdateCheckpoint(ctx, cp); err != nil {
		return Busy, fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgAcquire, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return Busy, fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgAcquire, err)
	}

	log.Info(LogMsgLockGranted, "entity_type", entityType)
	return Granted, nil
}

// Release clears the running flag and stamps completedAt, whatever the run's
// result was.
func (l *Lock) Release(ctx context.Context, entityType string, completedAt time.Time) error {
	tx, err := l.store.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgRelease, err)
	}
	defer repository.SafeRollback(ctx, tx)

	cp, err := tx.GetCheckpointForUpdate(ctx, entityType)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgRelease, err)
	}
	if cp == nil {
		if cp, err = tx.CreateCheckpoint(ctx, entityType); err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgRelease, err)
		}
	}

	completedAt = completedAt.UTC()
	cp.Running = false
	cp.LastSynced = &completedAt
	if err := tx.UpdateCheckpoint(ctx, cp); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgRelease, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPersistence, ErrMsgRelease, err)
	}

	logger.FromContext(ctx).Info(LogMsgLockReleased, "entity_type", entityType, "last_synced", completedAt)
	return nil
}
