// Package reconcile runs one mirror pass of the remote starship catalog into
// the local store: lock, enumerate, prune, upsert, release.
package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/metrics"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
	"github.com/wilsonmoraes/starships-backend/internal/starship"
	"github.com/wilsonmoraes/starships-backend/internal/swapi"
	"github.com/wilsonmoraes/starships-backend/internal/synclock"
)

// Remote is the part of the catalog client a run needs
type Remote interface {
	ListAllIDs(ctx context.Context) ([]string, error)
	FetchDetail(ctx context.Context, id string) (*swapi.Properties, error)
}

// Options tune a run
type Options struct {
	StaleAfter            time.Duration
	PruneBatchSize        int
	ManufacturerCacheSize int
}

// Result summarises one run; on failure it holds the progress made
type Result struct {
	RunID                string        `json:"run_id"`
	EntityType           string        `json:"entity_type"`
	StartedAt            time.Time     `json:"started_at"`
	Duration             time.Duration `json:"duration"`
	RemoteCount          int           `json:"remote_count"`
	Pruned               int64         `json:"pruned"`
	PruneBatches         int           `json:"prune_batches"`
	Inserted             int           `json:"inserted"`
	Updated              int           `json:"updated"`
	ManufacturersCreated int           `json:"manufacturers_created"`
	LinksCreated         int           `json:"links_created"`
}

// Service sequences a reconciliation run
type Service struct {
	store  repository.Catalog
	remote Remote
	lock   *synclock.Lock
	opts   Options
	tracer trace.Tracer
	now    func() time.Time
}

// NewService wires a service; zero options fall back to defaults
func NewService(store repository.Catalog, remote Remote, opts Options) *Service {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = synclock.DefaultStaleAfter
	}
	if opts.PruneBatchSize <= 0 {
		opts.PruneBatchSize = starship.DefaultPruneBatchSize
	}
	if opts.ManufacturerCacheSize <= 0 {
		opts.ManufacturerCacheSize = starship.DefaultManufacturerCacheSize
	}
	return &Service{
		store:  store,
		remote: remote,
		lock:   synclock.New(store),
		opts:   opts,
		tracer: otel.Tracer(TracerName),
		now:    time.Now,
	}
}

// Sync runs one reconciliation of starships. A run that finds a fresh lock
// returns domain.ErrLockBusy without touching the store. Once the lock is
// granted it is released whatever happens, stamping last_synced with the
// completion time even when the run failed.
func (s *Service) Sync(ctx context.Context) (res *Result, err error) {
	entityType := domain.EntityTypeStarships
	res = &Result{
		RunID:      logger.GenerateRunID(),
		EntityType: entityType,
		StartedAt:  s.now().UTC(),
	}
	ctx = logger.WithRunID(ctx, res.RunID)
	log := logger.FromContext(ctx)

	ctx, span := s.tracer.Start(ctx, SpanSync, trace.WithAttributes(
		attribute.String(AttrRunID, res.RunID),
		attribute.String(AttrEntityType, entityType),
	))
	defer span.End()

	outcome, err := s.lock.Acquire(ctx, entityType, s.opts.StaleAfter)
	if err != nil {
		s.finish(ctx, span, res, metrics.OutcomeFailure, err)
		return res, err
	}
	if outcome == synclock.Busy {
		log.Info(LogMsgSyncSkipped, "entity_type", entityType)
		metrics.SyncRunsTotal.WithLabelValues(entityType, metrics.OutcomeBusy).Inc()
		span.SetAttributes(attribute.String("sync.outcome", metrics.OutcomeBusy))
		return res, domain.ErrLockBusy
	}

	// Outcome is recorded after release; a failed release fails the run
	defer func() {
		// Shutdown may have cancelled ctx; the lock must still be released
		releaseCtx := context.WithoutCancel(ctx)
		if relErr := s.lock.Release(releaseCtx, entityType, s.now()); relErr != nil {
			log.Error(LogMsgReleaseFailed, "error", relErr)
			if err == nil {
				err = relErr
			}
		}
		label := metrics.OutcomeSuccess
		if err != nil {
			label = metrics.OutcomeFailure
		}
		s.finish(ctx, span, res, label, err)
	}()

	log.Info(LogMsgSyncStarting, "entity_type", entityType, "stale_after", s.opts.StaleAfter.String())

	err = s.run(ctx, res)
	return res, err
}

// run is the body guarded by the lock
func (s *Service) run(ctx context.Context, res *Result) error {
	remoteIDs, err := s.enumerate(ctx)
	if err != nil {
		return err
	}
	res.RemoteCount = len(remoteIDs)

	if err := s.prune(ctx, res, remoteIDs); err != nil {
		return err
	}
	return s.upsertAll(ctx, res, remoteIDs)
}

func (s *Service) enumerate(ctx context.Context) ([]string, error) {
	ctx, span := s.tracer.Start(ctx, SpanEnumerate)
	defer span.End()

	ids, err := s.remote.ListAllIDs(ctx)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int(AttrRemoteCount, len(ids)))
	logger.FromContext(ctx).Info(LogMsgRemoteListed, "remote_count", len(ids))
	return ids, nil
}

func (s *Service) prune(ctx context.Context, res *Result, remoteIDs []string) error {
	ctx, span := s.tracer.Start(ctx, SpanPrune)
	defer span.End()

	localIDs, err := s.store.ListStarshipIDs(ctx)
	if err != nil {
		err = fmt.Errorf("%w: list local ids: %v", domain.ErrPersistence, err)
		recordSpanError(span, err)
		return err
	}

	pr, err := starship.NewPruner(s.store, s.opts.PruneBatchSize).Prune(ctx, localIDs, remoteIDs)
	res.Pruned = pr.Deleted
	res.PruneBatches = pr.Batches
	span.SetAttributes(attribute.Int64(AttrPruned, pr.Deleted))
	if err != nil {
		recordSpanError(span, err)
		return err
	}
	return nil
}

func (s *Service) upsertAll(ctx context.Context, res *Result, ids []string) error {
	ctx, span := s.tracer.Start(ctx, SpanUpsert)
	defer span.End()
	log := logger.FromContext(ctx)

	// One linker per run: its manufacturer cache dies with the run
	linker, err := starship.NewLinker(s.opts.ManufacturerCacheSize)
	if err != nil {
		recordSpanError(span, err)
		return err
	}
	upserter := starship.NewUpserter(s.store, linker)

	var created starship.LinkResult
	defer func() {
		res.ManufacturersCreated = created.ManufacturersCreated
		res.LinksCreated = created.LinksCreated
	}()

	for i, id := range ids {
		props, err := s.remote.FetchDetail(ctx, id)
		if err != nil {
			recordSpanError(span, err)
			return err
		}

		op, links, err := upserter.Upsert(ctx, id, props)
		created.Add(links)
		if err != nil {
			recordSpanError(span, err)
			return fmt.Errorf("starship %s: %w", id, err)
		}

		switch op {
		case starship.Inserted:
			res.Inserted++
			metrics.SyncEntitiesTotal.WithLabelValues(res.EntityType, metrics.OperationInserted).Inc()
		case starship.Updated:
			res.Updated++
			metrics.SyncEntitiesTotal.WithLabelValues(res.EntityType, metrics.OperationUpdated).Inc()
		}

		if (i+1)%upsertProgressEvery == 0 {
			log.Debug(LogMsgUpsertProgress, "done", i+1, "total", len(ids))
		}
	}
	return nil
}

// finish records the outcome of a granted (or failed to acquire) run
func (s *Service) finish(ctx context.Context, span trace.Span, res *Result, outcome string, err error) {
	res.Duration = s.now().Sub(res.StartedAt)
	metrics.SyncRunsTotal.WithLabelValues(res.EntityType, outcome).Inc()
	metrics.SyncRunDuration.WithLabelValues(res.EntityType).Observe(res.Duration.Seconds())
	span.SetAttributes(attribute.String("sync.outcome", outcome))

	log := logger.FromContext(ctx)
	if err != nil {
		recordSpanError(span, err)
		log.Error(LogMsgSyncFailed, "error", err, "result", res)
		return
	}
	log.Info(LogMsgSyncCompleted,
		"remote_count", res.RemoteCount,
		"pruned", res.Pruned,
		"prune_batches", res.PruneBatches,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"manufacturers_created", res.ManufacturersCreated,
		"links_created", res.LinksCreated,
		"duration", res.Duration.String())
}

func recordSpanError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
