package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/wilsonmoraes/starships-backend/internal/config"
	"github.com/wilsonmoraes/starships-backend/internal/observability"
	"github.com/wilsonmoraes/starships-backend/internal/reconcile"
	"github.com/wilsonmoraes/starships-backend/internal/scheduler"
	"github.com/wilsonmoraes/starships-backend/internal/server"
	"github.com/wilsonmoraes/starships-backend/internal/swapi"
	"github.com/wilsonmoraes/starships-backend/internal/worker"
)

// Pool sizing: one run at a time, at most one waiting behind it
const (
	syncWorkers   = 1
	syncQueueSize = 1
)

// Log messages for the application lifecycle
const (
	LogMsgStartupSyncQueued  = "Startup sync queued"
	LogMsgSchedulerDisabled  = "Sync scheduler disabled (SYNC_INTERVAL=0)"
	LogMsgShutdownRequested  = "Shutdown requested"
	ErrMsgFailedInitTracing  = "failed to initialise tracing"
	ErrMsgServerFailed       = "http server failed"
	ErrMsgFailedBuildService = "failed to build application"
)

// App is the process-wide set of components, built once by NewApp
type App struct {
	Config    *config.Config
	Storage   *Storage
	Service   *reconcile.Service
	Pool      *worker.Pool
	Scheduler *scheduler.Scheduler
	Server    *server.Server

	tracing observability.ShutdownFunc
}

// NewApp wires tracing, the store, the reconciliation service, the worker
// pool, the scheduler and the HTTP server. Nothing is started yet.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	tracing, err := observability.InitOTel(ctx, observability.Config{
		Enabled:     cfg.OTelEnabled,
		Exporter:    cfg.OTelExporter,
		ServiceName: ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitTracing, err)
	}

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		_ = tracing(ctx)
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedBuildService, err)
	}

	service := NewSyncService(cfg, storage)
	pool := worker.NewPool(syncWorkers, syncQueueSize)

	srv := server.NewServer(cfg.Port, server.Dependencies{
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		Store:          storage.Catalog,
		Queue:          pool,
		Syncer:         service,
	})

	return &App{
		Config:    cfg,
		Storage:   storage,
		Service:   service,
		Pool:      pool,
		Scheduler: scheduler.New(pool),
		Server:    srv,
		tracing:   tracing,
	}, nil
}

// NewSyncService builds the reconciliation service over an opened store
func NewSyncService(cfg *config.Config, storage *Storage) *reconcile.Service {
	client := swapi.NewClient(cfg.SwapiBaseURL, cfg.SwapiTimeout)
	return reconcile.NewService(storage.Catalog, client, reconcile.Options{
		StaleAfter:     cfg.SyncStaleAfter,
		PruneBatchSize: cfg.SyncPruneBatchSize,
	})
}

// Run starts the pool, the scheduler and the HTTP server, and blocks until
// ctx is cancelled or the server fails. Shutdown is graceful in both cases.
// Jobs run with ctx, so a sync in flight at shutdown is cancelled and
// releases its lock on the way out.
func (a *App) Run(ctx context.Context) error {
	a.Pool.Start(ctx)

	if a.Config.SyncOnStartup {
		if a.Pool.TryEnqueue(worker.NewSyncJob(a.Service, worker.TriggerStartup)) {
			slog.Info(LogMsgStartupSyncQueued)
		}
	}
	if a.Config.SyncInterval > 0 {
		a.Scheduler.Schedule(a.Config.SyncInterval, worker.NewSyncJob(a.Service, worker.TriggerSchedule), false)
	} else {
		slog.Info(LogMsgSchedulerDisabled)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: %w", ErrMsgServerFailed, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info(LogMsgShutdownRequested)

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()
		GracefulShutdown(shutdownCtx, ShutdownComponents{
			Server:    a.Server,
			Scheduler: a.Scheduler,
			Pool:      a.Pool,
			Store:     a.Storage,
			Tracing:   a.tracing,
		})
		return nil
	})

	return g.Wait()
}
