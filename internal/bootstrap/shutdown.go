package bootstrap

import (
	"context"
	"log/slog"

	"github.com/wilsonmoraes/starships-backend/internal/observability"
)

type stopper interface {
	Stop(ctx context.Context) error
}

type closer interface {
	Close() error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server    stopper
	Scheduler interface{ Stop() }
	Pool      interface{ Stop() }
	Store     closer
	Tracing   observability.ShutdownFunc
}

// GracefulShutdown stops components in dependency order:
// 1. HTTP server (no new manual triggers)
// 2. Scheduler (no new ticks)
// 3. Worker pool (waits for a running sync to return)
// 4. Store, then trace provider
//
// Errors are logged and do not stop the sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		slog.Info(LogMsgStoppingScheduler)
		c.Scheduler.Stop()
	}

	if c.Pool != nil {
		slog.Info(LogMsgStoppingWorkerPool)
		done := make(chan struct{})
		go func() {
			c.Pool.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn(LogMsgWorkerPoolStopTimeout, "error", ctx.Err())
		}
	}

	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			slog.Error(LogMsgStoreCloseFailed, "error", err)
		}
	}

	if c.Tracing != nil {
		slog.Info(LogMsgFlushingTraces)
		if err := c.Tracing(ctx); err != nil {
			slog.Error(LogMsgTraceShutdownFailed, "error", err)
		}
	}

	slog.Info(LogMsgServerStopped)
}
