package main

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/wilsonmoraes/starships-backend/internal/bootstrap"
	"github.com/wilsonmoraes/starships-backend/internal/config"
	"github.com/wilsonmoraes/starships-backend/internal/domain"
	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/observability"
	"github.com/wilsonmoraes/starships-backend/internal/reconcile"
)

// SyncCommand runs one reconciliation and exits, for cron or CI
type SyncCommand struct{}

func (c *SyncCommand) Name() string {
	return "sync"
}

func (c *SyncCommand) Description() string {
	return "Run one starship reconciliation now (--strict fails when another run holds the lock)"
}

func (c *SyncCommand) Run(ctx context.Context, args []string) (err error) {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	strict := fs.Bool("strict", false, "treat a busy lock as a failure")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadForTools()
	if err != nil {
		return err
	}
	logger.InitLogger(bootstrap.LoggerConfig(cfg))

	shutdownTracing, err := observability.InitOTel(ctx, observability.Config{
		Enabled:     cfg.OTelEnabled,
		Exporter:    cfg.OTelExporter,
		ServiceName: bootstrap.ServiceName,
		Version:     cfg.Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, shutdownTracing(context.WithoutCancel(ctx)))
	}()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close()

	PrintHeader(fmt.Sprintf("Syncing %s from %s", domain.EntityTypeStarships, cfg.SwapiBaseURL))

	res, err := bootstrap.NewSyncService(cfg, storage).Sync(ctx)
	if errors.Is(err, domain.ErrLockBusy) && !*strict {
		PrintWarning("Another run holds the lock; nothing to do")
		return nil
	}
	if err != nil {
		if res != nil {
			printResult(res)
		}
		return err
	}

	printResult(res)
	PrintSuccess("Sync complete in %s", res.Duration)
	return nil
}

func printResult(res *reconcile.Result) {
	PrintInfo("run_id=%s remote=%d pruned=%d (%d batches) inserted=%d updated=%d manufacturers+%d links+%d",
		res.RunID, res.RemoteCount, res.Pruned, res.PruneBatches,
		res.Inserted, res.Updated, res.ManufacturersCreated, res.LinksCreated)
}
