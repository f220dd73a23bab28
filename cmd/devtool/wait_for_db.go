package main

import (
	"context"
	"fmt"
	"time"

	"github.com/wilsonmoraes/starships-backend/internal/config"
)

const (
	waitForDBRetries  = 30
	waitForDBInterval = 2 * time.Second
)

type WaitForDBCommand struct{}

func (c *WaitForDBCommand) Name() string {
	return "wait-for-db"
}

func (c *WaitForDBCommand) Description() string {
	return "Wait for database to be ready (with retries)"
}

func (c *WaitForDBCommand) Run(ctx context.Context, args []string) error {
	PrintHeader("Waiting for database...")

	cfg, err := config.LoadForTools()
	if err != nil {
		return err
	}

	var lastErr error
	for i := 0; i < waitForDBRetries; i++ {
		if lastErr = pingDB(ctx, cfg); lastErr == nil {
			PrintSuccess("Database is ready")
			return nil
		}

		fmt.Fprintf(out, "Database not ready (%d/%d): %v\n", i+1, waitForDBRetries, lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitForDBInterval):
		}
	}

	return fmt.Errorf("database failed to become ready after %d attempts: %w", waitForDBRetries, lastErr)
}

func pingDB(ctx context.Context, cfg *config.Config) error {
	db, _, err := openMigrationDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.PingContext(ctx)
}
