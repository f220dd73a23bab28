package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wilsonmoraes/starships-backend/internal/config"
	"github.com/wilsonmoraes/starships-backend/internal/database"
)

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string {
	return "migrate"
}

func (c *MigrateCommand) Description() string {
	return "Manage database migrations (up, down, status, version)"
}

func (c *MigrateCommand) Run(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("subcommand required: up, down, status, version")
	}
	subcmd := args[0]

	cfg, err := config.LoadForTools()
	if err != nil {
		return err
	}

	db, dialect, err := openMigrationDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := database.NewMigrator(dialect, db)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Migrate %s (%s)", subcmd, dialect))

	switch subcmd {
	case "up":
		applied, err := m.Up(ctx)
		if err != nil {
			return err
		}
		PrintSuccess("Applied %d migration(s)", applied)
	case "down":
		if err := m.Down(ctx); err != nil {
			return err
		}
		PrintSuccess("Rolled back one migration")
	case "status":
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = "applied"
			}
			fmt.Fprintf(out, "  %05d  %-8s %s\n", s.Version, state, s.Path)
		}
	case "version":
		v, err := m.Version(ctx)
		if err != nil {
			return err
		}
		PrintInfo("Schema version: %d", v)
	default:
		return fmt.Errorf("unknown subcommand %q: want up, down, status or version", subcmd)
	}
	return nil
}

// openMigrationDB opens a database/sql handle for the configured driver
func openMigrationDB(cfg *config.Config) (*sql.DB, string, error) {
	if cfg.IsSQLite() {
		db, err := database.OpenSQLite(cfg.SQLitePath)
		return db, database.DialectSQLite, err
	}
	db, err := database.OpenPostgresDB(cfg.GetDBConnString())
	return db, database.DialectPostgres, err
}
