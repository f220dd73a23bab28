package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wilsonmoraes/starships-backend/internal/config"
	"github.com/wilsonmoraes/starships-backend/internal/database"
	"github.com/wilsonmoraes/starships-backend/internal/database/postgres"
	"github.com/wilsonmoraes/starships-backend/internal/database/sqlite"
	"github.com/wilsonmoraes/starships-backend/internal/repository"
)

// Storage is the catalog store picked by DB_DRIVER, migrated and ready
type Storage struct {
	Catalog repository.Catalog
	Driver  string
	closeFn func() error
}

// Close releases the underlying pool or file handle
func (s *Storage) Close() error {
	if s.closeFn == nil {
		return nil
	}
	return s.closeFn()
}

// OpenStorage opens the configured backend and applies pending migrations
// before returning.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		return openPostgres(ctx, cfg)
	case config.DBDriverSQLite:
		return openSQLite(ctx, cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.DBDriver)
	}
}

func openPostgres(ctx context.Context, cfg *config.Config) (*Storage, error) {
	connString := cfg.GetDBConnString()

	if err := migratePostgres(ctx, connString); err != nil {
		return nil, err
	}

	pool, err := database.NewPool(connString, cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	slog.Info(LogMsgStoreReady, "driver", config.DBDriverPostgres, "host", cfg.DBHost, "db", cfg.DBName)
	return &Storage{
		Catalog: postgres.NewStore(pool),
		Driver:  config.DBDriverPostgres,
		closeFn: func() error {
			pool.Close()
			return nil
		},
	}, nil
}

// migratePostgres runs goose over a short-lived database/sql handle; the
// store itself talks to pgxpool.
func migratePostgres(ctx context.Context, connString string) (err error) {
	db, err := database.OpenPostgresDB(connString)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("%s: %w", ErrMsgFailedCloseMigrDB, cerr))
		}
	}()

	return applyMigrations(ctx, database.DialectPostgres, db)
}

func openSQLite(ctx context.Context, path string) (*Storage, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedOpenStore, err)
	}

	if err := applyMigrations(ctx, database.DialectSQLite, db); err != nil {
		db.Close()
		return nil, err
	}

	slog.Info(LogMsgStoreReady, "driver", config.DBDriverSQLite, "path", path)
	return &Storage{
		Catalog: sqlite.NewStore(db),
		Driver:  config.DBDriverSQLite,
		closeFn: db.Close,
	}, nil
}

func applyMigrations(ctx context.Context, dialect string, db *sql.DB) error {
	m, err := database.NewMigrator(dialect, db)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	applied, err := m.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
	}
	slog.Info(LogMsgMigrationsApplied, "dialect", dialect, "applied", applied)
	return nil
}
