package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
	_ "modernc.org/sqlite"             // registers the "sqlite" database/sql driver
)

// Pool interface for database connection pool operations
type Pool interface {
	Ping(ctx context.Context) error
	Close()
}

// NewPool creates a new PostgreSQL connection pool
func NewPool(connString string, maxConns int, maxIdle, maxLife time.Duration) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToParseConnString, err)
	}

	if maxConns > math.MaxInt32 {
		maxConns = math.MaxInt32
	}
	config.MaxConns = int32(maxConns)
	config.MinConns = min(DefaultMinConnections, config.MaxConns)
	config.MaxConnLifetime = maxLife
	config.MaxConnIdleTime = maxIdle

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePool, err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToPingDatabase, err)
	}

	slog.Default().Info(LogMsgSuccessfullyConnectedToDatabase)
	return pool, nil
}

// OpenPostgresDB opens a database/sql handle through the pgx driver.
// Only the migrator uses it; the stores use the pgxpool directly.
func OpenPostgresDB(connString string) (*sql.DB, error) {
	db, err := sql.Open(DriverNamePgx, connString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}
	return db, nil
}

// OpenSQLite opens (creating if needed) the SQLite file at path.
// The handle is limited to one connection: SQLite has a single writer and the
// sync lock relies on that serialisation.
func OpenSQLite(path string) (*sql.DB, error) {
	if path != SQLiteMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", path, SQLiteBusyTimeout.Milliseconds())
	db, err := sql.Open(DriverNameSQLite, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToOpenDatabase, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if path != SQLiteMemory {
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToConfigureSQLite, err)
		}
	}

	var fkEnabled bool
	if err := db.QueryRow("PRAGMA foreign_keys;").Scan(&fkEnabled); err != nil || !fkEnabled {
		db.Close()
		return nil, fmt.Errorf("%s: foreign keys not enabled: %v", ErrMsgFailedToConfigureSQLite, err)
	}

	slog.Default().Info(LogMsgOpenedSQLite, "path", path)
	return db, nil
}
