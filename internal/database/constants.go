package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// SQLiteBusyTimeout bounds how long a writer waits on a locked database file
	SQLiteBusyTimeout = 5 * time.Second
)

// Driver names registered with database/sql
const (
	DriverNamePgx    = "pgx"
	DriverNameSQLite = "sqlite"
)

// Dialects understood by the migrator
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Embedded migration directories
const (
	MigrationsDirPostgres = "migrations/postgres"
	MigrationsDirSQLite   = "migrations/sqlite"
)

// In-memory SQLite DSN, used by tests
const SQLiteMemory = ":memory:"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString   = "failed to parse connection string"
	ErrMsgFailedToCreatePool        = "failed to create connection pool"
	ErrMsgFailedToPingDatabase      = "failed to ping database"
	ErrMsgFailedToOpenDatabase      = "failed to open database"
	ErrMsgFailedToConfigureSQLite   = "failed to configure sqlite"
	ErrMsgFailedToCreateMigrator    = "failed to create migrator"
	ErrMsgFailedToApplyMigrations   = "failed to apply migrations"
	ErrMsgFailedToRollbackMigration = "failed to roll back migration"
	ErrMsgUnknownDialect            = "unknown database dialect"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgOpenedSQLite                    = "Opened SQLite database"
	LogMsgMigrationApplied                = "Applied migration"
	LogMsgMigrationsUpToDate              = "Database schema is up to date"
	LogMsgMigrationRolledBack             = "Rolled back migration"
)
