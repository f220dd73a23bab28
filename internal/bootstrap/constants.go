package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9

	// ServiceName tags every log record and trace
	ServiceName = "starships-backend"
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting starships backend"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file %s: %v\n"
)

// =============================================================================
// Store Selection
// =============================================================================

const (
	LogMsgMigrationsApplied = "Migrations applied"
	LogMsgStoreReady        = "Catalog store ready"

	ErrMsgUnknownDriver     = "unknown DB_DRIVER"
	ErrMsgFailedMigrate     = "failed to migrate database"
	ErrMsgFailedOpenStore   = "failed to open catalog store"
	ErrMsgFailedCloseMigrDB = "failed to close migration handle"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	// ShutdownTimeout bounds the whole graceful shutdown sequence
	ShutdownTimeout = 30 * time.Second

	LogMsgShuttingDownServer    = "Shutting down server..."
	LogMsgStoppingScheduler     = "Stopping sync scheduler..."
	LogMsgStoppingWorkerPool    = "Waiting for running sync to finish..."
	LogMsgFlushingTraces        = "Flushing traces..."
	LogMsgServerStopped         = "Server stopped"
	LogMsgServerForcedShutdown  = "Server forced to shutdown"
	LogMsgTraceShutdownFailed   = "Trace provider shutdown failed"
	LogMsgStoreCloseFailed      = "Catalog store close failed"
	LogMsgWorkerPoolStopTimeout = "Worker pool did not stop before the deadline"
)
