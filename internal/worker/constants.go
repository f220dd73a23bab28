package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// Log messages for pool operations
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobDropped      = "Job dropped: queue full"
	LogMsgPoolStopping    = "Worker pool stopping"
)

// ============================================================================
// Log Messages - Sync Job
// ============================================================================

// Log messages for sync job operations
const (
	LogMsgSyncJobStarting = "Sync job starting"
	LogMsgSyncJobBusy     = "Sync job skipped: another run holds the lock"
	LogMsgSyncJobDone     = "Sync job finished"
)

// Trigger names a sync job's origin in logs
const (
	TriggerSchedule = "schedule"
	TriggerStartup  = "startup"
	TriggerAdmin    = "admin"
)
