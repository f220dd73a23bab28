package reconcile

// TracerName identifies spans opened by the sync engine
const TracerName = "github.com/wilsonmoraes/starships-backend/internal/reconcile"

// Span names, one per stage
const (
	SpanSync      = "sync"
	SpanEnumerate = "sync.enumerate"
	SpanPrune     = "sync.prune"
	SpanUpsert    = "sync.upsert"
)

// Span attribute keys
const (
	AttrRunID       = "sync.run_id"
	AttrEntityType  = "sync.entity_type"
	AttrRemoteCount = "sync.remote_count"
	AttrPruned      = "sync.pruned"
)

// Log messages
const (
	LogMsgSyncStarting   = "Sync starting"
	LogMsgSyncSkipped    = "Sync skipped: lock busy"
	LogMsgSyncFailed     = "Sync failed"
	LogMsgSyncCompleted  = "Sync completed"
	LogMsgReleaseFailed  = "Failed to release sync lock"
	LogMsgRemoteListed   = "Remote catalog enumerated"
	LogMsgUpsertProgress = "Upsert progress"
)

// upsertProgressEvery is how often the upsert loop logs progress
const upsertProgressEvery = 10
