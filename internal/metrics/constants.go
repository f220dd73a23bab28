package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Sync metric names
const (
	MetricNameSyncRunsTotal          = "sync_runs_total"
	MetricNameSyncRunDuration        = "sync_run_duration_seconds"
	MetricNameSyncEntitiesTotal      = "sync_entities_total"
	MetricNameSyncPrunedTotal        = "sync_pruned_total"
	MetricNameSyncPruneBatchesTotal  = "sync_prune_batches_total"
	MetricNameSyncParseWarningsTotal = "sync_parse_warnings_total"
	MetricNameSyncLockOverrides      = "sync_lock_overrides_total"
	MetricNameSwapiRequestsTotal     = "swapi_requests_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Sync metric help text
const (
	HelpTextSyncRunsTotal          = "Total number of sync runs by outcome"
	HelpTextSyncRunDuration        = "Wall-clock duration of sync runs in seconds"
	HelpTextSyncEntitiesTotal      = "Total number of entities written by operation"
	HelpTextSyncPrunedTotal        = "Total number of stale entities deleted"
	HelpTextSyncPruneBatchesTotal  = "Total number of prune delete batches committed"
	HelpTextSyncParseWarningsTotal = "Total number of remote field values that could not be parsed"
	HelpTextSyncLockOverrides      = "Total number of stale sync locks taken over"
	HelpTextSwapiRequestsTotal     = "Total number of requests sent to the remote catalog"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod     = "method"
	LabelPath       = "path"
	LabelStatus     = "status"
	LabelOutcome    = "outcome"
	LabelOperation  = "operation"
	LabelField      = "field"
	LabelEndpoint   = "endpoint"
	LabelEntityType = "entity_type"
)

// ============================================================================
// Label Values
// ============================================================================

// Sync run outcomes
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeBusy    = "busy"
)

// Entity write operations
const (
	OperationInserted = "inserted"
	OperationUpdated  = "updated"
)

// StatusTransportError labels remote requests that never produced a status code
const StatusTransportError = "error"

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s.
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// SyncDurationBuckets spans one second to one hour; a full starship sync is
// dozens of sequential remote calls.
var SyncDurationBuckets = []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600}
