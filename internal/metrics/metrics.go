package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Sync Metrics
var (
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncRunsTotal,
			Help: HelpTextSyncRunsTotal,
		},
		[]string{LabelEntityType, LabelOutcome},
	)

	SyncRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameSyncRunDuration,
			Help:    HelpTextSyncRunDuration,
			Buckets: SyncDurationBuckets,
		},
		[]string{LabelEntityType},
	)

	SyncEntitiesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncEntitiesTotal,
			Help: HelpTextSyncEntitiesTotal,
		},
		[]string{LabelEntityType, LabelOperation},
	)

	SyncPrunedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncPrunedTotal,
			Help: HelpTextSyncPrunedTotal,
		},
		[]string{LabelEntityType},
	)

	SyncPruneBatchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncPruneBatchesTotal,
			Help: HelpTextSyncPruneBatchesTotal,
		},
		[]string{LabelEntityType},
	)

	SyncParseWarningsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncParseWarningsTotal,
			Help: HelpTextSyncParseWarningsTotal,
		},
		[]string{LabelField},
	)

	SyncLockOverridesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSyncLockOverrides,
			Help: HelpTextSyncLockOverrides,
		},
		[]string{LabelEntityType},
	)
)

// Remote catalog metrics
var (
	SwapiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSwapiRequestsTotal,
			Help: HelpTextSwapiRequestsTotal,
		},
		[]string{LabelEndpoint, LabelStatus},
	)
)
