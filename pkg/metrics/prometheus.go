// Package metrics provides Prometheus metrics for the repute service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Scoring
	scoresComputed  prometheus.Counter
	scoringDuration prometheus.Histogram
	tierAssigned    *prometheus.CounterVec
	badgeAwarded    *prometheus.CounterVec

	// Analysis cache
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter

	// Leaderboard
	leaderboardSize    prometheus.Gauge
	leaderboardUpdates prometheus.Counter
	leaderboardErrors  prometheus.Counter

	// Update queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors prometheus.Counter

	// Wallet inspector
	inspectorRequests   prometheus.Counter
	inspectorErrors     prometheus.Counter
	inspectorRPCLatency prometheus.Histogram

	// IPFS pinning
	pinSuccess prometheus.Counter
	pinFailure prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global manager on a custom registry so default Go collectors stay out.
var (
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // backing registry
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "repute",
		subsystem:        "service",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.scoresComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scores_computed_total",
		Help:      "Total number of reputation scores computed",
	})

	m.scoringDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_duration_milliseconds",
		Help:      "Histogram of end-to-end score computation time in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.tierAssigned = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tier_assigned_total",
		Help:      "Scores grouped by resulting reputation tier",
	}, []string{"tier"})

	m.badgeAwarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "badge_awarded_total",
		Help:      "Achievement badges awarded, by badge name",
	}, []string{"badge"})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_cache_hits_total",
		Help:      "Wallet analysis cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "analysis_cache_misses_total",
		Help:      "Wallet analysis cache misses",
	})

	m.leaderboardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_size",
		Help:      "Current number of entries on the leaderboard",
	})

	m.leaderboardUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_updates_total",
		Help:      "Total leaderboard upserts applied",
	})

	m.leaderboardErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_errors_total",
		Help:      "Total leaderboard store failures",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_queue_size",
		Help:      "Current number of pending leaderboard updates",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_queue_capacity",
		Help:      "Configured capacity of the leaderboard update queue",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "update_queue_enqueue_errors_total",
		Help:      "Failed enqueue attempts (backpressure or closed queue)",
	})

	m.inspectorRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inspector_requests_total",
		Help:      "Wallet inspections performed",
	})

	m.inspectorErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inspector_errors_total",
		Help:      "Wallet inspection failures",
	})

	m.inspectorRPCLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inspector_rpc_latency_milliseconds",
		Help:      "Latency of node JSON-RPC calls in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pinSuccess = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pin_success_total",
		Help:      "Successful IPFS pin operations",
	})

	m.pinFailure = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pin_failure_total",
		Help:      "Failed IPFS pin operations",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers delegating to the global manager.

func RecordScoreComputed(tier string, durationMs float64) {
	globalManager.scoresComputed.Inc()
	globalManager.scoringDuration.Observe(durationMs)
	globalManager.tierAssigned.WithLabelValues(tier).Inc()
}

func RecordBadgeAwarded(badge string) {
	globalManager.badgeAwarded.WithLabelValues(badge).Inc()
}

func RecordCacheHit()  { globalManager.cacheHits.Inc() }
func RecordCacheMiss() { globalManager.cacheMisses.Inc() }

func UpdateLeaderboardSize(size int) {
	globalManager.leaderboardSize.Set(float64(size))
}

func RecordLeaderboardUpdate() { globalManager.leaderboardUpdates.Inc() }
func RecordLeaderboardError()  { globalManager.leaderboardErrors.Inc() }

func UpdateQueueSize(size int)         { globalManager.queueSize.Set(float64(size)) }
func UpdateQueueCapacity(capacity int) { globalManager.queueCapacity.Set(float64(capacity)) }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrors.Inc() }

func RecordInspectorRequest()              { globalManager.inspectorRequests.Inc() }
func RecordInspectorError()                { globalManager.inspectorErrors.Inc() }
func RecordInspectorRPCLatency(ms float64) { globalManager.inspectorRPCLatency.Observe(ms) }

func RecordPinSuccess() { globalManager.pinSuccess.Inc() }
func RecordPinFailure() { globalManager.pinFailure.Inc() }

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
}

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry exposes the backing registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
