// Package metrics provides Prometheus metrics for the CineSync
// recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Business metrics.
	moviesIngested    prometheus.Counter
	ingestDuplicates  prometheus.Counter
	vibesComputed     prometheus.Counter
	vibeLatency       prometheus.Histogram
	preferenceUpdates prometheus.Counter
	quizSubmissions   prometheus.Counter
	feedBuilds        prometheus.Counter
	feedLatency       prometheus.Histogram
	blendBuilds       prometheus.Counter

	// Queue metrics.
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker metrics.
	workerCount   prometheus.Gauge
	workerLatency prometheus.Histogram
	workerErrors  prometheus.Counter

	// Store metrics.
	storeMovies        prometheus.Gauge
	storeUsers         prometheus.Gauge
	storeUpdateLatency prometheus.Histogram
	storeQueryLatency  prometheus.Histogram

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics.
	errorsByComponent *prometheus.CounterVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager on a custom registry, which keeps the default Go
// collectors out of /healthz output.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // intentional global for singleton metrics manager
)

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithNamespace sets the namespace for all metrics.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem sets the subsystem for all metrics.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets overrides the latency histogram buckets.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRegistry sets a custom Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// NewManager creates a metrics manager and registers all metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "cinesync",
		subsystem:        "recommend",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // metric registration is one long list by nature
	auto := promauto.With(m.registry)

	m.moviesIngested = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "movies_ingested_total",
		Help: "Total number of movies accepted through ingestion",
	})
	m.ingestDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "ingest_duplicates_total",
		Help: "Total number of duplicate ingestion submissions rejected",
	})
	m.vibesComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "vibe_vectors_computed_total",
		Help: "Total number of vibe vectors computed",
	})
	m.vibeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "vibe_compute_latency_ms",
		Help:    "Latency of vibe vector computation in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.preferenceUpdates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "preference_updates_total",
		Help: "Total number of preference vector updates from feedback",
	})
	m.quizSubmissions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "quiz_submissions_total",
		Help: "Total number of quiz vectors stored",
	})
	m.feedBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "feed_builds_total",
		Help: "Total number of home feeds built",
	})
	m.feedLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "feed_build_latency_ms",
		Help:    "Latency of home feed construction in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.blendBuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "blend_builds_total",
		Help: "Total number of blend rankings built",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current number of queued ingestion events",
	})
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured ingestion queue capacity",
	})
	m.queueUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Ingestion queue utilization ratio (0-1)",
	})
	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Total number of successful enqueues",
	})
	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total",
		Help: "Total number of dequeues",
	})
	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueue_errors_total",
		Help: "Total number of rejected enqueues (backpressure or closed)",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_count",
		Help: "Number of ingestion workers",
	})
	m.workerLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_ms",
		Help:    "Latency of end-to-end ingestion processing in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Total number of worker processing errors",
	})

	m.storeMovies = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_movies",
		Help: "Number of movies currently in the record store",
	})
	m.storeUsers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "store_users",
		Help: "Number of users with a stored preference vector",
	})
	m.storeUpdateLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_update_latency_ms",
		Help:    "Latency of record store writes in milliseconds",
		Buckets: m.histogramBuckets,
	})
	m.storeQueryLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "store_query_latency_ms",
		Help:    "Latency of record store reads in milliseconds",
		Buckets: m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "Total HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_component_total",
		Help: "Errors by component and reason",
	}, []string{"component", "reason"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_memory_bytes",
		Help: "Current allocated heap bytes",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "system_goroutines",
		Help: "Current number of goroutines",
	})
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "system_gc_pause_ms",
		Help:    "Average GC pause time in milliseconds",
		Buckets: m.histogramBuckets,
	})
}

// GetRegistry returns the custom registry /healthz serves.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

func RecordMovieIngested()   { globalManager.moviesIngested.Inc() }
func RecordIngestDuplicate() { globalManager.ingestDuplicates.Inc() }

func RecordVibeComputed(latencyMs float64) {
	globalManager.vibesComputed.Inc()
	globalManager.vibeLatency.Observe(latencyMs)
}

func RecordPreferenceUpdate() { globalManager.preferenceUpdates.Inc() }
func RecordQuizSubmission()   { globalManager.quizSubmissions.Inc() }

func RecordFeedBuild(latencyMs float64) {
	globalManager.feedBuilds.Inc()
	globalManager.feedLatency.Observe(latencyMs)
}

func RecordBlendBuild() { globalManager.blendBuilds.Inc() }

func UpdateQueueSize(n int)            { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)        { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(r float64) { globalManager.queueUtilization.Set(r) }
func RecordQueueEnqueue()              { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()              { globalManager.queueDequeues.Inc() }
func RecordQueueEnqueueError()         { globalManager.queueEnqueueErrors.Inc() }

func UpdateWorkerCount(n int)               { globalManager.workerCount.Set(float64(n)) }
func RecordWorkerLatency(latencyMs float64) { globalManager.workerLatency.Observe(latencyMs) }
func RecordWorkerError()                    { globalManager.workerErrors.Inc() }

func UpdateTotalMovies(n int) { globalManager.storeMovies.Set(float64(n)) }
func UpdateTotalUsers(n int)  { globalManager.storeUsers.Set(float64(n)) }

func RecordStoreUpdateLatency(latencyMs float64) {
	globalManager.storeUpdateLatency.Observe(latencyMs)
}

func RecordStoreQueryLatency(latencyMs float64) {
	globalManager.storeQueryLatency.Observe(latencyMs)
}

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, latencyMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(latencyMs)
}

func RecordErrorByComponent(component, reason string) {
	globalManager.errorsByComponent.WithLabelValues(component, reason).Inc()
}

func UpdateSystemMemoryUsage(bytes uint64)    { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)        { globalManager.systemGoroutineCount.Set(float64(n)) }
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }
