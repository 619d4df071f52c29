// Package metrics provides Prometheus metrics for the arena simulation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Simulation
	phasesSimulated        *prometheus.CounterVec
	eventsGenerated        *prometheus.CounterVec
	deaths                 *prometheus.CounterVec
	idleTributes           prometheus.Counter
	specialEvents          *prometheus.CounterVec
	unresolvedPlaceholders *prometheus.CounterVec

	// Games
	gamesStarted  prometheus.Counter
	gamesFinished *prometheus.CounterVec
	gamesActive   prometheus.Gauge
	gameDays      prometheus.Histogram

	// Repository
	repositoryLatency *prometheus.HistogramVec
	componentErrors   *prometheus.CounterVec

	// Batch queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Workers
	workerCount       prometheus.Gauge
	workerGameLatency prometheus.Histogram
	workerErrors      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // keeps default Go collectors out

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "arena",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.phasesSimulated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "phases_simulated_total",
		Help:      "Phases simulated, by phase",
	}, []string{"phase"})

	m.eventsGenerated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_generated_total",
		Help:      "Concrete events generated, by phase and outcome (fatal, nonfatal)",
	}, []string{"phase", "outcome"})

	m.deaths = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deaths_total",
		Help:      "Deaths applied to rosters, by cause (kill, environment)",
	}, []string{"cause"})

	m.idleTributes = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "idle_tributes_total",
		Help:      "Tributes left without an event in a phase",
	})

	m.specialEvents = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "special_events_total",
		Help:      "Special phases triggered, by kind",
	}, []string{"kind"})

	m.unresolvedPlaceholders = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unresolved_placeholders_total",
		Help:      "Weapon or item placeholders left in rendered text, by placeholder",
	}, []string{"placeholder"})

	m.gamesStarted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_started_total",
		Help:      "Games created",
	})

	m.gamesFinished = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_finished_total",
		Help:      "Games finished, by result (winner, no_survivor)",
	}, []string{"result"})

	m.gamesActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_active",
		Help:      "Games currently held by the store",
	})

	m.gameDays = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "game_length_days",
		Help:      "Day counter reached when a game finished",
		Buckets:   []float64{1, 2, 3, 4, 5, 6, 8, 10, 12, 15, 20, 30},
	})

	m.repositoryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "repository_operation_duration_milliseconds",
		Help:      "Game store operation latency in milliseconds, lock wait and callback included",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.componentErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_size",
		Help:      "Batch jobs waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_capacity",
		Help:      "Maximum batch jobs the queue accepts",
	})

	m.queueEnqueued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_enqueued_total",
		Help:      "Batch jobs accepted by the queue",
	})

	m.queueDequeued = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_dequeued_total",
		Help:      "Batch jobs handed to workers",
	})

	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_queue_enqueue_errors_total",
		Help:      "Batch jobs rejected by the queue, by reason",
	}, []string{"reason"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_workers",
		Help:      "Batch workers running",
	})

	m.workerGameLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_game_duration_milliseconds",
		Help:      "Wall time to play one batch game to completion",
		Buckets:   m.histogramBuckets,
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_worker_errors_total",
		Help:      "Batch games that failed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method and status",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses, by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "Heap bytes allocated",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	})
}

// RecordPhaseSimulated counts one simulated phase.
func RecordPhaseSimulated(phase string) {
	globalManager.phasesSimulated.WithLabelValues(phase).Inc()
}

// RecordEventGenerated counts one concrete event.
func RecordEventGenerated(phase string, fatal bool) {
	outcome := "nonfatal"
	if fatal {
		outcome = "fatal"
	}
	globalManager.eventsGenerated.WithLabelValues(phase, outcome).Inc()
}

// RecordDeath counts one applied death. Environmental deaths carry no killer.
func RecordDeath(environmental bool) {
	cause := "kill"
	if environmental {
		cause = "environment"
	}
	globalManager.deaths.WithLabelValues(cause).Inc()
}

// RecordIdleTributes adds tributes that received no event in a phase.
func RecordIdleTributes(n int) {
	if n > 0 {
		globalManager.idleTributes.Add(float64(n))
	}
}

// RecordSpecialEvent counts a triggered feast or arena hazard.
func RecordSpecialEvent(kind string) {
	globalManager.specialEvents.WithLabelValues(kind).Inc()
}

// RecordUnresolvedPlaceholder counts a placeholder the renderer left in place.
func RecordUnresolvedPlaceholder(placeholder string) {
	globalManager.unresolvedPlaceholders.WithLabelValues(placeholder).Inc()
}

// RecordGameStarted counts a created game.
func RecordGameStarted() {
	globalManager.gamesStarted.Inc()
}

// RecordGameFinished counts a finished game and the day it ended on.
func RecordGameFinished(hasWinner bool, day int) {
	result := "no_survivor"
	if hasWinner {
		result = "winner"
	}
	globalManager.gamesFinished.WithLabelValues(result).Inc()
	globalManager.gameDays.Observe(float64(day))
}

// UpdateGamesActive sets the number of stored games.
func UpdateGamesActive(count int) {
	globalManager.gamesActive.Set(float64(count))
}

// RecordRepositoryLatency records one store operation.
func RecordRepositoryLatency(operation string, latencyMs float64) {
	globalManager.repositoryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.componentErrors.WithLabelValues(component, errorType).Inc()
}

// UpdateQueueSize sets the current batch queue length.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the batch queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue counts an accepted batch job.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue counts a batch job handed to a worker.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError counts a rejected batch job.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the number of batch workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerGameLatency records how long one batch game took.
func RecordWorkerGameLatency(latencyMs float64) {
	globalManager.workerGameLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed batch game.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap bytes allocated.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
