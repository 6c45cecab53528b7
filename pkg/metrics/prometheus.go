// Package metrics provides Prometheus metrics for the bowling lane service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the lane service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	scoreBuckets     []float64
	registry         prometheus.Registerer

	// Game metrics
	shotsAccepted    *prometheus.CounterVec
	shotsRejected    *prometheus.CounterVec
	gamesCompleted   prometheus.Counter
	finalScore       prometheus.Histogram
	resets           prometheus.Counter
	duplicates       prometheus.Counter
	currentFrame     prometheus.Gauge
	commandLatency   *prometheus.HistogramVec
	commandsHandled  *prometheus.CounterVec
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	errorByComponent *prometheus.CounterVec

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorByEndpoint     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "bowling",
		subsystem:        "lane",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		scoreBuckets:     prometheus.LinearBuckets(0, 30, 11),
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)

	m.shotsAccepted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_accepted_total",
		Help:      "Shots recorded, by kind (pins, strike, spare)",
	}, []string{"kind"})

	m.shotsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "shots_rejected_total",
		Help:      "Shots refused, by reason (invalid_shot, game_over)",
	}, []string{"reason"})

	m.gamesCompleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_completed_total",
		Help:      "Games that reached the end of the tenth frame",
	})

	m.finalScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "final_score",
		Help:      "Final score of completed games",
		Buckets:   m.scoreBuckets,
	})

	m.resets = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resets_total",
		Help:      "Number of game resets",
	})

	m.duplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_requests_total",
		Help:      "Shot requests ignored because their request ID was already applied",
	})

	m.currentFrame = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "current_frame",
		Help:      "Zero-based frame in progress, -1 once the game is over",
	})

	m.commandLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "command_latency_milliseconds",
		Help:      "Time the lane worker spent applying a command",
		Buckets:   m.histogramBuckets,
	}, []string{"command"})

	m.commandsHandled = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "commands_total",
		Help:      "Commands applied by the lane worker",
	}, []string{"command"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Commands waiting for the lane worker",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum number of waiting commands",
	})

	m.errorByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_component_total",
		Help:      "Errors by component and type",
	}, []string{"component", "error_type"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_by_endpoint_total",
		Help:      "HTTP errors by endpoint, method and error type",
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
}

// RecordShotAccepted counts a recorded shot of the given kind.
func RecordShotAccepted(kind string) {
	globalManager.shotsAccepted.WithLabelValues(kind).Inc()
}

// RecordShotRejected counts a refused shot.
func RecordShotRejected(reason string) {
	globalManager.shotsRejected.WithLabelValues(reason).Inc()
}

// RecordGameCompleted counts a finished game and observes its score.
func RecordGameCompleted(score int) {
	globalManager.gamesCompleted.Inc()
	globalManager.finalScore.Observe(float64(score))
}

// RecordReset counts a game reset.
func RecordReset() {
	globalManager.resets.Inc()
}

// RecordDuplicateRequest counts an ignored retry.
func RecordDuplicateRequest() {
	globalManager.duplicates.Inc()
}

// UpdateCurrentFrame sets the frame gauge.
func UpdateCurrentFrame(frame int) {
	globalManager.currentFrame.Set(float64(frame))
}

// RecordCommand counts an applied command and its latency in milliseconds.
func RecordCommand(command string, latencyMs float64) {
	globalManager.commandsHandled.WithLabelValues(command).Inc()
	globalManager.commandLatency.WithLabelValues(command).Observe(latencyMs)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
