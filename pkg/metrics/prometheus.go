// Package metrics provides Prometheus metrics for the smarthrm client and console.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values shared by callers.
const (
	OutcomeOK             = "ok"
	OutcomeMessageFailure = "message_failure"
	OutcomeTransportError = "transport_error"
	OutcomeRequestError   = "request_error"

	LevelSuccess = "success"
	LevelError   = "error"
)

// Manager manages all Prometheus metrics for the smarthrm binaries.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Outbound REST calls made through the pipeline
	apiCalls        *prometheus.CounterVec
	apiCallDuration *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	envelopeFailure *prometheus.CounterVec

	// Console HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	pageLoads           *prometheus.CounterVec

	// Process
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "smarthrm",
		subsystem:        "client",
		histogramBuckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)

	m.apiCalls = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_calls_total",
		Help:        "Total number of REST calls dispatched through the pipeline",
		ConstLabels: m.constLabels,
	}, []string{"resource", "method", "outcome"})

	m.apiCallDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "api_call_duration_milliseconds",
		Help:        "REST call latency in milliseconds, including response normalization",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"resource", "method"})

	m.notifications = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "notifications_total",
		Help:        "User-facing notifications emitted by the pipeline",
		ConstLabels: m.constLabels,
	}, []string{"level"})

	m.envelopeFailure = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "envelope_failures_total",
		Help:        "Structured replies carrying success=false",
		ConstLabels: m.constLabels,
	}, []string{"resource"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "console",
		Name:        "http_requests_total",
		Help:        "Total number of console HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "console",
		Name:        "http_request_duration_milliseconds",
		Help:        "Console HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.pageLoads = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   "console",
		Name:        "page_loads_total",
		Help:        "Lazy page instantiations by route name",
		ConstLabels: m.constLabels,
	}, []string{"route"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Heap bytes allocated",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordAPICall records one pipeline call and its latency.
func (m *Manager) RecordAPICall(resource, method, outcome string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.apiCalls.WithLabelValues(resource, method, outcome).Inc()
	m.apiCallDuration.WithLabelValues(resource, method).Observe(durationMs)
}

// RecordNotification counts a user-facing notification by level.
func (m *Manager) RecordNotification(level string) {
	if !m.enabled {
		return
	}
	m.notifications.WithLabelValues(level).Inc()
}

// RecordEnvelopeFailure counts a success=false envelope for resource.
func (m *Manager) RecordEnvelopeFailure(resource string) {
	if !m.enabled {
		return
	}
	m.envelopeFailure.WithLabelValues(resource).Inc()
}

// RecordHTTPRequest records a console HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordPageLoad counts a lazy page instantiation.
func (m *Manager) RecordPageLoad(route string) {
	if !m.enabled {
		return
	}
	m.pageLoads.WithLabelValues(route).Inc()
}

// UpdateSystem sets process gauges.
func (m *Manager) UpdateSystem(memoryBytes uint64, goroutines int) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memoryBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
}

// RecordAPICall records one pipeline call on the global manager.
func RecordAPICall(resource, method, outcome string, durationMs float64) {
	globalManager.RecordAPICall(resource, method, outcome, durationMs)
}

// RecordNotification counts a notification on the global manager.
func RecordNotification(level string) {
	globalManager.RecordNotification(level)
}

// RecordEnvelopeFailure counts an envelope failure on the global manager.
func RecordEnvelopeFailure(resource string) {
	globalManager.RecordEnvelopeFailure(resource)
}

// RecordHTTPRequest records a console request on the global manager.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordPageLoad counts a page instantiation on the global manager.
func RecordPageLoad(route string) {
	globalManager.RecordPageLoad(route)
}

// UpdateSystem sets process gauges on the global manager.
func UpdateSystem(memoryBytes uint64, goroutines int) {
	globalManager.UpdateSystem(memoryBytes, goroutines)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
