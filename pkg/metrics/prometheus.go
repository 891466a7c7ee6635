// Package metrics provides Prometheus metrics for the action-item extraction service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Extraction
	extractions        *prometheus.CounterVec
	actionItems        *prometheus.CounterVec
	assigneeTiers      *prometheus.CounterVec
	deadlineKinds      *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec

	// Capabilities and cache
	modelLoads   *prometheus.CounterVec
	cacheLookups *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a metrics manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "meeting_actions",
		subsystem:        "extraction",
		histogramBuckets: prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.extractions = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "extractions_total",
		Help:      "Number of transcripts processed, by strategy.",
	}, []string{"strategy"})

	m.actionItems = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "action_items_total",
		Help:      "Number of action items emitted after deduplication, by strategy.",
	}, []string{"strategy"})

	m.assigneeTiers = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "assignee_resolutions_total",
		Help:      "Assignee resolutions by the tier that produced them.",
	}, []string{"tier"})

	m.deadlineKinds = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "deadline_matches_total",
		Help:      "Deadline matches by pattern kind.",
	}, []string{"kind"})

	m.extractionDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "extraction_duration_seconds",
		Help:      "Time spent extracting action items from one transcript.",
		Buckets:   m.histogramBuckets,
	}, []string{"strategy"})

	m.modelLoads = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "nlp",
		Name:      "model_loads_total",
		Help:      "NLP capability load attempts by outcome.",
	}, []string{"model", "outcome"})

	m.cacheLookups = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "lookups_total",
		Help:      "Extraction cache lookups by result.",
	}, []string{"result"})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route and status.",
	}, []string{"method", "path", "status"})

	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "path"})
}

// Registry exposes the underlying registry, mainly for tests
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordExtraction records one processed transcript.
func (m *Manager) RecordExtraction(strategy string, items int, duration time.Duration) {
	if m == nil {
		return
	}
	m.extractions.WithLabelValues(strategy).Inc()
	m.actionItems.WithLabelValues(strategy).Add(float64(items))
	m.extractionDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

// RecordAssignee records which resolver tier produced an assignee ("none" if absent)
func (m *Manager) RecordAssignee(tier string) {
	if m == nil {
		return
	}
	m.assigneeTiers.WithLabelValues(tier).Inc()
}

// RecordDeadline records which pattern kind produced a deadline ("none" if absent)
func (m *Manager) RecordDeadline(kind string) {
	if m == nil {
		return
	}
	m.deadlineKinds.WithLabelValues(kind).Inc()
}

// RecordModelLoad records the single load attempt of an NLP capability
func (m *Manager) RecordModelLoad(model string, err error) {
	if m == nil {
		return
	}
	outcome := "ready"
	if err != nil {
		outcome = "disabled"
	}
	m.modelLoads.WithLabelValues(model, outcome).Inc()
}

// RecordCacheLookup records a cache hit, miss or error
func (m *Manager) RecordCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// RecordHTTPRequest records one served HTTP request
func (m *Manager) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}
