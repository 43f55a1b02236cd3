package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic, caching and scheduling outcomes.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheLatency    prometheus.Observer
	cacheWrite      prometheus.Observer
	cacheLookups    *prometheus.CounterVec
	conflictChecks  *prometheus.CounterVec
	conflictsFound  *prometheus.GaugeVec
	transitions     *prometheus.CounterVec
	summaryDuration prometheus.Observer
}

// NewMetricsService registers collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	cacheLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_latency_seconds",
		Help:    "Latency for cache lookups",
		Buckets: prometheus.DefBuckets,
	})

	cacheWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "cache_write_seconds",
		Help:    "Latency for cache set operations",
		Buckets: prometheus.DefBuckets,
	})

	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cache_lookups_total",
		Help: "Cache lookups by result",
	}, []string{"result"})

	conflictChecks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_conflict_checks_total",
		Help: "Write-time conflict checks by outcome",
	}, []string{"outcome"})

	conflictsFound := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "timetable_conflicts_detected",
		Help: "Conflicts reported by the most recent scan per type",
	}, []string{"type"})

	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_state_transitions_total",
		Help: "State transitions of substitute assignments and swap requests",
	}, []string{"entity", "status"})

	summaryDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_summary_refresh_seconds",
		Help:    "Duration of schedule summary recomputation",
		Buckets: prometheus.DefBuckets,
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, cacheLatency, cacheWrite, cacheLookups, conflictChecks, conflictsFound, transitions, summaryDuration, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		cacheLatency:    cacheLatency,
		cacheWrite:      cacheWrite,
		cacheLookups:    cacheLookups,
		conflictChecks:  conflictChecks,
		conflictsFound:  conflictsFound,
		transitions:     transitions,
		summaryDuration: summaryDuration,
	}
}

// Registry exposes the underlying registry for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordCacheOperation records a cache hit or miss.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheLatency.Observe(duration.Seconds())
	if hit {
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheWrite.Observe(duration.Seconds())
}

// RecordConflictCheck counts a write-time conflict check. Outcome is one of
// "clear", "conflict" or "race".
func (m *MetricsService) RecordConflictCheck(outcome string) {
	if m == nil {
		return
	}
	m.conflictChecks.WithLabelValues(outcome).Inc()
}

// SetConflictsDetected publishes the per-type totals of the latest scan.
func (m *MetricsService) SetConflictsDetected(byType map[string]int) {
	if m == nil {
		return
	}
	for _, t := range []string{"TEACHER", "ROOM", "CLASS"} {
		m.conflictsFound.WithLabelValues(t).Set(float64(byType[t]))
	}
}

// RecordTransition counts a lifecycle transition of entity into status.
func (m *MetricsService) RecordTransition(entity, status string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(entity, status).Inc()
}

// ObserveSummaryRefresh records how long a summary recomputation took.
func (m *MetricsService) ObserveSummaryRefresh(duration time.Duration) {
	if m == nil {
		return
	}
	m.summaryDuration.Observe(duration.Seconds())
}
