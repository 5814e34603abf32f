// Package metrics exposes Prometheus metrics for the dashboard.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithRegistry replaces the registry metrics are registered on.
func WithRegistry(registry *prometheus.Registry) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}

type Manager struct {
	namespace string
	registry  *prometheus.Registry

	queryLatency     *prometheus.HistogramVec
	eventsFetched    *prometheus.CounterVec
	rankingRuns      prometheus.Counter
	rankingLatency   prometheus.Histogram
	rankingStudents  prometheus.Gauge
	exports          prometheus.Counter
	refreshCancelled prometheus.Counter
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "rpsboard",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	auto := promauto.With(m.registry)

	m.queryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "query_duration_seconds",
		Help:      "Latency of event store queries by stream",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stream"})

	m.eventsFetched = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "store",
		Name:      "events_fetched_total",
		Help:      "Events read from the store by stream",
	}, []string{"stream"})

	m.rankingRuns = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "runs_total",
		Help:      "Completed ranking generations",
	})

	m.rankingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "duration_seconds",
		Help:      "Time to fetch, aggregate and rank one date window",
		Buckets:   prometheus.DefBuckets,
	})

	m.rankingStudents = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "ranking",
		Name:      "students",
		Help:      "Number of students in the latest ranking",
	})

	m.exports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "export",
		Name:      "workbooks_total",
		Help:      "Ranking workbooks generated",
	})

	m.refreshCancelled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "refresh",
		Name:      "cancelled_total",
		Help:      "Refresh runs cancelled because a newer run started",
	})

	m.registry.MustRegister(collectors.NewGoCollector())

	return m
}

func (m *Manager) ObserveQuery(stream string, elapsed time.Duration, events int) {
	m.queryLatency.WithLabelValues(stream).Observe(elapsed.Seconds())
	m.eventsFetched.WithLabelValues(stream).Add(float64(events))
}

func (m *Manager) ObserveRanking(elapsed time.Duration, entries int) {
	m.rankingRuns.Inc()
	m.rankingLatency.Observe(elapsed.Seconds())
	m.rankingStudents.Set(float64(entries))
}

func (m *Manager) IncExport() {
	m.exports.Inc()
}

func (m *Manager) IncRefreshCancelled() {
	m.refreshCancelled.Inc()
}

func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
