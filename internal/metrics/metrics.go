// Package metrics exposes Prometheus collectors for graph builds and renders.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fsmd"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Metrics groups the collectors of one process.
// Each instance owns its registry so tests do not collide.
type Metrics struct {
	registry *prometheus.Registry

	renders        *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	graphNodes     prometheus.Histogram
	graphEdges     prometheus.Histogram
	cacheLookups   *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "renders_total",
				Help:      "Total number of diagram renders by format and outcome",
			},
			[]string{"format", "outcome"},
		),
		renderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "render_duration_seconds",
				Help:      "Duration of diagram renders",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"format"},
		),
		graphNodes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_nodes",
			Help:      "Number of nodes per built graph, including the start arrow node",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 8),
		}),
		graphEdges: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "graph_edges",
			Help:      "Number of edges per built graph",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		cacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "render_cache_lookups_total",
				Help:      "Render cache lookups by result",
			},
			[]string{"result"},
		),
	}

	m.registry.MustRegister(
		m.renders,
		m.renderDuration,
		m.graphNodes,
		m.graphEdges,
		m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveBuild records the size of a built graph.
func (m *Metrics) ObserveBuild(nodes, edges int) {
	if m == nil {
		return
	}
	m.graphNodes.Observe(float64(nodes))
	m.graphEdges.Observe(float64(edges))
}

// ObserveRender records one render attempt.
func (m *Metrics) ObserveRender(format string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.renders.WithLabelValues(format, outcome).Inc()
	m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// ObserveCacheLookup records a render cache hit or miss.
func (m *Metrics) ObserveCacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
