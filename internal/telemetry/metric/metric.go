// Package metric provides Prometheus metrics for quiver.
//
// It exposes metrics in Prometheus format for monitoring operation
// rates, cache misses, evictions, snapshot flushes, and request
// latencies.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all application metrics.
type Registry struct {
	// Engine metrics
	OpsTotal       *prometheus.CounterVec
	MissesTotal    prometheus.Counter
	EvictionsTotal prometheus.Counter
	EntriesLive    prometheus.Gauge

	// Snapshot metrics
	FlushesTotal     prometheus.Counter
	FlushErrorsTotal prometheus.Counter
	FlushDuration    prometheus.Histogram

	// Request metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	reg *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics
// registered, plus the standard Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	r := &Registry{
		OpsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quiver_ops_total",
			Help: "Total store operations by type.",
		}, []string{"op"}),
		MissesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "quiver_misses_total",
			Help: "Total get operations on absent keys.",
		}),
		EvictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "quiver_evictions_total",
			Help: "Total entries removed by TTL cleanup.",
		}),
		EntriesLive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "quiver_entries_live",
			Help: "Current number of entries across all shards.",
		}),
		FlushesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "quiver_flushes_total",
			Help: "Total snapshot flush passes completed.",
		}),
		FlushErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "quiver_flush_errors_total",
			Help: "Total snapshot flush passes that failed.",
		}),
		FlushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "quiver_flush_duration_seconds",
			Help:    "Duration of snapshot flush passes.",
			Buckets: prometheus.DefBuckets,
		}),
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "quiver_http_requests_total",
			Help: "Total HTTP requests by method and status.",
		}, []string{"method", "status"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "quiver_http_request_duration_seconds",
			Help:    "HTTP request duration by method.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		reg: reg,
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return r
}

// Handler returns the HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
