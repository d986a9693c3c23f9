// Package metrics implements the observability hooks with Prometheus
// collectors and exposes them for scraping.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/ontoview/pkg/observability"
)

const namespace = "ontoview"

// Metrics holds the Prometheus collectors for parsing, rendering, the
// artifact cache and the HTTP server.
type Metrics struct {
	registry *prometheus.Registry

	parseTotal    *prometheus.CounterVec
	parseDuration *prometheus.HistogramVec
	parseNodes    *prometheus.HistogramVec

	renderTotal    *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
	renderBytes    *prometheus.HistogramVec

	cacheHits   *prometheus.CounterVec
	cacheMisses *prometheus.CounterVec
	cacheWrites *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInflight prometheus.Gauge
}

// New creates a Metrics instance with its own registry, including the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.parseTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_total",
			Help:      "Total number of decoded inputs by kind and status",
		},
		[]string{"kind", "status"},
	)
	m.parseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent decoding contexts and documents",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
		[]string{"kind"},
	)
	m.parseNodes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_nodes",
			Help:      "Vocabulary entries per context and nodes per document",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		},
		[]string{"kind"},
	)

	m.renderTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_total",
			Help:      "Total number of rendered artifacts by format and status",
		},
		[]string{"format", "status"},
	)
	m.renderDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent producing one artifact",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
		[]string{"format"},
	)
	m.renderBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_bytes",
			Help:      "Size of rendered artifacts",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 10),
		},
		[]string{"format"},
	)

	m.cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Total number of cache hits",
		},
		[]string{"key_type"},
	)
	m.cacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Total number of cache misses",
		},
		[]string{"key_type"},
	)
	m.cacheWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_writes_total",
			Help:      "Total number of cache writes",
		},
		[]string{"key_type"},
	)

	m.httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)
	m.httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	m.httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Number of HTTP requests being served",
	})

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.parseTotal, m.parseDuration, m.parseNodes,
		m.renderTotal, m.renderDuration, m.renderBytes,
		m.cacheHits, m.cacheMisses, m.cacheWrites,
		m.httpRequests, m.httpDuration, m.httpInflight,
	)
	return m
}

// Registry returns the registry holding every collector.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Register installs m as the global pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(pipelineHooks{m})
	observability.SetCacheHooks(cacheHooks{m})
	observability.SetHTTPHooks(httpHooks{m})
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

type pipelineHooks struct{ m *Metrics }

func (h pipelineHooks) OnParseStart(context.Context, string) {}

func (h pipelineHooks) OnParseComplete(_ context.Context, kind string, nodes int, d time.Duration, err error) {
	h.m.parseTotal.WithLabelValues(kind, status(err)).Inc()
	h.m.parseDuration.WithLabelValues(kind).Observe(d.Seconds())
	if err == nil {
		h.m.parseNodes.WithLabelValues(kind).Observe(float64(nodes))
	}
}

func (h pipelineHooks) OnRenderStart(context.Context, string) {}

func (h pipelineHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.m.renderTotal.WithLabelValues(format, status(err)).Inc()
	h.m.renderDuration.WithLabelValues(format).Observe(d.Seconds())
	if err == nil {
		h.m.renderBytes.WithLabelValues(format).Observe(float64(size))
	}
}

type cacheHooks struct{ m *Metrics }

func (h cacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.m.cacheHits.WithLabelValues(keyType).Inc()
}

func (h cacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.m.cacheMisses.WithLabelValues(keyType).Inc()
}

func (h cacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.m.cacheWrites.WithLabelValues(keyType).Inc()
}

type httpHooks struct{ m *Metrics }

func (h httpHooks) OnRequest(context.Context, string, string) {
	h.m.httpInflight.Inc()
}

func (h httpHooks) OnResponse(_ context.Context, method, route string, code int, d time.Duration) {
	h.m.httpInflight.Dec()
	h.m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	h.m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
