package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal     *prometheus.CounterVec
	httpRequestDurationMs *prometheus.HistogramVec

	documentInfo      *prometheus.GaugeVec
	documentSizeBytes prometheus.Gauge
	documentLoadedAt  prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{registry: reg}

	m.httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	m.httpRequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"method", "route"})

	m.documentInfo = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "apidoc_info",
		Help: "Served API document, always 1.",
	}, []string{"title", "version", "openapi"})
	m.documentSizeBytes = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "apidoc_size_bytes",
		Help: "Size of the served API document source in bytes.",
	})
	m.documentLoadedAt = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "apidoc_loaded_timestamp_seconds",
		Help: "Unix time at which the API document was loaded.",
	})

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDurationMs,
		m.documentInfo,
		m.documentSizeBytes,
		m.documentLoadedAt,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	route = strings.TrimSpace(route)
	if route == "" {
		route = "unknown"
	}
	statusLabel := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, route, statusLabel).Inc()
	ms := float64(duration.Milliseconds())
	if ms < 0 {
		ms = 0
	}
	m.httpRequestDurationMs.WithLabelValues(method, route).Observe(ms)
}

// SetDocument records the served document. It is called once at startup.
func (m *Metrics) SetDocument(title, version, openapi string, size int, loadedAt time.Time) {
	if m == nil {
		return
	}
	m.documentInfo.Reset()
	m.documentInfo.WithLabelValues(title, version, openapi).Set(1)
	if size < 0 {
		size = 0
	}
	m.documentSizeBytes.Set(float64(size))
	m.documentLoadedAt.Set(float64(loadedAt.Unix()))
}
