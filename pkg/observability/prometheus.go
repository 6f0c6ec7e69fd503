package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusHooks records every hook event as a Prometheus metric on its own
// registry.
type PrometheusHooks struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
	relaxations    *prometheus.CounterVec
	cacheEvents    *prometheus.CounterVec
	cacheBytes     *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	httpInFlight   prometheus.Gauge
}

// NewPrometheusHooks creates hooks backed by a fresh registry.
func NewPrometheusHooks() *PrometheusHooks {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &PrometheusHooks{
		registry: reg,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routeplanner_searches_total",
			Help: "Planning requests by mode and result",
		}, []string{"mode", "result"}),
		searchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routeplanner_search_duration_seconds",
			Help:    "Planning request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
		}, []string{"mode"}),
		relaxations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routeplanner_relaxations_total",
			Help: "Park-and-walk requests answered after relaxing constraints, by stage",
		}, []string{"stage"}),
		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routeplanner_cache_events_total",
			Help: "Cache lookups and writes by key type and event",
		}, []string{"key_type", "event"}),
		cacheBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routeplanner_cache_written_bytes_total",
			Help: "Bytes written to the cache by key type",
		}, []string{"key_type"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "routeplanner_http_requests_total",
			Help: "HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "routeplanner_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		httpInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "routeplanner_http_in_flight_requests",
			Help: "HTTP requests currently being served",
		}),
	}
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusHooks) Registry() *prometheus.Registry { return p.registry }

// Handler returns an HTTP handler that serves the metrics.
func (p *PrometheusHooks) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

func (p *PrometheusHooks) OnSearchStart(context.Context, string) {}

func (p *PrometheusHooks) OnSearchComplete(_ context.Context, mode string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.searches.WithLabelValues(mode, result).Inc()
	p.searchDuration.WithLabelValues(mode).Observe(d.Seconds())
}

func (p *PrometheusHooks) OnRelaxation(_ context.Context, stage string) {
	p.relaxations.WithLabelValues(stage).Inc()
}

func (p *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

func (p *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	p.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

func (p *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	p.cacheEvents.WithLabelValues(keyType, "set").Inc()
	p.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

func (p *PrometheusHooks) OnRequest(context.Context, string, string) {
	p.httpInFlight.Inc()
}

func (p *PrometheusHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	p.httpInFlight.Dec()
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

var (
	_ SearchHooks = (*PrometheusHooks)(nil)
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
)
