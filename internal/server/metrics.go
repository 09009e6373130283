package server

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mkarlsen/pvscene/pkg/observability"
)

// Metrics holds all Prometheus metrics for the scene service.
type Metrics struct {
	buildsTotal     prometheus.Counter
	buildDuration   prometheus.Histogram
	panelsPlaced    prometheus.Histogram
	renderDuration  *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	storeOps        *prometheus.CounterVec
}

// NewMetrics creates and registers all service metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		buildsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "pvscene_builds_total",
			Help: "Total number of scene builds",
		}),
		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pvscene_build_duration_seconds",
			Help:    "Scene assembly duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		panelsPlaced: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pvscene_panels_placed",
			Help:    "Modules placed per build",
			Buckets: []float64{0, 5, 10, 20, 40, 80, 160},
		}),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pvscene_render_duration_seconds",
			Help:    "Artifact rendering duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"formats"}),
		cacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pvscene_cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"key_type"}),
		cacheMisses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pvscene_cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"key_type"}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pvscene_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"route", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pvscene_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		storeOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pvscene_store_operations_total",
			Help: "Total number of project store reads and writes",
		}, []string{"op", "status"}),
	}
}

// Hooks returns observability hook implementations backed by these
// metrics. Register them with the observability package at startup.
func (m *Metrics) Hooks() (observability.PipelineHooks, observability.CacheHooks, observability.StoreHooks) {
	return &pipelineMetricsHooks{m: m}, &cacheMetricsHooks{m: m}, &storeMetricsHooks{m: m}
}

type pipelineMetricsHooks struct {
	observability.NoopPipelineHooks
	m *Metrics
}

func (h *pipelineMetricsHooks) OnBuildComplete(_ context.Context, placed int, d time.Duration, _ error) {
	h.m.buildsTotal.Inc()
	h.m.buildDuration.Observe(d.Seconds())
	h.m.panelsPlaced.Observe(float64(placed))
}

func (h *pipelineMetricsHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, _ error) {
	h.m.renderDuration.WithLabelValues(joinFormats(formats)).Observe(d.Seconds())
}

type cacheMetricsHooks struct {
	observability.NoopCacheHooks
	m *Metrics
}

func (h *cacheMetricsHooks) OnCacheHit(_ context.Context, keyType string) {
	h.m.cacheHits.WithLabelValues(keyType).Inc()
}

func (h *cacheMetricsHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.m.cacheMisses.WithLabelValues(keyType).Inc()
}

type storeMetricsHooks struct {
	observability.NoopStoreHooks
	m *Metrics
}

func (h *storeMetricsHooks) OnLoad(_ context.Context, _ string, _ time.Duration, err error) {
	h.m.storeOps.WithLabelValues("load", opStatus(err)).Inc()
}

func (h *storeMetricsHooks) OnSave(_ context.Context, _ string, _ time.Duration, err error) {
	h.m.storeOps.WithLabelValues("save", opStatus(err)).Inc()
}

func opStatus(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func joinFormats(formats []string) string {
	out := ""
	for i, f := range formats {
		if i > 0 {
			out += ","
		}
		out += f
	}
	return out
}
