// Package metrics holds the Prometheus instrumentation for the analysis
// engine, adapted from the pack's metrics.go shape (a registered struct
// of counters/histograms plus an HTTP server exposing /metrics) and
// re-scoped from tick/candle-ingestion counters to the
// fetch/cache/compute counters this engine actually emits.
package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus metric the engine registers.
type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	FetchErrors   *prometheus.CounterVec
	FetchDuration *prometheus.HistogramVec

	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec

	IndicatorComputeDuration *prometheus.HistogramVec
	SignalsEmitted           *prometheus.CounterVec

	AnalysisRequests *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

// NewMetrics builds and registers every metric against reg. Passing a
// fresh *prometheus.Registry (rather than the global default) keeps
// repeated construction in tests from panicking on duplicate
// registration.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taengine_fetch_total",
			Help: "Total candle fetches issued to upstream providers",
		}, []string{"market", "provider"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taengine_fetch_errors_total",
			Help: "Candle fetches that returned an error, by apierr category",
		}, []string{"market", "provider", "category"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taengine_fetch_duration_seconds",
			Help:    "Upstream candle fetch latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"market", "provider"}),

		CacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taengine_cache_hits_total",
			Help: "Interval cache hits",
		}, []string{"market"}),
		CacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taengine_cache_misses_total",
			Help: "Interval cache misses",
		}, []string{"market"}),

		IndicatorComputeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taengine_indicator_compute_duration_seconds",
			Help:    "Per-request indicator-kernel compute latency",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"indicator"}),
		SignalsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taengine_signals_emitted_total",
			Help: "Signals emitted by detector/strategy, after filtering",
		}, []string{"source"}),

		AnalysisRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taengine_analysis_requests_total",
			Help: "Completed analysis requests, by outcome",
		}, []string{"market", "outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "taengine_analysis_duration_seconds",
			Help:    "End-to-end analysis request latency",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.FetchTotal,
		m.FetchErrors,
		m.FetchDuration,
		m.CacheHits,
		m.CacheMisses,
		m.IndicatorComputeDuration,
		m.SignalsEmitted,
		m.AnalysisRequests,
		m.AnalysisDuration,
	)

	return m
}

// Server exposes /metrics over HTTP for scraping.
type Server struct {
	addr string
	srv  *http.Server
}

func NewServer(addr string, reg *prometheus.Registry) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &Server{addr: addr, srv: &http.Server{Addr: addr, Handler: mux}}
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
