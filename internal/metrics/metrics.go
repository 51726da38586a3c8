package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchesTotal    *prometheus.CounterVec
	SearchDuration   *prometheus.HistogramVec
	SearchesInFlight prometheus.Gauge

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	PagesPerSearch prometheus.Histogram

	StatsLookupsTotal *prometheus.CounterVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	RateLimitHitsTotal *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		SearchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuber_searches_total",
				Help: "Total number of search invocations",
			},
			[]string{"type", "status"},
		),
		SearchDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tuber_search_duration_seconds",
				Help:    "End-to-end search duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"type"},
		),
		SearchesInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "tuber_searches_in_flight",
				Help: "Number of searches currently being processed",
			},
		),

		APIRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuber_api_requests_total",
				Help: "Total number of Data API requests",
			},
			[]string{"endpoint", "status"},
		),
		APIRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tuber_api_request_duration_seconds",
				Help:    "Data API request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
			},
			[]string{"endpoint"},
		),

		PagesPerSearch: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tuber_pages_per_search",
				Help:    "Number of result pages fetched per search",
				Buckets: []float64{1, 2, 3, 5, 10, 20},
			},
		),

		StatsLookupsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuber_stats_lookups_total",
				Help: "Total number of per-video statistics lookups",
			},
			[]string{"status"},
		),

		CacheHitsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tuber_cache_hits_total",
				Help: "Total number of result cache hits",
			},
		),
		CacheMissesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tuber_cache_misses_total",
				Help: "Total number of result cache misses",
			},
		),

		RateLimitHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tuber_rate_limit_hits_total",
				Help: "Total number of per-user rate limit hits",
			},
			[]string{"user_id"},
		),
	}

	return m
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func (m *Metrics) RecordSearch(resultType, status string, duration time.Duration) {
	m.SearchesTotal.WithLabelValues(resultType, status).Inc()
	m.SearchDuration.WithLabelValues(resultType).Observe(duration.Seconds())
}

func (m *Metrics) RecordAPIRequest(endpoint, status string, duration time.Duration) {
	m.APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.APIRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *Metrics) RecordPages(count int) {
	m.PagesPerSearch.Observe(float64(count))
}

func (m *Metrics) RecordStatsLookup(status string) {
	m.StatsLookupsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordCacheHit() {
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) RecordRateLimitHit(userID string) {
	m.RateLimitHitsTotal.WithLabelValues(userID).Inc()
}

func (m *Metrics) IncSearchesInFlight() {
	m.SearchesInFlight.Inc()
}

func (m *Metrics) DecSearchesInFlight() {
	m.SearchesInFlight.Dec()
}
