package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	SearchRequestsTotal   *prometheus.CounterVec
	SearchRequestDuration *prometheus.HistogramVec

	CacheHitsTotal   prometheus.Counter
	CacheMissesTotal prometheus.Counter

	EventsPublishFailed prometheus.Counter
}

// New registers the collectors on reg. Passing nil uses the default registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SearchRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notion_blog_search_requests_total",
				Help: "Total number of search requests by strategy and outcome",
			},
			[]string{"strategy", "outcome"},
		),
		SearchRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notion_blog_search_request_duration_seconds",
				Help:    "Search request duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"strategy"},
		),
		CacheHitsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notion_blog_search_cache_hits_total",
				Help: "Total number of search result cache hits",
			},
		),
		CacheMissesTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notion_blog_search_cache_misses_total",
				Help: "Total number of search result cache misses",
			},
		),
		EventsPublishFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "notion_blog_search_events_publish_failed_total",
				Help: "Total number of search events that could not be published",
			},
		),
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

// HandlerFor serves the collectors registered on g instead of the default registry.
func HandlerFor(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordSearch(strategy, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SearchRequestsTotal.WithLabelValues(strategy, outcome).Inc()
	m.SearchRequestDuration.WithLabelValues(strategy).Observe(duration.Seconds())
}

func (m *Metrics) RecordCacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) RecordCacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissesTotal.Inc()
}

func (m *Metrics) RecordPublishFailure() {
	if m == nil {
		return
	}
	m.EventsPublishFailed.Inc()
}
