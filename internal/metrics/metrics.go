// Package metrics registers the Prometheus metrics exposed by itemfetch.
// The mock server mounts them on /metrics; embedded users can scrape them
// via the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchesTotal counts completed fetches labelled by path and outcome
	// ("success", "error").
	FetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itemfetch_fetches_total",
			Help: "Total number of fetch requests, by terminal outcome.",
		},
		[]string{"path", "status"},
	)

	// FetchAttempts counts individual transport attempts, including retries.
	FetchAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "itemfetch_fetch_attempts_total",
			Help: "Total transport attempts, by per-attempt result.",
		},
		[]string{"path", "result"},
	)

	// FetchDuration observes end-to-end fetch latency in seconds.
	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "itemfetch_fetch_duration_seconds",
			Help:    "End-to-end fetch duration in seconds, including retries.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"path"},
	)

	// CacheHits counts fetches served from the response cache.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itemfetch_cache_hits_total",
			Help: "Total fetches served from the response cache.",
		},
	)

	// CacheMisses counts fetches that had to go to the transport.
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "itemfetch_cache_misses_total",
			Help: "Total fetches that missed the response cache.",
		},
	)

	// BreakerState tracks the circuit breaker state as a gauge:
	// 0 = closed, 1 = open, 2 = half_open.
	BreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "itemfetch_breaker_state",
			Help: "Transport circuit breaker state (0=closed 1=open 2=half_open).",
		},
	)
)
