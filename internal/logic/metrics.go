package logic

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	contextRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_context_requests_total",
		Help: "Total number of player context aggregations performed",
	})

	contextCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_context_cache_hits_total",
		Help: "Player context requests served from the cache",
	})

	contextCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contextapi_context_cache_misses_total",
		Help: "Player context requests that triggered feed dispatch",
	})

	feedLookupFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contextapi_feed_lookup_failures_total",
		Help: "Feed lookups that errored or timed out and degraded to no signal",
	}, []string{"feed"})

	feedLookupDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contextapi_feed_lookup_duration_seconds",
		Help:    "Duration of individual feed lookups",
		Buckets: prometheus.DefBuckets,
	})
)
