// Package metrics defines Prometheus metrics for the travel gateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "travelgw"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})
)

// Provider API metrics.
var (
	ProviderCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_calls_total",
		Help:      "Total number of provider API calls.",
	}, []string{"endpoint"})

	ProviderErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "provider_errors_total",
		Help:      "Total number of failed provider API calls by error kind.",
	}, []string{"endpoint", "kind"})

	TokenRefreshesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of provider access-token refreshes.",
	})
)

// Search metrics.
var (
	SearchCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "search_cache_hits_total",
		Help:      "Total number of flight searches served from the result cache.",
	})
)
