// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviweb_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "moviweb_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Outcome is one of match, no_match, error, rejected.
	MetadataLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moviweb_metadata_lookups_total",
			Help: "Total number of OMDb metadata lookups by outcome",
		},
		[]string{"outcome"},
	)

	MetadataLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moviweb_metadata_lookup_duration_seconds",
			Help:    "OMDb lookup round trip in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// 0 = closed, 1 = half-open, 2 = open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "moviweb_circuit_breaker_state",
			Help: "Current circuit breaker state",
		},
		[]string{"name"},
	)
)

// RecordHTTPRequest records one served request. route is the mux pattern,
// not the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordMetadataLookup records the outcome of one enrichment call.
func RecordMetadataLookup(outcome string, duration time.Duration) {
	MetadataLookups.WithLabelValues(outcome).Inc()
	if duration > 0 {
		MetadataLookupDuration.Observe(duration.Seconds())
	}
}
