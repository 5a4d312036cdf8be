package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Review outcome metrics
	reviewResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_results_total",
			Help: "Total number of review requests by outcome kind",
		},
		[]string{"kind"},
	)

	upstreamDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_upstream_duration_seconds",
			Help:    "Latency of upstream model calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
		[]string{"provider"},
	)

	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "review_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "review_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "review_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "review_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)

	corsRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "review_cors_rejects_total",
			Help: "Total number of requests rejected for a disallowed origin",
		},
	)
)

// ObserveReview records one gateway outcome. kind is "ok" for a success.
func ObserveReview(kind string) {
	reviewResultsTotal.WithLabelValues(kind).Inc()
}

func ObserveUpstream(provider string, elapsed time.Duration) {
	upstreamDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
}

func ObserveHTTPRequest(method, path, status string, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

// TrackInFlight increments the in-flight gauge and returns the matching decrement.
func TrackInFlight() func() {
	httpRequestsInFlight.Inc()
	return httpRequestsInFlight.Dec
}

func IncPanicRecoveries() {
	panicRecoveries.Inc()
}

func IncCORSRejects() {
	corsRejects.Inc()
}
