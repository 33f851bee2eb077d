// Package metrics exposes Prometheus instrumentation for the recommendation
// engine and the HTTP surface.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RecommendationRuns.
const (
	OutcomeOK            = "ok"
	OutcomeGroupNotFound = "group_not_found"
	OutcomeError         = "error"
)

var (
	// RecommendationRuns counts recommendation runs by outcome.
	RecommendationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "what2do_recommendation_runs_total",
			Help: "Total number of recommendation runs by outcome",
		},
		[]string{"outcome"},
	)

	// RecommendationDuration tracks how long a full run takes, including all
	// store reads and the record write.
	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "what2do_recommendation_duration_seconds",
			Help:    "Duration of recommendation runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// SuggestionsReturned tracks how many activities survive filtering and
	// truncation per run.
	SuggestionsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "what2do_suggestions_returned",
			Help:    "Number of suggestions returned per recommendation run",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 10},
		},
	)

	// HTTPRequestDuration tracks request latency per route and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "what2do_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveRun records one recommendation run.
func ObserveRun(outcome string, start time.Time, suggestions int) {
	RecommendationRuns.WithLabelValues(outcome).Inc()
	RecommendationDuration.Observe(time.Since(start).Seconds())
	if outcome == OutcomeOK {
		SuggestionsReturned.Observe(float64(suggestions))
	}
}
