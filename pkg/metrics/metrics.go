package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"method", "route"},
	)

	recommendationTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "recommendation",
			Name:      "transitions_total",
			Help:      "Committed recommendation status transitions.",
		},
		[]string{"from", "to"},
	)

	scoreImprovements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Subsystem: "fleet_score",
			Name:      "improvements_total",
			Help:      "Fleet score records appended by improvements.",
		},
		[]string{"goal"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		recommendationTransitions,
		scoreImprovements,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveRequest(method, route, status string, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordTransition(from, to string) {
	recommendationTransitions.WithLabelValues(from, to).Inc()
}

func RecordImprovement(goal string) {
	scoreImprovements.WithLabelValues(goal).Inc()
}
