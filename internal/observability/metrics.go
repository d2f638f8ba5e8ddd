// Package observability provides metrics and tracing instrumentation.
package observability

import (
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ripple_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// FollowTransitions counts follow-graph state transitions by kind
	// (follow, accept, reject, unfollow, follow_back).
	FollowTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_follow_transitions_total",
		Help: "Total follow-graph state transitions by kind",
	}, []string{"kind"})

	// VisibilityDenials counts content reads rejected by the visibility policy,
	// labeled by tier (account, content).
	VisibilityDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ripple_visibility_denials_total",
		Help: "Total reads denied by the visibility policy, by tier",
	}, []string{"tier"})
)

// InitHTTPMetrics returns the Prometheus HTTP middleware for the given service name.
func InitHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}
