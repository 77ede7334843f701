// Package observability provides Prometheus metrics and OpenTelemetry tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipebite_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "swipebite_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// SwipesTotal counts recorded swipes by direction.
	SwipesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipebite_swipes_total",
		Help: "Total swipes recorded by direction",
	}, []string{"direction"})

	// TrendingComputeLatency records the latency of full trending computations.
	TrendingComputeLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "swipebite_trending_compute_latency_seconds",
		Help:    "Latency of trending score computations in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// BadgesGrantedTotal counts badge grants by badge type.
	BadgesGrantedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipebite_badges_granted_total",
		Help: "Total badges granted by type",
	}, []string{"badge_type"})

	// AssistantRepliesTotal counts assistant replies by matched query type.
	AssistantRepliesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "swipebite_assistant_replies_total",
		Help: "Total assistant replies by query type",
	}, []string{"query_type"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
