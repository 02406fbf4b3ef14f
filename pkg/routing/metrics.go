package routing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/natevvv/smartpath-rail/pkg/graph/path"
)

const (
	resultFound     = "found"
	resultNotFound  = "not_found"
	resultCancelled = "cancelled"
)

var (
	routeQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartpath_route_queries_total",
		Help: "Route queries by strategy and result",
	}, []string{"strategy", "result"})

	routeQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "smartpath_route_query_duration_seconds",
		Help:    "Route query duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	}, []string{"strategy"})

	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "smartpath_searches_total",
		Help: "Single origin/destination searches run by the router",
	}, []string{"strategy"})
)

func observeQuery(strategy path.Strategy, result string, start time.Time) {
	routeQueries.WithLabelValues(strategy.String(), result).Inc()
	routeQueryDuration.WithLabelValues(strategy.String()).Observe(time.Since(start).Seconds())
}
