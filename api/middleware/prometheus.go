package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status", "service"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "service"},
	)

	socialQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "social_queries_total",
			Help: "Total number of social graph queries",
		},
		[]string{"operation", "status", "service"},
	)

	socialQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "social_query_duration_seconds",
			Help:    "Duration of social graph queries in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"operation", "service"},
	)
)

func PrometheusMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
			serviceName,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			serviceName,
		).Observe(duration)
	}
}

// RecordSocialQuery фиксирует метрики операций социального графа
// (поиск, резолв друзей, сборка профиля)
func RecordSocialQuery(operation, serviceName string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	socialQueriesTotal.WithLabelValues(operation, status, serviceName).Inc()
	socialQueryDuration.WithLabelValues(operation, serviceName).Observe(duration.Seconds())
}
