package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hilthontt/roomly/infrastructure/metrics"
)

const (
	HttpRequestsTotal   = "http_requests_total"
	HttpRequestDuration = "http_request_duration_seconds"
)

func RegisterRequestMetrics(m metrics.Manager) {
	m.NewCounter(HttpRequestsTotal, "Total number of HTTP requests")
	m.NewHistogram(HttpRequestDuration, "HTTP request latency in seconds",
		0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5)
}

// RequestMetrics records request count and latency labelled by route
// template, so ids in paths do not explode cardinality.
func RequestMetrics(m metrics.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		labels := []string{
			"method", c.Request.Method,
			"route", route,
			"status", strconv.Itoa(c.Writer.Status()),
		}
		m.IncrementCounter(c.Request.Context(), HttpRequestsTotal, labels...)
		m.RecordHistogram(c.Request.Context(), HttpRequestDuration, time.Since(start).Seconds(), labels...)
	}
}
