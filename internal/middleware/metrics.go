package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gl_http_requests_total",
		Help: "Total number of HTTP requests processed.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gl_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	transactionsPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gl_transactions_posted_total",
		Help: "Total number of transactions posted to the ledger.",
	})

	transactionsVoided = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gl_transactions_voided_total",
		Help: "Total number of transactions voided.",
	})
)

// Metrics creates a Gin middleware that records request counts and latency.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// CountTransactionPosted increments the posted-transaction counter.
func CountTransactionPosted() { transactionsPosted.Inc() }

// CountTransactionVoided increments the voided-transaction counter.
func CountTransactionVoided() { transactionsVoided.Inc() }
