package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	reqTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "user_api",
			Name:      "http_requests_total",
			Help:      "Requests handled, by route, method and status",
		},
		[]string{"route", "method", "status"},
	)
	reqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "user_api",
			Name:      "http_request_duration_seconds",
			Help:      "Request latency, by route and method",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"},
	)
	reqInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "user_api",
			Name:      "http_requests_in_flight",
			Help:      "Requests currently being served",
		},
	)
)

func init() { prometheus.MustRegister(reqTotal, reqDuration, reqInFlight) }

// Metrics records per-route counters and latencies. The route label is the
// registered pattern (e.g. /api/users/:id), not the raw URL, so ids do not
// explode the cardinality; unmatched paths fall back to the literal path.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqInFlight.Inc()
		start := time.Now()
		c.Next()
		reqInFlight.Dec()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		reqTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		reqDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
