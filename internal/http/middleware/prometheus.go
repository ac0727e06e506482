package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsPath is served by promhttp and excluded from the request metrics.
const MetricsPath = "/metrics"

// PrometheusMiddleware records request counts and latencies per route pattern.
type PrometheusMiddleware struct {
	requestCount    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	uploadBytes     prometheus.Histogram
}

// NewPrometheusMiddleware creates the collectors and registers them on reg.
// Registering twice on the same registry fails.
func NewPrometheusMiddleware(reg prometheus.Registerer) (*PrometheusMiddleware, error) {
	m := &PrometheusMiddleware{
		requestCount: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		uploadBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "http_request_body_bytes",
				Help:    "Size of request bodies accepted for POST requests.",
				Buckets: prometheus.ExponentialBuckets(1024, 4, 9),
			},
		),
	}

	for _, c := range []prometheus.Collector{m.requestCount, m.requestDuration, m.uploadBytes} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Handler returns the fiber middleware handler.
func (m *PrometheusMiddleware) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == MetricsPath {
			return c.Next()
		}

		start := time.Now()
		err := c.Next()

		// Route pattern (/api/documents/:id) keeps label cardinality bounded.
		path := c.Route().Path
		if path == "" {
			path = c.Path()
		}
		method := c.Method()

		m.requestCount.WithLabelValues(method, path, strconv.Itoa(statusOf(c, err))).Inc()
		m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		if method == fiber.MethodPost {
			m.uploadBytes.Observe(float64(len(c.Request().Body())))
		}

		return err
	}
}
