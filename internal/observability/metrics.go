package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics exposes the Prometheus instruments for the loyalty pipeline.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests       *prometheus.CounterVec
	apiDuration       *prometheus.HistogramVec
	invoicesProcessed *prometheus.CounterVec
	pointsCredited    prometheus.Counter
	redemptions       *prometheus.CounterVec
	uploadsThrottled  prometheus.Counter
}

func NewMetrics() *Metrics {
	apiRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fidelidade_api_requests_total",
		Help: "Counts API requests by method, route and status.",
	}, []string{"method", "route", "status"})

	apiDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fidelidade_api_duration_seconds",
		Help:    "API request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	invoicesProcessed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fidelidade_invoices_processed_total",
		Help: "Processed invoices by resulting status.",
	}, []string{"status"})

	pointsCredited := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fidelidade_points_credited_total",
		Help: "Total loyalty points credited to customers.",
	})

	redemptions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fidelidade_redemptions_total",
		Help: "Prize redemptions by lifecycle status.",
	}, []string{"status"})

	uploadsThrottled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fidelidade_uploads_throttled_total",
		Help: "Invoice uploads rejected by the rate limiter.",
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		apiRequests,
		apiDuration,
		invoicesProcessed,
		pointsCredited,
		redemptions,
		uploadsThrottled,
	)

	return &Metrics{
		registry:          registry,
		apiRequests:       apiRequests,
		apiDuration:       apiDuration,
		invoicesProcessed: invoicesProcessed,
		pointsCredited:    pointsCredited,
		redemptions:       redemptions,
		uploadsThrottled:  uploadsThrottled,
	}
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// GinMiddleware records per-request counters and latency.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		method := c.Request.Method
		m.apiRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.apiDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) RecordInvoiceProcessed(status string) {
	if m == nil {
		return
	}
	m.invoicesProcessed.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordPointsCredited(points int) {
	if m == nil || points <= 0 {
		return
	}
	m.pointsCredited.Add(float64(points))
}

func (m *Metrics) RecordRedemption(status string) {
	if m == nil {
		return
	}
	m.redemptions.WithLabelValues(status).Inc()
}

func (m *Metrics) RecordUploadThrottled() {
	if m == nil {
		return
	}
	m.uploadsThrottled.Inc()
}
