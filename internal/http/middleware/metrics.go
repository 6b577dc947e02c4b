// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the Prometheus surface. Metrics() instruments every request
// (count, latency, in-flight concurrency, response size) and the Observe
// helpers let handlers bump the intake-specific counters for CSV imports,
// exports, and write-quota rejections. The "path" label always carries the
// registered route template (e.g. /api/v1/buyers/:id) so cardinality stays
// bounded; raw URLs appear only for requests that matched no route. All
// collectors are safe for concurrent use.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// pathLabels is shared by the latency and size histograms; status is omitted
// there to keep histogram cardinality down.
var pathLabels = []string{"method", "path"}

// respSizeBuckets spans tiny JSON errors through full CSV exports; the top
// bucket matches the 5MiB import cap.
var respSizeBuckets = []float64{
	200, 500, 1 << 10, 2 << 10, 5 << 10, 10 << 10, 25 << 10, 50 << 10,
	100 << 10, 250 << 10, 500 << 10, 1 << 20, 2 << 20, 5 << 20,
}

var (
	httpReqs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	reqDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, pathLabels)

	httpInflight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_inflight",
		Help: "Current number of in-flight HTTP requests.",
	})

	respBytes = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_response_size_bytes",
		Help:    "Size of HTTP responses in bytes.",
		Buckets: respSizeBuckets,
	}, pathLabels)

	// importRows counts CSV import rows per outcome ("inserted" or
	// "rejected"). Per-row granularity keeps dashboards honest about batches
	// blocked by the all-or-nothing validation gate.
	importRows = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "buyer_import_rows_total",
		Help: "Total number of buyer CSV import rows by outcome.",
	}, []string{"outcome"})

	csvExports = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "buyer_csv_exports_total",
		Help: "Total number of buyer CSV exports served.",
	})

	// quotaRejections is labeled by limiter class ("create" or "update").
	quotaRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "write_quota_rejections_total",
		Help: "Total number of requests rejected by the write quota.",
	}, []string{"class"})
)

func init() {
	prometheus.MustRegister(
		httpReqs, reqDuration, httpInflight, respBytes,
		importRows, csvExports, quotaRejections,
	)
}

// Metrics returns a Gin middleware that feeds the HTTP collectors. Mount it
// once on the engine and expose promhttp.Handler() on /metrics:
//
//	r.Use(middleware.Metrics())
//	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
//
// Each completed request increments http_requests_total and observes the
// latency histogram; the response size histogram is skipped when Gin reports
// the size as unknown (-1, e.g. a bare status with no body).
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		record(c, time.Since(start))
	}
}

// record observes one finished request on all HTTP collectors.
func record(c *gin.Context, elapsed time.Duration) {
	path := c.FullPath()
	if path == "" {
		path = c.Request.URL.Path // no route matched; typically a 404
	}
	method := c.Request.Method

	httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
	reqDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	if size := c.Writer.Size(); size >= 0 {
		respBytes.WithLabelValues(method, path).Observe(float64(size))
	}
}

// ObserveImportRows records the outcome of a CSV import batch.
func ObserveImportRows(inserted, rejected int) {
	if inserted > 0 {
		importRows.WithLabelValues("inserted").Add(float64(inserted))
	}
	if rejected > 0 {
		importRows.WithLabelValues("rejected").Add(float64(rejected))
	}
}

// ObserveCSVExport records one served CSV export.
func ObserveCSVExport() {
	csvExports.Inc()
}

// ObserveQuotaRejection records one write request rejected by the named
// quota class.
func ObserveQuotaRejection(class string) {
	quotaRejections.WithLabelValues(class).Inc()
}
