package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// serveOnce drives a single GET through the engine.
func serveOnce(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestMetricsMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	// /ok writes a body, so its size is observed; /statusonly leaves Gin's
	// size at -1, which the size histogram must skip.
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/statusonly", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	// Collectors are process-global, so assert deltas against baselines
	// rather than absolute values.
	baseOK := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/ok", "200"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404"))

	for path, want := range map[string]int{
		"/ok":             http.StatusOK,
		"/statusonly":     http.StatusNoContent,
		"/does-not-exist": http.StatusNotFound,
	} {
		if w := serveOnce(r, path); w.Code != want {
			t.Fatalf("GET %s = %d, want %d", path, w.Code, want)
		}
	}

	t.Run("matched route counted by template", func(t *testing.T) {
		if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/ok", "200")); got != baseOK+1 {
			t.Fatalf("http_requests_total for /ok = %v, want %v", got, baseOK+1)
		}
	})

	t.Run("unmatched route counted by raw path", func(t *testing.T) {
		if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/does-not-exist", "404")); got != base404+1 {
			t.Fatalf("http_requests_total for 404 fallback = %v, want %v", got, base404+1)
		}
	})

	t.Run("in-flight gauge settles to zero", func(t *testing.T) {
		if got := testutil.ToFloat64(httpInflight); got != 0 {
			t.Fatalf("http_requests_inflight = %v, want 0", got)
		}
	})

	// Latency buckets are timing-dependent and not pinned; the three hits
	// above exercise both the observe and the size<0 skip paths.
}

func TestObserveImportRows(t *testing.T) {
	baseIns := testutil.ToFloat64(importRows.WithLabelValues("inserted"))
	baseRej := testutil.ToFloat64(importRows.WithLabelValues("rejected"))

	ObserveImportRows(3, 2)
	ObserveImportRows(0, 0) // zero counts must not create spurious increments

	if got := testutil.ToFloat64(importRows.WithLabelValues("inserted")); got != baseIns+3 {
		t.Fatalf("inserted rows = %v, want %v", got, baseIns+3)
	}
	if got := testutil.ToFloat64(importRows.WithLabelValues("rejected")); got != baseRej+2 {
		t.Fatalf("rejected rows = %v, want %v", got, baseRej+2)
	}
}

func TestObserveCSVExportAndQuotaRejection(t *testing.T) {
	baseExp := testutil.ToFloat64(csvExports)
	baseCreate := testutil.ToFloat64(quotaRejections.WithLabelValues("create"))

	ObserveCSVExport()
	ObserveQuotaRejection("create")

	if got := testutil.ToFloat64(csvExports); got != baseExp+1 {
		t.Fatalf("exports = %v, want %v", got, baseExp+1)
	}
	if got := testutil.ToFloat64(quotaRejections.WithLabelValues("create")); got != baseCreate+1 {
		t.Fatalf("create rejections = %v, want %v", got, baseCreate+1)
	}
}
