package middleware

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// secRig builds a router running an optional pre-middleware before
// SecurityHeaders, with a trivial 200 route.
func secRig(opt SecurityOptions, pre gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	if pre != nil {
		r.Use(pre)
	}
	r.Use(SecurityHeaders(opt))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestSecurityHeaders_Defaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := secRig(SecurityOptions{}, func(c *gin.Context) {
		c.Header("X-Request-ID", "rid-123")
		c.Next()
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	h := w.Header()
	if h.Get("X-Content-Type-Options") != "nosniff" ||
		h.Get("X-Frame-Options") != "DENY" ||
		h.Get("Referrer-Policy") != "no-referrer" {
		t.Fatalf("baseline headers missing: %#v", h)
	}
	for _, name := range []string{
		"Permissions-Policy", "X-Permitted-Cross-Domain-Policies",
		"Cache-Control", "Pragma", "Expires", "Strict-Transport-Security",
	} {
		if h.Get(name) != "" {
			t.Fatalf("%s set without opt-in: %q", name, h.Get(name))
		}
	}
	exposed := h.Get("Access-Control-Expose-Headers")
	for _, name := range append([]string{"X-Request-ID"}, exposedHeaders...) {
		if !strings.Contains(exposed, name) {
			t.Fatalf("%s missing from expose list %q", name, exposed)
		}
	}
}

func TestSecurityHeaders_ExposeListMerging(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("appends without clobbering", func(t *testing.T) {
		r := secRig(SecurityOptions{}, func(c *gin.Context) {
			c.Header("X-Request-ID", "rid-abc")
			c.Header("Access-Control-Expose-Headers", "Foo")
			c.Next()
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		if got := w.Header().Get("Access-Control-Expose-Headers"); !strings.HasPrefix(got, "Foo, X-Request-ID") {
			t.Fatalf("expose list = %q; want it to keep Foo first", got)
		}
	})

	t.Run("never duplicates a name", func(t *testing.T) {
		r := secRig(SecurityOptions{}, func(c *gin.Context) {
			c.Header("X-Request-ID", "rid-xyz")
			c.Header("Access-Control-Expose-Headers", "X-Request-ID, ETag")
			c.Next()
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		got := w.Header().Get("Access-Control-Expose-Headers")
		if strings.Count(got, "X-Request-ID") != 1 || strings.Count(got, "ETag") != 1 {
			t.Fatalf("expose list duplicated names: %q", got)
		}
	})
}

func TestSecurityHeaders_OptIns(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := secRig(SecurityOptions{
		EnableHSTS:   true,
		HSTSMaxAge:   24 * time.Hour,
		NoStore:      true,
		EnablePolicy: true,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.TLS = &tls.ConnectionState{}
	r.ServeHTTP(w, req)

	h := w.Header()
	if h.Get("Permissions-Policy") == "" || h.Get("X-Permitted-Cross-Domain-Policies") != "none" {
		t.Fatalf("policy headers missing: %#v", h)
	}
	if h.Get("Cache-Control") != "no-store" || h.Get("Pragma") != "no-cache" || h.Get("Expires") != "0" {
		t.Fatalf("cache headers missing: %#v", h)
	}
	if want := "max-age=86400; includeSubDomains; preload"; h.Get("Strict-Transport-Security") != want {
		t.Fatalf("HSTS = %q; want %q", h.Get("Strict-Transport-Security"), want)
	}
}

func TestSecurityHeaders_HSTSBehindProxy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := secRig(SecurityOptions{EnableHSTS: true, HSTSMaxAge: time.Hour}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Strict-Transport-Security"); got != "max-age=3600; includeSubDomains; preload" {
		t.Fatalf("HSTS behind proxy = %q", got)
	}
}

func TestIsHTTPS(t *testing.T) {
	plain := httptest.NewRequest(http.MethodGet, "/", nil)
	if isHTTPS(plain) {
		t.Fatal("plain HTTP reported as https")
	}

	direct := httptest.NewRequest(http.MethodGet, "/", nil)
	direct.TLS = &tls.ConnectionState{}
	if !isHTTPS(direct) {
		t.Fatal("TLS request not reported as https")
	}

	proxied := httptest.NewRequest(http.MethodGet, "/", nil)
	proxied.Header.Set("X-Forwarded-Proto", "HTTPS")
	if !isHTTPS(proxied) {
		t.Fatal("proxied https not recognized case-insensitively")
	}
}

func TestHSTSSeconds(t *testing.T) {
	if got := hstsSeconds(24 * time.Hour); got != 86400 {
		t.Fatalf("hstsSeconds(24h) = %d", got)
	}
	if got := hstsSeconds(0); got != 180*24*60*60 {
		t.Fatalf("hstsSeconds(0) = %d; want the 180-day default", got)
	}
}

func TestStrconvItoa(t *testing.T) {
	for _, v := range []int{0, 1, 9, 10, 42, 1234567890, -1, -42} {
		if got := strconvItoa(v); got != strconv.Itoa(v) {
			t.Fatalf("strconvItoa(%d) = %q; want %q", v, got, strconv.Itoa(v))
		}
	}
}
