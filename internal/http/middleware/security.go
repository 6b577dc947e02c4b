// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which stamps a conservative header set
// suitable for a JSON API behind a reverse proxy: nosniff and frame denial
// always, cache suppression and browser feature policies on demand, and HSTS
// only when the request actually travelled over HTTPS.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SecurityOptions configures the header set emitted by SecurityHeaders.
type SecurityOptions struct {
	// EnableHSTS emits Strict-Transport-Security on HTTPS requests. Enable
	// only when traffic is HTTPS end-to-end, including proxy to app.
	EnableHSTS bool
	// HSTSMaxAge is the HSTS lifetime; non-positive values fall back to
	// 180 days.
	HSTSMaxAge time.Duration
	// NoStore adds Cache-Control: no-store plus the legacy Pragma/Expires
	// pair. Lead records carry phone numbers and emails, so production
	// deployments should keep this on.
	NoStore bool
	// EnablePolicy sends Permissions-Policy and
	// X-Permitted-Cross-Domain-Policies. Browsers honor them; other
	// clients ignore them.
	EnablePolicy bool
}

// exposedHeaders lists response headers set downstream (quota middleware,
// list caching) that browser clients must be allowed to read. None of them
// are on the CORS safelist.
var exposedHeaders = []string{
	"ETag",
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Reset",
	"Retry-After",
}

// SecurityHeaders returns middleware stamping the configured security
// headers on every response. It composes with the CORS and logging
// middleware and never overwrites an Access-Control-Expose-Headers value
// built up earlier in the chain.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	// The HSTS value never varies per request; render it once.
	hsts := "max-age=" + strconvItoa(hstsSeconds(opt.HSTSMaxAge)) + "; includeSubDomains; preload"

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		// RequestID runs earlier in the chain; quota and ETag headers are
		// written later. Either way browsers may read them.
		if h.Get("X-Request-ID") != "" {
			exposeHeader(h, "X-Request-ID")
		}
		for _, name := range exposedHeaders {
			exposeHeader(h, name)
		}

		c.Next()
	}
}

// hstsSeconds converts the configured lifetime to whole seconds, with a
// 180-day default for unset or non-positive values.
func hstsSeconds(d time.Duration) int {
	if s := int(d.Seconds()); s > 0 {
		return s
	}
	return int((180 * 24 * time.Hour).Seconds())
}

// exposeHeader appends name to Access-Control-Expose-Headers unless it is
// already present, preserving entries added by other middleware.
func exposeHeader(h http.Header, name string) {
	const key = "Access-Control-Expose-Headers"
	cur := h.Get(key)
	if cur == "" {
		h.Set(key, name)
		return
	}
	if !strings.Contains(cur, name) {
		h.Set(key, cur+", "+name)
	}
}

// isHTTPS reports whether the request arrived over TLS directly or behind a
// proxy that recorded X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}

// strconvItoa is a tiny decimal int formatter shared by the header-writing
// middleware, kept local so hot paths avoid importing strconv.
func strconvItoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	buf := make([]byte, 0, 20)
	for ; i > 0; i /= 10 {
		buf = append(buf, byte('0'+i%10))
	}
	if neg {
		buf = append(buf, '-')
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return string(buf)
}
