// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements WriteQuota, the per-user business quota on write
// endpoints. It is distinct from the edge RateLimiter: the token bucket
// smooths bursts across all traffic, while WriteQuota enforces the product
// rule "an agent may create N buyers and apply M updates per hour" with
// exact fixed windows and client-visible accounting headers.
package middleware

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leadstack/buyer-intake/internal/ratelimit"
)

// quotaIdentity derives the bucket identity for a request.
//
// Order: authenticated user (context "userID", then the X-User-ID header),
// then the first X-Forwarded-For entry, then the client IP. Keys are
// prefixed ("user:", "ip:") so the namespaces cannot collide.
func quotaIdentity(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok && s != "" {
			return "user:" + s
		}
	}
	if uid := strings.TrimSpace(c.GetHeader("X-User-ID")); uid != "" {
		return "user:" + uid
	}
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return "ip:" + first
		}
	}
	if ip := c.ClientIP(); ip != "" {
		return "ip:" + ip
	}
	return "ip:unknown"
}

// WriteQuota returns a Gin middleware that charges one unit of cls against
// the caller's fixed-window quota before the handler runs.
//
// Every response (allowed or rejected) carries the accounting headers:
//
//	X-RateLimit-Limit:     class maximum per window
//	X-RateLimit-Remaining: units left in the current window
//	X-RateLimit-Reset:     window rollover instant, epoch milliseconds
//
// A rejected request is answered with 429, a Retry-After header (whole
// seconds until the window rolls over), and the class-specific message:
//
//	{
//	  "request_id": "<uuid>",
//	  "code":       "too_many_requests",
//	  "message":    "<cls.Message>",
//	  "remaining":  0,
//	  "resetAt":    "2025-04-12T11:00:00Z"
//	}
func WriteQuota(lim *ratelimit.Limiter, cls ratelimit.Class) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := quotaIdentity(c)
		res := lim.Check(cls, identity, 1)

		h := c.Writer.Header()
		h.Set("X-RateLimit-Limit", strconvItoa(res.Limit))
		h.Set("X-RateLimit-Remaining", strconvItoa(res.Remaining))
		h.Set("X-RateLimit-Reset", formatMilli(res.ResetAt))

		if res.Allowed {
			c.Next()
			return
		}

		ObserveQuotaRejection(cls.Name)
		LoggerFrom(c).Warn().
			Str("class", cls.Name).
			Str("identity", identity).
			Int("limit", res.Limit).
			Time("reset_at", res.ResetAt).
			Msg("write quota exceeded")

		retry := int(math.Ceil(time.Until(res.ResetAt).Seconds()))
		if retry < 1 {
			retry = 1
		}
		c.Header("Retry-After", strconvItoa(retry))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "too_many_requests",
			"message":    cls.Message,
			"remaining":  0,
			"resetAt":    res.ResetAt.UTC().Format(time.RFC3339),
		})
	}
}

// formatMilli renders t as epoch milliseconds for the X-RateLimit-Reset header.
func formatMilli(t time.Time) string {
	ms := t.UnixMilli()
	if ms < 0 {
		return "0"
	}
	// strconvItoa takes an int; epoch millis fit until year 292278994.
	return strconvItoa(int(ms))
}
