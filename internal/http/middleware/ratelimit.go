// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file holds the edge rate limiter: one in-memory token bucket per
// caller identity, with idle buckets swept opportunistically so the map
// stays bounded. It protects the process from bursts and scripted abuse;
// the per-user business quotas on write endpoints are enforced separately
// by WriteQuota.
//
// The limiter is process-local. Horizontally scaled deployments need a
// shared limiter (e.g. Redis-backed) to enforce a global ceiling.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// bucketTTL is how long an idle bucket survives before a sweep may
	// evict it.
	bucketTTL = 10 * time.Minute
	// sweepEvery is the number of lookups between opportunistic sweeps.
	sweepEvery = 5000
)

// keyFunc maps a request to the identity that owns its token bucket.
// Implementations must return a stable string for the life of a request,
// e.g. "user:<id>" or "ip:<addr>".
type keyFunc func(*gin.Context) string

// KeyByUserOrIP prefers the authenticated user id (set under "userID" by the
// auth layer) and falls back to the client IP. Keys carry a namespace prefix
// so user and IP identities can never collide.
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if id := c.GetString("userID"); id != "" {
			return "user:" + id
		}
		return "ip:" + c.ClientIP()
	}
}

// bucket pairs a token bucket with the last time its owner was seen.
type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimiter hands out one token bucket per identity, creating buckets on
// demand and evicting idle ones during lookups. Safe for concurrent use.
type RateLimiter struct {
	rps   rate.Limit
	burst int
	keyFn keyFunc

	mu      sync.Mutex
	buckets map[string]*bucket
	lookups uint64
}

// NewRateLimiter returns a limiter replenishing rps tokens per second with
// the given burst capacity, keyed by keyFn. Burst values <= 0 are coerced
// to 1 so a misconfigured limiter still admits single requests.
func NewRateLimiter(rps float64, burst int, keyFn keyFunc) *RateLimiter {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		rps:     rate.Limit(rps),
		burst:   burst,
		keyFn:   keyFn,
		buckets: make(map[string]*bucket),
	}
}

// sweepLocked drops buckets idle for bucketTTL or longer. Callers hold mu.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	for k, b := range rl.buckets {
		if now.Sub(b.seen) >= bucketTTL {
			delete(rl.buckets, k)
		}
	}
}

// bucketFor returns the token bucket for key, creating it if absent. Every
// sweepEvery lookups the idle sweep runs first, before the requested entry
// is touched, so a stale bucket is evicted even when it is the one being
// fetched.
func (rl *RateLimiter) bucketFor(key string) *rate.Limiter {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.lookups++
	if rl.lookups >= sweepEvery {
		rl.sweepLocked(now)
		rl.lookups = 0
	}

	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{lim: rate.NewLimiter(rl.rps, rl.burst)}
		rl.buckets[key] = b
	}
	b.seen = now
	return b.lim
}

// Handler enforces the per-identity limit. Rejections answer 429 with the
// standard error envelope fields and a minimal Retry-After header.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.bucketFor(rl.keyFn(c)).Allow() {
			c.Next()
			return
		}

		c.Header("Retry-After", "1")
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"code":       "too_many_requests",
			"message":    "rate limit exceeded",
		})
	}
}
