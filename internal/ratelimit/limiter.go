// Package ratelimit implements the in-memory fixed-window counter that
// bounds write traffic per caller identity.
//
// Time is partitioned into epoch-aligned buckets of the class window
// length; a counter is keyed by (class, identity, bucket start). Checking
// consumes units from the current bucket or rejects without mutating it.
// Expired buckets are purged by a background sweeper whose cadence is
// independent of request traffic.
//
// Notes:
//   - The limiter is process-local. For horizontally scaled deployments,
//     prefer a distributed limiter (e.g., Redis-backed) to enforce global
//     limits.
//   - Construct one Limiter per process and inject it wherever requests are
//     served; there is no package-level instance.
package ratelimit

import (
	"sync"
	"time"
)

// Class describes one protected operation class: how many requests an
// identity may make per window and the message returned on rejection.
type Class struct {
	Name    string
	Window  time.Duration
	Max     int
	Message string
}

// Result reports the outcome of a limiter call.
//
// Remaining is the number of units still available in the current bucket
// after the call; rejected calls always report 0. ResetAt is the instant
// the bucket rolls over and counting restarts.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type bucketKey struct {
	class    string
	identity string
	start    int64
}

type bucket struct {
	count   int
	resetMs int64
}

// Limiter is a fixed-window request counter safe for concurrent use. All
// reads and increments for a bucket run under one mutex, so concurrent
// requests from the same identity can never overshoot the class maximum.
type Limiter struct {
	mu       sync.Mutex
	counters map[bucketKey]*bucket

	sweepEvery time.Duration
	done       chan struct{}
	stopOnce   sync.Once

	now func() time.Time // test seam
}

// DefaultSweepInterval is how often expired buckets are purged when no
// interval is configured.
const DefaultSweepInterval = time.Minute

// New constructs a Limiter and starts its background sweeper. Call Stop
// when the owning process shuts down.
func New(sweepEvery time.Duration) *Limiter {
	if sweepEvery <= 0 {
		sweepEvery = DefaultSweepInterval
	}
	l := &Limiter{
		counters:   make(map[bucketKey]*bucket),
		sweepEvery: sweepEvery,
		done:       make(chan struct{}),
		now:        time.Now,
	}
	go l.sweepLoop()
	return l
}

// Stop terminates the background sweeper. Safe to call more than once.
func (l *Limiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

func (l *Limiter) sweepLoop() {
	t := time.NewTicker(l.sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-l.done:
			return
		case now := <-t.C:
			l.removeExpired(now)
		}
	}
}

// removeExpired drops every bucket whose reset time has passed. It holds
// the same lock as the request path, briefly.
func (l *Limiter) removeExpired(now time.Time) {
	nowMs := now.UnixMilli()
	l.mu.Lock()
	defer l.mu.Unlock()
	for k, b := range l.counters {
		if b.resetMs <= nowMs {
			delete(l.counters, k)
		}
	}
}

// window returns the current bucket key and reset instant for cls/identity.
func (l *Limiter) window(cls Class, identity string, nowMs int64) (bucketKey, int64) {
	win := cls.Window.Milliseconds()
	start := nowMs / win * win
	return bucketKey{class: cls.Name, identity: identity, start: start}, start + win
}

// Check consumes n units (at least one) from the identity's current bucket.
// If consuming would exceed the class maximum the request is rejected and
// the counter is left untouched.
func (l *Limiter) Check(cls Class, identity string, n int) Result {
	if n <= 0 {
		n = 1
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key, resetMs := l.window(cls, identity, l.now().UnixMilli())
	b, ok := l.counters[key]
	if !ok {
		b = &bucket{resetMs: resetMs}
		l.counters[key] = b
	}
	reset := time.UnixMilli(resetMs).UTC()
	if b.count+n > cls.Max {
		return Result{Allowed: false, Limit: cls.Max, Remaining: 0, ResetAt: reset}
	}
	b.count += n
	return Result{Allowed: true, Limit: cls.Max, Remaining: cls.Max - b.count, ResetAt: reset}
}

// Status reports the identity's current bucket without consuming anything.
func (l *Limiter) Status(cls Class, identity string) Result {
	l.mu.Lock()
	defer l.mu.Unlock()

	key, resetMs := l.window(cls, identity, l.now().UnixMilli())
	reset := time.UnixMilli(resetMs).UTC()
	count := 0
	if b, ok := l.counters[key]; ok {
		count = b.count
	}
	remaining := cls.Max - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{Allowed: count < cls.Max, Limit: cls.Max, Remaining: remaining, ResetAt: reset}
}

// Reset clears the identity's current bucket. Administrative and test use.
func (l *Limiter) Reset(cls Class, identity string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	key, _ := l.window(cls, identity, l.now().UnixMilli())
	delete(l.counters, key)
}

// Size reports how many live buckets the limiter is tracking.
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}
