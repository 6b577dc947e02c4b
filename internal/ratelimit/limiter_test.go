package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func testClass(max int) Class {
	return Class{Name: "create", Window: time.Hour, Max: max, Message: "slow down"}
}

func newTestLimiter(t *testing.T) *Limiter {
	t.Helper()
	l := New(time.Hour) // sweeper idle during tests
	t.Cleanup(l.Stop)
	return l
}

func TestCheck_ConsumeAndReject(t *testing.T) {
	l := newTestLimiter(t)
	cls := testClass(3)

	for i, wantRemaining := range []int{2, 1, 0} {
		res := l.Check(cls, "user:u1", 1)
		if !res.Allowed {
			t.Fatalf("call %d rejected; want allowed", i+1)
		}
		if res.Remaining != wantRemaining {
			t.Fatalf("call %d remaining = %d; want %d", i+1, res.Remaining, wantRemaining)
		}
		if res.Limit != 3 {
			t.Fatalf("call %d limit = %d; want 3", i+1, res.Limit)
		}
	}

	res := l.Check(cls, "user:u1", 1)
	if res.Allowed {
		t.Fatal("fourth call allowed; want rejected")
	}
	if res.Remaining != 0 {
		t.Fatalf("rejected remaining = %d; want 0", res.Remaining)
	}
	if !res.ResetAt.After(time.Now().Add(-time.Second)) {
		t.Fatalf("ResetAt = %v; want a future instant", res.ResetAt)
	}

	// Rejection must not have consumed anything: reset then check again.
	l.Reset(cls, "user:u1")
	res = l.Check(cls, "user:u1", 1)
	if !res.Allowed || res.Remaining != 2 {
		t.Fatalf("post-reset check = %+v; want allowed with remaining 2", res)
	}
}

func TestCheck_RejectionDoesNotMutate(t *testing.T) {
	l := newTestLimiter(t)
	cls := testClass(3)

	l.Check(cls, "user:u1", 2)
	if res := l.Check(cls, "user:u1", 2); res.Allowed {
		t.Fatal("overshooting consume allowed; want rejected")
	}
	// One unit is still available because the rejected call left the
	// counter untouched.
	if res := l.Check(cls, "user:u1", 1); !res.Allowed || res.Remaining != 0 {
		t.Fatalf("follow-up check = %+v; want allowed with remaining 0", res)
	}
}

func TestCheck_IdentitiesAndClassesIsolated(t *testing.T) {
	l := newTestLimiter(t)
	create := Class{Name: "create", Window: time.Hour, Max: 1}
	update := Class{Name: "update", Window: time.Hour, Max: 1}

	if res := l.Check(create, "user:u1", 1); !res.Allowed {
		t.Fatal("first u1 create rejected")
	}
	if res := l.Check(create, "ip:10.0.0.1", 1); !res.Allowed {
		t.Fatal("distinct identity was throttled by u1's bucket")
	}
	if res := l.Check(update, "user:u1", 1); !res.Allowed {
		t.Fatal("distinct class was throttled by the create bucket")
	}
	if res := l.Check(create, "user:u1", 1); res.Allowed {
		t.Fatal("u1's exhausted create bucket allowed another request")
	}
}

func TestStatus_NonConsuming(t *testing.T) {
	l := newTestLimiter(t)
	cls := testClass(3)

	for i := 0; i < 5; i++ {
		res := l.Status(cls, "user:u1")
		if !res.Allowed || res.Remaining != 3 {
			t.Fatalf("status poll %d = %+v; want allowed with remaining 3", i, res)
		}
	}

	l.Check(cls, "user:u1", 3)
	res := l.Status(cls, "user:u1")
	if res.Allowed || res.Remaining != 0 {
		t.Fatalf("exhausted status = %+v; want not allowed, remaining 0", res)
	}
}

func TestCheck_WindowAlignedToEpoch(t *testing.T) {
	l := newTestLimiter(t)
	cls := Class{Name: "create", Window: time.Hour, Max: 1}

	base := time.Date(2025, 4, 12, 10, 59, 0, 0, time.UTC)
	l.now = func() time.Time { return base }

	res := l.Check(cls, "user:u1", 1)
	wantReset := time.Date(2025, 4, 12, 11, 0, 0, 0, time.UTC)
	if !res.ResetAt.Equal(wantReset) {
		t.Fatalf("ResetAt = %v; want top of the hour %v", res.ResetAt, wantReset)
	}
	if res := l.Check(cls, "user:u1", 1); res.Allowed {
		t.Fatal("bucket should be exhausted before rollover")
	}

	// Two minutes later the epoch-aligned bucket has rolled over.
	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	if res := l.Check(cls, "user:u1", 1); !res.Allowed {
		t.Fatal("fresh bucket after rollover rejected")
	}
}

func TestRemoveExpired(t *testing.T) {
	l := newTestLimiter(t)
	cls := testClass(3)

	base := time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)
	l.now = func() time.Time { return base }
	l.Check(cls, "user:u1", 1)
	l.Check(cls, "ip:10.0.0.1", 1)
	if l.Size() != 2 {
		t.Fatalf("Size = %d; want 2 live buckets", l.Size())
	}

	// Before the reset instant nothing is purged.
	l.removeExpired(base.Add(20 * time.Minute))
	if l.Size() != 2 {
		t.Fatalf("Size = %d after early sweep; want 2", l.Size())
	}

	l.removeExpired(base.Add(31 * time.Minute))
	if l.Size() != 0 {
		t.Fatalf("Size = %d after sweep; want 0", l.Size())
	}
}

func TestCheck_ConcurrentNoOvercount(t *testing.T) {
	l := newTestLimiter(t)
	cls := testClass(3)

	const callers = 10
	var (
		start   = make(chan struct{})
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer wg.Done()
			<-start
			if l.Check(cls, "user:u1", 1).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	close(start)
	wg.Wait()

	if allowed != 3 {
		t.Fatalf("allowed = %d of %d concurrent calls; want exactly 3", allowed, callers)
	}
}

func TestStop_Idempotent(t *testing.T) {
	l := New(10 * time.Millisecond)
	l.Stop()
	l.Stop()
}
