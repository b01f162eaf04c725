package upcdb

import (
	"sync"
	"time"
)

// windowLimiter enforces the upstream quota of N requests per fixed window.
// The upstream API counts requests against fixed windows rather than a
// rolling bucket, so a token bucket would let bursts straddle a window edge
// and trip the quota; the counter has to reset exactly on rollover.
type windowLimiter struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	windowStart time.Time
	count       int

	// Injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
}

func newWindowLimiter(limit int, window time.Duration) *windowLimiter {
	if limit <= 0 {
		limit = 1
	}
	if window <= 0 {
		window = time.Second
	}
	return &windowLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Acquire blocks until the caller may issue a request without exceeding the
// quota. The whole check → sleep → increment sequence holds the mutex: a race
// here is a quota violation, not just a slowdown.
func (l *windowLimiter) Acquire() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.windowStart) >= l.window {
		l.windowStart = now
		l.count = 0
	}

	if l.count >= l.limit {
		if wait := l.window - now.Sub(l.windowStart); wait > 0 {
			l.sleep(wait)
		}
		l.windowStart = l.now()
		l.count = 0
	}

	l.count++
}
