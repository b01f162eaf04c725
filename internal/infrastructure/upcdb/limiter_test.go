package upcdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives the limiter deterministically: sleeping advances time.
type fakeClock struct {
	t     time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) sleep(d time.Duration) {
	f.slept = append(f.slept, d)
	f.t = f.t.Add(d)
}

func newTestLimiter(limit int, window time.Duration) (*windowLimiter, *fakeClock) {
	clock := newFakeClock()
	l := newWindowLimiter(limit, window)
	l.now = clock.now
	l.sleep = clock.sleep
	return l, clock
}

func TestWindowLimiter_WithinQuota(t *testing.T) {
	l, clock := newTestLimiter(2, time.Second)

	l.Acquire()
	l.Acquire()

	assert.Empty(t, clock.slept)
	assert.Equal(t, 2, l.count)
}

func TestWindowLimiter_BlocksUntilWindowElapses(t *testing.T) {
	l, clock := newTestLimiter(2, time.Second)

	l.Acquire()
	clock.t = clock.t.Add(300 * time.Millisecond)
	l.Acquire()

	// Third call inside the same window must wait for the remainder.
	l.Acquire()

	assert.Equal(t, []time.Duration{700 * time.Millisecond}, clock.slept)
	assert.Equal(t, 1, l.count)
}

func TestWindowLimiter_ResetsAfterWindow(t *testing.T) {
	l, clock := newTestLimiter(1, time.Second)

	l.Acquire()
	clock.t = clock.t.Add(time.Second)
	l.Acquire()

	assert.Empty(t, clock.slept)
	assert.Equal(t, 1, l.count)
}

func TestWindowLimiter_DefaultsZeroLimitToOne(t *testing.T) {
	l := newWindowLimiter(0, 0)

	assert.Equal(t, 1, l.limit)
	assert.Equal(t, time.Second, l.window)
}
