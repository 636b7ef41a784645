package utils

import (
	"sync"
	"time"
)

// RateLimiter admits at most one call per delay window
type RateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	delay    time.Duration
	now      func() time.Time
}

// NewRateLimiter creates a new RateLimiter with the given delay in milliseconds
func NewRateLimiter(delayMs int) *RateLimiter {
	return &RateLimiter{
		delay: time.Duration(delayMs) * time.Millisecond,
		now:   time.Now,
	}
}

// Allow reports whether a call may proceed now and, if so, records it
func (r *RateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if !r.lastCall.IsZero() && now.Sub(r.lastCall) < r.delay {
		return false
	}
	r.lastCall = now
	return true
}

// RetryAfter returns how long until the next call would be allowed
func (r *RateLimiter) RetryAfter() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.lastCall.IsZero() {
		return 0
	}
	remaining := r.delay - r.now().Sub(r.lastCall)
	if remaining < 0 {
		return 0
	}
	return remaining
}
