package storage

import (
	"sync"
	"time"
)

// RateLimiter is a sliding window limiter keyed by an arbitrary string,
// usually "bucket:clientIP".
type RateLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
}

// NewRateLimiter creates a new RateLimiter.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		requests: make(map[string][]time.Time),
	}
}

// Allow records a request at now unless limit requests already happened
// within window, its start included. When the request is rejected it returns how long to wait
// until the oldest request leaves the window, never less than a second.
func (l *RateLimiter) Allow(key string, limit int, window time.Duration, now time.Time) (bool, time.Duration) {
	if limit <= 0 {
		return false, window
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	recent := l.requests[key][:0]
	for _, t := range l.requests[key] {
		if now.Sub(t) <= window {
			recent = append(recent, t)
		}
	}

	if len(recent) >= limit {
		l.requests[key] = recent
		retry := window - now.Sub(recent[0])
		if retry < time.Second {
			retry = time.Second
		}
		return false, retry
	}

	l.requests[key] = append(recent, now)
	return true, 0
}

// Prune drops keys without requests younger than maxWindow.
func (l *RateLimiter) Prune(now time.Time, maxWindow time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	var removed int
	for key, times := range l.requests {
		if len(times) == 0 || now.Sub(times[len(times)-1]) > maxWindow {
			delete(l.requests, key)
			removed++
		}
	}
	return removed
}
