package ratelimit

import (
	"sync"
	"time"
)

// MemoryLimiter is a sliding-window limiter keeping per-key submission
// timestamps in process memory. State survives across requests within
// one instance and is lost on restart; under horizontal scaling each
// instance counts independently.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string][]time.Time
	window  time.Duration
	max     int
	now     func() time.Time
}

// NewMemoryLimiter creates a limiter allowing max attempts per key
// within the trailing window.
func NewMemoryLimiter(window time.Duration, max int) *MemoryLimiter {
	l := &MemoryLimiter{
		windows: make(map[string][]time.Time),
		window:  window,
		max:     max,
		now:     time.Now,
	}
	// Periodically evict idle keys to prevent memory growth.
	go l.cleanup()
	return l
}

// Allow prunes the key's window to the trailing duration, then either
// denies (count already at max, pruned window kept, attempt not
// recorded) or records the attempt and allows.
func (l *MemoryLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.windows[key][:0]
	for _, ts := range l.windows[key] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.max {
		l.windows[key] = kept
		return false
	}

	l.windows[key] = append(kept, now)
	return true
}

func (l *MemoryLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.mu.Lock()
		cutoff := l.now().Add(-l.window)
		for key, window := range l.windows {
			if len(window) == 0 || !window[len(window)-1].After(cutoff) {
				delete(l.windows, key)
			}
		}
		l.mu.Unlock()
	}
}

var _ Limiter = (*MemoryLimiter)(nil)
