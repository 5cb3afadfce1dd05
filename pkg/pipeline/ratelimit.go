package pipeline

import (
	"sync"
	"time"
)

// rateLimiter counts alerts per source over a trailing window. In-memory
// only: the ceiling protects humans from alert floods, a restart resetting
// the counters is harmless.
type rateLimiter struct {
	mu     sync.Mutex
	window time.Duration
	events map[int64][]time.Time
	now    func() time.Time
}

func newRateLimiter(window time.Duration) *rateLimiter {
	return &rateLimiter{
		window: window,
		events: make(map[int64][]time.Time),
		now:    time.Now,
	}
}

// allow checks the trailing-window count for a source against the limit
// and records the event when admitted. A limit <= 0 means unlimited.
func (r *rateLimiter) allow(sourceID int64, limit int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	kept := r.prune(sourceID, now)

	if limit > 0 && len(kept) >= limit {
		return false
	}
	r.events[sourceID] = append(kept, now)
	return true
}

// record counts an alert against the window without checking the limit,
// used by the VIP/pinned bypass path: the alert still happened.
func (r *rateLimiter) record(sourceID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	r.events[sourceID] = append(r.prune(sourceID, now), now)
}

// prune drops events older than the window, caller holds the lock
func (r *rateLimiter) prune(sourceID int64, now time.Time) []time.Time {
	cutoff := now.Add(-r.window)
	events := r.events[sourceID]
	kept := events[:0]
	for _, t := range events {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		delete(r.events, sourceID)
		return nil
	}
	return kept
}
