package homepage

import (
	"sync"
	"time"
)

// UpstreamLimiter caps outgoing API calls per upstream host in a sliding
// window, keeping the refresher under public rate limits.
type UpstreamLimiter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	max      int
	window   time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewUpstreamLimiter creates an UpstreamLimiter that allows max calls per window.
func NewUpstreamLimiter(max int, window time.Duration) *UpstreamLimiter {
	l := &UpstreamLimiter{
		attempts: make(map[string][]time.Time),
		max:      max,
		window:   window,
		stop:     make(chan struct{}),
	}
	go l.cleanup()
	return l
}

func (l *UpstreamLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
		}
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for host, hits := range l.attempts {
			kept := prune(hits, cutoff)
			if len(kept) == 0 {
				delete(l.attempts, host)
			} else {
				l.attempts[host] = kept
			}
		}
		l.mu.Unlock()
	}
}

// Allow checks if host is under the limit and records the call.
func (l *UpstreamLimiter) Allow(host string) bool {
	if !l.Check(host) {
		return false
	}
	l.Record(host)
	return true
}

// Check returns true if host has not exceeded the limit. It does not record
// a call.
func (l *UpstreamLimiter) Check(host string) bool {
	cutoff := time.Now().Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := prune(l.attempts[host], cutoff)
	l.attempts[host] = kept
	return len(kept) < l.max
}

// Record registers a call to host.
func (l *UpstreamLimiter) Record(host string) {
	l.mu.Lock()
	l.attempts[host] = append(l.attempts[host], time.Now())
	l.mu.Unlock()
}

// Stop ends the background cleanup.
func (l *UpstreamLimiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func prune(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
