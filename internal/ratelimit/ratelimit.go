// Package ratelimit implements sliding-window request admission control keyed
// by client identity. The pipeline consults a Limiter before doing any work
// for an inbound message; a denial is the only non-success exit before
// configuration is even resolved.
//
// Two implementations are provided:
//   - SlidingWindow: in-memory per-identity timestamp windows. Process-local;
//     not suitable when the service runs as multiple replicas.
//   - Redis (redis.go): sorted-set windows in a shared Redis, for
//     horizontally scaled deployments.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Default admission parameters: at most 30 admitted requests per identity in
// any trailing 60-second window.
const (
	DefaultLimit  = 30
	DefaultWindow = 60 * time.Second
)

// Limiter decides whether a request from the given identity is admitted at
// instant now. Implementations must make the read-then-record sequence atomic
// per identity: two concurrent calls may not both be admitted when only one
// slot remains in the window.
type Limiter interface {
	Allow(ctx context.Context, identity string, now time.Time) (bool, error)
}

// window holds the admission timestamps of one identity, newest last, plus
// the last time the identity was seen at all (for eviction).
type window struct {
	stamps   []time.Time
	lastSeen time.Time
}

// SlidingWindow is an in-memory sliding-window limiter.
//
// Each identity keeps the timestamps of its admitted requests within the
// trailing window. On every call, expired timestamps are discarded first; the
// current instant is recorded only when the request is admitted, so rejected
// attempts never inflate the window count.
//
// Idle identities are evicted opportunistically during lookups to bound
// memory. The type is safe for concurrent use.
type SlidingWindow struct {
	limit  int
	window time.Duration

	mu       sync.Mutex
	windows  map[string]*window
	ttl      time.Duration
	cleanupN uint64
}

// NewSlidingWindow constructs a SlidingWindow limiter admitting at most limit
// requests per identity within the trailing window. Non-positive arguments
// fall back to the package defaults.
func NewSlidingWindow(limit int, windowLen time.Duration) *SlidingWindow {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if windowLen <= 0 {
		windowLen = DefaultWindow
	}
	return &SlidingWindow{
		limit:   limit,
		window:  windowLen,
		windows: make(map[string]*window),
		ttl:     10 * time.Minute, // evict identities idle for TTL
	}
}

// Allow reports whether a request from identity is admitted at now.
//
// The decision and the recording of now happen under one critical section:
// expired timestamps are dropped, the remaining count is compared against the
// limit, and only an admitted request appends its timestamp. The error return
// exists to satisfy Limiter; the in-memory implementation never fails.
func (l *SlidingWindow) Allow(_ context.Context, identity string, now time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Opportunistic cleanup after a threshold of lookups. Run it before
	// touching the requested window so an idle identity can be evicted even
	// when it is the one being fetched.
	l.cleanupN++
	if l.cleanupN >= 5000 {
		for k, w := range l.windows {
			if now.Sub(w.lastSeen) >= l.ttl {
				delete(l.windows, k)
			}
		}
		l.cleanupN = 0
	}

	w, ok := l.windows[identity]
	if !ok {
		w = &window{}
		l.windows[identity] = w
	}
	w.lastSeen = now

	// Drop timestamps that fell out of the trailing window. Stamps are
	// append-ordered, so everything from the first valid index on survives.
	cutoff := now.Add(-l.window)
	keep := 0
	for keep < len(w.stamps) && w.stamps[keep].Before(cutoff) {
		keep++
	}
	if keep > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[keep:]...)
	}

	if len(w.stamps) >= l.limit {
		// Denied: now is NOT recorded, so rejected attempts do not extend
		// the lockout.
		return false, nil
	}

	w.stamps = append(w.stamps, now)
	return true, nil
}

// Pending returns how many admitted timestamps identity currently holds
// inside the window ending at now. Intended for tests and diagnostics.
func (l *SlidingWindow) Pending(identity string, now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[identity]
	if !ok {
		return 0
	}
	cutoff := now.Add(-l.window)
	n := 0
	for _, ts := range w.stamps {
		if !ts.Before(cutoff) {
			n++
		}
	}
	return n
}
