package rate

import (
	"sync"
	"time"
)

// Limiter is a per-key request counter over a fixed window.
type Limiter interface {
	Allow(key string, limit int, window time.Duration) (bool, time.Duration)
}

// MemoryLimiter keeps fixed-window counters in process memory. Counters are
// shared by all requests on this instance; nothing is coordinated across
// instances.
type MemoryLimiter struct {
	mu    sync.Mutex
	store map[string]*window
}

type window struct {
	count   int
	resetAt time.Time
}

// NewMemory creates an empty in-memory limiter.
func NewMemory() *MemoryLimiter {
	return &MemoryLimiter{store: make(map[string]*window)}
}

// Allow records a request against key and reports whether it fits in the
// current window, along with the time until the window resets.
func (m *MemoryLimiter) Allow(key string, limit int, windowSize time.Duration) (bool, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	w, ok := m.store[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(windowSize)}
		m.store[key] = w
	}

	if w.count >= limit {
		return false, time.Until(w.resetAt)
	}

	w.count++
	return true, time.Until(w.resetAt)
}
