package limiter

import (
	"context"
	"sync"
	"time"
)

type window struct {
	start time.Time
	count int
}

// MemoryLimiter is a fixed-window counter held in process memory.
type MemoryLimiter struct {
	mu        sync.Mutex
	max       int
	size      time.Duration
	now       func() time.Time
	windows   map[string]*window
	lastSweep time.Time
}

// NewMemoryLimiter allows max requests per key in every window of size.
func NewMemoryLimiter(max int, size time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		max:     max,
		size:    size,
		now:     time.Now,
		windows: make(map[string]*window),
	}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= l.size {
		for k, w := range l.windows {
			if now.Sub(w.start) >= l.size {
				delete(l.windows, k)
			}
		}
		l.lastSweep = now
	}

	w, ok := l.windows[key]
	if !ok || now.Sub(w.start) >= l.size {
		w = &window{start: now}
		l.windows[key] = w
	}
	if w.count >= l.max {
		return false, nil
	}
	w.count++
	return true, nil
}

// Reset forgets every window.
func (l *MemoryLimiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.windows = make(map[string]*window)
}
