package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

type window struct {
	count   int64
	resetAt time.Time
}

// MemoryStore is a process-local CounterStore. Expired windows are reclaimed
// by a periodic sweep rather than only lazily on the next hit, so stale keys
// do not accumulate in long-running deployments.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		windows: make(map[string]*window),
		now:     time.Now,
	}
}

func (m *MemoryStore) Incr(_ context.Context, key string, windowDur time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	w, ok := m.windows[key]
	if !ok || now.After(w.resetAt) {
		m.windows[key] = &window{count: 1, resetAt: now.Add(windowDur)}
		return 1, nil
	}

	w.count++
	return w.count, nil
}

// Sweep removes all expired windows.
func (m *MemoryStore) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, w := range m.windows {
		if now.After(w.resetAt) {
			delete(m.windows, key)
		}
	}
}

// Len reports the number of tracked keys.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.windows)
}

// StartSweeper schedules Sweep on a cron every 5 minutes and returns the
// scheduler so the caller can Stop it on shutdown.
func (m *MemoryStore) StartSweeper() *cron.Cron {
	c := cron.New()
	_, _ = c.AddFunc("@every 5m", m.Sweep)
	c.Start()
	return c
}
