// Package ratelimit throttles assistant queries per user.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Limiter decides whether another request for key fits in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

// Memory implements a sliding-window limiter held in process memory.
// Keys are user IDs so a client cannot bypass throttling by reconnecting.
type Memory struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewMemory creates a limiter and starts the background eviction goroutine.
func NewMemory(limit int, window time.Duration) *Memory {
	m := &Memory{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
		done:     make(chan struct{}),
	}
	go m.evictLoop()
	return m
}

// Allow records a request for key unless the limit has been reached.
func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	recent := m.fresh(m.requests[key], now.Add(-m.window))
	if len(recent) >= m.limit {
		m.requests[key] = recent
		return false, nil
	}

	m.requests[key] = append(recent, now)
	return true, nil
}

// Close stops the eviction goroutine.
func (m *Memory) Close() error {
	m.stopOnce.Do(func() { close(m.done) })
	return nil
}

func (m *Memory) fresh(times []time.Time, cutoff time.Time) []time.Time {
	var out []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			out = append(out, t)
		}
	}
	return out
}

// evict drops keys whose requests have all aged out of the window.
func (m *Memory) evict() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.window)
	for key, times := range m.requests {
		fresh := m.fresh(times, cutoff)
		if len(fresh) == 0 {
			delete(m.requests, key)
		} else {
			m.requests[key] = fresh
		}
	}
}

func (m *Memory) evictLoop() {
	ticker := time.NewTicker(m.window)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evict()
		}
	}
}

func (m *Memory) tracked() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
