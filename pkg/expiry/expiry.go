// Package expiry provides a map whose entries disappear a fixed time after
// they were stored. Expired entries are purged lazily on access; there is no
// background goroutine.
package expiry

import (
	"sync"
	"time"
)

type item[V any] struct {
	value     V
	expiresAt time.Time
}

type Map[V any] struct {
	mu    sync.Mutex
	items map[string]item[V]
	ttl   time.Duration
	now   func() time.Time
}

func New[V any](ttl time.Duration) *Map[V] {
	return NewWithClock[V](ttl, time.Now)
}

func NewWithClock[V any](ttl time.Duration, now func() time.Time) *Map[V] {
	return &Map[V]{
		items: make(map[string]item[V]),
		ttl:   ttl,
		now:   now,
	}
}

func (m *Map[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	it, ok := m.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !m.now().Before(it.expiresAt) {
		delete(m.items, key)
		var zero V
		return zero, false
	}
	return it.value, true
}

// Set stores value and restarts its lifetime. Reads never extend it.
func (m *Map[V]) Set(key string, value V) {
	m.mu.Lock()
	m.items[key] = item[V]{value: value, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
}

func (m *Map[V]) Delete(key string) {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
}

// Len counts stored entries, including expired ones not yet purged.
func (m *Map[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
