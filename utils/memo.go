package utils

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo caches one computed value per key for the life of the process.
// Entries never expire; they change only through Set, Invalidate or Clear.
type Memo[T any] struct {
	mu      sync.Mutex
	entries map[string]T
	group   singleflight.Group
}

// NewMemo creates an empty memo
func NewMemo[T any]() *Memo[T] {
	return &Memo[T]{entries: make(map[string]T)}
}

// Get returns the cached value for key, computing it with fn on a miss.
// Concurrent misses for the same key share a single fn call. Errors are
// not cached.
func (m *Memo[T]) Get(key string, fn func() (T, error)) (T, error) {
	m.mu.Lock()
	if v, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do(key, func() (interface{}, error) {
		// another caller may have filled the entry while we waited
		m.mu.Lock()
		if cached, ok := m.entries[key]; ok {
			m.mu.Unlock()
			return cached, nil
		}
		m.mu.Unlock()

		computed, err := fn()
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.entries[key] = computed
		m.mu.Unlock()
		return computed, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Set stores v under key, replacing any cached value
func (m *Memo[T]) Set(key string, v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = v
}

// Invalidate drops the entry for key, if any
func (m *Memo[T]) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear drops every entry
func (m *Memo[T]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]T)
}

// Len returns the number of cached entries
func (m *Memo[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
