// internal/store/memory.go
//
// In-memory implementation of the KV interface.
// Used by tests and by the HTTP server when no database is configured.
//
// Characteristics:
//   - Stores raw values keyed by string in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for missing keys.

package store

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("store: not found")

// KV is the single-key record storage used by the persistence adapter.
// Implementations may be backed by memory (this file), SQLite, etc.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
}

// memory is an in-memory map-based KV implementation.
type memory struct {
	mu     sync.RWMutex      // guards values map
	values map[string][]byte // keyed by record key
}

// NewMemoryKV constructs a new in-memory KV.
func NewMemoryKV() KV {
	return &memory{values: make(map[string][]byte)}
}

// Put stores a copy of value under key.
func (m *memory) Put(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Get returns a copy of the stored value or ErrNotFound.
func (m *memory) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.values[key]; ok {
		return append([]byte(nil), v...), nil
	}
	return nil, ErrNotFound
}
