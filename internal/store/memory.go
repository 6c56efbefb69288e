package store

import (
	"context"
	"sync"
)

// Memory is an in-memory, concurrency-safe Store.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value   []byte
	version int64
}

// NewMemory constructs an empty Memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, 0, nil
	}
	return append([]byte(nil), e.value...), e.version, nil
}

// Put stores value under key if the current version equals version.
func (m *Memory) Put(_ context.Context, key string, value []byte, version int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.entries[key].version != version {
		return 0, ErrConflict
	}
	next := version + 1
	m.entries[key] = memoryEntry{value: append([]byte(nil), value...), version: next}
	return next, nil
}
