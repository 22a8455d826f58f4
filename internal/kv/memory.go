package kv

import (
	"sync"

	"github.com/bookishapp/bookish-core/internal/errors"
)

// Memory is an in-memory Adapter for tests. It records save counts so tests
// can assert that mutations mirror snapshots.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
	saves  map[string]int
}

// NewMemory creates an empty in-memory adapter.
func NewMemory() *Memory {
	return &Memory{
		values: make(map[string][]byte),
		saves:  make(map[string]int),
	}
}

// Load retrieves a stored value. Returns errors.ErrNotFound for absent keys.
func (m *Memory) Load(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	value, ok := m.values[key]
	if !ok {
		return nil, errors.NotFoundf("no snapshot under key %q", key)
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	return cp, nil
}

// Save stores a value under key.
func (m *Memory) Save(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := make([]byte, len(value))
	copy(cp, value)
	m.values[key] = cp
	m.saves[key]++
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// SaveCount reports how many times key has been saved.
func (m *Memory) SaveCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves[key]
}

// Put seeds a raw value without counting it as a save. Test helper.
func (m *Memory) Put(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}
