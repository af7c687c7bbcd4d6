package store

import (
	"context"
	"sync"
)

// MemoryKV is an in-memory KV. It is safe for concurrent use.
//
// The Fail* fields inject failures and exist for tests of callers that must
// survive an unavailable store.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool

	FailGet  error // returned by every Get when non-nil
	FailSet  error // returned by every Set when non-nil
	PanicGet bool  // Get panics when true
}

// NewMemoryKV creates an empty in-memory KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get retrieves a value.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.PanicGet {
		panic("memory kv: injected panic")
	}
	if m.FailGet != nil {
		return "", false, m.FailGet
	}
	if m.closed {
		return "", false, ErrClosed
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores a value.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSet != nil {
		return m.FailSet
	}
	if m.closed {
		return ErrClosed
	}
	m.data[key] = value
	return nil
}

// Raw writes a value directly, bypassing failure injection.
func (m *MemoryKV) Raw(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// Len returns the number of stored keys.
func (m *MemoryKV) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Close marks the store closed.
func (m *MemoryKV) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

var _ KV = (*MemoryKV)(nil)
