package store

import (
	"bytes"
	"sync"
)

type artifactKey struct {
	key, target string
}

// Memory is an in-memory store.
type Memory struct {
	mu   sync.RWMutex
	data map[artifactKey][]byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[artifactKey][]byte)}
}

// Get returns a copy of the stored artifact.
func (m *Memory) Get(key, target string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.data[artifactKey{key, target}]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(b), true, nil
}

// Put stores a copy of data.
func (m *Memory) Put(key, target string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[artifactKey{key, target}] = bytes.Clone(data)
	return nil
}

// Delete removes every target stored under key.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if k.key == key {
			delete(m.data, k)
		}
	}
	return nil
}

// Len returns the number of stored artifacts.
func (m *Memory) Len() (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data), nil
}

// Close is a no-op for the memory store.
func (m *Memory) Close() error {
	return nil
}
