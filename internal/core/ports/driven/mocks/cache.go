package mocks

import (
	"context"
	"sync"
)

// MockEmbeddingCache is an in-memory EmbeddingCache for testing
type MockEmbeddingCache struct {
	mu      sync.Mutex
	entries map[string][]float32
	hits    int
	misses  int
}

// NewMockEmbeddingCache creates a new MockEmbeddingCache
func NewMockEmbeddingCache() *MockEmbeddingCache {
	return &MockEmbeddingCache{entries: make(map[string][]float32)}
}

func (m *MockEmbeddingCache) Get(ctx context.Context, model, text string) ([]float32, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	vec, ok := m.entries[model+"\x00"+text]
	if ok {
		m.hits++
	} else {
		m.misses++
	}
	return vec, ok, nil
}

func (m *MockEmbeddingCache) Set(ctx context.Context, model, text string, vector []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[model+"\x00"+text] = vector
	return nil
}

func (m *MockEmbeddingCache) Close() error {
	return nil
}

// Hits returns the number of cache hits
func (m *MockEmbeddingCache) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Misses returns the number of cache misses
func (m *MockEmbeddingCache) Misses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.misses
}
