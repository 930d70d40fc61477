package cache

import (
	"context"
	"sync"
	"time"
)

// MockCache is an in-memory Cache used in tests and when Redis is not
// configured. TTLs are ignored; entries live for the process lifetime.
type MockCache struct {
	mu     sync.Mutex
	data   map[string]struct{}
	prefix string
}

func NewMockCache(prefix string) *MockCache {
	return &MockCache{
		data:   make(map[string]struct{}),
		prefix: prefix,
	}
}

func (m *MockCache) Close() error {
	return nil
}

func (m *MockCache) IsFetched(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, exists := m.data[m.prefix+key]
	return exists, nil
}

func (m *MockCache) MarkFetched(ctx context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.prefix+key] = struct{}{}
	return nil
}
