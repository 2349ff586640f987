package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Memory keeps slots in process memory.
type Memory struct {
	cache *cache.Cache
}

var _ Storage = (*Memory)(nil)

// NewMemory creates an in-memory store whose slots expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Memory{cache: cache.New(ttl, ttl/2)}
}

// Get implements Storage.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := checkKey(key); err != nil {
		return nil, false, err
	}
	x, found := m.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	stored := x.([]byte)
	dup := make([]byte, len(stored))
	copy(dup, stored)
	return dup, true, nil
}

// Set implements Storage.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	dup := make([]byte, len(value))
	copy(dup, value)
	m.cache.Set(key, dup, cache.DefaultExpiration)
	return nil
}

// Remove implements Storage.
func (m *Memory) Remove(_ context.Context, key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.cache.Delete(key)
	return nil
}
