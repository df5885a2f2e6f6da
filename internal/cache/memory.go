package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const defaultMemorySize = 64

// Memory is an in-process LRU with a single TTL applied to every entry.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory builds a memory cache holding at most size entries for ttl each.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = defaultMemorySize
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	val, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return val, nil
}

// Set stores the value. The per-call ttl is ignored in favour of the cache-wide TTL.
func (m *Memory) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.lru.Add(key, value)
	return nil
}

// Len reports the number of live entries.
func (m *Memory) Len() int {
	return m.lru.Len()
}

func (m *Memory) Close() error {
	m.lru.Purge()
	return nil
}
