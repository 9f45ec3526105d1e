package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is the in-process cache backend for single-instance deployments.
// The expirable LRU supports one TTL per cache, not per entry, so the ttl
// argument to Set is ignored in favor of the TTL fixed at construction; the
// order view workflow always passes the same 2-minute TTL anyway.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size < 1 {
		size = 1
	}
	return &Memory{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.lru.Add(key, value)
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.lru.Remove(key)
	return nil
}
