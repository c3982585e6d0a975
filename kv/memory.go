package kv

import (
	"context"
	"sync"

	"github.com/samber/mo"
)

// Memory is a volatile Store.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (mo.Option[string], error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if value, ok := m.values[key]; ok {
		return mo.Some(value), nil
	}
	return mo.None[string](), nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
