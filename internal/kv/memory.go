package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory is a non-persistent Store for tests and local development.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]json.RawMessage
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]json.RawMessage)}
}

func (m *Memory) Get(_ context.Context, key string, dest any) error {
	m.mu.RLock()
	raw, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decoding value for %q: %w", key, err)
	}
	return nil
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding value for %q: %w", key, err)
	}
	m.mu.Lock()
	m.entries[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
