package mirror

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// NewMemoryMirror returns a process-local Mirror. Used when no Redis is
// configured and as a test double.
func NewMemoryMirror() *MemoryMirror {
	return &MemoryMirror{entries: make(map[string][]byte)}
}

type MemoryMirror struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func (m *MemoryMirror) Load(_ context.Context, key string, v any) error {
	m.mu.RLock()
	data, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (m *MemoryMirror) Save(_ context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryMirror) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}
