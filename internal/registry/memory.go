package registry

import (
	"context"
	"slices"
	"sync"
)

type memoryRegistry struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewMemory returns a process-local registry.
func NewMemory() Registry {
	return &memoryRegistry{ids: make(map[int64]struct{})}
}

func (m *memoryRegistry) Contains(_ context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.ids[id]
	return ok, nil
}

func (m *memoryRegistry) Insert(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids[id] = struct{}{}
	return nil
}

func (m *memoryRegistry) All(_ context.Context) ([]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]int64, 0, len(m.ids))
	for id := range m.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out, nil
}

func (m *memoryRegistry) Close() error { return nil }
