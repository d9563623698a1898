// Package storage persists the issue collection into a single durable
// key-value slot and seeds sample data for first runs.
package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Get when nothing has been stored under the key.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a durable string value addressed by key.
type Slot interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// MemorySlot keeps values in process memory. It backs tests and the default
// "memory" backend.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: make(map[string]string)}
}

func (m *MemorySlot) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrSlotEmpty
	}
	return v, nil
}

func (m *MemorySlot) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	return nil
}
