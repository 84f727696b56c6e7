// Package storage holds the durable backends a cart store persists to.
package storage

import (
	"context"
	"sync"

	"github.com/angelmondragon/promostore-backend/internal/cart"
)

// Memory keeps blobs in process. Data is lost on restart.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{blobs: map[string][]byte{}}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	blob, ok := m.blobs[key]
	if !ok {
		return nil, cart.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *Memory) Save(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), blob...)
	return nil
}

func (m *Memory) Ping(context.Context) error { return nil }

// Backend is a cart storage that can report its own health.
type Backend interface {
	cart.Storage
	Ping(ctx context.Context) error
}

var (
	_ Backend = (*Memory)(nil)
	_ Backend = (*File)(nil)
	_ Backend = (*Redis)(nil)
	_ Backend = (*SQL)(nil)
)
