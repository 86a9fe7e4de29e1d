package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("storage closed")

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore creates an empty in-memory backend.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// Load returns a copy of the stored document.
func (store *MemoryStore) Load(_ context.Context, key string) ([]byte, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.closed {
		return nil, ErrClosed
	}
	data, ok := store.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), data...), nil
}

// Save replaces the stored document.
func (store *MemoryStore) Save(_ context.Context, key string, data []byte) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.closed {
		return ErrClosed
	}
	store.data[key] = append([]byte(nil), data...)
	return nil
}

// Close marks the store unusable.
func (store *MemoryStore) Close() error {
	store.mu.Lock()
	store.closed = true
	store.mu.Unlock()
	return nil
}
