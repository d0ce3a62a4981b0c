package store

import (
	"context"
	"maps"
	"sync"
)

// MemoryKV is a process-local KV, used by tests and STORE_BACKEND=memory
type MemoryKV struct {
	mu sync.RWMutex
	m  map[string][]byte
}

var _ KV = (*MemoryKV)(nil)

// NewMemoryKV returns an empty MemoryKV
func NewMemoryKV() *MemoryKV { return &MemoryKV{m: map[string][]byte{}} }

// Get returns a copy of the stored bytes
func (k *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	v, ok := k.m[key]
	if !ok {
		return nil, false, nil
	}
	return clone(v), true, nil
}

// Set stores a copy of value
func (k *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	k.m[key] = clone(value)
	k.mu.Unlock()
	return nil
}

// SetMany stores copies of every entry under one lock
func (k *MemoryKV) SetMany(_ context.Context, entries map[string][]byte) error {
	k.mu.Lock()
	for key, v := range entries {
		k.m[key] = clone(v)
	}
	k.mu.Unlock()
	return nil
}

// Delete removes key
func (k *MemoryKV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	delete(k.m, key)
	k.mu.Unlock()
	return nil
}

// GetAll returns a snapshot of every entry
func (k *MemoryKV) GetAll(context.Context) (map[string][]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make(map[string][]byte, len(k.m))
	for key, v := range k.m {
		out[key] = clone(v)
	}
	return out, nil
}

// Clear drops every entry
func (k *MemoryKV) Clear(context.Context) error {
	k.mu.Lock()
	clear(k.m)
	k.mu.Unlock()
	return nil
}

// Ping always succeeds
func (k *MemoryKV) Ping(context.Context) error { return nil }

// Len reports the number of keys
func (k *MemoryKV) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.m)
}

// Keys returns the stored keys in no particular order
func (k *MemoryKV) Keys() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()
	out := make([]string, 0, len(k.m))
	for key := range maps.Keys(k.m) {
		out = append(out, key)
	}
	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return append([]byte(nil), b...)
}
