// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryBackend keeps values in process memory. Nothing survives a restart.
type MemoryBackend struct {
	data   sync.Map
	closed atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewMemoryBackend creates an empty memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Get returns a copy of the value stored under key.
func (b *MemoryBackend) Get(_ context.Context, key string) ([]byte, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	val, ok := b.data.Load(key)
	if !ok {
		b.misses.Add(1)
		return nil, ErrMiss
	}

	b.hits.Add(1)
	stored := val.([]byte)
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a copy of value under key.
func (b *MemoryBackend) Set(_ context.Context, key string, value []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)
	b.data.Store(key, valueCopy)
	b.sets.Add(1)
	return nil
}

// Delete removes key.
func (b *MemoryBackend) Delete(_ context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}

	b.data.Delete(key)
	return nil
}

// Close marks the backend closed. Later calls fail with ErrClosed.
func (b *MemoryBackend) Close() error {
	b.closed.Store(true)
	return nil
}

// Stats returns operation counters.
func (b *MemoryBackend) Stats() Stats {
	return Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Sets:   b.sets.Load(),
	}
}
