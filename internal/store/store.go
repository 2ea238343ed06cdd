// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Named records of the persisted state.
const (
	KeyUsers  = "users"  // []model.User
	KeyAuth   = "auth"   // model.Session, absent when logged out
	KeyEvents = "events" // []model.Event, newest first
	KeyRSVPs  = "rsvps"  // model.RSVPIndex
)

// DefaultPrefix is prepended to every key before it reaches the backend.
const DefaultPrefix = "cc_"

// Store reads and writes JSON values under named keys.
//
// Services that read, modify and write back a record hold Lock for the whole
// sequence, so writers sharing a Store never interleave.
type Store struct {
	backend Backend
	prefix  string
	mu      sync.Mutex
}

// New creates a store over backend. Keys are namespaced with prefix.
func New(backend Backend, prefix string) *Store {
	return &Store{backend: backend, prefix: prefix}
}

// NewMemory creates a store over a fresh memory backend.
func NewMemory() *Store {
	return New(NewMemoryBackend(), DefaultPrefix)
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend {
	return s.backend
}

// Lock acquires the write lock shared by every service over this store.
func (s *Store) Lock() {
	s.mu.Lock()
}

// Unlock releases the write lock.
func (s *Store) Unlock() {
	s.mu.Unlock()
}

// Close closes the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

// Get returns the value stored under key, or def when the key is absent or its
// content cannot be decoded. Only backend failures are returned as errors.
func Get[T any](ctx context.Context, s *Store, key string, def T) (T, error) {
	data, err := s.backend.Get(ctx, s.prefix+key)
	if errors.Is(err, ErrMiss) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("reading %s: %w", key, err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		slog.Warn("discarding undecodable store value", "category", "store", "key", key, "error", err)
		return def, nil
	}
	return value, nil
}

// Set encodes value and stores it under key, replacing prior content.
func Set[T any](ctx context.Context, s *Store, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, s.prefix+key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.backend.Delete(ctx, s.prefix+key); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Has reports whether key holds a decodable, non-null value.
func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	raw, err := Get[json.RawMessage](ctx, s, key, nil)
	if err != nil {
		return false, err
	}
	return len(raw) > 0 && string(raw) != "null", nil
}
