// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"fmt"
)

// Backend types
const (
	TypeSQLite = "sqlite"
	TypeRedis  = "redis"
	TypeMemory = "memory"
)

// Config holds configuration for store creation.
type Config struct {
	// Type is the backend type: "sqlite", "redis" or "memory"
	Type string

	// DBPath is the SQLite database file (sqlite only)
	DBPath string

	// RedisURL is the Redis connection URL (redis only)
	RedisURL string

	// RedisPrefix namespaces the keys in Redis (redis only)
	RedisPrefix string

	// KeyPrefix is prepended to every record name
	KeyPrefix string
}

// Open creates the backend described by cfg and wraps it in a Store.
func Open(cfg Config) (*Store, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, cfg.KeyPrefix), nil
}

// NewBackend creates the backend described by cfg.
func NewBackend(cfg Config) (Backend, error) {
	switch cfg.Type {
	case TypeSQLite, "":
		b, err := OpenSQLiteBackend(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return b, nil
	case TypeRedis:
		b, err := NewRedisBackendFromURL(cfg.RedisURL, cfg.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("connecting redis store: %w", err)
		}
		return b, nil
	case TypeMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
