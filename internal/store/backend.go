// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides the persistent key/value store that holds users, the session,
// events and the RSVP index. Values are JSON documents kept in a pluggable Backend.
package store

import "context"

// Backend is byte-level key/value storage. Implementations must be safe for concurrent use.
type Backend interface {
	// Get returns the value stored under key, or ErrMiss if there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Pinger is implemented by backends that can check their connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatsProvider is implemented by backends that count their operations.
type StatsProvider interface {
	Stats() Stats
}

// Stats holds backend operation counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Sets   int64 `json:"sets"`
}

// Error represents an error type for store operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrMiss indicates the key holds no value.
	ErrMiss Error = "key not found"

	// ErrClosed indicates the backend has been closed.
	ErrClosed Error = "store closed"
)
