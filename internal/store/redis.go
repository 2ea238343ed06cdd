// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend keeps values in Redis so several processes can share one state.
type RedisBackend struct {
	client *redis.Client
	prefix string
	closed atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379/0)
	URL string

	// Prefix namespaces every key (e.g., "campusconnect:")
	Prefix string

	// PoolSize is the maximum number of connections (0 = use default)
	PoolSize int

	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// DefaultRedisOptions returns sensible defaults.
func DefaultRedisOptions() RedisOptions {
	return RedisOptions{
		Prefix:         "campusconnect:",
		PoolSize:       10,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
	}
}

// NewRedisBackend connects to Redis and verifies the connection.
func NewRedisBackend(opts RedisOptions) (*RedisBackend, error) {
	if opts.URL == "" {
		return nil, errors.New("redis URL is required")
	}

	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}

	if opts.PoolSize > 0 {
		redisOpts.PoolSize = opts.PoolSize
	}
	if opts.ConnectTimeout > 0 {
		redisOpts.DialTimeout = opts.ConnectTimeout
	}
	if opts.ReadTimeout > 0 {
		redisOpts.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		redisOpts.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(redisOpts)

	connectTimeout := opts.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisBackend{
		client: client,
		prefix: opts.Prefix,
	}, nil
}

// NewRedisBackendFromURL connects with default options and the given prefix.
func NewRedisBackendFromURL(url, prefix string) (*RedisBackend, error) {
	opts := DefaultRedisOptions()
	opts.URL = url
	if prefix != "" {
		opts.Prefix = prefix
	}
	return NewRedisBackend(opts)
}

func (b *RedisBackend) prefixKey(key string) string {
	return b.prefix + key
}

// Get returns the value stored under key.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	val, err := b.client.Get(ctx, b.prefixKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			b.misses.Add(1)
			return nil, ErrMiss
		}
		return nil, err
	}

	b.hits.Add(1)
	return val, nil
}

// Set stores value under key without expiry.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}

	if err := b.client.Set(ctx, b.prefixKey(key), value, 0).Err(); err != nil {
		return err
	}

	b.sets.Add(1)
	return nil
}

// Delete removes key.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}

	return b.client.Del(ctx, b.prefixKey(key)).Err()
}

// Ping checks the Redis connection.
func (b *RedisBackend) Ping(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	return b.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (b *RedisBackend) Close() error {
	if b.closed.CompareAndSwap(false, true) {
		return b.client.Close()
	}
	return nil
}

// Stats returns local operation counters.
func (b *RedisBackend) Stats() Stats {
	return Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Sets:   b.sets.Load(),
	}
}
