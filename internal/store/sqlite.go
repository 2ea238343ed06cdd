// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// NewDB opens a SQLite database file, creating its directory if needed.
func NewDB(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",   // Write-Ahead Logging for better concurrency
		"PRAGMA busy_timeout=5000",  // Wait 5s when database is locked
		"PRAGMA synchronous=NORMAL", // Good balance of safety and speed
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Migrate runs all pending database migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// SQLiteBackend keeps values in the kv table of a SQLite database.
type SQLiteBackend struct {
	db     *sql.DB
	closed atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
	sets   atomic.Int64
}

// NewSQLiteBackend wraps an already migrated database.
func NewSQLiteBackend(db *sql.DB) *SQLiteBackend {
	return &SQLiteBackend{db: db}
}

// OpenSQLiteBackend opens and migrates the database at path.
func OpenSQLiteBackend(path string) (*SQLiteBackend, error) {
	db, err := NewDB(path)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewSQLiteBackend(db), nil
}

// Get returns the value stored under key.
func (b *SQLiteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if b.closed.Load() {
		return nil, ErrClosed
	}

	var value []byte
	err := b.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		b.misses.Add(1)
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	b.hits.Add(1)
	return value, nil
}

// Set upserts value under key.
func (b *SQLiteBackend) Set(ctx context.Context, key string, value []byte) error {
	if b.closed.Load() {
		return ErrClosed
	}

	_, err := b.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return err
	}

	b.sets.Add(1)
	return nil
}

// Delete removes key.
func (b *SQLiteBackend) Delete(ctx context.Context, key string) error {
	if b.closed.Load() {
		return ErrClosed
	}

	_, err := b.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Ping checks the database connection.
func (b *SQLiteBackend) Ping(ctx context.Context) error {
	if b.closed.Load() {
		return ErrClosed
	}
	return b.db.PingContext(ctx)
}

// Close closes the database.
func (b *SQLiteBackend) Close() error {
	if b.closed.CompareAndSwap(false, true) {
		return b.db.Close()
	}
	return nil
}

// Stats returns operation counters.
func (b *SQLiteBackend) Stats() Stats {
	return Stats{
		Hits:   b.hits.Load(),
		Misses: b.misses.Load(),
		Sets:   b.sets.Load(),
	}
}
