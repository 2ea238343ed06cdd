// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package demo keeps a public demo instance fresh by periodically replacing
// its data with the seeded demo organizer and events.
package demo

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campusconnect/campusconnect/internal/store"
)

const (
	// KeyLastReset holds the time of the last reset.
	KeyLastReset = "demo_last_reset"

	// ResetInterval is how often the demo data should be refreshed.
	ResetInterval = 24 * time.Hour
)

// resetKeys are the records wiped by a reset.
var resetKeys = []string{store.KeyAuth, store.KeyUsers, store.KeyEvents, store.KeyRSVPs}

// ResetIfNeeded performs a full reset when the last one is older than
// ResetInterval or was never recorded. This is the startup check for an
// instance that was stopped past its scheduled reset.
func ResetIfNeeded(ctx context.Context, s *store.Store, now time.Time) (bool, error) {
	lastReset, err := store.Get(ctx, s, KeyLastReset, time.Time{})
	if err != nil {
		return false, fmt.Errorf("reading reset timestamp: %w", err)
	}

	if !lastReset.IsZero() && now.Sub(lastReset) < ResetInterval {
		slog.Info("demo reset not needed",
			"category", "system",
			"last_reset", lastReset.UTC().Format(time.RFC3339),
			"next_reset", lastReset.Add(ResetInterval).UTC().Format(time.RFC3339),
		)
		return false, nil
	}

	slog.Info("demo reset overdue, resetting store", "category", "system")
	return true, Reset(ctx, s, now)
}

// Reset deletes every user, event, RSVP and the session, seeds the demo data
// relative to now and records the reset time. It holds the store lock
// throughout, so no service write lands in the middle of a reset.
func Reset(ctx context.Context, s *store.Store, now time.Time) error {
	s.Lock()
	defer s.Unlock()

	for _, key := range resetKeys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	slog.Info("demo data deleted", "category", "system", "keys", len(resetKeys))

	if err := store.Seed(ctx, s, now); err != nil {
		return fmt.Errorf("seeding demo data: %w", err)
	}

	if err := store.Set(ctx, s, KeyLastReset, now.UTC()); err != nil {
		return fmt.Errorf("writing reset timestamp: %w", err)
	}

	slog.Info("demo reset complete", "category", "system")
	return nil
}
