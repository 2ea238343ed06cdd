// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("signup: %w", EmailTaken("Org@Uni.edu"))

	if !errors.Is(err, ErrEmailTaken) {
		t.Error("wrapped EmailTaken should match ErrEmailTaken")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("EmailTaken should not match ErrNotFound")
	}

	var e *Error
	if !errors.As(err, &e) {
		t.Fatal("errors.As should find *Error")
	}
	if e.Email != "Org@Uni.edu" {
		t.Errorf("Email = %q, want Org@Uni.edu", e.Email)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrInvalidCredentials, "invalid credentials"},
		{EmailTaken("a@b.c"), "email already registered: a@b.c"},
		{NotFound("evt-9"), "event not found: evt-9"},
		{Invalid("title", "is required"), "invalid title: is required"},
		{ErrUnauthenticated, "not authenticated"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("x: %w", NotFound("1"))); got != KindNotFound {
		t.Errorf("KindOf = %q, want %q", got, KindNotFound)
	}
	if got := KindOf(errors.New("boom")); got != "" {
		t.Errorf("KindOf(plain) = %q, want empty", got)
	}
}
