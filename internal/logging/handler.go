// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that tags every record with a
// category, so log output can be filtered by subsystem.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Categories attached to log records.
const (
	CategoryAuth   = "auth"
	CategoryEvent  = "event"
	CategoryRSVP   = "rsvp"
	CategoryRoute  = "route"
	CategoryStore  = "store"
	CategoryConfig = "config"
	CategoryHTTP   = "http"
	CategorySystem = "system"
)

// CategoryKey is the attribute key holding the category.
const CategoryKey = "category"

// CategoryHandler is a slog.Handler that wraps another handler and adds a
// category attribute to records that do not carry one.
type CategoryHandler struct {
	inner slog.Handler
	// hasCategory is set once WithAttrs has supplied a category.
	hasCategory bool
}

// NewCategoryHandler creates a new CategoryHandler that wraps the given handler.
func NewCategoryHandler(inner slog.Handler) *CategoryHandler {
	return &CategoryHandler{inner: inner}
}

// New builds the process logger: JSON output in production, text otherwise.
func New(w io.Writer, level slog.Level, development bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	var inner slog.Handler
	if development {
		inner = slog.NewTextHandler(w, opts)
	} else {
		inner = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewCategoryHandler(inner))
}

// Enabled implements slog.Handler.
func (h *CategoryHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *CategoryHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.hasCategory && Category(r) == "" {
		r = r.Clone()
		r.AddAttrs(slog.String(CategoryKey, Infer(r.Message)))
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *CategoryHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	has := h.hasCategory
	for _, a := range attrs {
		if a.Key == CategoryKey {
			has = true
		}
	}
	return &CategoryHandler{inner: h.inner.WithAttrs(attrs), hasCategory: has}
}

// WithGroup implements slog.Handler.
func (h *CategoryHandler) WithGroup(name string) slog.Handler {
	return &CategoryHandler{inner: h.inner.WithGroup(name), hasCategory: h.hasCategory}
}

// Category returns the category attribute of r, or "" if it has none.
func Category(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == CategoryKey {
			category = a.Value.String()
			return false
		}
		return true
	})
	return category
}

// Infer guesses a category from a log message.
func Infer(msg string) string {
	msg = strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "logout") ||
		strings.Contains(msg, "signup") || strings.Contains(msg, "session"):
		return CategoryAuth
	case strings.Contains(msg, "rsvp"):
		return CategoryRSVP
	case strings.Contains(msg, "event"):
		return CategoryEvent
	case strings.Contains(msg, "route") || strings.Contains(msg, "location"):
		return CategoryRoute
	case strings.Contains(msg, "store") || strings.Contains(msg, "database") ||
		strings.Contains(msg, "redis") || strings.Contains(msg, "migration"):
		return CategoryStore
	case strings.Contains(msg, "config"):
		return CategoryConfig
	case strings.Contains(msg, "request") || strings.Contains(msg, "server"):
		return CategoryHTTP
	default:
		return CategorySystem
	}
}
