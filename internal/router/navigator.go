// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package router

import (
	"log/slog"
	"strings"
	"sync"
)

// Home is the location every unmatched location falls back to.
const Home = "/"

// Handler renders the page for a resolved location.
type Handler func(params Params)

// Navigator owns the current location and renders it through a Router.
//
// Navigate and Render may be called from inside a handler. Such calls are
// queued and processed after the running handler returns, so a handler never
// observes a nested render.
type Navigator struct {
	router *Router[Handler]

	mu        sync.Mutex
	location  string
	listener  func(location string)
	rendering bool
	pending   bool
}

// NewNavigator creates a navigator over r, positioned at Home.
func NewNavigator(r *Router[Handler]) *Navigator {
	return &Navigator{router: r, location: Home}
}

// Normalize strips a leading "#" and maps the empty location to Home.
func Normalize(location string) string {
	location = strings.TrimPrefix(strings.TrimSpace(location), "#")
	if location == "" {
		return Home
	}
	return location
}

// Location returns the current location.
func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

// OnChange sets the single function notified after every location change,
// replacing any earlier one. It is called before the page renders.
func (n *Navigator) OnChange(fn func(location string)) {
	n.mu.Lock()
	n.listener = fn
	n.mu.Unlock()
}

// Navigate moves to location and renders it. Navigating to the current location renders again.
func (n *Navigator) Navigate(location string) {
	location = Normalize(location)

	n.mu.Lock()
	n.location = location
	listener := n.listener
	n.mu.Unlock()

	if listener != nil {
		listener(location)
	}
	n.Render()
}

// Render resolves the current location and invokes its handler. When no route
// matches, it navigates to Home instead.
func (n *Navigator) Render() {
	n.mu.Lock()
	if n.rendering {
		n.pending = true
		n.mu.Unlock()
		return
	}
	n.rendering = true
	n.mu.Unlock()

	for {
		location := n.Location()
		match, ok := n.router.Resolve(location)
		switch {
		case ok:
			match.Handler(match.Params)
		case location != Home:
			slog.Debug("no route for location, redirecting", "category", "route", "location", location)
			n.setLocation(Home)
			n.mu.Lock()
			n.pending = true
			n.mu.Unlock()
		default:
			slog.Warn("no route for home location", "category", "route", "location", location)
		}

		n.mu.Lock()
		if !n.pending {
			n.rendering = false
			n.mu.Unlock()
			return
		}
		n.pending = false
		n.mu.Unlock()
	}
}

func (n *Navigator) setLocation(location string) {
	n.mu.Lock()
	n.location = location
	listener := n.listener
	n.mu.Unlock()
	if listener != nil {
		listener(location)
	}
}
