// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package router maps slash-separated locations onto handlers.
//
// Templates are split on "/" with empty segments dropped, so "/event/:id",
// "event/:id/" and "//event//:id" are equivalent. A segment starting with ":"
// is a parameter and matches any single segment. Routes are tried in the order
// they were added and the first match wins.
package router

import (
	"net/url"
	"strings"
)

// Params holds the decoded values of the parameter segments of a match.
type Params map[string]string

// Match is a resolved route.
type Match[H any] struct {
	Template string
	Handler  H
	Params   Params
}

type route[H any] struct {
	template string
	segments []string
	handler  H
}

// Router is an ordered list of routes. The zero value is ready to use.
// A Router is not safe for concurrent modification.
type Router[H any] struct {
	routes []route[H]
}

// New creates an empty router.
func New[H any]() *Router[H] {
	return &Router[H]{}
}

// Add registers handler for template.
func (r *Router[H]) Add(template string, handler H) {
	r.routes = append(r.routes, route[H]{
		template: template,
		segments: Split(template),
		handler:  handler,
	})
}

// Len returns the number of registered routes.
func (r *Router[H]) Len() int {
	return len(r.routes)
}

// Resolve finds the first route matching path.
func (r *Router[H]) Resolve(path string) (Match[H], bool) {
	parts := Split(path)
	for _, rt := range r.routes {
		if params, ok := matchSegments(rt.segments, parts); ok {
			return Match[H]{Template: rt.template, Handler: rt.handler, Params: params}, true
		}
	}
	return Match[H]{}, false
}

// Split splits p on "/" and drops empty segments.
func Split(p string) []string {
	raw := strings.Split(p, "/")
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func matchSegments(template, parts []string) (Params, bool) {
	if len(template) != len(parts) {
		return nil, false
	}
	params := Params{}
	for i, seg := range template {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			params[name] = decode(parts[i])
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return params, true
}

// decode percent-decodes a segment, keeping it raw when it is malformed.
func decode(seg string) string {
	v, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return v
}
