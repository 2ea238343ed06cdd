// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/campusconnect/campusconnect/internal/model"
)

// SortOrder selects how query results are ordered.
type SortOrder string

// Sort orders
const (
	SortDateAsc   SortOrder = "dateAsc"
	SortDateDesc  SortOrder = "dateDesc"
	SortTitleAsc  SortOrder = "titleAsc"
	SortTitleDesc SortOrder = "titleDesc"
)

// SortOrders lists the supported orders, default first.
var SortOrders = []SortOrder{SortDateAsc, SortDateDesc, SortTitleAsc, SortTitleDesc}

// ParseSortOrder parses s. The empty string selects SortDateAsc.
func ParseSortOrder(s string) (SortOrder, error) {
	if s == "" {
		return SortDateAsc, nil
	}
	for _, o := range SortOrders {
		if string(o) == s {
			return o, nil
		}
	}
	return "", model.Invalid("sort", "must be one of dateAsc, dateDesc, titleAsc, titleDesc")
}

// endOfDay widens an upper date bound to the last millisecond of that day.
const endOfDay = 24*time.Hour - time.Millisecond

// Query filters and sorts a list of events. Zero fields do not filter.
type Query struct {
	// Search is matched case-insensitively as a substring of the title,
	// description, host, location and category.
	Search   string
	Host     string
	Category string
	// From and To bound the start time inclusively; To covers its whole day.
	From time.Time
	To   time.Time
	Sort SortOrder
}

// Matches reports whether e passes every filter of q.
func (q Query) Matches(e model.Event) bool {
	if needle := strings.ToLower(strings.TrimSpace(q.Search)); needle != "" {
		found := false
		for _, field := range []string{e.Title, e.Description, e.Host, e.Location, e.Category} {
			if strings.Contains(strings.ToLower(field), needle) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.Host != "" && e.Host != q.Host {
		return false
	}
	if q.Category != "" && e.Category != q.Category {
		return false
	}
	if !q.From.IsZero() && e.Date.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && e.Date.After(q.To.Add(endOfDay)) {
		return false
	}
	return true
}

// Apply returns the events matching q, sorted by q.Sort. Titles are compared with
// the collation rules of locale. Ties keep their input order. The input is not modified.
func (q Query) Apply(events []model.Event, locale language.Tag) []model.Event {
	result := make([]model.Event, 0, len(events))
	for _, e := range events {
		if q.Matches(e) {
			result = append(result, e)
		}
	}

	switch q.Sort {
	case SortDateAsc:
		slices.SortStableFunc(result, func(a, b model.Event) int { return a.Date.Compare(b.Date) })
	case SortDateDesc:
		slices.SortStableFunc(result, func(a, b model.Event) int { return b.Date.Compare(a.Date) })
	case SortTitleAsc:
		c := collate.New(locale)
		slices.SortStableFunc(result, func(a, b model.Event) int { return c.CompareString(a.Title, b.Title) })
	case SortTitleDesc:
		c := collate.New(locale)
		slices.SortStableFunc(result, func(a, b model.Event) int { return c.CompareString(b.Title, a.Title) })
	}
	return result
}

// ParseDate parses a calendar day (2006-01-02, taken as UTC midnight) or an RFC 3339 timestamp.
// The empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// Facets are the distinct hosts and non-empty categories of a list of events,
// in order of first appearance.
type Facets struct {
	Hosts      []string `json:"hosts"`
	Categories []string `json:"categories"`
}

// FacetsOf collects the facets of events.
func FacetsOf(events []model.Event) Facets {
	f := Facets{Hosts: []string{}, Categories: []string{}}
	for _, e := range events {
		if e.Host != "" && !slices.Contains(f.Hosts, e.Host) {
			f.Hosts = append(f.Hosts, e.Host)
		}
		if e.Category != "" && !slices.Contains(f.Categories, e.Category) {
			f.Categories = append(f.Categories, e.Category)
		}
	}
	return f
}
