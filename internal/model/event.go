// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"strings"
	"time"
)

// Suggested event categories. The empty category is shown as "General".
const (
	CategoryGeneral  = ""
	CategoryTech     = "Tech"
	CategoryAcademic = "Academic"
	CategoryCulture  = "Culture"
	CategorySports   = "Sports"
)

// Categories lists the suggested categories in the order the dashboard offers them.
var Categories = []string{CategoryGeneral, CategoryTech, CategoryAcademic, CategoryCulture, CategorySports}

// Event is a campus event. EndDate is expected to be at or after Date but this is not enforced.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	Host        string    `json:"host"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
}

// CategoryLabel returns the display label for a category.
func CategoryLabel(category string) string {
	if strings.TrimSpace(category) == "" {
		return "General"
	}
	return category
}

// CategoryTheme maps a free-text category onto one of the known colour themes
// (tech, culture, sports, academic). Unknown categories map to "".
func CategoryTheme(category string) string {
	c := strings.ToLower(category)
	switch {
	case containsAny(c, "tech", "dev", "robot"):
		return "tech"
	case containsAny(c, "culture", "music", "art"):
		return "culture"
	case containsAny(c, "sport", "game"):
		return "sports"
	case containsAny(c, "academic", "seminar", "lecture"):
		return "academic"
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// EventInput carries the fields of a new event. Image and Category may be empty.
type EventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	EndDate     time.Time `json:"endDate"`
	Location    string    `json:"location"`
	Host        string    `json:"host"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
}

// Validate checks that every required field is present.
func (in EventInput) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"title", in.Title},
		{"description", in.Description},
		{"location", in.Location},
		{"host", in.Host},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return Invalid(r.field, "is required")
		}
	}
	if in.Date.IsZero() {
		return Invalid("date", "is required")
	}
	if in.EndDate.IsZero() {
		return Invalid("endDate", "is required")
	}
	return nil
}

// NewEvent builds the stored form of in under the given id.
func (in EventInput) NewEvent(id string) Event {
	return Event{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Date:        in.Date.UTC(),
		EndDate:     in.EndDate.UTC(),
		Location:    in.Location,
		Host:        in.Host,
		Image:       in.Image,
		Category:    in.Category,
	}
}

// EventPatch is a partial update. Nil fields are left untouched.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Host        *string    `json:"host,omitempty"`
	Image       *string    `json:"image,omitempty"`
	Category    *string    `json:"category,omitempty"`
}

// Validate rejects blanking a required field. Image and Category may be cleared.
func (p EventPatch) Validate() error {
	required := []struct {
		field string
		value *string
	}{
		{"title", p.Title},
		{"description", p.Description},
		{"location", p.Location},
		{"host", p.Host},
	}
	for _, r := range required {
		if r.value != nil && strings.TrimSpace(*r.value) == "" {
			return Invalid(r.field, "must not be empty")
		}
	}
	if p.Date != nil && p.Date.IsZero() {
		return Invalid("date", "must not be empty")
	}
	if p.EndDate != nil && p.EndDate.IsZero() {
		return Invalid("endDate", "must not be empty")
	}
	return nil
}

// Apply returns e with the patch fields merged over it. The id is never changed.
func (p EventPatch) Apply(e Event) Event {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Date != nil {
		e.Date = p.Date.UTC()
	}
	if p.EndDate != nil {
		e.EndDate = p.EndDate.UTC()
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Host != nil {
		e.Host = *p.Host
	}
	if p.Image != nil {
		e.Image = *p.Image
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	return e
}
