// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/campusconnect/campusconnect/internal/model"
)

// Demo organizer credentials
const (
	DemoOrganizerEmail    = "org@uni.edu"
	DemoOrganizerPassword = "password"
	DemoOrganizerName     = "Organizer One"
)

type demoEvent struct {
	title       string
	description string
	dayOffset   int
	startHour   int
	startMinute int
	hours       int
	location    string
	host        string
	category    string
}

var demoEvents = []demoEvent{
	{"Web Development Workshop", "Learn modern frontend fundamentals with hands-on exercises.", 2, 15, 0, 2, "Tech Lab, Block A", "Coding Club", model.CategoryTech},
	{"Robotics Competition", "Watch the annual robotics showdown. Teams from across the state compete.", 7, 10, 0, 6, "Main Auditorium", "Robotics Club", model.CategoryTech},
	{"Data Science Seminar", "Intro to machine learning and data analytics with Python.", 4, 11, 0, 2, "Room 101, Block B", "Data Science Group", model.CategoryAcademic},
	{"Cultural Fest Night", "Experience music, dance, and food from around the world.", 9, 18, 30, 3, "Central Lawn", "Student Union", model.CategoryCulture},
	{"Intramural Soccer Finals", "Cheer on the top intramural teams in the season finale.", 5, 16, 0, 2, "Sports Ground 2", "Athletics Dept.", model.CategorySports},
}

// DemoEvents returns the demo events scheduled relative to now, in now's location.
func DemoEvents(now time.Time) []model.Event {
	events := make([]model.Event, 0, len(demoEvents))
	for _, d := range demoEvents {
		start := time.Date(now.Year(), now.Month(), now.Day()+d.dayOffset, d.startHour, d.startMinute, 0, 0, now.Location())
		events = append(events, model.Event{
			ID:          uuid.NewString(),
			Title:       d.title,
			Description: d.description,
			Date:        start.UTC(),
			EndDate:     start.Add(time.Duration(d.hours) * time.Hour).UTC(),
			Location:    d.location,
			Host:        d.host,
			Category:    d.category,
		})
	}
	return events
}

// Seed writes demo data for every record that is still absent. Existing records are kept.
func Seed(ctx context.Context, s *Store, now time.Time) error {
	seeded, err := seedIfAbsent(ctx, s, KeyEvents, func() any { return DemoEvents(now) })
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("seeded demo events", "category", "store", "count", len(demoEvents))
	}

	seeded, err = seedIfAbsent(ctx, s, KeyUsers, func() any {
		return []model.User{{
			ID:          uuid.NewString(),
			Name:        DemoOrganizerName,
			Email:       DemoOrganizerEmail,
			Password:    DemoOrganizerPassword,
			IsOrganizer: true,
		}}
	})
	if err != nil {
		return err
	}
	if seeded {
		slog.Info("seeded demo organizer", "category", "store", "email", DemoOrganizerEmail)
	}

	if _, err := seedIfAbsent(ctx, s, KeyRSVPs, func() any { return model.RSVPIndex{} }); err != nil {
		return err
	}

	return nil
}

func seedIfAbsent(ctx context.Context, s *Store, key string, value func() any) (bool, error) {
	exists, err := s.Has(ctx, key)
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", key, err)
	}
	if exists {
		return false, nil
	}
	if err := Set(ctx, s, key, value()); err != nil {
		return false, fmt.Errorf("seeding %s: %w", key, err)
	}
	return true, nil
}
