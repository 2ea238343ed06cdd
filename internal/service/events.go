// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the event repository: event CRUD, the RSVP index and the
// filter/sort query used by the browsing views.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/store"
)

// EventService stores events and RSVPs.
type EventService struct {
	store  *store.Store
	locale language.Tag
	newID  func() string
}

// NewEventService creates an event service backed by s. Titles sort by the rules of locale.
func NewEventService(s *store.Store, locale language.Tag) *EventService {
	return &EventService{
		store:  s,
		locale: locale,
		newID:  uuid.NewString,
	}
}

// ListAll returns every event, most recently created first.
func (s *EventService) ListAll(ctx context.Context) ([]model.Event, error) {
	return s.events(ctx)
}

// GetByID returns the event with the given id.
func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(events, id)
	if i < 0 {
		return nil, model.NotFound(id)
	}
	return &events[i], nil
}

// Create stores a new event under a fresh id and returns it.
func (s *EventService) Create(ctx context.Context, in model.EventInput) (*model.Event, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	event := in.NewEvent(s.newID())
	events = slices.Insert(events, 0, event)
	if err := s.saveEvents(ctx, events); err != nil {
		return nil, err
	}

	slog.Info("event created", "category", "event", "event_id", event.ID, "title", event.Title)
	return &event, nil
}

// Update merges patch over the event with the given id and returns the result.
func (s *EventService) Update(ctx context.Context, id string, patch model.EventPatch) (*model.Event, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(events, id)
	if i < 0 {
		return nil, model.NotFound(id)
	}

	events[i] = patch.Apply(events[i])
	if err := s.saveEvents(ctx, events); err != nil {
		return nil, err
	}

	slog.Info("event updated", "category", "event", "event_id", id)
	updated := events[i]
	return &updated, nil
}

// Remove deletes the event and drops it from every RSVP set. Missing ids are ignored.
func (s *EventService) Remove(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	events, err := s.events(ctx)
	if err != nil {
		return err
	}
	events = slices.DeleteFunc(events, func(e model.Event) bool { return e.ID == id })
	if err := s.saveEvents(ctx, events); err != nil {
		return err
	}

	rsvps, err := s.rsvps(ctx)
	if err != nil {
		return err
	}
	touched := rsvps.Purge(id)
	if err := s.saveRSVPs(ctx, rsvps); err != nil {
		return err
	}

	slog.Info("event removed", "category", "event", "event_id", id, "rsvps_dropped", touched)
	return nil
}

// RSVP records that userID plans to attend eventID. It fails with NotFound when
// the event does not exist.
func (s *EventService) RSVP(ctx context.Context, eventID, userID string) error {
	s.store.Lock()
	defer s.store.Unlock()

	events, err := s.events(ctx)
	if err != nil {
		return err
	}
	if indexOf(events, eventID) < 0 {
		return model.NotFound(eventID)
	}
	return s.changeRSVP(ctx, func(x model.RSVPIndex) bool { return x.Add(userID, eventID) })
}

// UnRSVP withdraws the RSVP of userID for eventID, if any.
func (s *EventService) UnRSVP(ctx context.Context, eventID, userID string) error {
	s.store.Lock()
	defer s.store.Unlock()

	return s.changeRSVP(ctx, func(x model.RSVPIndex) bool { return x.Remove(userID, eventID) })
}

// HasRSVP reports whether userID has RSVP'd to eventID.
func (s *EventService) HasRSVP(ctx context.Context, eventID, userID string) (bool, error) {
	rsvps, err := s.rsvps(ctx)
	if err != nil {
		return false, err
	}
	return rsvps.Has(userID, eventID), nil
}

// EventsForUser returns the events userID has RSVP'd to, in ListAll order.
func (s *EventService) EventsForUser(ctx context.Context, userID string) ([]model.Event, error) {
	rsvps, err := s.rsvps(ctx)
	if err != nil {
		return nil, err
	}
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}

	ids := rsvps.EventIDs(userID)
	result := make([]model.Event, 0, len(ids))
	for _, e := range events {
		if _, ok := ids[e.ID]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

// Search lists all events and applies q.
func (s *EventService) Search(ctx context.Context, q Query) ([]model.Event, error) {
	events, err := s.events(ctx)
	if err != nil {
		return nil, err
	}
	return q.Apply(events, s.locale), nil
}

// Facets returns the hosts and categories in use, for building filters.
func (s *EventService) Facets(ctx context.Context) (Facets, error) {
	events, err := s.events(ctx)
	if err != nil {
		return Facets{}, err
	}
	return FacetsOf(events), nil
}

// changeRSVP applies change to the index and saves it if anything changed.
// The caller holds the store lock.
func (s *EventService) changeRSVP(ctx context.Context, change func(model.RSVPIndex) bool) error {
	rsvps, err := s.rsvps(ctx)
	if err != nil {
		return err
	}
	if !change(rsvps) {
		return nil
	}
	return s.saveRSVPs(ctx, rsvps)
}

func (s *EventService) events(ctx context.Context) ([]model.Event, error) {
	events, err := store.Get(ctx, s.store, store.KeyEvents, []model.Event{})
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	return events, nil
}

func (s *EventService) saveEvents(ctx context.Context, events []model.Event) error {
	if err := store.Set(ctx, s.store, store.KeyEvents, events); err != nil {
		return fmt.Errorf("saving events: %w", err)
	}
	return nil
}

func (s *EventService) rsvps(ctx context.Context) (model.RSVPIndex, error) {
	rsvps, err := store.Get(ctx, s.store, store.KeyRSVPs, model.RSVPIndex{})
	if err != nil {
		return nil, fmt.Errorf("loading rsvps: %w", err)
	}
	if rsvps == nil {
		rsvps = model.RSVPIndex{}
	}
	return rsvps, nil
}

func (s *EventService) saveRSVPs(ctx context.Context, rsvps model.RSVPIndex) error {
	if err := store.Set(ctx, s.store, store.KeyRSVPs, rsvps); err != nil {
		return fmt.Errorf("saving rsvps: %w", err)
	}
	return nil
}

func indexOf(events []model.Event, id string) int {
	return slices.IndexFunc(events, func(e model.Event) bool { return e.ID == id })
}
