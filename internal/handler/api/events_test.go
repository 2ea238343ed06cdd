// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/service"
)

func day(n int) time.Time {
	return fixedNow.Truncate(24 * time.Hour).Add(time.Duration(n) * 24 * time.Hour)
}

func TestListEvents(t *testing.T) {
	env := newTestEnv(t)
	env.createEvent(t, "Robotics Competition", day(7).Add(10*time.Hour))
	env.createEvent(t, "Data Science Seminar", day(4).Add(11*time.Hour))
	env.createEvent(t, "Web Development Workshop", day(2).Add(15*time.Hour))

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"default date order", "", []string{"Web Development Workshop", "Data Science Seminar", "Robotics Competition"}},
		{"title order", "?sort=titleAsc", []string{"Data Science Seminar", "Robotics Competition", "Web Development Workshop"}},
		{"search", "?q=ROBOT", []string{"Robotics Competition"}},
		{"date range", "?from=" + day(3).Format(time.DateOnly) + "&to=" + day(5).Format(time.DateOnly), []string{"Data Science Seminar"}},
		{"host", "?host=Nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodGet, RouteEvents+tt.query, "", nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var events []model.Event
			decodeData(t, w, &events)
			titles := make([]string, 0, len(events))
			for _, e := range events {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestListEventsInvalidQuery(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, RouteEvents+"?sort=random&from=yesterday", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"sort"`)
	assert.Contains(t, w.Body.String(), `"from"`)
}

func TestFacets(t *testing.T) {
	env := newTestEnv(t)
	env.createEvent(t, "A", day(1))

	w := env.do(t, http.MethodGet, RouteFacets, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var facets service.Facets
	decodeData(t, w, &facets)
	assert.Equal(t, []string{"Student Council"}, facets.Hosts)
	assert.Equal(t, []string{"Tech"}, facets.Categories)
}

func TestGetEvent(t *testing.T) {
	env := newTestEnv(t)
	ev := env.createEvent(t, "A", day(1))

	w := env.do(t, http.MethodGet, "/events/"+ev.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got EventResponse
	decodeData(t, w, &got)
	assert.Equal(t, ev.ID, got.ID)
	assert.Nil(t, got.RSVPed)

	w = env.do(t, http.MethodGet, "/events/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", errorCode(t, w))
}

func TestRSVPFlow(t *testing.T) {
	env := newTestEnv(t)
	ev := env.createEvent(t, "A", day(1))
	token := env.signup(t, "sam@uni.edu", false)

	w := env.do(t, http.MethodPost, "/events/"+ev.ID+"/rsvp", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	for range 2 {
		w = env.do(t, http.MethodPost, "/events/"+ev.ID+"/rsvp", token, nil)
		require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodGet, "/events/"+ev.ID, token, nil)
	var got EventResponse
	decodeData(t, w, &got)
	require.NotNil(t, got.RSVPed)
	assert.True(t, *got.RSVPed)

	w = env.do(t, http.MethodGet, RouteMyEvents, token, nil)
	var mine []model.Event
	decodeData(t, w, &mine)
	require.Len(t, mine, 1)
	assert.Equal(t, ev.ID, mine[0].ID)

	w = env.do(t, http.MethodDelete, "/events/"+ev.ID+"/rsvp", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodGet, RouteMyEvents, token, nil)
	decodeData(t, w, &mine)
	assert.Empty(t, mine)

	w = env.do(t, http.MethodPost, "/events/missing/rsvp", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrganizerEndpoints(t *testing.T) {
	env := newTestEnv(t)
	studentToken := env.signup(t, "sam@uni.edu", false)

	in := model.EventInput{
		Title:       "Hack Night",
		Description: "All night coding",
		Date:        day(3),
		EndDate:     day(3).Add(6 * time.Hour),
		Location:    "Lab 1",
		Host:        "Coding Club",
	}

	w := env.do(t, http.MethodPost, RouteEvents, "", in)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, RouteEvents, studentToken, in)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorCode(t, w))

	orgToken := env.signup(t, "org@uni.edu", true)

	w = env.do(t, http.MethodPost, RouteEvents, orgToken, in)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created model.Event
	decodeData(t, w, &created)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Hack Night", created.Title)

	w = env.do(t, http.MethodPost, RouteEvents, orgToken, model.EventInput{Title: "Incomplete"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid", errorCode(t, w))

	w = env.do(t, http.MethodPatch, "/events/"+created.ID, orgToken, map[string]string{"location": "Lab 2"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated model.Event
	decodeData(t, w, &updated)
	assert.Equal(t, "Lab 2", updated.Location)
	assert.Equal(t, "Hack Night", updated.Title)

	w = env.do(t, http.MethodPut, "/events/missing", orgToken, map[string]string{"location": "Lab 2"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, env.events.RSVP(context.Background(), created.ID, "someone"))

	w = env.do(t, http.MethodDelete, "/events/"+created.ID, orgToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = env.do(t, http.MethodDelete, "/events/"+created.ID, orgToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	has, err := env.events.HasRSVP(context.Background(), created.ID, "someone")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestExportEvent(t *testing.T) {
	env := newTestEnv(t)
	ev := env.createEvent(t, "Cultural Fest Night", day(9).Add(18*time.Hour+30*time.Minute))

	w := env.do(t, http.MethodGet, "/events/"+ev.ID+"/ics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="cultural_fest_night.ics"`, w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	assert.Contains(t, body, "UID:"+ev.ID+"@campusconnect.local\r\n")
	assert.Contains(t, body, "DTSTAMP:20261016T090000Z\r\n")
	assert.Contains(t, body, "SUMMARY:Cultural Fest Night\r\n")

	w = env.do(t, http.MethodGet, "/events/missing/ics", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
