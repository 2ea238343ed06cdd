// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/campusconnect/campusconnect/internal/auth"
	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/service"
	"github.com/campusconnect/campusconnect/internal/store"
)

var fixedNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	router http.Handler
	auth   *auth.Service
	events *service.EventService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := store.NewMemory()
	authSvc := auth.NewService(s)
	events := service.NewEventService(s, language.English)

	h := NewHandler(authSvc, events, "")
	h.now = func() time.Time { return fixedNow }

	r := chi.NewRouter()
	r.Route("/api/v1", h.Mount)
	return &testEnv{router: r, auth: authSvc, events: events}
}

// signup creates a user and returns the bearer token of the new session.
func (e *testEnv) signup(t *testing.T, email string, organizer bool) string {
	t.Helper()
	session, err := e.auth.Signup(context.Background(), "Test User", email, "secret", organizer)
	require.NoError(t, err)
	return session.Token
}

func (e *testEnv) createEvent(t *testing.T, title string, start time.Time) *model.Event {
	t.Helper()
	ev, err := e.events.Create(context.Background(), model.EventInput{
		Title:       title,
		Description: "About " + title,
		Date:        start,
		EndDate:     start.Add(2 * time.Hour),
		Location:    "Main Hall",
		Host:        "Student Council",
		Category:    model.CategoryTech,
	})
	require.NoError(t, err)
	return ev
}

// do executes a request against the API. body is JSON-encoded unless nil.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data field of a success response into v.
func decodeData(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	var resp struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	require.NoError(t, json.Unmarshal(resp.Data, v))
}

// errorCode returns the error code of an error response.
func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error.Code
}
