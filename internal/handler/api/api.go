// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the JSON API handlers for events, RSVPs and sessions.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campusconnect/internal/auth"
	"github.com/campusconnect/campusconnect/internal/calendar"
	"github.com/campusconnect/campusconnect/internal/middleware"
	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/service"
)

// Route paths relative to the API mount point.
const (
	RouteLogin     = "/auth/login"
	RouteSignup    = "/auth/signup"
	RouteLogout    = "/auth/logout"
	RouteSession   = "/auth/session"
	RouteEvents    = "/events"
	RouteFacets    = "/events/facets"
	RouteEventID   = "/events/{id}"
	RouteEventICS  = "/events/{id}/ics"
	RouteEventRSVP = "/events/{id}/rsvp"
	RouteMyEvents  = "/me/events"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	auth     *auth.Service
	events   *service.EventService
	calendar calendar.Options
	now      func() time.Time
}

// NewHandler creates a new API handler. icsDomain qualifies exported event UIDs.
func NewHandler(authSvc *auth.Service, events *service.EventService, icsDomain string) *Handler {
	return &Handler{
		auth:     authSvc,
		events:   events,
		calendar: calendar.Options{Domain: icsDomain},
		now:      time.Now,
	}
}

// Mount registers the API routes on r.
func (h *Handler) Mount(r chi.Router) {
	// Public endpoints
	r.Post(RouteLogin, h.Login)
	r.Post(RouteSignup, h.Signup)
	r.Get(RouteEvents, h.ListEvents)
	r.Get(RouteFacets, h.Facets)
	r.Get(RouteEventICS, h.ExportEvent)

	// Session is optional; when present the response carries the RSVP state
	r.With(middleware.OptionalSessionAuth(h.auth)).Get(RouteEventID, h.GetEvent)

	// Requires a session
	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionAuth(h.auth))
		r.Post(RouteLogout, h.Logout)
		r.Get(RouteSession, h.Session)
		r.Post(RouteEventRSVP, h.RSVP)
		r.Delete(RouteEventRSVP, h.UnRSVP)
		r.Get(RouteMyEvents, h.MyEvents)

		// Organizer-only endpoints
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireOrganizer)
			r.Post(RouteEvents, h.CreateEvent)
			r.Patch(RouteEventID, h.UpdateEvent)
			r.Put(RouteEventID, h.UpdateEvent)
			r.Delete(RouteEventID, h.DeleteEvent)
		})
	})
}

// Response is the standard API response wrapper.
type Response struct {
	Data any `json:"data"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, Response{Data: data})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	middleware.WriteAPIError(w, http.StatusBadRequest, string(model.KindInvalid), message, details)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	middleware.WriteAPIError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteServiceError maps a service error onto its HTTP status and error code.
// Errors that are not service errors are logged and reported as internal errors.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var e *model.Error
	if !errors.As(err, &e) {
		slog.Error("api request failed", "category", "http", "path", r.URL.Path, "error", err)
		WriteInternalError(w, "Internal server error")
		return
	}

	switch e.Kind {
	case model.KindInvalidCredentials:
		middleware.WriteAPIError(w, http.StatusUnauthorized, string(e.Kind), "Invalid email or password", nil)
	case model.KindEmailTaken:
		middleware.WriteAPIError(w, http.StatusConflict, string(e.Kind), "Email already registered",
			map[string]string{"email": e.Email})
	case model.KindNotFound:
		middleware.WriteAPIError(w, http.StatusNotFound, string(e.Kind), "Event not found",
			map[string]string{"id": e.ID})
	case model.KindInvalid:
		WriteBadRequest(w, "Validation failed", map[string]string{e.Field: e.Reason})
	case model.KindUnauthenticated:
		middleware.WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Not authenticated", nil)
	default:
		WriteInternalError(w, "Internal server error")
	}
}

// decodeJSON decodes the request body into v, writing a 400 response on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		WriteBadRequest(w, "Invalid JSON body", map[string]string{"body": err.Error()})
		return false
	}
	return true
}
