// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusconnect/campusconnect/internal/calendar"
	"github.com/campusconnect/campusconnect/internal/middleware"
	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/service"
)

// EventResponse is an event as returned by GET /events/{id}. RSVPed is only
// reported to authenticated callers.
type EventResponse struct {
	model.Event
	RSVPed *bool `json:"rsvped,omitempty"`
}

// queryFromRequest builds an event query from the URL query parameters
// q, host, category, from, to and sort.
func queryFromRequest(r *http.Request) (service.Query, map[string]string) {
	values := r.URL.Query()
	q := service.Query{
		Search:   values.Get("q"),
		Host:     values.Get("host"),
		Category: values.Get("category"),
	}

	problems := make(map[string]string)
	var err error
	if q.From, err = service.ParseDate(values.Get("from")); err != nil {
		problems["from"] = "must be a date (2006-01-02) or RFC 3339 timestamp"
	}
	if q.To, err = service.ParseDate(values.Get("to")); err != nil {
		problems["to"] = "must be a date (2006-01-02) or RFC 3339 timestamp"
	}
	if q.Sort, err = service.ParseSortOrder(values.Get("sort")); err != nil {
		problems["sort"] = "must be one of dateAsc, dateDesc, titleAsc, titleDesc"
	}
	return q, problems
}

// ListEvents handles GET /events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q, problems := queryFromRequest(r)
	if len(problems) > 0 {
		WriteBadRequest(w, "Invalid query parameters", problems)
		return
	}

	events, err := h.events.Search(r.Context(), q)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(len(events)))
	WriteSuccess(w, events)
}

// Facets handles GET /events/facets.
func (h *Handler) Facets(w http.ResponseWriter, r *http.Request) {
	facets, err := h.events.Facets(r.Context())
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, facets)
}

// GetEvent handles GET /events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	event, err := h.events.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	resp := EventResponse{Event: *event}
	if session := middleware.GetSession(r); session != nil {
		rsvped, err := h.events.HasRSVP(ctx, event.ID, session.User.ID)
		if err != nil {
			WriteServiceError(w, r, err)
			return
		}
		resp.RSVPed = &rsvped
	}
	WriteSuccess(w, resp)
}

// ExportEvent handles GET /events/{id}/ics, serving the event as a calendar download.
func (h *Handler) ExportEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	payload, err := calendar.Payload(*event, h.now(), h.calendar)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", calendar.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+calendar.Filename(event.Title)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// CreateEvent handles POST /events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var in model.EventInput
	if !decodeJSON(w, r, &in) {
		return
	}
	event, err := h.events.Create(r.Context(), in)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteCreated(w, event)
}

// UpdateEvent handles PATCH and PUT /events/{id}. Both merge the supplied fields.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var patch model.EventPatch
	if !decodeJSON(w, r, &patch) {
		return
	}
	event, err := h.events.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, event)
}

// DeleteEvent handles DELETE /events/{id}. Deleting a missing event succeeds.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.events.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RSVP handles POST /events/{id}/rsvp.
func (h *Handler) RSVP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.events.RSVP(r.Context(), id, middleware.GetSession(r).User.ID); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnRSVP handles DELETE /events/{id}/rsvp.
func (h *Handler) UnRSVP(w http.ResponseWriter, r *http.Request) {
	if err := h.events.UnRSVP(r.Context(), chi.URLParam(r, "id"), middleware.GetSession(r).User.ID); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MyEvents handles GET /me/events.
func (h *Handler) MyEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.EventsForUser(r.Context(), middleware.GetSession(r).User.ID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, events)
}
