// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/campusconnect/campusconnect/internal/middleware"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsOrganizer bool   `json:"isOrganizer"`
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteSuccess(w, session)
}

// Signup handles POST /auth/signup.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.auth.Signup(r.Context(), req.Name, req.Email, req.Password, req.IsOrganizer)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}
	WriteCreated(w, session)
}

// Logout handles POST /auth/logout. Only the holder of the current session may end it.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context()); err != nil {
		WriteServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Session handles GET /auth/session.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, middleware.GetSession(r))
}
