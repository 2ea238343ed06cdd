// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusconnect/campusconnect/internal/model"
)

func TestSignupAndSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, RouteSignup, "", SignupRequest{
		Name: "Ada", Email: "ada@uni.edu", Password: "pw", IsOrganizer: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var session model.Session
	decodeData(t, w, &session)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, "ada@uni.edu", session.User.Email)
	assert.True(t, session.User.IsOrganizer)
	assert.NotContains(t, w.Body.String(), `"password"`)

	w = env.do(t, http.MethodGet, RouteSession, session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var current model.Session
	decodeData(t, w, &current)
	assert.Equal(t, session.User.ID, current.User.ID)
}

func TestSignupEmailTaken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@uni.edu", false)

	w := env.do(t, http.MethodPost, RouteSignup, "", SignupRequest{Name: "Other", Email: "ADA@uni.edu", Password: "x"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_taken", errorCode(t, w))
}

func TestSignupMissingFields(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, RouteSignup, "", SignupRequest{Email: "a@b.c", Password: "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid", errorCode(t, w))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@uni.edu", false)

	tests := []struct {
		name       string
		req        LoginRequest
		wantStatus int
	}{
		{"correct", LoginRequest{Email: "ada@uni.edu", Password: "secret"}, http.StatusOK},
		{"email case", LoginRequest{Email: "Ada@Uni.edu", Password: "secret"}, http.StatusOK},
		{"wrong password", LoginRequest{Email: "ada@uni.edu", Password: "nope"}, http.StatusUnauthorized},
		{"unknown email", LoginRequest{Email: "bob@uni.edu", Password: "secret"}, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, RouteLogin, "", tt.req)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "invalid_credentials", errorCode(t, w))
			}
		})
	}
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, RouteLogin, "", map[string]string{"username": "ada"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Invalid JSON body"))
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	token := env.signup(t, "ada@uni.edu", false)

	// Anonymous and stale callers cannot end the session
	w := env.do(t, http.MethodPost, RouteLogout, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodPost, RouteLogout, "stale-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = env.do(t, http.MethodGet, RouteSession, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, RouteLogout, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// A second logout with the old token no longer authenticates
	w = env.do(t, http.MethodPost, RouteLogout, token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodGet, RouteSession, token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", errorCode(t, w))
}
