// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/campusconnect/campusconnect/internal/model"
)

// ContextKey is a type for context keys used in this package.
type ContextKey string

// ContextKeySession is the context key for the authenticated session.
const ContextKeySession ContextKey = "session"

// Authenticator resolves a bearer token to a session.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.Session, error)
}

// bearerToken extracts the token of an "Authorization: Bearer <token>" header.
// ok is false when the header is absent.
func bearerToken(r *http.Request) (token string, ok bool, msg string) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false, "Missing Authorization header"
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", true, "Invalid Authorization header format. Use: Bearer <token>"
	}
	if strings.TrimSpace(token) == "" {
		return "", true, "Session token is empty"
	}
	return strings.TrimSpace(token), true, ""
}

// authenticate validates the bearer token of r.
// If required is true and validation fails, it writes an error response and
// returns (nil, true). The second return value reports whether a response was written.
func authenticate(w http.ResponseWriter, r *http.Request, auth Authenticator, required bool) (*model.Session, bool) {
	token, present, msg := bearerToken(r)
	if msg != "" {
		if required || present {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", msg, nil)
			return nil, true
		}
		return nil, false
	}

	session, err := auth.Authenticate(r.Context(), token)
	if err != nil {
		if !errors.Is(err, model.ErrUnauthenticated) {
			slog.Error("failed to validate session", "category", "auth", "error", err)
			WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to validate session", nil)
			return nil, true
		}
		if required {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired session", nil)
			return nil, true
		}
		return nil, false
	}
	return session, false
}

// SessionAuth creates middleware that requires a valid session bearer token.
func SessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, written := authenticate(w, r, auth, true)
			if written {
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), session)))
		})
	}
}

// OptionalSessionAuth adds the session to the context when a valid token is
// supplied and serves anonymous requests unchanged. A malformed header is
// still rejected.
func OptionalSessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, written := authenticate(w, r, auth, false)
			if written {
				return
			}
			if session != nil {
				r = r.WithContext(WithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOrganizer rejects sessions whose user is not an organizer.
// This should be used after SessionAuth middleware.
func RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSession(r)
		if session == nil {
			WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Session required", nil)
			return
		}
		if !session.User.IsOrganizer {
			WriteAPIError(w, http.StatusForbidden, "forbidden", "Organizer account required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *model.Session) context.Context {
	return context.WithValue(ctx, ContextKeySession, session)
}

// GetSession retrieves the session from the request context.
// Returns nil if no session is in context.
func GetSession(r *http.Request) *model.Session {
	session, _ := r.Context().Value(ContextKeySession).(*model.Session)
	return session
}
