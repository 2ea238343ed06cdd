// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package auth implements the identity service: signup, login, logout and the single
// process-wide session, all persisted through the store.
//
// Passwords are stored and compared in plaintext. They are placeholders until
// authentication moves to a real backend.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/store"
)

// Service manages users and the current session.
type Service struct {
	store    *store.Store
	newID    func() string
	newToken func() string
}

// NewService creates an identity service backed by s.
func NewService(s *store.Store) *Service {
	return &Service{
		store:    s,
		newID:    uuid.NewString,
		newToken: uuid.NewString,
	}
}

// Login opens a session for the user whose email matches case-insensitively and whose
// password matches exactly. Unknown email and wrong password fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (*model.Session, error) {
	email = strings.TrimSpace(email)

	s.store.Lock()
	defer s.store.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.HasEmail(email) && u.Password == password {
			session, err := s.openSession(ctx, u)
			if err != nil {
				return nil, err
			}
			slog.Info("user logged in", "category", "auth", "user_id", u.ID)
			return session, nil
		}
	}

	slog.Warn("login failed", "category", "auth")
	return nil, model.ErrInvalidCredentials
}

// Signup registers a new user and logs them in.
func (s *Service) Signup(ctx context.Context, name, email, password string, isOrganizer bool) (*model.Session, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	switch {
	case name == "":
		return nil, model.Invalid("name", "is required")
	case email == "":
		return nil, model.Invalid("email", "is required")
	case password == "":
		return nil, model.Invalid("password", "is required")
	}

	s.store.Lock()
	defer s.store.Unlock()

	users, err := s.users(ctx)
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		if u.HasEmail(email) {
			return nil, model.EmailTaken(email)
		}
	}

	user := model.User{
		ID:          s.newID(),
		Name:        name,
		Email:       email,
		Password:    password,
		IsOrganizer: isOrganizer,
	}
	users = append(users, user)
	if err := store.Set(ctx, s.store, store.KeyUsers, users); err != nil {
		return nil, fmt.Errorf("saving users: %w", err)
	}

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}
	slog.Info("user signed up", "category", "auth", "user_id", user.ID, "organizer", isOrganizer)
	return session, nil
}

// Logout ends the current session. Without a session it does nothing.
func (s *Service) Logout(ctx context.Context) error {
	s.store.Lock()
	defer s.store.Unlock()

	if err := s.store.Delete(ctx, store.KeyAuth); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	slog.Debug("user logged out", "category", "auth")
	return nil
}

// CurrentSession returns the active session, or nil when nobody is logged in.
func (s *Service) CurrentSession(ctx context.Context) (*model.Session, error) {
	session, err := store.Get[*model.Session](ctx, s.store, store.KeyAuth, nil)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return session, nil
}

// IsAuthenticated reports whether a session is active.
func (s *Service) IsAuthenticated(ctx context.Context) (bool, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// Authenticate returns the active session if token is its bearer token.
func (s *Service) Authenticate(ctx context.Context, token string) (*model.Session, error) {
	session, err := s.CurrentSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || token == "" ||
		subtle.ConstantTimeCompare([]byte(session.Token), []byte(token)) != 1 {
		return nil, model.ErrUnauthenticated
	}
	return session, nil
}

// openSession replaces any existing session with a new one for u.
func (s *Service) openSession(ctx context.Context, u model.User) (*model.Session, error) {
	session := &model.Session{
		Token: s.newToken(),
		User:  u.Public(),
	}
	if err := store.Set(ctx, s.store, store.KeyAuth, session); err != nil {
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return session, nil
}

func (s *Service) users(ctx context.Context) ([]model.User, error) {
	users, err := store.Get(ctx, s.store, store.KeyUsers, []model.User{})
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	return users, nil
}
