// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the domain types shared by the store, the services and the
// transports: users, sessions, events, the RSVP index and the error kinds they report.
package model

import "strings"

// User is a registered account.
// Password is a plaintext placeholder until a real backend takes over authentication.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsOrganizer bool   `json:"isOrganizer"`
}

// Public returns the fields of the user that are embedded in a session.
func (u User) Public() SessionUser {
	return SessionUser{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsOrganizer: u.IsOrganizer,
	}
}

// HasEmail reports whether the user's email matches email, ignoring case.
func (u User) HasEmail(email string) bool {
	return strings.EqualFold(u.Email, email)
}
