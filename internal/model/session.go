// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// SessionUser mirrors the public fields of a User at the moment of authentication.
type SessionUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsOrganizer bool   `json:"isOrganizer"`
}

// Session is the authenticated identity context. At most one exists at a time.
type Session struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}
