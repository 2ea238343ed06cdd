// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of failures the services report to their callers.
type ErrorKind string

// Error kinds
const (
	KindInvalidCredentials ErrorKind = "invalid_credentials"
	KindEmailTaken         ErrorKind = "email_taken"
	KindNotFound           ErrorKind = "not_found"
	KindInvalid            ErrorKind = "invalid"
	KindUnauthenticated    ErrorKind = "unauthenticated"
)

// Error is a service failure with the context needed to report it.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind   ErrorKind
	Email  string // EmailTaken
	ID     string // NotFound
	Field  string // Invalid
	Reason string // Invalid
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrEmailTaken         = &Error{Kind: KindEmailTaken}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalid            = &Error{Kind: KindInvalid}
	ErrUnauthenticated    = &Error{Kind: KindUnauthenticated}
)

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidCredentials:
		return "invalid credentials"
	case KindEmailTaken:
		if e.Email == "" {
			return "email already registered"
		}
		return fmt.Sprintf("email already registered: %s", e.Email)
	case KindNotFound:
		if e.ID == "" {
			return "event not found"
		}
		return fmt.Sprintf("event not found: %s", e.ID)
	case KindInvalid:
		if e.Field == "" {
			return "invalid input"
		}
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	case KindUnauthenticated:
		return "not authenticated"
	default:
		return string(e.Kind)
	}
}

// Is matches any *Error with the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// EmailTaken reports that email is already registered.
func EmailTaken(email string) error {
	return &Error{Kind: KindEmailTaken, Email: email}
}

// NotFound reports that no event has the given id.
func NotFound(id string) error {
	return &Error{Kind: KindNotFound, ID: id}
}

// Invalid reports a field that failed validation.
func Invalid(field, reason string) error {
	return &Error{Kind: KindInvalid, Field: field, Reason: reason}
}

// KindOf returns the kind of err, or "" when err is not a service error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
