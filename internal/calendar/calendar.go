// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package calendar exports events as iCalendar (RFC 5545) documents.
package calendar

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/mozillazg/go-unidecode"

	"github.com/campusconnect/campusconnect/internal/model"
)

// ContentType is the MIME type of an exported calendar.
const ContentType = "text/calendar"

// Calendar header values.
const (
	ProductID     = "-//CampusConnect//EN"
	DefaultDomain = "campusconnect.local"
)

// Options tunes the generated document.
type Options struct {
	// Domain is appended to the event id to form the UID. Defaults to DefaultDomain.
	Domain string
}

// UID returns the globally unique identifier of e within domain.
func UID(e model.Event, domain string) string {
	if domain == "" {
		domain = DefaultDomain
	}
	return e.ID + "@" + domain
}

// Encode builds the calendar for e. now is used as the DTSTAMP, so the result
// is deterministic for a fixed now. A zero end time is replaced by the start.
func Encode(e model.Event, now time.Time, opts Options) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")

	end := e.EndDate
	if end.IsZero() {
		end = e.Date
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, UID(e, opts.Domain))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.Date.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	ve.Props.SetText(ical.PropSummary, e.Title)
	ve.Props.SetText(ical.PropDescription, e.Description)
	ve.Props.SetText(ical.PropLocation, e.Location)

	cal.Children = append(cal.Children, ve)
	return cal
}

// Payload returns the encoded calendar for e.
func Payload(e model.Event, now time.Time, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(Encode(e, now, opts)); err != nil {
		return nil, fmt.Errorf("encoding calendar for event %s: %w", e.ID, err)
	}
	return buf.Bytes(), nil
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Filename derives a download filename from an event title: the title is
// transliterated to ASCII, every run of other characters becomes "_" and the
// result is lower-cased.
func Filename(title string) string {
	name := strings.ToLower(unidecode.Unidecode(title))
	name = nonAlnum.ReplaceAllString(name, "_")
	if strings.Trim(name, "_") == "" {
		name = "event"
	}
	return name + ".ics"
}
