// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pages renders the CampusConnect views as text and drives them
// through the router, the way a browser drives hash-routed pages.
package pages

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/campusconnect/campusconnect/internal/auth"
	"github.com/campusconnect/campusconnect/internal/calendar"
	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/router"
	"github.com/campusconnect/campusconnect/internal/service"
)

// Page locations.
const (
	LocationHome      = "/"
	LocationLogin     = "/login"
	LocationSignup    = "/signup"
	LocationProfile   = "/profile"
	LocationDashboard = "/dashboard"
)

// EventLocation returns the details location of the event with the given id.
func EventLocation(id string) string {
	return "/event/" + id
}

// Options configures an App.
type Options struct {
	// Calendar tunes exported .ics files.
	Calendar calendar.Options
	// ExportDir receives exported .ics files. Defaults to the working directory.
	ExportDir string
	// TimeZone is used to display and parse event times. Defaults to time.Local.
	TimeZone *time.Location
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// App is the terminal browser: a navigator whose routes print pages to out.
type App struct {
	ctx    context.Context
	auth   *auth.Service
	events *service.EventService
	out    io.Writer
	opts   Options

	nav    *router.Navigator
	routes *router.Router[router.Handler]

	// filters applied by the home page
	filters service.Query
	// currentEvent is the id shown by the last details page, "" elsewhere
	currentEvent string
}

// New creates an App positioned at the home location. Nothing is printed until
// Start or Navigate is called.
func New(ctx context.Context, authSvc *auth.Service, events *service.EventService, out io.Writer, opts Options) *App {
	if opts.TimeZone == nil {
		opts.TimeZone = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}

	a := &App{
		ctx:     ctx,
		auth:    authSvc,
		events:  events,
		out:     out,
		opts:    opts,
		filters: service.Query{Sort: service.SortDateAsc},
	}

	a.routes = router.New[router.Handler]()
	a.routes.Add(LocationHome, a.home)
	a.routes.Add("/event/:id", a.eventDetails)
	a.routes.Add(LocationLogin, a.login)
	a.routes.Add(LocationSignup, a.signup)
	a.routes.Add(LocationProfile, a.profile)
	a.routes.Add(LocationDashboard, a.dashboard)

	a.nav = router.NewNavigator(a.routes)
	a.nav.OnChange(func(location string) {
		a.currentEvent = ""
		slog.Debug("location changed", "category", "route", "location", location)
	})
	return a
}

// Start renders the current location.
func (a *App) Start() {
	a.nav.Render()
}

// Navigate moves to location, which may carry a leading "#".
func (a *App) Navigate(location string) {
	a.nav.Navigate(location)
}

// Location returns the current location.
func (a *App) Location() string {
	return a.nav.Location()
}

// Filters returns the home page filters.
func (a *App) Filters() service.Query {
	return a.filters
}

// session returns the active session, or nil. Store failures are reported and
// treated as logged out.
func (a *App) session() *model.Session {
	s, err := a.auth.CurrentSession(a.ctx)
	if err != nil {
		a.fail(err)
		return nil
	}
	return s
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.out, format, args...)
}

func (a *App) println(args ...any) {
	_, _ = fmt.Fprintln(a.out, args...)
}

// fail reports err to the user.
func (a *App) fail(err error) {
	slog.Debug("command failed", "error", err)
	a.printf("error: %v\n", err)
}

func (a *App) formatTime(t time.Time) string {
	return t.In(a.opts.TimeZone).Format("Mon 02 Jan 2006 15:04")
}
