// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"strings"
	"text/tabwriter"

	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/router"
	"github.com/campusconnect/campusconnect/internal/service"
)

const rule = "----------------------------------------"

// navbar prints the links available to the current visitor.
func (a *App) navbar(s *model.Session) {
	links := []string{"#/ Home"}
	if s != nil {
		links = append(links, "#/profile Profile")
		if s.User.IsOrganizer {
			links = append(links, "#/dashboard Dashboard")
		}
		links = append(links, "["+s.User.Name+"] logout")
	} else {
		links = append(links, "#/login Login", "#/signup Sign Up")
	}
	a.println("CampusConnect | " + strings.Join(links, " | "))
	a.println(rule)
}

// card prints the summary of an event.
func (a *App) card(e model.Event) {
	a.printf("* %s  [%s]\n", e.Title, model.CategoryLabel(e.Category))
	a.printf("  %s | %s | %s\n", a.formatTime(e.Date), e.Location, e.Host)
	a.printf("  %s\n", e.Description)
	a.printf("  -> #/event/%s\n", e.ID)
}

func (a *App) home(router.Params) {
	a.navbar(a.session())
	a.println("Find your next campus event")

	facets, err := a.events.Facets(a.ctx)
	if err != nil {
		a.fail(err)
		return
	}
	a.printf("Hosts: %s\n", joinOrDash(facets.Hosts))
	a.printf("Categories: %s\n", joinOrDash(facets.Categories))
	if f := describeFilters(a.filters); f != "" {
		a.printf("Filters: %s\n", f)
	}
	a.println(rule)

	events, err := a.events.Search(a.ctx, a.filters)
	if err != nil {
		a.fail(err)
		return
	}
	if len(events) == 0 {
		a.println("No events match your filters. Try adjusting search or dates.")
		return
	}
	for _, e := range events {
		a.card(e)
	}
}

func (a *App) eventDetails(p router.Params) {
	s := a.session()
	a.navbar(s)

	ev, err := a.events.GetByID(a.ctx, p["id"])
	if err != nil {
		if model.KindOf(err) == model.KindNotFound {
			a.println("Event not found.")
			return
		}
		a.fail(err)
		return
	}
	a.currentEvent = ev.ID

	a.println(ev.Title)
	a.printf("Starts:   %s\n", a.formatTime(ev.Date))
	a.printf("Ends:     %s\n", a.formatTime(ev.EndDate))
	a.printf("Location: %s\n", ev.Location)
	a.printf("Host:     %s\n", ev.Host)
	a.printf("Category: %s\n", model.CategoryLabel(ev.Category))
	if ev.Image != "" {
		a.printf("Image:    %s\n", ev.Image)
	}
	a.println()
	a.println(ev.Description)
	a.println(rule)

	if s == nil {
		a.println("Please log in to RSVP (#/login). Commands: ics, #/ back")
		return
	}
	rsvped, err := a.events.HasRSVP(a.ctx, ev.ID, s.User.ID)
	if err != nil {
		a.fail(err)
		return
	}
	if rsvped {
		a.println("You are going. Commands: unrsvp, ics, #/ back")
	} else {
		a.println("Commands: rsvp, ics, #/ back")
	}
}

func (a *App) login(router.Params) {
	if a.session() != nil {
		a.nav.Navigate(LocationHome)
		return
	}
	a.navbar(nil)
	a.println("Login")
	a.println("Usage: login <email> <password>")
	a.println("No account? #/signup")
}

func (a *App) signup(router.Params) {
	if a.session() != nil {
		a.nav.Navigate(LocationHome)
		return
	}
	a.navbar(nil)
	a.println("Create your account")
	a.println(`Usage: signup "<name>" <email> <password> [organizer]`)
	a.println("Already registered? #/login")
}

func (a *App) profile(router.Params) {
	s := a.session()
	if s == nil {
		a.nav.Navigate(LocationLogin)
		return
	}
	a.navbar(s)
	a.println("Profile")
	a.printf("%s - %s\n", s.User.Name, s.User.Email)
	a.println(rule)
	a.println("My RSVPs")

	events, err := a.events.EventsForUser(a.ctx, s.User.ID)
	if err != nil {
		a.fail(err)
		return
	}
	if len(events) == 0 {
		a.println("No RSVPs yet. Explore events on the Home page.")
		return
	}
	for _, e := range events {
		a.card(e)
	}
}

func (a *App) dashboard(router.Params) {
	s := a.session()
	if s == nil || !s.User.IsOrganizer {
		a.nav.Navigate(LocationLogin)
		return
	}
	a.navbar(s)
	a.println("Organizer Dashboard")
	a.println(`Commands: create "title=..." ..., edit <id> "field=..." ..., delete <id>`)
	a.println(rule)

	events, err := a.events.ListAll(a.ctx)
	if err != nil {
		a.fail(err)
		return
	}
	if len(events) == 0 {
		a.println("No events yet.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	_, _ = tw.Write([]byte("ID\tTITLE\tDATE\tLOCATION\tHOST\n"))
	for _, e := range events {
		_, _ = tw.Write([]byte(strings.Join([]string{
			e.ID, e.Title, a.formatTime(e.Date), e.Location, e.Host,
		}, "\t") + "\n"))
	}
	_ = tw.Flush()
}

func joinOrDash(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

// describeFilters summarises the non-default filters of q.
func describeFilters(q service.Query) string {
	var parts []string
	if q.Search != "" {
		parts = append(parts, "q="+q.Search)
	}
	if q.Host != "" {
		parts = append(parts, "host="+q.Host)
	}
	if q.Category != "" {
		parts = append(parts, "category="+q.Category)
	}
	if !q.From.IsZero() {
		parts = append(parts, "from="+q.From.Format("2006-01-02"))
	}
	if !q.To.IsZero() {
		parts = append(parts, "to="+q.To.Format("2006-01-02"))
	}
	if q.Sort != "" && q.Sort != service.SortDateAsc {
		parts = append(parts, "sort="+string(q.Sort))
	}
	return strings.Join(parts, " ")
}
