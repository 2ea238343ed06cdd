// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/campusconnect/campusconnect/internal/auth"
	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/service"
	"github.com/campusconnect/campusconnect/internal/store"
)

var fixedNow = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

type testApp struct {
	*App
	out    *bytes.Buffer
	events *service.EventService
	dir    string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()
	s := store.NewMemory()
	require.NoError(t, store.Seed(ctx, s, fixedNow))

	events := service.NewEventService(s, language.English)
	out := &bytes.Buffer{}
	dir := t.TempDir()
	app := New(ctx, auth.NewService(s), events, out, Options{
		ExportDir: dir,
		TimeZone:  time.UTC,
		Now:       func() time.Time { return fixedNow },
	})
	return &testApp{App: app, out: out, events: events, dir: dir}
}

// exec runs line and returns what it printed.
func (ta *testApp) exec(t *testing.T, line string) string {
	t.Helper()
	ta.out.Reset()
	require.NoError(t, ta.Exec(line), "command %q", line)
	return ta.out.String()
}

func (ta *testApp) eventID(t *testing.T, title string) string {
	t.Helper()
	all, err := ta.events.ListAll(context.Background())
	require.NoError(t, err)
	for _, e := range all {
		if e.Title == title {
			return e.ID
		}
	}
	t.Fatalf("no event titled %q", title)
	return ""
}

func TestHomeAnonymous(t *testing.T) {
	ta := newTestApp(t)
	ta.Start()
	out := ta.out.String()

	assert.Equal(t, LocationHome, ta.Location())
	assert.Contains(t, out, "#/login Login | #/signup Sign Up")
	assert.Contains(t, out, "Categories: Tech, Academic, Culture, Sports")
	assert.Contains(t, out, "Web Development Workshop")
	assert.NotContains(t, out, "Dashboard")

	// date ascending: the workshop (day +2) comes before the robotics final (day +7)
	assert.Less(t, strings.Index(out, "Web Development Workshop"), strings.Index(out, "Robotics Competition"))
}

func TestUnknownLocationFallsBackHome(t *testing.T) {
	ta := newTestApp(t)
	out := ta.exec(t, "#/nowhere")
	assert.Equal(t, LocationHome, ta.Location())
	assert.Contains(t, out, "Find your next campus event")
}

func TestEventDetails(t *testing.T) {
	ta := newTestApp(t)
	id := ta.eventID(t, "Data Science Seminar")

	out := ta.exec(t, "#"+EventLocation(id))
	assert.Contains(t, out, "Data Science Seminar")
	assert.Contains(t, out, "Starts:   Tue 20 Oct 2026 11:00")
	assert.Contains(t, out, "Please log in to RSVP")

	out = ta.exec(t, "#/event/missing")
	assert.Contains(t, out, "Event not found.")
}

func TestLoginAndLogout(t *testing.T) {
	ta := newTestApp(t)
	ta.Navigate(LocationLogin)

	err := ta.Exec("login org@uni.edu wrong")
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
	assert.Equal(t, LocationLogin, ta.Location())

	out := ta.exec(t, "login ORG@uni.edu password")
	assert.Equal(t, LocationHome, ta.Location())
	assert.Contains(t, out, "#/dashboard Dashboard")
	assert.Contains(t, out, "[Organizer One] logout")

	ta.exec(t, "logout")
	assert.Equal(t, LocationLogin, ta.Location())
}

func TestGuardedPages(t *testing.T) {
	ta := newTestApp(t)

	ta.exec(t, "#/profile")
	assert.Equal(t, LocationLogin, ta.Location())

	ta.exec(t, "#/dashboard")
	assert.Equal(t, LocationLogin, ta.Location())

	// a student is sent to login, which bounces logged-in users home
	ta.exec(t, `signup "Ada Student" ada@uni.edu secret`)
	ta.exec(t, "#/dashboard")
	assert.Equal(t, LocationHome, ta.Location())

	ta.exec(t, "#/signup")
	assert.Equal(t, LocationHome, ta.Location())
}

func TestRSVPFlow(t *testing.T) {
	ta := newTestApp(t)
	id := ta.eventID(t, "Cultural Fest Night")

	ta.exec(t, "#"+EventLocation(id))
	ta.exec(t, "rsvp")
	assert.Equal(t, LocationLogin, ta.Location(), "anonymous rsvp goes to login")

	ta.exec(t, `signup "Ada Student" ada@uni.edu secret`)
	ta.exec(t, "#"+EventLocation(id))
	out := ta.exec(t, "rsvp")
	assert.Contains(t, out, "You are going.")
	assert.Equal(t, EventLocation(id), ta.Location())

	out = ta.exec(t, "#/profile")
	assert.Contains(t, out, "Ada Student - ada@uni.edu")
	assert.Contains(t, out, "Cultural Fest Night")

	ta.exec(t, "unrsvp "+id)
	out = ta.exec(t, "#/profile")
	assert.Contains(t, out, "No RSVPs yet.")

	assert.Error(t, ta.Exec("rsvp"), "no event is selected on the profile page")
	assert.ErrorIs(t, ta.Exec("rsvp missing"), model.ErrNotFound)
}

func TestSearchCommand(t *testing.T) {
	ta := newTestApp(t)

	out := ta.exec(t, `search club "category=Tech" sort=titleDesc`)
	f := ta.Filters()
	assert.Equal(t, "club", f.Search)
	assert.Equal(t, "Tech", f.Category)
	assert.Equal(t, service.SortTitleDesc, f.Sort)
	assert.Contains(t, out, "Filters: q=club category=Tech sort=titleDesc")
	assert.Less(t, strings.Index(out, "* Web Development Workshop"), strings.Index(out, "* Robotics Competition"))
	assert.NotContains(t, out, "* Data Science Seminar")

	out = ta.exec(t, "search from=2026-11-01")
	assert.Contains(t, out, "No events match your filters.")

	assert.ErrorIs(t, ta.Exec("search sort=newest"), model.ErrInvalid)
	assert.ErrorIs(t, ta.Exec("search to=tomorrow"), model.ErrInvalid)

	ta.exec(t, "clear")
	assert.Equal(t, service.Query{Sort: service.SortDateAsc}, ta.Filters())
}

func TestOrganizerCommands(t *testing.T) {
	ta := newTestApp(t)

	assert.Error(t, ta.Exec(`create "title=Hack Night"`))
	assert.Equal(t, LocationLogin, ta.Location())

	ta.exec(t, "login org@uni.edu password")
	out := ta.exec(t, `create "title=Hack Night" "description=Build things overnight." date=2026-10-30T20:00 "location=Tech Lab" "host=Coding Club" category=Tech`)
	assert.Contains(t, out, "Created Hack Night")
	assert.Equal(t, LocationDashboard, ta.Location())
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Hack Night")

	id := ta.eventID(t, "Hack Night")
	ev, err := ta.events.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 30, 20, 0, 0, 0, time.UTC), ev.Date)
	assert.Equal(t, ev.Date.Add(time.Hour), ev.EndDate)

	assert.ErrorIs(t, ta.Exec(`create "title=Incomplete"`), model.ErrInvalid)
	assert.ErrorIs(t, ta.Exec(`create date=soon`), model.ErrInvalid)

	out = ta.exec(t, `edit `+id+` "title=Hack Night 2" end=2026-10-31T02:00`)
	assert.Contains(t, out, "Saved Hack Night 2")
	ev, err = ta.events.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Hack Night 2", ev.Title)
	assert.Equal(t, time.Date(2026, 10, 31, 2, 0, 0, 0, time.UTC), ev.EndDate)

	assert.ErrorIs(t, ta.Exec(`edit `+id+` colour=red`), model.ErrInvalid)
	assert.ErrorIs(t, ta.Exec(`edit missing "title=x"`), model.ErrNotFound)

	ta.exec(t, "delete "+id)
	_, err = ta.events.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestICSCommand(t *testing.T) {
	ta := newTestApp(t)
	id := ta.eventID(t, "Cultural Fest Night")

	ta.exec(t, "#"+EventLocation(id))
	out := ta.exec(t, "ics")
	path := filepath.Join(ta.dir, "cultural_fest_night.ics")
	assert.Contains(t, out, "Saved "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "SUMMARY:Cultural Fest Night")
	assert.Contains(t, string(data), "UID:"+id+"@campusconnect.local")

	assert.ErrorIs(t, ta.Exec("ics missing"), model.ErrNotFound)
}

func TestExecErrors(t *testing.T) {
	ta := newTestApp(t)
	assert.NoError(t, ta.Exec("   "))
	assert.Error(t, ta.Exec("dance"))
	assert.Error(t, ta.Exec("login only-email"))
	assert.ErrorIs(t, ta.Exec("quit"), ErrQuit)
}

func TestRun(t *testing.T) {
	ta := newTestApp(t)
	script := strings.Join([]string{
		"help",
		"login org@uni.edu nope",
		"#/login",
		"quit",
		"#/profile",
	}, "\n")

	require.NoError(t, ta.Run(strings.NewReader(script)))
	out := ta.out.String()
	assert.Contains(t, out, "Locations:")
	assert.Contains(t, out, "error: ")
	assert.Equal(t, LocationLogin, ta.Location(), "commands after quit are not run")
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"login a@b.c pw", []string{"login", "a@b.c", "pw"}},
		{`signup "Ada Lovelace" ada@uni.edu pw`, []string{"signup", "Ada Lovelace", "ada@uni.edu", "pw"}},
		{`create   "title=Hack Night"  host=Club`, []string{"create", "title=Hack Night", "host=Club"}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := splitArgs(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := splitArgs(`login a"b pw`)
	assert.Error(t, err)
}
