// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package pages

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/campusconnect/campusconnect/internal/calendar"
	"github.com/campusconnect/campusconnect/internal/model"
	"github.com/campusconnect/campusconnect/internal/service"
)

// ErrQuit is returned by Exec for the quit command.
var ErrQuit = errors.New("quit")

// inputTimeLayout is the layout of event times typed at the prompt, in Options.TimeZone.
const inputTimeLayout = "2006-01-02T15:04"

const helpText = `Locations: #/  #/event/<id>  #/login  #/signup  #/profile  #/dashboard
Commands:
  login <email> <password>
  signup "<name>" <email> <password> [organizer]
  logout
  search [text] ["host=..."] ["category=..."] [from=YYYY-MM-DD] [to=YYYY-MM-DD] [sort=dateAsc|dateDesc|titleAsc|titleDesc]
  clear                          reset home filters
  rsvp [id] | unrsvp [id]        defaults to the event being viewed
  ics [id]                       write an .ics file for the event
  create "title=..." "description=..." date=YYYY-MM-DDTHH:MM [end=...] "location=..." "host=..." [image=...] [category=...]
  edit <id> "field=value" ...
  delete <id>
  help | quit`

// Run reads commands from in until EOF or quit.
func (a *App) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		a.printf("> ")
		if !scanner.Scan() {
			a.println()
			return scanner.Err()
		}
		if err := a.Exec(scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			a.fail(err)
		}
	}
}

// Exec runs a single command line. Arguments are separated by spaces; an
// argument containing spaces must be wrapped in double quotes as a whole.
func (a *App) Exec(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if strings.HasPrefix(line, "#") || strings.HasPrefix(line, "/") {
		a.nav.Navigate(line)
		return nil
	}

	args, err := splitArgs(line)
	if err != nil {
		return err
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "help", "?":
		a.println(helpText)
		return nil
	case "quit", "exit":
		return ErrQuit
	case "login":
		return a.cmdLogin(args)
	case "signup":
		return a.cmdSignup(args)
	case "logout":
		if err := a.auth.Logout(a.ctx); err != nil {
			return err
		}
		a.nav.Navigate(LocationLogin)
		return nil
	case "search":
		return a.cmdSearch(args)
	case "clear":
		a.filters = service.Query{Sort: service.SortDateAsc}
		a.nav.Navigate(LocationHome)
		return nil
	case "rsvp":
		return a.cmdRSVP(args, true)
	case "unrsvp":
		return a.cmdRSVP(args, false)
	case "ics":
		return a.cmdICS(args)
	case "create":
		return a.cmdCreate(args)
	case "edit":
		return a.cmdEdit(args)
	case "delete":
		return a.cmdDelete(args)
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
}

// splitArgs splits a command line on spaces, honouring double quotes.
func splitArgs(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.Comma = ' '
	r.TrimLeadingSpace = true
	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("parsing command: %w", err)
	}
	args := fields[:0]
	for _, f := range fields {
		if f != "" {
			args = append(args, f)
		}
	}
	if len(args) == 0 {
		return nil, errors.New("empty command")
	}
	return args, nil
}

// keyValues splits "key=value" arguments. Arguments without "=" are returned as rest.
func keyValues(args []string) (kv map[string]string, rest []string) {
	kv = make(map[string]string)
	for _, arg := range args {
		if k, v, ok := strings.Cut(arg, "="); ok {
			kv[strings.ToLower(k)] = v
			continue
		}
		rest = append(rest, arg)
	}
	return kv, rest
}

func (a *App) cmdLogin(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: login <email> <password>")
	}
	if _, err := a.auth.Login(a.ctx, args[0], args[1]); err != nil {
		return err
	}
	a.nav.Navigate(LocationHome)
	return nil
}

func (a *App) cmdSignup(args []string) error {
	if len(args) < 3 || len(args) > 4 {
		return errors.New(`usage: signup "<name>" <email> <password> [organizer]`)
	}
	organizer := len(args) == 4 && strings.EqualFold(args[3], "organizer")
	if _, err := a.auth.Signup(a.ctx, args[0], args[1], args[2], organizer); err != nil {
		return err
	}
	a.nav.Navigate(LocationHome)
	return nil
}

func (a *App) cmdSearch(args []string) error {
	kv, rest := keyValues(args)
	q := service.Query{
		Search:   strings.TrimSpace(strings.Join(append(rest, kv["q"]), " ")),
		Host:     kv["host"],
		Category: kv["category"],
	}
	var err error
	if q.From, err = service.ParseDate(kv["from"]); err != nil {
		return model.Invalid("from", "must be a date (YYYY-MM-DD)")
	}
	if q.To, err = service.ParseDate(kv["to"]); err != nil {
		return model.Invalid("to", "must be a date (YYYY-MM-DD)")
	}
	if q.Sort, err = service.ParseSortOrder(kv["sort"]); err != nil {
		return err
	}
	a.filters = q
	a.nav.Navigate(LocationHome)
	return nil
}

// eventArg returns the explicit id argument or the event being viewed.
func (a *App) eventArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.currentEvent != "" {
		return a.currentEvent, nil
	}
	return "", errors.New("no event selected; open #/event/<id> or pass an id")
}

func (a *App) cmdRSVP(args []string, attend bool) error {
	id, err := a.eventArg(args)
	if err != nil {
		return err
	}
	s := a.session()
	if s == nil {
		a.nav.Navigate(LocationLogin)
		return nil
	}
	if attend {
		err = a.events.RSVP(a.ctx, id, s.User.ID)
	} else {
		err = a.events.UnRSVP(a.ctx, id, s.User.ID)
	}
	if err != nil {
		return err
	}
	a.nav.Navigate(EventLocation(id))
	return nil
}

func (a *App) cmdICS(args []string) error {
	id, err := a.eventArg(args)
	if err != nil {
		return err
	}
	path, err := ExportICS(a.ctx, a.events, id, a.opts.ExportDir, a.opts.Now(), a.opts.Calendar)
	if err != nil {
		return err
	}
	a.printf("Saved %s\n", path)
	return nil
}

// requireOrganizer returns nil when an organizer is logged in. Otherwise it
// navigates to the login page and returns an error.
func (a *App) requireOrganizer() error {
	s := a.session()
	if s == nil || !s.User.IsOrganizer {
		a.nav.Navigate(LocationLogin)
		return errors.New("organizer account required")
	}
	return nil
}

func (a *App) parseTime(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(inputTimeLayout, value, a.opts.TimeZone)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, value); err != nil {
			return time.Time{}, model.Invalid(field, "must look like 2006-01-02T15:04")
		}
	}
	return t, nil
}

func (a *App) cmdCreate(args []string) error {
	if err := a.requireOrganizer(); err != nil {
		return err
	}
	kv, rest := keyValues(args)
	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument %q; use field=value", rest[0])
	}

	in := model.EventInput{
		Title:       strings.TrimSpace(kv["title"]),
		Description: strings.TrimSpace(kv["description"]),
		Location:    strings.TrimSpace(kv["location"]),
		Host:        strings.TrimSpace(kv["host"]),
		Image:       strings.TrimSpace(kv["image"]),
		Category:    strings.TrimSpace(kv["category"]),
	}
	if v, ok := kv["date"]; ok {
		t, err := a.parseTime("date", v)
		if err != nil {
			return err
		}
		in.Date = t
		in.EndDate = t.Add(time.Hour)
	}
	if v, ok := kv["end"]; ok {
		t, err := a.parseTime("end", v)
		if err != nil {
			return err
		}
		in.EndDate = t
	}

	ev, err := a.events.Create(a.ctx, in)
	if err != nil {
		return err
	}
	a.printf("Created %s (%s)\n", ev.Title, ev.ID)
	a.nav.Navigate(LocationDashboard)
	return nil
}

func (a *App) cmdEdit(args []string) error {
	if err := a.requireOrganizer(); err != nil {
		return err
	}
	if len(args) < 2 {
		return errors.New(`usage: edit <id> "field=value" ...`)
	}
	id := args[0]
	kv, rest := keyValues(args[1:])
	if len(rest) > 0 {
		return fmt.Errorf("unexpected argument %q; use field=value", rest[0])
	}

	var patch model.EventPatch
	for k, v := range kv {
		v = strings.TrimSpace(v)
		switch k {
		case "title":
			patch.Title = &v
		case "description":
			patch.Description = &v
		case "location":
			patch.Location = &v
		case "host":
			patch.Host = &v
		case "image":
			patch.Image = &v
		case "category":
			patch.Category = &v
		case "date", "end":
			t, err := a.parseTime(k, v)
			if err != nil {
				return err
			}
			if k == "date" {
				patch.Date = &t
			} else {
				patch.EndDate = &t
			}
		default:
			return model.Invalid(k, "is not an event field")
		}
	}

	ev, err := a.events.Update(a.ctx, id, patch)
	if err != nil {
		return err
	}
	a.printf("Saved %s\n", ev.Title)
	a.nav.Navigate(LocationDashboard)
	return nil
}

func (a *App) cmdDelete(args []string) error {
	if err := a.requireOrganizer(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errors.New("usage: delete <id>")
	}
	if err := a.events.Remove(a.ctx, args[0]); err != nil {
		return err
	}
	slog.Debug("event deleted from dashboard", "event_id", args[0])
	a.nav.Navigate(LocationDashboard)
	return nil
}

// ExportICS writes the calendar file of event id into dir and returns its path.
func ExportICS(ctx context.Context, events *service.EventService, id, dir string, now time.Time, opts calendar.Options) (string, error) {
	ev, err := events.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	payload, err := calendar.Payload(*ev, now, opts)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, calendar.Filename(ev.Title))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
