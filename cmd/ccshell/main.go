// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/campusconnect/campusconnect/internal/auth"
	"github.com/campusconnect/campusconnect/internal/calendar"
	"github.com/campusconnect/campusconnect/internal/config"
	"github.com/campusconnect/campusconnect/internal/logging"
	"github.com/campusconnect/campusconnect/internal/pages"
	"github.com/campusconnect/campusconnect/internal/service"
	"github.com/campusconnect/campusconnect/internal/store"
	"github.com/campusconnect/campusconnect/internal/version"
)

func main() {
	// Load .env file first, but don't error if it doesn't exist.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "ccshell",
		Usage:   "Browse CampusConnect events from the terminal.",
		Version: version.Current().String(),
		Commands: []*cli.Command{
			browseCommand(),
			exportCommand(),
			seedCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("ccshell failed", "error", err)
		os.Exit(1)
	}
}

// env is the configuration and opened store shared by every command.
type env struct {
	cfg   *config.Config
	store *store.Store
}

func openEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	// Logs go to stderr so they never interleave with rendered pages.
	slog.SetDefault(logging.New(os.Stderr, cfg.SlogLevel(), cfg.IsDevelopment()))

	if cfg.Store == store.TypeSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}
	st, err := store.Open(cfg.StoreConfig())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &env{cfg: cfg, store: st}, nil
}

func (e *env) close() {
	if err := e.store.Close(); err != nil {
		slog.Error("error closing store", "error", err)
	}
}

func browseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Start the interactive browser on stdin.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "at", Value: pages.LocationHome, Usage: "Initial location, e.g. #/login"},
			&cli.StringFlag{Name: "export-dir", Value: ".", Usage: "Directory receiving .ics files"},
			&cli.StringFlag{Name: "tz", Usage: "Time zone for displaying and entering times (default: local)"},
		},
		Action: func(c *cli.Context) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if e.cfg.DoSeed {
				if err := store.Seed(c.Context, e.store, time.Now()); err != nil {
					return fmt.Errorf("seeding store: %w", err)
				}
			}

			loc := time.Local
			if tz := c.String("tz"); tz != "" {
				if loc, err = time.LoadLocation(tz); err != nil {
					return fmt.Errorf("invalid timezone %q: %w", tz, err)
				}
			}

			app := pages.New(c.Context,
				auth.NewService(e.store),
				service.NewEventService(e.store, e.cfg.LanguageTag()),
				os.Stdout,
				pages.Options{
					Calendar:  calendar.Options{Domain: e.cfg.ICSDomain},
					ExportDir: c.String("export-dir"),
					TimeZone:  loc,
				})
			app.Navigate(c.String("at"))
			return app.Run(os.Stdin)
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Write the .ics calendar file of an event.",
		ArgsUsage: "<event-id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "Output directory"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return cli.Exit("usage: ccshell export <event-id>", 2)
			}
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			events := service.NewEventService(e.store, e.cfg.LanguageTag())
			path, err := pages.ExportICS(c.Context, events, c.Args().First(), c.String("dir"),
				time.Now(), calendar.Options{Domain: e.cfg.ICSDomain})
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write the demo organizer and events into an empty store.",
		Action: func(c *cli.Context) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			if err := store.Seed(c.Context, e.store, time.Now()); err != nil {
				return fmt.Errorf("seeding store: %w", err)
			}
			slog.Info("seed complete", "category", "store", "organizer", store.DemoOrganizerEmail)
			return nil
		},
	}
}
