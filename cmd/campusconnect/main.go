// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/campusconnect/campusconnect/internal/auth"
	"github.com/campusconnect/campusconnect/internal/config"
	"github.com/campusconnect/campusconnect/internal/demo"
	"github.com/campusconnect/campusconnect/internal/handler"
	"github.com/campusconnect/campusconnect/internal/handler/api"
	"github.com/campusconnect/campusconnect/internal/logging"
	"github.com/campusconnect/campusconnect/internal/middleware"
	"github.com/campusconnect/campusconnect/internal/scheduler"
	"github.com/campusconnect/campusconnect/internal/service"
	"github.com/campusconnect/campusconnect/internal/store"
	"github.com/campusconnect/campusconnect/internal/version"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "CampusConnect - campus events API server\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_STORE            Store backend: sqlite|redis|memory (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_DB_PATH          SQLite database path (default: ./data/campusconnect.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_REDIS_URL        Redis URL (required for the redis store)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_DO_SEED          Seed the demo organizer and events (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_DEMO_MODE        Reset to demo data on CC_DEMO_RESET_SCHEDULE (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CC_LOCALE           Locale for title sorting (default: en)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("campusconnect %s\n", version.Current())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(logging.New(os.Stdout, cfg.SlogLevel(), cfg.IsDevelopment()))

	if cfg.Store == store.TypeSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	slog.Info("opening store", "type", cfg.Store)
	st, err := store.Open(cfg.StoreConfig())
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			slog.Error("error closing store", "error", err)
		}
	}()

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, st, time.Now()); err != nil {
			return fmt.Errorf("seeding store: %w", err)
		}
	}

	if cfg.DemoMode {
		if _, err := demo.ResetIfNeeded(ctx, st, time.Now()); err != nil {
			return fmt.Errorf("demo reset: %w", err)
		}
		sched := scheduler.New(slog.Default())
		err := sched.Add("demo reset", cfg.DemoResetSchedule, func(ctx context.Context) error {
			return demo.Reset(ctx, st, time.Now())
		})
		if err != nil {
			return fmt.Errorf("scheduling demo reset: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	authSvc := auth.NewService(st)
	events := service.NewEventService(st, cfg.LanguageTag())

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	health := handler.NewHealthHandler(st.Backend(), version.Version)
	r.Get("/health", health.Health)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	limiter := middleware.NewRateLimiter(cfg.APIRateLimit, cfg.APIRateBurst)
	apiHandler := api.NewHandler(authSvc, events, cfg.ICSDomain)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware())
		apiHandler.Mount(r)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteAPIError(w, http.StatusNotFound, "not_found", "Route not found", nil)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
