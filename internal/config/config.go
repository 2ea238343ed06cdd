// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"github.com/campusconnect/campusconnect/internal/scheduler"
	"github.com/campusconnect/campusconnect/internal/store"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Store      string `env:"CC_STORE" envDefault:"sqlite"` // sqlite, redis or memory
	DBPath     string `env:"CC_DB_PATH" envDefault:"./data/campusconnect.db"`
	RedisURL   string `env:"CC_REDIS_URL"`
	KeyPrefix  string `env:"CC_KEY_PREFIX" envDefault:"cc_"`
	ServerHost string `env:"CC_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CC_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CC_ENV" envDefault:"development"`
	LogLevel   string `env:"CC_LOG_LEVEL" envDefault:"info"`

	// Seeding configuration
	DoSeed bool `env:"CC_DO_SEED" envDefault:"false"` // Seed demo users and events on startup

	// Locale drives title collation when sorting events.
	Locale    string `env:"CC_LOCALE" envDefault:"en"`
	ICSDomain string `env:"CC_ICS_DOMAIN" envDefault:"campusconnect.local"`

	// API rate limiting, per client IP
	APIRateLimit float64 `env:"CC_API_RATE_LIMIT" envDefault:"10"` // Requests per second
	APIRateBurst int     `env:"CC_API_RATE_BURST" envDefault:"20"`

	// Demo mode: wipe and reseed the store on a schedule
	DemoMode          bool   `env:"CC_DEMO_MODE" envDefault:"false"`
	DemoResetSchedule string `env:"CC_DEMO_RESET_SCHEDULE" envDefault:"0 4 * * *"` // Standard cron spec
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// LanguageTag returns the parsed locale. Load has already validated it.
func (c Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// SlogLevel maps LogLevel onto a slog level. Unknown names mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// StoreConfig returns the settings for store.Open.
func (c Config) StoreConfig() store.Config {
	return store.Config{
		Type:      c.Store,
		DBPath:    c.DBPath,
		RedisURL:  c.RedisURL,
		KeyPrefix: c.KeyPrefix,
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.Store {
	case store.TypeSQLite:
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("CC_DB_PATH must be set when CC_STORE is %q", store.TypeSQLite)
		}
	case store.TypeRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("CC_REDIS_URL must be set when CC_STORE is %q", store.TypeRedis)
		}
	case store.TypeMemory:
	default:
		return nil, fmt.Errorf("CC_STORE must be one of sqlite, redis, memory; got %q", cfg.Store)
	}

	if _, err := language.Parse(cfg.Locale); err != nil {
		return nil, fmt.Errorf("CC_LOCALE %q is not a valid language tag: %w", cfg.Locale, err)
	}

	if cfg.APIRateLimit <= 0 || cfg.APIRateBurst <= 0 {
		return nil, fmt.Errorf("CC_API_RATE_LIMIT and CC_API_RATE_BURST must be positive")
	}

	if cfg.DemoMode {
		if err := scheduler.ValidateSchedule(cfg.DemoResetSchedule); err != nil {
			return nil, fmt.Errorf("CC_DEMO_RESET_SCHEDULE: %w", err)
		}
	}

	if cfg.Store == store.TypeMemory && !cfg.IsDevelopment() {
		slog.Warn("CC_STORE=memory loses all data on restart", "category", "config")
	}

	return cfg, nil
}
