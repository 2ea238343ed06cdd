// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler holds the HTTP handlers that sit outside the versioned API.
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/campusconnect/campusconnect/internal/store"
)

// pingTimeout bounds the store connectivity check.
const pingTimeout = 2 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	backend   store.Backend
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler reporting on backend.
func NewHealthHandler(backend store.Backend, version string) *HealthHandler {
	return &HealthHandler{
		backend:   backend,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
	Store     *store.Stats     `json:"store,omitempty"`
	System    *SystemInfo      `json:"system,omitempty"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// SystemInfo contains system-level information.
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutines"`
	NumCPU       int    `json:"num_cpus"`
	MemAlloc     string `json:"mem_alloc"`
	MemSys       string `json:"mem_sys"`
}

// Health handles GET /health requests. With ?verbose=true it adds store
// counters and runtime information.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	storeCheck := h.checkStore(r.Context())

	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Version:   h.version,
		Checks:    map[string]Check{"store": storeCheck},
	}
	code := http.StatusOK
	if storeCheck.Status != "healthy" {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	if r.URL.Query().Get("verbose") == "true" {
		if sp, ok := h.backend.(store.StatsProvider); ok {
			stats := sp.Stats()
			status.Store = &stats
		}
		status.System = h.getSystemInfo()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}

// Liveness handles GET /health/live - simple liveness check.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "alive",
	})
}

// Readiness handles GET /health/ready - checks if the store can serve requests.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	check := h.checkStore(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if check.Status == "healthy" {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "not_ready",
		"message": check.Message,
	})
}

// checkStore verifies backend connectivity. Backends without a Ping are
// always healthy.
func (h *HealthHandler) checkStore(ctx context.Context) Check {
	pinger, ok := h.backend.(store.Pinger)
	if !ok {
		return Check{Status: "healthy", Message: "In-process"}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	err := pinger.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return Check{
			Status:  "unhealthy",
			Message: err.Error(),
			Latency: latency.String(),
		}
	}
	return Check{
		Status:  "healthy",
		Message: "Connected",
		Latency: latency.String(),
	}
}

// getSystemInfo returns system-level metrics.
func (h *HealthHandler) getSystemInfo() *SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return &SystemInfo{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     humanize.IBytes(m.Alloc),
		MemSys:       humanize.IBytes(m.Sys),
	}
}
