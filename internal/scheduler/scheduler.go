// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs background maintenance jobs on cron schedules.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// jobTimeout bounds a single run of a job.
const jobTimeout = 5 * time.Minute

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// Scheduler handles scheduled jobs like the demo data reset.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Add registers job under name to run on the standard five-field cron spec.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if err := ValidateSchedule(spec); err != nil {
		return err
	}
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.Error("scheduled job failed", "category", "system", "job", name, "error", err)
			return
		}
		s.logger.Info("scheduled job finished", "category", "system", "job", name, "duration", time.Since(start))
	})
	return err
}

// Len returns the number of registered jobs.
func (s *Scheduler) Len() int {
	return len(s.cron.Entries())
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "category", "system", "jobs", s.Len())
}

// Stop gracefully stops the scheduler, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped", "category", "system")
}
