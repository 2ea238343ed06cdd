// Copyright (c) 2026 The CampusConnect Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// ValidateSchedule checks that spec is a standard five-field cron expression
// or a descriptor such as "@daily".
func ValidateSchedule(spec string) error {
	if strings.TrimSpace(spec) == "" {
		return fmt.Errorf("schedule is required")
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	return nil
}
