// Copyright (C) 2026 The VSD Authors.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package taskmanager runs background jobs against a Distributor on a
// gocron scheduler. The only job this module needs is a heartbeat
// republish: some consumers on the bus expect a
// root to be republished periodically even when nothing wrote a new
// value, so that a late-joining subscriber (or one that missed a
// payload) is never stuck waiting for the next real change.
package taskmanager

import (
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	vsdcore "github.com/signaltree/vsd-core"
	vsdlog "github.com/signaltree/vsd-core/pkg/log"
)

// Manager owns one gocron.Scheduler and the jobs registered against it.
// The zero Manager is not usable; construct one with New.
type Manager struct {
	sched gocron.Scheduler
}

// New creates a Manager with a fresh, unstarted scheduler.
func New() (*Manager, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("taskmanager: creating scheduler: %w", err)
	}
	return &Manager{sched: sched}, nil
}

// RegisterHeartbeat schedules a republish of every root in roots every
// interval. A root that fails to Publish (e.g. the transport is
// momentarily down) logs and is retried on the next tick; it never
// aborts the scheduler.
func (m *Manager) RegisterHeartbeat(dist *vsdcore.Distributor, roots []vsdcore.Signal, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("taskmanager: heartbeat interval must be positive, got %s", interval)
	}
	_, err := m.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			for _, root := range roots {
				if err := dist.Publish(root); err != nil {
					vsdlog.Warnf("taskmanager: heartbeat publish of %s failed: %v",
						dist.Context().PathOf(root), err)
				}
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("taskmanager: registering heartbeat job: %w", err)
	}
	return nil
}

// Start begins running scheduled jobs. Jobs registered after Start are
// picked up on their own, per gocron's own semantics.
func (m *Manager) Start() { m.sched.Start() }

// Stop drains in-flight jobs and stops the scheduler.
func (m *Manager) Stop() error {
	if err := m.sched.Shutdown(); err != nil {
		return fmt.Errorf("taskmanager: shutdown: %w", err)
	}
	return nil
}
