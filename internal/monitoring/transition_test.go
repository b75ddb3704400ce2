// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package monitoring

import (
	"testing"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
)

func TestDefaultThreshold(t *testing.T) {
	if got := DefaultThreshold(domain.SourceGauge, domain.PriorityCritical); got != 20*time.Minute {
		t.Fatalf("critical gauge threshold = %s, want 20m", got)
	}
	if got := DefaultThreshold(domain.SourceGauge, domain.PriorityHigh); got != 60*time.Minute {
		t.Fatalf("non-critical gauge threshold = %s, want 60m", got)
	}
	if got := DefaultThreshold(domain.SourceCWMS, domain.PriorityHigh); got != 2*domain.PriorityHigh.PollInterval() {
		t.Fatalf("cwms threshold = %s, want 2x poll interval", got)
	}
}

func TestTransition_FirstPollWithDataIsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	outcome := domain.PollOutcome{Now: now, PollSucceeded: true, ReadingsCount: 1, LatestReadingInstant: now, LatestReadingValue: 12.5}

	next := Transition(domain.MonitoringState{}, outcome, time.Hour)

	if next.Status != domain.StatusActive {
		t.Fatalf("status = %s, want active", next.Status)
	}
	if next.IsStale {
		t.Fatalf("expected not stale on a fresh reading")
	}
	if next.ConsecutiveFailures != 0 {
		t.Fatalf("consecutive failures = %d, want 0", next.ConsecutiveFailures)
	}
	if next.LatestReadingValue != 12.5 {
		t.Fatalf("latest reading value = %v, want 12.5", next.LatestReadingValue)
	}
}

func TestTransition_FailedPollGoesOffline(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prior := domain.MonitoringState{Status: domain.StatusActive, LatestReadingInstant: now.Add(-5 * time.Minute)}
	outcome := domain.PollOutcome{Now: now, PollSucceeded: false}

	next := Transition(prior, outcome, time.Hour)

	if next.Status != domain.StatusOffline {
		t.Fatalf("status = %s, want offline", next.Status)
	}
	if next.ConsecutiveFailures != 1 {
		t.Fatalf("consecutive failures = %d, want 1", next.ConsecutiveFailures)
	}
	if next.StatusSince != now {
		t.Fatalf("status_since should update on a status transition")
	}
}

func TestTransition_StaleWhenLatestReadingExceedsThreshold(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prior := domain.MonitoringState{
		Status:               domain.StatusActive,
		LatestReadingInstant: now.Add(-90 * time.Minute),
	}
	outcome := domain.PollOutcome{Now: now, PollSucceeded: true, ReadingsCount: 0}

	next := Transition(prior, outcome, time.Hour)

	if !next.IsStale {
		t.Fatalf("expected stale: last reading is 90m old against a 1h threshold")
	}
	if next.Status != domain.StatusOffline {
		t.Fatalf("status = %s, want offline (the poll returned no readings)", next.Status)
	}
	if next.StaleSince == nil || !next.StaleSince.Equal(now) {
		t.Fatalf("stale_since should be set to now on the stale transition")
	}
}

func TestTransition_StaleSincePersistsAcrossPolls(t *testing.T) {
	firstStale := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prior := domain.MonitoringState{
		Status:               domain.StatusDegraded,
		IsStale:              true,
		StaleSince:           &firstStale,
		LatestReadingInstant: firstStale.Add(-90 * time.Minute),
	}
	later := firstStale.Add(10 * time.Minute)
	outcome := domain.PollOutcome{Now: later, PollSucceeded: true, ReadingsCount: 0}

	next := Transition(prior, outcome, time.Hour)

	if next.StaleSince == nil || !next.StaleSince.Equal(firstStale) {
		t.Fatalf("stale_since should not move while still stale")
	}
}

func TestTransition_RecoveryClearsStaleSince(t *testing.T) {
	staleSince := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := staleSince.Add(20 * time.Minute)
	prior := domain.MonitoringState{
		Status:              domain.StatusDegraded,
		IsStale:             true,
		StaleSince:          &staleSince,
		ConsecutiveFailures: 3,
	}
	outcome := domain.PollOutcome{Now: now, PollSucceeded: true, ReadingsCount: 1, LatestReadingInstant: now, LatestReadingValue: 9.1}

	next := Transition(prior, outcome, time.Hour)

	if next.IsStale {
		t.Fatalf("expected recovery to clear staleness")
	}
	if next.StaleSince != nil {
		t.Fatalf("stale_since should be cleared on recovery")
	}
	if next.ConsecutiveFailures != 0 {
		t.Fatalf("consecutive failures should reset on a successful data-bearing poll")
	}
	if next.Status != domain.StatusActive {
		t.Fatalf("status = %s, want active", next.Status)
	}
}
