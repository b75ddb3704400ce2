// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package monitoring implements the per-stream staleness and health
// transition table (spec §4.F) as a pure function, kept separate from
// the persisted domain.MonitoringState shape so it can be unit-tested
// without a database.
package monitoring

import (
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
)

// DefaultThreshold returns the staleness threshold for a stream given
// its source and priority (spec §4.F): 20 minutes for priority-critical
// gauge streams, 60 minutes for other gauge streams, and twice the poll
// interval for CWMS/ASOS streams.
func DefaultThreshold(source domain.Source, priority domain.Priority) time.Duration {
	if source == domain.SourceGauge {
		if priority == domain.PriorityCritical {
			return 20 * time.Minute
		}
		return 60 * time.Minute
	}
	return 2 * priority.PollInterval()
}

// Transition computes the next MonitoringState from the prior row and
// one poll's outcome, per spec §4.F's transition table. Prior may be the
// zero value for a stream's first-ever poll.
func Transition(prior domain.MonitoringState, outcome domain.PollOutcome, threshold time.Duration) domain.MonitoringState {
	next := prior
	next.LastPollAttempted = outcome.Now

	if outcome.PollSucceeded {
		next.LastPollSucceeded = outcome.Now
	}

	if outcome.ReadingsCount > 0 {
		next.LastDataReceived = outcome.Now
		if outcome.LatestReadingInstant.After(next.LatestReadingInstant) {
			next.LatestReadingInstant = outcome.LatestReadingInstant
			next.LatestReadingValue = outcome.LatestReadingValue
		}
	}

	if outcome.PollSucceeded && outcome.ReadingsCount > 0 {
		next.ConsecutiveFailures = 0
	} else {
		next.ConsecutiveFailures = prior.ConsecutiveFailures + 1
	}

	wasStale := prior.IsStale
	var age time.Duration
	if next.LatestReadingInstant.IsZero() {
		age = threshold + time.Hour // never received a reading: always stale
	} else {
		age = outcome.Now.Sub(next.LatestReadingInstant)
	}
	next.IsStale = age > threshold
	next.StalenessThreshold = threshold

	switch {
	case next.IsStale && !wasStale:
		t := outcome.Now
		next.StaleSince = &t
	case !next.IsStale:
		next.StaleSince = nil
	default:
		next.StaleSince = prior.StaleSince
	}

	var status domain.StreamStatus
	switch {
	case !outcome.PollSucceeded || outcome.ReadingsCount == 0:
		status = domain.StatusOffline
	case next.IsStale:
		status = domain.StatusDegraded
	default:
		status = domain.StatusActive
	}

	if status != prior.Status {
		next.StatusSince = outcome.Now
	}
	next.Status = status

	return next
}
