// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package ingest

import (
	"context"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/pkg/flog"
)

const (
	gaugeRollingWindow = 120 * 24 * time.Hour
	asosRollingWindow  = 30 * 24 * time.Hour
	gapThreshold       = 2 * time.Hour

	// dvEpochYear is the first year of USGS-shaped daily-values coverage
	// (spec §4.C.1: "daily means from 1939-present").
	dvEpochYear = 1939
	// dvCutoffWindow is how far back from now the rolling IV/CWMS window
	// picks up, leaving the daily-values backfill to cover everything
	// older than that (spec §4.E step 2).
	dvCutoffWindow = 125 * 24 * time.Hour
)

// runBackfill implements spec §4.E's startup backfill. Gauge sites always
// resume their daily-values history first, driven by State.DVCompletedYear
// rather than monitoring state, since DV backfill can span restarts on its
// own schedule independent of whether the stream has since been polled.
// Every stream then gets a full rolling-window backfill, driven off the
// per-source Initialized flag in State rather than monitoring state (a
// stream can have a monitoring-state row from a prior, now-expired attempt
// without ever having completed its rolling-window backfill) — or, once
// initialized, a gap backfill when its last received reading is stale by
// more than 2 hours.
func (ig *Ingestor) runBackfill(ctx context.Context) error {
	now := time.Now().UTC()

	for _, ss := range ig.Streams {
		if ss.Stream.Source == domain.SourceGauge {
			ig.backfillGaugeDV(ctx, ss, now)
		}

		if !streamInitialized(ig.State, ss.Stream) {
			ig.fullBackfill(ctx, ss, now)
			continue
		}

		prior, ok, err := ig.Warehouse.MonitoringStateFor(ctx, ss.Stream.Source, ss.Stream.Identifier, ss.Stream.Parameter)
		if err != nil {
			flog.Unexpected("ingest", "checking backfill state for", ss.Stream.Identifier, ":", err)
			continue
		}
		if ok && !prior.LastDataReceived.IsZero() && now.Sub(prior.LastDataReceived) > gapThreshold {
			ig.gapBackfill(ctx, ss, prior.LastDataReceived, now)
		}
	}

	return ig.State.Save(ig.StatePath)
}

// backfillGaugeDV resumes the site's daily-values history one calendar
// year at a time, from the last completed year recorded in State (or
// dvEpochYear on a site never backfilled before) up to 125 days ago. A
// fetch failure stops the loop for this site without advancing
// DVCompletedYear, so the next restart resumes at the same year.
func (ig *Ingestor) backfillGaugeDV(ctx context.Context, ss StreamSource, now time.Time) {
	cutoff := now.Add(-dvCutoffWindow)
	cutoffYear := cutoff.Year()

	startYear := dvEpochYear
	if completed, ok := ig.State.DVCompletedYear[ss.Stream.Identifier]; ok {
		startYear = completed + 1
	}

	for year := startYear; year <= cutoffYear; year++ {
		yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		yearEnd := time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
		if yearEnd.After(cutoff) {
			yearEnd = cutoff
		}

		result, err := ss.Client.FetchHistorical(ctx, ss.Stream, yearStart, yearEnd)
		if err != nil {
			flog.Unexpected("ingest", "dv backfill failed for", ss.Stream.Identifier, "year", year, ":", err)
			return
		}
		ig.persist(ctx, ss.Stream.Source, result.Readings)
		ig.State.DVCompletedYear[ss.Stream.Identifier] = year
	}
}

// fullBackfill covers the provider's rolling window for a stream that has
// never been polled. For gauge sites this is the instantaneous-values
// window (the daily-values history is handled separately and resumably
// by backfillGaugeDV); for CWMS/ASOS it is their historical endpoint over
// the provider's rolling window.
func (ig *Ingestor) fullBackfill(ctx context.Context, ss StreamSource, now time.Time) {
	if ss.Stream.Source == domain.SourceGauge {
		result, err := ss.Client.FetchRecent(ctx, ss.Stream, gaugeRollingWindow)
		if err != nil {
			flog.Unexpected("ingest", "iv full backfill failed for", ss.Stream.Identifier, ":", err)
			return
		}
		ig.persist(ctx, ss.Stream.Source, result.Readings)
		markInitialized(ig.State, ss.Stream)
		return
	}

	window := providerWindow(ss.Stream.Source)
	start := now.Add(-window)

	result, err := ss.Client.FetchHistorical(ctx, ss.Stream, start, now)
	if err != nil {
		flog.Unexpected("ingest", "full backfill failed for", ss.Stream.Identifier, ":", err)
		return
	}
	ig.persist(ctx, ss.Stream.Source, result.Readings)
	markInitialized(ig.State, ss.Stream)
}

func (ig *Ingestor) gapBackfill(ctx context.Context, ss StreamSource, lastReceived, now time.Time) {
	result, err := ss.Client.FetchHistorical(ctx, ss.Stream, lastReceived, now)
	if err != nil {
		flog.Unexpected("ingest", "gap backfill failed for", ss.Stream.Identifier, ":", err)
		return
	}
	ig.persist(ctx, ss.Stream.Source, result.Readings)
}

func providerWindow(source domain.Source) time.Duration {
	switch source {
	case domain.SourceASOS:
		return asosRollingWindow
	default:
		return gaugeRollingWindow
	}
}

func markInitialized(s *State, stream domain.Stream) {
	switch stream.Source {
	case domain.SourceGauge:
		s.IVInitialized[stream.Identifier] = true
	case domain.SourceCWMS:
		s.CWMSInitialized[stream.Identifier] = true
	case domain.SourceASOS:
		s.ASOSInitialized[stream.Identifier] = true
	}
}

// streamInitialized reports whether the stream's rolling-window backfill
// has completed at least once, per the matching Initialized map in State.
func streamInitialized(s *State, stream domain.Stream) bool {
	switch stream.Source {
	case domain.SourceGauge:
		return s.IVInitialized[stream.Identifier]
	case domain.SourceCWMS:
		return s.CWMSInitialized[stream.Identifier]
	case domain.SourceASOS:
		return s.ASOSInitialized[stream.Identifier]
	default:
		return false
	}
}
