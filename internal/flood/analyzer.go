// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package flood

import (
	"context"
	"fmt"
	"time"

	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/reportstore"
	"github.com/usace-mvr/flomon/internal/warehouse"
)

// Peak names the historical crest being analyzed (spec §4.H input).
type Peak struct {
	SiteCode     string
	CrestInstant time.Time
	PeakStage    float64
	Severity     domain.Severity
}

// ZoneTaxonomy names which zone ids play the "upstream", "local
// tributary" and "compound" roles for event-type classification (spec
// §4.H step 5's worked zones {3} and {4,5,6}).
type ZoneTaxonomy struct {
	UpstreamZoneIDs   []string
	TributaryZoneIDs  []string
	CompoundZoneIDs   []string
}

// Result bundles everything the analyzer computed for one peak.
type Result struct {
	Peak          Peak
	Window        PrecursorWindow
	Observations  []LinkedObservation
	Correlation   CorrelatedContext
	EventType     EventType
}

// Analyze runs the full spec §4.H pipeline for one historical peak:
// precursor window, rise metrics, linked observations, CWMS correlation,
// and event-type classification. It does not persist anything; callers
// combine Result with Persist and/or RenderReport.
func Analyze(
	stageSeries []StagePoint,
	cwmsSamples []CWMSSample,
	peak Peak,
	lookbackDays int,
	significantRiseThresholdFt, backwaterDifferentialThresholdFt float64,
	readingInterval time.Duration,
	zoneActivity []ZoneActivity,
	taxonomy ZoneTaxonomy,
) Result {
	window := FindPrecursorWindow(stageSeries, peak.CrestInstant, peak.PeakStage, significantRiseThresholdFt, lookbackDays)
	observations := LinkObservations(stageSeries, window.Start, peak.CrestInstant, readingInterval)
	correlation := CorrelateCWMS(cwmsSamples, backwaterDifferentialThresholdFt)
	eventType := ClassifyEventType(correlation.BackwaterDetected, zoneActivity, taxonomy.CompoundZoneIDs, taxonomy.UpstreamZoneIDs, taxonomy.TributaryZoneIDs)

	return Result{
		Peak:         peak,
		Window:       window,
		Observations: observations,
		Correlation:  correlation,
		EventType:    eventType,
	}
}

// Persist writes the event row, observation rows, CWMS rows, and the
// single metrics row into the analysis schema. Rerunning for the same
// (site, crest_instant) is idempotent (spec §4.H step 6) because every
// warehouse write below is keyed on (site_code, event_start) or
// (site_code, event_start, instant).
func Persist(ctx context.Context, w *warehouse.Warehouse, r Result) error {
	event := domain.FloodEvent{
		SiteCode:     r.Peak.SiteCode,
		EventStart:   r.Window.Start,
		CrestInstant: r.Peak.CrestInstant,
		PeakStage:    r.Peak.PeakStage,
		Severity:     r.Peak.Severity,
	}
	if _, err := w.InsertFloodEvent(ctx, event); err != nil {
		return fmt.Errorf("flood: persisting event row: %w", err)
	}

	for _, obs := range r.Observations {
		if _, err := w.InsertEventObservation(ctx, r.Peak.SiteCode, r.Window.Start, obs.Instant, obs.Stage, string(obs.Phase)); err != nil {
			return fmt.Errorf("flood: persisting observation row: %w", err)
		}
	}

	for i, sample := range r.Correlation.Samples {
		diff := r.Correlation.Differentials[i]
		if _, err := w.InsertEventCWMSCorrelation(ctx, r.Peak.SiteCode, r.Window.Start, sample.Instant, sample.MississippiStage, sample.IllinoisStage, diff, diff >= r.Correlation.ThresholdFt); err != nil {
			return fmt.Errorf("flood: persisting cwms correlation row: %w", err)
		}
	}

	if err := w.InsertEventRiseMetrics(ctx, r.Peak.SiteCode, r.Window.Start, r.Window.Start, r.Window.TotalRiseFt, r.Window.DurationHours, r.Window.AvgRiseRatePerDay, r.Window.MaxSingleDayRiseFt, string(r.EventType)); err != nil {
		return fmt.Errorf("flood: persisting rise metrics row: %w", err)
	}

	return nil
}

// AnalyzeAndPersist is the convenience entry point for the flomonctl
// analyze-floods subcommand: run the pipeline, persist its rows, and
// render+archive the markdown report via the configured reportstore.Backend.
func AnalyzeAndPersist(
	ctx context.Context,
	w *warehouse.Warehouse,
	store reportstore.Backend,
	stageSeries []StagePoint,
	cwmsSamples []CWMSSample,
	peak Peak,
	settings config.AnalyzerSettings,
	backwaterDifferentialThresholdFt float64,
	readingInterval time.Duration,
	zoneActivity []ZoneActivity,
	taxonomy ZoneTaxonomy,
) (Result, error) {
	result := Analyze(stageSeries, cwmsSamples, peak, settings.PrecursorLookbackDays, significantRiseThresholdFromSettings(settings), backwaterDifferentialThresholdFt, readingInterval, zoneActivity, taxonomy)

	if err := Persist(ctx, w, result); err != nil {
		return result, err
	}

	report := RenderReport(result)
	name := fmt.Sprintf("%s-%s.md", result.Peak.SiteCode, result.Peak.CrestInstant.Format("20060102T150405Z"))
	if err := store.Store(ctx, name, []byte(report)); err != nil {
		return result, fmt.Errorf("flood: archiving report: %w", err)
	}

	return result, nil
}

// significantRiseThresholdFromSettings derives the fixed spec default
// (2.0 ft) since AnalyzerSettings carries the rise-rate threshold, not
// the absolute-rise threshold, which spec §4.H's parameter table holds
// constant across sites.
func significantRiseThresholdFromSettings(_ config.AnalyzerSettings) float64 {
	return 2.0
}
