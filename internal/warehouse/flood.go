// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
)

// InsertFloodThreshold persists a site's ordered stage thresholds after
// validating the action<flood<moderate<major invariant.
func (w *Warehouse) InsertFloodThreshold(ctx context.Context, t domain.FloodThreshold) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("warehouse: rejecting flood threshold: %w", err)
	}
	_, err := w.DB.ExecContext(ctx, `
		INSERT INTO flood_analysis.flood_thresholds (site_code, action_stage, flood_stage, moderate_stage, major_stage)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (site_code) DO UPDATE SET
			action_stage = EXCLUDED.action_stage,
			flood_stage = EXCLUDED.flood_stage,
			moderate_stage = EXCLUDED.moderate_stage,
			major_stage = EXCLUDED.major_stage
	`, t.SiteCode, t.Action, t.Flood, t.Moderate, t.Major)
	if err != nil {
		return fmt.Errorf("warehouse: inserting flood threshold for %s: %w", t.SiteCode, err)
	}
	return nil
}

// FloodThresholdFor fetches the ordered thresholds for a site.
func (w *Warehouse) FloodThresholdFor(ctx context.Context, siteCode string) (domain.FloodThreshold, bool, error) {
	var t domain.FloodThreshold
	err := w.DB.GetContext(ctx, &t, `
		SELECT site_code, action_stage, flood_stage, moderate_stage, major_stage
		FROM flood_analysis.flood_thresholds WHERE site_code = $1
	`, siteCode)
	if isNoRows(err) {
		return domain.FloodThreshold{}, false, nil
	}
	if err != nil {
		return domain.FloodThreshold{}, false, fmt.Errorf("warehouse: fetching flood threshold for %s: %w", siteCode, err)
	}
	return t, true, nil
}

// InsertFloodEvent is idempotent on (site_code, event_start); a rerun of
// the historical analyzer over the same window never duplicates rows.
func (w *Warehouse) InsertFloodEvent(ctx context.Context, e domain.FloodEvent) (bool, error) {
	if err := e.Validate(); err != nil {
		return false, fmt.Errorf("warehouse: rejecting flood event: %w", err)
	}
	var id int
	err := w.DB.QueryRowxContext(ctx, `
		INSERT INTO flood_analysis.flood_events (site_code, event_start, crest_instant, event_end, peak_stage, severity)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (site_code, event_start) DO NOTHING
		RETURNING 1
	`, e.SiteCode, e.EventStart, e.CrestInstant, e.EventEnd, e.PeakStage, e.Severity).Scan(&id)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("warehouse: inserting flood event for %s@%s: %w", e.SiteCode, e.EventStart, err)
}

// ListFloodEvents returns the events recorded for a site, most recent first.
func (w *Warehouse) ListFloodEvents(ctx context.Context, siteCode string) ([]domain.FloodEvent, error) {
	var events []domain.FloodEvent
	err := w.DB.SelectContext(ctx, &events, `
		SELECT site_code, event_start, crest_instant, event_end, peak_stage, severity
		FROM flood_analysis.flood_events
		WHERE site_code = $1
		ORDER BY event_start DESC
	`, siteCode)
	if err != nil {
		return nil, fmt.Errorf("warehouse: listing flood events for %s: %w", siteCode, err)
	}
	return events, nil
}

// InsertEventObservation persists one phase-tagged linked observation
// for a flood event. Idempotent on (site_code, event_start, instant).
func (w *Warehouse) InsertEventObservation(ctx context.Context, siteCode string, eventStart, instant time.Time, stage float64, phase string) (bool, error) {
	var id int
	err := w.DB.QueryRowxContext(ctx, `
		INSERT INTO flood_analysis.event_observations (site_code, event_start, instant, stage, phase)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (site_code, event_start, instant) DO NOTHING
		RETURNING 1
	`, siteCode, eventStart, instant, stage, phase).Scan(&id)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("warehouse: inserting event observation for %s@%s: %w", siteCode, eventStart, err)
}

// InsertEventCWMSCorrelation persists one paired Mississippi/Illinois
// stage sample for a flood event's correlated context. Idempotent on
// (site_code, event_start, instant).
func (w *Warehouse) InsertEventCWMSCorrelation(ctx context.Context, siteCode string, eventStart, instant time.Time, mississippiStage, illinoisStage, differential float64, backwaterDetected bool) (bool, error) {
	var id int
	err := w.DB.QueryRowxContext(ctx, `
		INSERT INTO flood_analysis.event_cwms_correlation
			(site_code, event_start, instant, mississippi_stage, illinois_stage, differential, backwater_detected)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (site_code, event_start, instant) DO NOTHING
		RETURNING 1
	`, siteCode, eventStart, instant, mississippiStage, illinoisStage, differential, backwaterDetected).Scan(&id)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("warehouse: inserting event cwms correlation for %s@%s: %w", siteCode, eventStart, err)
}

// InsertEventRiseMetrics persists the single summary metrics row for a
// flood event (precursor window, rise metrics, event type). Idempotent
// on (site_code, event_start): a rerun updates the row in place rather
// than duplicating it, since metrics are a pure function of the event.
func (w *Warehouse) InsertEventRiseMetrics(ctx context.Context, siteCode string, eventStart, windowStart time.Time, totalRiseFt, durationHours, avgRiseRatePerDay, maxSingleDayRiseFt float64, eventType string) error {
	_, err := w.DB.ExecContext(ctx, `
		INSERT INTO flood_analysis.event_rise_metrics
			(site_code, event_start, window_start, total_rise_ft, duration_hours, avg_rise_rate_ft_per_day, max_single_day_rise_ft, event_type)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		ON CONFLICT (site_code, event_start) DO UPDATE SET
			window_start = EXCLUDED.window_start,
			total_rise_ft = EXCLUDED.total_rise_ft,
			duration_hours = EXCLUDED.duration_hours,
			avg_rise_rate_ft_per_day = EXCLUDED.avg_rise_rate_ft_per_day,
			max_single_day_rise_ft = EXCLUDED.max_single_day_rise_ft,
			event_type = EXCLUDED.event_type
	`, siteCode, eventStart, windowStart, totalRiseFt, durationHours, avgRiseRatePerDay, maxSingleDayRiseFt, eventType)
	if err != nil {
		return fmt.Errorf("warehouse: upserting event rise metrics for %s@%s: %w", siteCode, eventStart, err)
	}
	return nil
}

// InsertBackwaterEvent is idempotent on (mississippi_location_ref, start_instant).
func (w *Warehouse) InsertBackwaterEvent(ctx context.Context, e domain.BackwaterEvent) (bool, error) {
	var id int
	err := w.DB.QueryRowxContext(ctx, `
		INSERT INTO flood_analysis.backwater_events
			(start_instant, end_instant, mississippi_location_ref, mississippi_peak,
			 illinois_site_ref, gradient_reversed, severity)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		ON CONFLICT (mississippi_location_ref, start_instant) DO NOTHING
		RETURNING 1
	`, e.Start, e.End, e.MississippiRef, e.MississippiPeak, e.IllinoisSiteRef, e.GradientReversed, e.Severity).Scan(&id)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("warehouse: inserting backwater event for %s@%s: %w", e.MississippiRef, e.Start, err)
}
