// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package warehouse

import (
	"context"
	"fmt"

	"github.com/usace-mvr/flomon/internal/domain"
)

// UpsertMonitoringState writes the computed next MonitoringState for one
// stream. The row is serialized per (source, identifier, parameter) by
// the database itself; no application-level locking is required (spec §5).
func (w *Warehouse) UpsertMonitoringState(ctx context.Context, s domain.MonitoringState) error {
	_, err := w.DB.ExecContext(ctx, `
		INSERT INTO usgs_raw.monitoring_state
			(source, identifier, parameter, last_poll_attempted, last_poll_succeeded,
			 last_data_received, latest_reading_instant, latest_reading_value,
			 consecutive_failures, status, status_since, is_stale, stale_since, staleness_threshold)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT (source, identifier, parameter) DO UPDATE SET
			last_poll_attempted    = EXCLUDED.last_poll_attempted,
			last_poll_succeeded    = EXCLUDED.last_poll_succeeded,
			last_data_received     = EXCLUDED.last_data_received,
			latest_reading_instant = EXCLUDED.latest_reading_instant,
			latest_reading_value   = EXCLUDED.latest_reading_value,
			consecutive_failures   = EXCLUDED.consecutive_failures,
			status                 = EXCLUDED.status,
			status_since           = EXCLUDED.status_since,
			is_stale               = EXCLUDED.is_stale,
			stale_since            = EXCLUDED.stale_since,
			staleness_threshold    = EXCLUDED.staleness_threshold
	`, s.Source, s.Identifier, s.Parameter, s.LastPollAttempted, s.LastPollSucceeded,
		s.LastDataReceived, s.LatestReadingInstant, s.LatestReadingValue,
		s.ConsecutiveFailures, s.Status, s.StatusSince, s.IsStale, s.StaleSince, s.StalenessThreshold)
	if err != nil {
		return fmt.Errorf("warehouse: upserting monitoring state for %s/%s/%s: %w", s.Source, s.Identifier, s.Parameter, err)
	}
	return nil
}

// MonitoringStateFor fetches the current row for one stream, or
// (zero, false) if the stream has never been polled.
func (w *Warehouse) MonitoringStateFor(ctx context.Context, source domain.Source, identifier, parameter string) (domain.MonitoringState, bool, error) {
	var s domain.MonitoringState
	err := w.DB.GetContext(ctx, &s, `
		SELECT source, identifier, parameter, last_poll_attempted, last_poll_succeeded,
		       last_data_received, latest_reading_instant, latest_reading_value,
		       consecutive_failures, status, status_since, is_stale, stale_since, staleness_threshold
		FROM usgs_raw.monitoring_state
		WHERE source = $1 AND identifier = $2 AND parameter = $3
	`, source, identifier, parameter)
	if isNoRows(err) {
		return domain.MonitoringState{}, false, nil
	}
	if err != nil {
		return domain.MonitoringState{}, false, fmt.Errorf("warehouse: fetching monitoring state for %s/%s/%s: %w", source, identifier, parameter, err)
	}
	return s, true, nil
}
