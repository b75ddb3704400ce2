// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/usace-mvr/flomon/internal/domain"
)

// InsertGaugeReadings inserts within-stream readings in ascending time
// order (spec §5 ordering guarantee). Every insert is idempotent via an
// ON CONFLICT DO NOTHING on (site_code, parameter, instant); the return
// value is the count of rows actually inserted, not attempted.
func (w *Warehouse) InsertGaugeReadings(ctx context.Context, readings []domain.GaugeReading) (int, error) {
	inserted := 0
	for _, r := range readings {
		var id int
		err := w.DB.QueryRowxContext(ctx, `
			INSERT INTO usgs_raw.gauge_readings (site_code, parameter, instant, value, qualifier)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (site_code, parameter, instant) DO NOTHING
			RETURNING 1
		`, r.SiteCode, r.Parameter, r.Instant, r.Value, r.Qualifier).Scan(&id)
		if err == nil {
			inserted++
			continue
		}
		if isNoRows(err) {
			continue
		}
		return inserted, fmt.Errorf("warehouse: inserting gauge reading %s/%s@%s: %w", r.SiteCode, r.Parameter, r.Instant, err)
	}
	return inserted, nil
}

// InsertCWMSReadings mirrors InsertGaugeReadings for the lock/dam
// timeseries namespace, unique on (series_id, instant).
func (w *Warehouse) InsertCWMSReadings(ctx context.Context, readings []domain.CWMSTimeseriesReading) (int, error) {
	inserted := 0
	for _, r := range readings {
		var id int
		err := w.DB.QueryRowxContext(ctx, `
			INSERT INTO usace.cwms_timeseries (series_id, instant, value, quality_code, quality_flagged)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (series_id, instant) DO NOTHING
			RETURNING 1
		`, r.SeriesID, r.Instant, r.Value, r.QualityCode, r.QualityFlagged).Scan(&id)
		if err == nil {
			inserted++
			continue
		}
		if isNoRows(err) {
			continue
		}
		return inserted, fmt.Errorf("warehouse: inserting cwms reading %s@%s: %w", r.SeriesID, r.Instant, err)
	}
	return inserted, nil
}

// InsertASOSObservations mirrors InsertGaugeReadings for weather
// observations, unique on (station_id, instant).
func (w *Warehouse) InsertASOSObservations(ctx context.Context, obs []domain.ASOSObservation) (int, error) {
	inserted := 0
	for _, o := range obs {
		var id int
		err := w.DB.QueryRowxContext(ctx, `
			INSERT INTO nws.asos_observations
				(station_id, instant, temperature_f, dewpoint_f, wind_dir_deg, wind_speed_kt,
				 wind_gust_kt, precip_1h_in, pressure_mb, visibility_sm, sky_code, provenance)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (station_id, instant) DO NOTHING
			RETURNING 1
		`, o.StationID, o.Instant, o.TemperatureF, o.DewpointF, o.WindDirDeg, o.WindSpeedKt,
			o.WindGustKt, o.Precip1hIn, o.PressureMb, o.VisibilitySm, o.SkyCode, o.Provenance).Scan(&id)
		if err == nil {
			inserted++
			continue
		}
		if isNoRows(err) {
			continue
		}
		return inserted, fmt.Errorf("warehouse: inserting asos observation %s@%s: %w", o.StationID, o.Instant, err)
	}
	return inserted, nil
}

// InsertPeakRecords stores parsed historical peak-flow rows, idempotent
// on (site_code, peak_date). pq.Array marshals the regulation/estimate
// code slices into the text[] columns.
func (w *Warehouse) InsertPeakRecords(ctx context.Context, records []domain.PeakRecord) (int, error) {
	inserted := 0
	for _, r := range records {
		var id int
		err := w.DB.QueryRowxContext(ctx, `
			INSERT INTO usgs_raw.peak_flows
				(site_code, peak_date, has_time, peak_flow_cfs, peak_codes,
				 gage_height_ft, gage_height_codes, alt_gage_height_ft)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (site_code, peak_date) DO NOTHING
			RETURNING 1
		`, r.SiteCode, r.PeakDate, r.HasTime, r.PeakFlow, pq.Array(r.PeakCodes),
			r.GageHeight, pq.Array(r.GageHeightCodes), r.AltGageHeight).Scan(&id)
		if err == nil {
			inserted++
			continue
		}
		if isNoRows(err) {
			continue
		}
		return inserted, fmt.Errorf("warehouse: inserting peak record %s@%s: %w", r.SiteCode, r.PeakDate, err)
	}
	return inserted, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
