// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package warehouse

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/usace-mvr/flomon/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// LatestGaugeReading returns the most recent reading for (site, parameter).
func (w *Warehouse) LatestGaugeReading(ctx context.Context, siteCode, parameter string) (domain.GaugeReading, bool, error) {
	query, args, err := psql.Select("site_code", "parameter", "instant", "value", "qualifier").
		From("usgs_raw.gauge_readings").
		Where(sq.Eq{"site_code": siteCode, "parameter": parameter}).
		OrderBy("instant DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return domain.GaugeReading{}, false, fmt.Errorf("warehouse: building latest-reading query: %w", err)
	}

	var r domain.GaugeReading
	if err := w.DB.GetContext(ctx, &r, query, args...); isNoRows(err) {
		return domain.GaugeReading{}, false, nil
	} else if err != nil {
		return domain.GaugeReading{}, false, fmt.Errorf("warehouse: fetching latest reading for %s/%s: %w", siteCode, parameter, err)
	}
	return r, true, nil
}

// GaugeReadingsInWindow returns readings for a site/parameter between
// start and end, ascending by instant.
func (w *Warehouse) GaugeReadingsInWindow(ctx context.Context, siteCode, parameter string, start, end time.Time) ([]domain.GaugeReading, error) {
	query, args, err := psql.Select("site_code", "parameter", "instant", "value", "qualifier").
		From("usgs_raw.gauge_readings").
		Where(sq.Eq{"site_code": siteCode, "parameter": parameter}).
		Where(sq.GtOrEq{"instant": start}).
		Where(sq.LtOrEq{"instant": end}).
		OrderBy("instant ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("warehouse: building window query: %w", err)
	}

	var rows []domain.GaugeReading
	if err := w.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("warehouse: fetching window readings for %s/%s: %w", siteCode, parameter, err)
	}
	return rows, nil
}

// LatestCWMSValue returns the most recent value and instant for a CWMS
// series, used by the backwater detector's hydraulic-control predicate.
func (w *Warehouse) LatestCWMSValue(ctx context.Context, seriesID string) (float64, time.Time, error) {
	query, args, err := psql.Select("value", "instant").
		From("usace.cwms_timeseries").
		Where(sq.Eq{"series_id": seriesID}).
		OrderBy("instant DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("warehouse: building latest-cwms-value query: %w", err)
	}

	var row struct {
		Value   float64   `db:"value"`
		Instant time.Time `db:"instant"`
	}
	if err := w.DB.GetContext(ctx, &row, query, args...); isNoRows(err) {
		return 0, time.Time{}, nil
	} else if err != nil {
		return 0, time.Time{}, fmt.Errorf("warehouse: fetching latest cwms value for %s: %w", seriesID, err)
	}
	return row.Value, row.Instant, nil
}

// CWMSReadingsInWindow returns readings for one series between start
// and end, ascending by instant, for the historical flood analyzer.
func (w *Warehouse) CWMSReadingsInWindow(ctx context.Context, seriesID string, start, end time.Time) ([]domain.CWMSTimeseriesReading, error) {
	query, args, err := psql.Select("series_id", "instant", "value", "quality_code", "quality_flagged").
		From("usace.cwms_timeseries").
		Where(sq.Eq{"series_id": seriesID}).
		Where(sq.GtOrEq{"instant": start}).
		Where(sq.LtOrEq{"instant": end}).
		OrderBy("instant ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("warehouse: building cwms window query: %w", err)
	}

	var rows []domain.CWMSTimeseriesReading
	if err := w.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("warehouse: fetching cwms window readings for %s: %w", seriesID, err)
	}
	return rows, nil
}

// ZoneMemberSnapshot is one member's latest-known state, for the zone
// snapshot read endpoint.
type ZoneMemberSnapshot struct {
	Source         domain.Source `db:"source"`
	Identifier     string        `db:"identifier"`
	LatestInstant  *time.Time    `db:"latest_instant"`
	LatestValue    *float64      `db:"latest_value"`
}

// ZoneMemberSnapshots joins each member's identifier against
// monitoring_state to get its latest-known reading, used to compute
// freshness tags and per-source counts for /zone/{id}.
func (w *Warehouse) ZoneMemberSnapshots(ctx context.Context, members []domain.ZoneMember) ([]ZoneMemberSnapshot, error) {
	out := make([]ZoneMemberSnapshot, 0, len(members))
	for _, m := range members {
		query, args, err := psql.Select("source", "identifier", "latest_reading_instant AS latest_instant", "latest_reading_value AS latest_value").
			From("usgs_raw.monitoring_state").
			Where(sq.Eq{"source": m.Source, "identifier": m.Identifier}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("warehouse: building zone member snapshot query: %w", err)
		}

		var snap ZoneMemberSnapshot
		if err := w.DB.GetContext(ctx, &snap, query, args...); isNoRows(err) {
			out = append(out, ZoneMemberSnapshot{Source: m.Source, Identifier: m.Identifier})
			continue
		} else if err != nil {
			return nil, fmt.Errorf("warehouse: fetching zone member snapshot for %s/%s: %w", m.Source, m.Identifier, err)
		}
		out = append(out, snap)
	}
	return out, nil
}

// StalenessRow is one entry of the basin-wide staleness join view.
type StalenessRow struct {
	Source     domain.Source       `db:"source"`
	Identifier string              `db:"identifier"`
	Parameter  string              `db:"parameter"`
	Status     domain.StreamStatus `db:"status"`
	IsStale    bool                `db:"is_stale"`
}

// StalenessView returns the status of every monitored stream, for
// flomonctl stream-status.
func (w *Warehouse) StalenessView(ctx context.Context) ([]StalenessRow, error) {
	var rows []StalenessRow
	err := w.DB.SelectContext(ctx, &rows, `
		SELECT source, identifier, parameter, status, is_stale
		FROM usgs_raw.monitoring_state
		ORDER BY source, identifier, parameter
	`)
	if err != nil {
		return nil, fmt.Errorf("warehouse: fetching staleness view: %w", err)
	}
	return rows, nil
}
