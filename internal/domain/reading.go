// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import "time"

// Source identifies which of the three providers a reading or stream
// originated from.
type Source string

const (
	SourceGauge Source = "gauge" // streamflow gauge service (USGS-shaped IV/DV)
	SourceCWMS  Source = "cwms"  // lock/dam timeseries service
	SourceASOS  Source = "asos"  // weather-station service
)

// Stream identifies one concrete timeseries a poll/backfill targets. For
// gauge streams, Identifier is the site code; for CWMS, the discovered
// series id; for ASOS, the station id.
type Stream struct {
	Source     Source
	Identifier string
	Parameter  string // e.g. "00060", "pool-elevation", "precip"
}

// Reading is a tagged variant over the three provider-native
// measurement shapes (design note §9: "prefer a tagged variant over
// shared inheritance"). Only the fields relevant to Kind are populated;
// callers switch on Kind rather than type-asserting.
type Reading struct {
	Kind Source

	// Common to all kinds.
	Identifier string // site code, CWMS series id, or ASOS station id
	Instant    time.Time
	Value      float64

	// Gauge/CWMS only.
	Parameter string
	Qualifier Qualifier

	// CWMS only.
	QualityCode   int
	QualityFlagged bool // true when QualityCode == 2 (questionable, retained but tagged)

	// ASOS only.
	Observation *ASOSObservation
}

// GaugeReading is the persisted shape of one Reading with Kind ==
// SourceGauge. (site, parameter, instant) is unique; rows with a
// sentinel or missing value never reach this struct.
type GaugeReading struct {
	SiteCode  string    `db:"site_code" json:"siteCode"`
	Parameter string    `db:"parameter" json:"parameter"`
	Instant   time.Time `db:"instant" json:"instant"`
	Value     float64   `db:"value" json:"value"`
	Qualifier Qualifier `db:"qualifier" json:"qualifier"`
}

// CWMSTimeseriesReading is keyed by (series_id, instant); carries the
// provider quality code.
type CWMSTimeseriesReading struct {
	SeriesID       string    `db:"series_id"`
	Instant        time.Time `db:"instant"`
	Value          float64   `db:"value"`
	QualityCode    int       `db:"quality_code"`
	QualityFlagged bool      `db:"quality_flagged"`
}
