// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import "time"

// Priority is the derived polling priority for a declared station or
// location (§4.A of the spec). It is the sole source of per-stream poll
// cadence.
type Priority string

const (
	PriorityCritical Priority = "critical" // 15 min
	PriorityHigh     Priority = "high"     // 60 min
	PriorityMedium   Priority = "medium"   // 360 min
	PriorityLow      Priority = "low"      // 1440 min
)

// PollInterval returns the fixed poll cadence for a priority tier.
func (p Priority) PollInterval() time.Duration {
	switch p {
	case PriorityCritical:
		return 15 * time.Minute
	case PriorityHigh:
		return 60 * time.Minute
	case PriorityMedium:
		return 360 * time.Minute
	default:
		return 1440 * time.Minute
	}
}

// ASOSStation is a weather station.
type ASOSStation struct {
	ID             string   `db:"station_id"`
	Name           string   `db:"name"`
	Latitude       float64  `db:"latitude"`
	Longitude      float64  `db:"longitude"`
	Elevation      float64  `db:"elevation"`
	Basin          string   `db:"basin"`
	UpstreamGauge  string   `db:"upstream_gauge"`
	Priority       Priority `db:"priority"`
	DataTypes      []string `db:"-"`
}

// ASOSObservation is one weather sample. Unique by (station, instant).
type ASOSObservation struct {
	StationID       string    `db:"station_id"`
	Instant         time.Time `db:"instant"`
	TemperatureF    *float64  `db:"temperature_f"`
	DewpointF       *float64  `db:"dewpoint_f"`
	WindDirDeg      *float64  `db:"wind_dir_deg"`
	WindSpeedKt     *float64  `db:"wind_speed_kt"`
	WindGustKt      *float64  `db:"wind_gust_kt"`
	Precip1hIn      *float64  `db:"precip_1h_in"`
	PressureMb      *float64  `db:"pressure_mb"`
	VisibilitySm    *float64  `db:"visibility_sm"`
	SkyCode         string    `db:"sky_code"`
	WeatherCodes    []string  `db:"-"`
	Provenance      string    `db:"provenance"`
}
