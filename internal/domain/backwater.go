// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import "time"

// BackwaterSeverity is the differential-driven classification used by
// both the live backwater detector (§4.G) and the historical analyzer
// (§4.H).
type BackwaterSeverity string

const (
	BackwaterNone     BackwaterSeverity = "none"
	BackwaterMinor    BackwaterSeverity = "minor"
	BackwaterModerate BackwaterSeverity = "moderate"
	BackwaterMajor    BackwaterSeverity = "major"
	BackwaterExtreme  BackwaterSeverity = "extreme"
)

// ClassifyBackwaterSeverity maps a Mississippi-to-Illinois stage
// differential, in feet, to its severity step. This is the fixed step
// function of spec §4.G / §8 property 8 — the ambiguous "major" vs
// "severe" label at [5,10) is fixed to "major" per spec §9.
func ClassifyBackwaterSeverity(differentialFt float64) BackwaterSeverity {
	switch {
	case differentialFt < 0.5:
		return BackwaterNone
	case differentialFt < 2:
		return BackwaterMinor
	case differentialFt < 5:
		return BackwaterModerate
	case differentialFt < 10:
		return BackwaterMajor
	default:
		return BackwaterExtreme
	}
}

// BackwaterEvent is a persisted classification of a hydraulic-control-
// loss episode at the Illinois/Mississippi interface.
type BackwaterEvent struct {
	Start              time.Time  `db:"start_instant"`
	End                *time.Time `db:"end_instant"`
	MississippiRef     string     `db:"mississippi_location_ref"`
	MississippiPeak    float64    `db:"mississippi_peak"`
	IllinoisSiteRef    string     `db:"illinois_site_ref"`
	GradientReversed   bool       `db:"gradient_reversed"`
	Severity           BackwaterSeverity `db:"severity"`
}

// HydraulicControlPair declares the two series whose relationship
// determines control loss for one dam.
type HydraulicControlPair struct {
	PoolSeries      string
	TailwaterSeries string
	MarginFt        float64 // default 0.5
}

// ControlLost reports whether the dam has lost hydraulic control:
// tailwater + margin >= pool (spec §4.G / §8 property 8).
func (p HydraulicControlPair) ControlLost(tailwater, pool float64) bool {
	margin := p.MarginFt
	if margin == 0 {
		margin = 0.5
	}
	return tailwater+margin >= pool
}
