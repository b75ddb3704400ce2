// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flood implements the offline historical flood-event analyzer:
// precursor-window detection, rise metrics, phase classification, CWMS
// correlation, and event-type classification (spec §4.H).
package flood

import (
	"time"
)

// StagePoint is one (instant, stage) sample used by the precursor scan.
type StagePoint struct {
	Instant time.Time
	Stage   float64
}

// PrecursorWindow is the result of walking a stage series backward from
// a crest to find where its significant rise began.
type PrecursorWindow struct {
	Start              time.Time
	TotalRiseFt        float64
	DurationHours      float64
	AvgRiseRatePerDay  float64
	MaxSingleDayRiseFt float64
	FellBackToHorizon  bool
	// MonotonicHeld is false if the series dipped more than the 10%
	// noise band somewhere between window start and crest; callers may
	// want to flag such events for manual review.
	MonotonicHeld bool
}

// noiseBand is the relative tolerance for "brief dips" that do not break
// the monotonic-non-decreasing requirement (spec §4.H step 1).
const noiseBand = 0.10

// FindPrecursorWindow walks series (ascending by instant, not including
// the crest sample itself) backward from crestInstant/crestStage. It
// locates the first (closest-to-crest) sample whose stage has already
// fallen to or below crestStage-thresholdFt, then sets the window start
// one sample further back — the last point before the significant rise
// began, rather than the crossing instant itself. If lookbackDays of
// history contain no such crossing, the window start falls back to the
// lookback horizon (spec §4.H step 1; worked numeric example S6).
func FindPrecursorWindow(series []StagePoint, crestInstant time.Time, crestStage, thresholdFt float64, lookbackDays int) PrecursorWindow {
	horizon := crestInstant.Add(-time.Duration(lookbackDays) * 24 * time.Hour)

	crossingIdx := -1
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].Instant.Before(horizon) {
			break
		}
		if series[i].Stage <= crestStage-thresholdFt {
			crossingIdx = i
			break
		}
	}

	var start time.Time
	fellBack := false
	switch {
	case crossingIdx == -1:
		start = horizon
		fellBack = true
	case crossingIdx == 0:
		start = series[0].Instant
	default:
		start = series[crossingIdx-1].Instant
	}

	return computeRiseMetrics(series, start, crestInstant, crestStage, fellBack)
}

func stageAt(series []StagePoint, at time.Time) (float64, bool) {
	for _, p := range series {
		if p.Instant.Equal(at) {
			return p.Stage, true
		}
	}
	return 0, false
}

func computeRiseMetrics(series []StagePoint, start, crest time.Time, crestStage float64, fellBack bool) PrecursorWindow {
	startStage, ok := stageAt(series, start)
	if !ok && len(series) > 0 {
		startStage = series[0].Stage
	}

	duration := crest.Sub(start)
	durationHours := duration.Hours()
	totalRise := crestStage - startStage

	var avgRate float64
	if durationHours > 0 {
		avgRate = totalRise / (durationHours / 24)
	}

	maxDaily := maxSingleDayRise(series, start, crest)

	return PrecursorWindow{
		Start:              start,
		TotalRiseFt:        totalRise,
		DurationHours:      durationHours,
		AvgRiseRatePerDay:  avgRate,
		MaxSingleDayRiseFt: maxDaily,
		FellBackToHorizon:  fellBack,
		MonotonicHeld:      isMonotonicNonDecreasing(series, start, crest),
	}
}

func maxSingleDayRise(series []StagePoint, start, crest time.Time) float64 {
	var maxRise float64
	for i := 1; i < len(series); i++ {
		if series[i].Instant.Before(start) || series[i].Instant.After(crest) {
			continue
		}
		if series[i].Instant.Sub(series[i-1].Instant) > 25*time.Hour {
			continue
		}
		rise := series[i].Stage - series[i-1].Stage
		if rise > maxRise {
			maxRise = rise
		}
	}
	return maxRise
}

// isMonotonicNonDecreasing reports whether series stays non-decreasing
// from start to crest, tolerating dips within a 10%-relative noise band
// of the local value (spec §4.H step 1).
func isMonotonicNonDecreasing(series []StagePoint, start, crest time.Time) bool {
	var prev float64
	have := false
	for _, p := range series {
		if p.Instant.Before(start) || p.Instant.After(crest) {
			continue
		}
		if have && p.Stage < prev*(1-noiseBand) {
			return false
		}
		if p.Stage > prev {
			prev = p.Stage
		}
		have = true
	}
	return true
}
