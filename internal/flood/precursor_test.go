// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package flood

import (
	"math"
	"testing"
	"time"
)

func TestFindPrecursorWindow_ScenarioS6(t *testing.T) {
	crest := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	series := []StagePoint{
		{Instant: crest.Add(-6 * 24 * time.Hour), Stage: 17.0},
		{Instant: crest.Add(-5 * 24 * time.Hour), Stage: 17.2},
		{Instant: crest.Add(-4 * 24 * time.Hour), Stage: 17.8},
		{Instant: crest.Add(-3 * 24 * time.Hour), Stage: 19.1},
	}

	w := FindPrecursorWindow(series, crest, 21.5, 2.0, 14)

	wantStart := crest.Add(-4 * 24 * time.Hour)
	if !w.Start.Equal(wantStart) {
		t.Fatalf("window start = %s, want %s", w.Start, wantStart)
	}
	if math.Abs(w.TotalRiseFt-3.7) > 1e-9 {
		t.Fatalf("total rise = %.4f, want 3.7", w.TotalRiseFt)
	}
	if math.Abs(w.DurationHours-96) > 1e-9 {
		t.Fatalf("duration hours = %.4f, want 96", w.DurationHours)
	}
	if math.Abs(w.AvgRiseRatePerDay-0.925) > 1e-9 {
		t.Fatalf("avg rise rate = %.4f, want 0.925", w.AvgRiseRatePerDay)
	}
	if w.FellBackToHorizon {
		t.Fatalf("expected a threshold crossing, not a horizon fallback")
	}
}

func TestFindPrecursorWindow_NoCrossingFallsBackToHorizon(t *testing.T) {
	crest := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	series := []StagePoint{
		{Instant: crest.Add(-2 * 24 * time.Hour), Stage: 20.0},
		{Instant: crest.Add(-1 * 24 * time.Hour), Stage: 20.8},
	}

	w := FindPrecursorWindow(series, crest, 21.5, 2.0, 14)

	wantHorizon := crest.Add(-14 * 24 * time.Hour)
	if !w.Start.Equal(wantHorizon) {
		t.Fatalf("window start = %s, want horizon %s", w.Start, wantHorizon)
	}
	if !w.FellBackToHorizon {
		t.Fatalf("expected FellBackToHorizon = true")
	}
}
