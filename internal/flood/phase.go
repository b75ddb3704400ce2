// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package flood

import "time"

// Phase classifies a linked observation relative to the precursor window
// and crest (spec §4.H step 3).
type Phase string

const (
	PhasePrecursor Phase = "precursor"
	PhaseRising    Phase = "rising"
	PhasePeak      Phase = "peak"
	PhaseFalling   Phase = "falling"
	PhasePost      Phase = "post"
)

// LinkedObservation is one gauge reading attached to a flood event,
// tagged with its phase.
type LinkedObservation struct {
	Instant time.Time
	Stage   float64
	Phase   Phase
}

// postPeakWindowDays is the default analyzer parameter (spec §4.H).
const postPeakWindowDays = 7

// ClassifyPhase assigns a phase to one observation instant given the
// window's effective start, the crest instant, and the gap between
// consecutive readings used to define "within ±1 reading of crest".
func ClassifyPhase(instant, windowStart, crest time.Time, readingInterval time.Duration) Phase {
	switch {
	case instant.Before(windowStart.Add(-24 * time.Hour)):
		return PhasePrecursor
	case withinOneReading(instant, crest, readingInterval):
		return PhasePeak
	case instant.Before(crest):
		return PhaseRising
	case instant.Before(crest.Add(postPeakWindowDays * 24 * time.Hour)):
		return PhaseFalling
	default:
		return PhasePost
	}
}

func withinOneReading(instant, crest time.Time, readingInterval time.Duration) bool {
	if readingInterval <= 0 {
		readingInterval = time.Hour
	}
	diff := instant.Sub(crest)
	if diff < 0 {
		diff = -diff
	}
	return diff <= readingInterval
}

// LinkObservations tags every reading in series that falls within
// [windowStart, crest + post_peak_window_days] with its phase. Readings
// outside that range (and not within the 24h precursor look-back) are
// omitted.
func LinkObservations(series []StagePoint, windowStart, crest time.Time, readingInterval time.Duration) []LinkedObservation {
	lowerBound := windowStart.Add(-24 * time.Hour)
	upperBound := crest.Add(postPeakWindowDays * 24 * time.Hour)

	out := make([]LinkedObservation, 0, len(series))
	for _, p := range series {
		if p.Instant.Before(lowerBound) || p.Instant.After(upperBound) {
			continue
		}
		out = append(out, LinkedObservation{
			Instant: p.Instant,
			Stage:   p.Stage,
			Phase:   ClassifyPhase(p.Instant, windowStart, crest, readingInterval),
		})
	}
	return out
}
