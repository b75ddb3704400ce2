// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package flood

import "time"

// CWMSSample is one paired Mississippi/Illinois stage observation
// gathered during a precursor window (spec §4.H step 4).
type CWMSSample struct {
	Instant          time.Time
	MississippiStage float64
	IllinoisStage    float64
}

// CorrelatedContext is the result of step 4: the stage differential
// series and whether backwater was detected anywhere within the window.
type CorrelatedContext struct {
	Samples           []CWMSSample
	Differentials     []float64
	BackwaterDetected bool
	// ThresholdFt is the threshold this context was computed against, so
	// callers that persist per-sample backwater flags use the same
	// value CorrelateCWMS used rather than a package default.
	ThresholdFt float64
}

// CorrelateCWMS computes stage_differential = mississippi - illinois for
// every paired sample and flags backwater_detected if any sample meets
// or exceeds thresholdFt.
func CorrelateCWMS(samples []CWMSSample, thresholdFt float64) CorrelatedContext {
	ctx := CorrelatedContext{Samples: samples, Differentials: make([]float64, len(samples)), ThresholdFt: thresholdFt}
	for i, s := range samples {
		diff := s.MississippiStage - s.IllinoisStage
		ctx.Differentials[i] = diff
		if diff >= thresholdFt {
			ctx.BackwaterDetected = true
		}
	}
	return ctx
}

// EventType is the historical flood-event classification of spec §4.H
// step 5.
type EventType string

const (
	EventCompound       EventType = "COMPOUND"
	EventBottomUp       EventType = "BOTTOM_UP"
	EventTopDown        EventType = "TOP_DOWN"
	EventLocalTributary EventType = "LOCAL_TRIBUTARY"
	EventUnclassified   EventType = "UNCLASSIFIED"
)

// ZoneActivity summarizes whether a given zone showed an active alert
// at any point during the precursor window.
type ZoneActivity struct {
	ZoneID string
	Active bool
}

// ClassifyEventType implements spec §4.H step 5. upstreamZoneIDs and
// tributaryZoneIDs name the zones that play the "upstream" and "zone 3 /
// local tributary" roles respectively; compoundZoneIDs names zones
// {4,5,6} in the spec's worked taxonomy.
func ClassifyEventType(backwaterDetected bool, activity []ZoneActivity, compoundZoneIDs, upstreamZoneIDs, tributaryZoneIDs []string) EventType {
	anyActive := func(ids []string) bool {
		set := make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		for _, a := range activity {
			if set[a.ZoneID] && a.Active {
				return true
			}
		}
		return false
	}

	compoundActive := anyActive(compoundZoneIDs)
	upstreamActive := anyActive(upstreamZoneIDs)
	tributaryActive := anyActive(tributaryZoneIDs)

	switch {
	case backwaterDetected && compoundActive:
		return EventCompound
	case backwaterDetected && !upstreamActive:
		return EventBottomUp
	case upstreamActive && !backwaterDetected:
		return EventTopDown
	case tributaryActive && !upstreamActive && !backwaterDetected:
		return EventLocalTributary
	default:
		return EventUnclassified
	}
}
