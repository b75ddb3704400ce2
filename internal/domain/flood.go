// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import (
	"fmt"
	"time"
)

// Severity is the flood-stage classification shared by historical flood
// events and zone status.
type Severity string

const (
	SeverityFlood    Severity = "flood"
	SeverityModerate Severity = "moderate"
	SeverityMajor    Severity = "major"
)

// FloodThreshold is the per-site ordered tuple of stage thresholds.
// Immutable once set; action < flood < moderate < major.
type FloodThreshold struct {
	SiteCode string  `db:"site_code" json:"siteCode"`
	Action   float64 `db:"action_stage" json:"actionStage"`
	Flood    float64 `db:"flood_stage" json:"floodStage"`
	Moderate float64 `db:"moderate_stage" json:"moderateStage"`
	Major    float64 `db:"major_stage" json:"majorStage"`
}

// Validate enforces the ordering invariant. Rows that fail this are
// rejected by the warehouse adapter before insertion.
func (t FloodThreshold) Validate() error {
	if !(t.Action < t.Flood && t.Flood < t.Moderate && t.Moderate < t.Major) {
		return fmt.Errorf("flood threshold for %s violates ordering: action=%.2f flood=%.2f moderate=%.2f major=%.2f",
			t.SiteCode, t.Action, t.Flood, t.Moderate, t.Major)
	}
	return nil
}

// FloodEvent is a historical flood episode derived or ingested from a
// provider peak archive.
type FloodEvent struct {
	SiteCode     string     `db:"site_code"`
	EventStart   time.Time  `db:"event_start"`
	CrestInstant time.Time  `db:"crest_instant"`
	EventEnd     *time.Time `db:"event_end"`
	PeakStage    float64    `db:"peak_stage"`
	Severity     Severity   `db:"severity"`
}

// Validate enforces event_end >= event_start and event_start <= crest <= event_end.
func (e FloodEvent) Validate() error {
	if e.CrestInstant.Before(e.EventStart) {
		return fmt.Errorf("crest %s precedes event_start %s", e.CrestInstant, e.EventStart)
	}
	if e.EventEnd != nil {
		if e.EventEnd.Before(e.EventStart) {
			return fmt.Errorf("event_end %s precedes event_start %s", *e.EventEnd, e.EventStart)
		}
		if e.CrestInstant.After(*e.EventEnd) {
			return fmt.Errorf("crest %s is after event_end %s", e.CrestInstant, *e.EventEnd)
		}
	}
	return nil
}

// PeakRecord is one parsed row from a gauge-peaks RDB file (spec §6).
// ag_gage_ht is carried but, per the spec's fixed Open Question, never
// supersedes gage_ht.
type PeakRecord struct {
	SiteCode    string
	PeakDate    time.Time
	HasTime     bool
	PeakFlow    *float64
	PeakCodes   []string // "5"=regulated, "3"=dam-failure, "C"=urbanization, "2"=estimated, "1"=backwater
	GageHeight  *float64
	GageHeightCodes []string
	AltGageHeight   *float64 // ag_gage_ht, retained but not authoritative
}
