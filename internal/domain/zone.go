// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

// MemberRole classifies how one sensor participates in a zone.
type MemberRole string

const (
	RoleDirect   MemberRole = "direct"
	RoleBoundary MemberRole = "boundary"
	RolePrecip   MemberRole = "precip"
	RoleProxy    MemberRole = "proxy"
)

// ZoneMember is one declared sensor belonging to a Zone.
type ZoneMember struct {
	Source     Source
	Identifier string
	Role       MemberRole
	Relevance  string
}

// Zone is a declarative, immutable-at-runtime grouping of sensors
// describing a hydraulic region. Loaded from config at startup.
type Zone struct {
	ID                    int
	Name                  string
	LeadTimeHoursMin      float64
	LeadTimeHoursMax      float64
	PrimaryAlertCondition string // textual expression, parsed at load time
	Members               []ZoneMember
}

// Freshness classifies how recent a zone member's latest reading is.
type Freshness string

const (
	FreshnessFresh Freshness = "fresh" // < 30 min
	FreshnessAging Freshness = "aging" // 30-120 min
	FreshnessStale Freshness = "stale" // >= 120 min, or no reading at all
)

// ClassifyFreshness implements property 9 of the spec: the freshness
// bands are exact half-open intervals on age in minutes.
func ClassifyFreshness(ageMinutes float64) Freshness {
	switch {
	case ageMinutes < 30:
		return FreshnessFresh
	case ageMinutes < 120:
		return FreshnessAging
	default:
		return FreshnessStale
	}
}

// AlertStatus is the basin-wide per-zone rollup status.
type AlertStatus string

const (
	AlertActive   AlertStatus = "active"
	AlertCritical AlertStatus = "critical"
	AlertWarning  AlertStatus = "warning"
	AlertUnknown  AlertStatus = "unknown"
)
