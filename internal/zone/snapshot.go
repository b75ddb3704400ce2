// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package zone composes the latest known reading for each zone member
// into a snapshot, classifies freshness, and evaluates the fixed-grammar
// primary_alert_condition against current gauge readings.
package zone

import (
	"context"
	"time"

	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/warehouse"
)

// MemberSnapshot is one zone member's latest-known reading, tagged with
// freshness. A member with no recorded reading is returned with a nil
// instant/value and is always classified stale (spec §4.G).
type MemberSnapshot struct {
	Source        domain.Source
	Identifier    string
	Role          domain.MemberRole
	LatestInstant *time.Time
	LatestValue   *float64
	Freshness     domain.Freshness
}

// Snapshot is the full read-model result for one zone.
type Snapshot struct {
	Zone          domain.Zone
	Members       []MemberSnapshot
	CountBySource map[domain.Source]int
	CountByFresh  map[domain.Freshness]int
	AlertStatus   domain.AlertStatus
}

// BuildSnapshot computes a zone snapshot against the warehouse as of
// now.
func BuildSnapshot(ctx context.Context, w *warehouse.Warehouse, def config.ZoneDef, now time.Time) (Snapshot, error) {
	rows, err := w.ZoneMemberSnapshots(ctx, def.Members)
	if err != nil {
		return Snapshot{}, err
	}

	members := make([]MemberSnapshot, 0, len(def.Members))
	countBySource := map[domain.Source]int{}
	countByFresh := map[domain.Freshness]int{}

	byKey := make(map[string]warehouse.ZoneMemberSnapshot, len(rows))
	for _, r := range rows {
		byKey[string(r.Source)+"/"+r.Identifier] = r
	}

	for _, m := range def.Members {
		row, ok := byKey[string(m.Source)+"/"+m.Identifier]
		ms := MemberSnapshot{Source: m.Source, Identifier: m.Identifier, Role: m.Role}
		if !ok || row.LatestInstant == nil {
			ms.Freshness = domain.FreshnessStale
		} else {
			ms.LatestInstant = row.LatestInstant
			ms.LatestValue = row.LatestValue
			ageMinutes := now.Sub(*row.LatestInstant).Minutes()
			ms.Freshness = domain.ClassifyFreshness(ageMinutes)
		}
		members = append(members, ms)
		countBySource[m.Source]++
		countByFresh[ms.Freshness]++
	}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		status = domain.AlertUnknown
	}

	return Snapshot{
		Zone:          def.Zone,
		Members:       members,
		CountBySource: countBySource,
		CountByFresh:  countByFresh,
		AlertStatus:   status,
	}, nil
}
