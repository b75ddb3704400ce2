// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/usace-mvr/flomon/internal/domain"
)

// zoneMemberDecl mirrors one member entry under a [[zone]] table.
type zoneMemberDecl struct {
	Source     string `toml:"source"`
	Identifier string `toml:"identifier"`
	Role       string `toml:"role"`
	Relevance  string `toml:"relevance"`
}

// zoneDecl mirrors one [[zone]] table in zones.toml.
type zoneDecl struct {
	ID                    int              `toml:"id"`
	Name                  string           `toml:"name"`
	LeadTimeHoursMin      float64          `toml:"lead_time_hours_min"`
	LeadTimeHoursMax      float64          `toml:"lead_time_hours_max"`
	PrimaryAlertCondition string           `toml:"primary_alert_condition"`
	Members               []zoneMemberDecl `toml:"members"`
}

type zonesFile struct {
	Zone []zoneDecl `toml:"zone"`
}

// ConditionKind is one of the three fixed predicates the zone alert
// grammar supports (spec §4.G / §9 — enumerated, not a general expression
// language, so unsupported text is rejected at load time).
type ConditionKind string

const (
	ConditionPool   ConditionKind = "pool"
	ConditionStage  ConditionKind = "stage"
	ConditionPrecip ConditionKind = "precip"
)

// AlertCondition is a parsed, fixed-grammar primary_alert_condition.
type AlertCondition struct {
	Kind      ConditionKind
	Threshold float64
}

var (
	poolPattern   = regexp.MustCompile(`^\s*pool\s*>\s*(-?[0-9]+(?:\.[0-9]+)?)\s*ft\s*$`)
	stagePattern  = regexp.MustCompile(`^\s*stage\s*>\s*(-?[0-9]+(?:\.[0-9]+)?)\s*ft\s*$`)
	precipPattern = regexp.MustCompile(`^\s*precip\s*>\s*(-?[0-9]+(?:\.[0-9]+)?)\s*in/24h\s*$`)
)

// ParseAlertCondition rejects anything outside the three enumerated
// patterns ("pool > N ft", "stage > N ft", "precip > N in/24h") at load
// time, per spec §9's explicit design choice to remove a class of
// runtime failures. A general expression evaluator (available elsewhere
// in the Go ecosystem) is deliberately not used here: the spec requires
// unsupported text to fail the config load, not to be interpreted.
func ParseAlertCondition(text string) (AlertCondition, error) {
	if m := poolPattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return AlertCondition{Kind: ConditionPool, Threshold: v}, nil
	}
	if m := stagePattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return AlertCondition{Kind: ConditionStage, Threshold: v}, nil
	}
	if m := precipPattern.FindStringSubmatch(text); m != nil {
		v, _ := strconv.ParseFloat(m[1], 64)
		return AlertCondition{Kind: ConditionPrecip, Threshold: v}, nil
	}
	return AlertCondition{}, fmt.Errorf("config: unsupported primary_alert_condition %q: must match one of \"pool > N ft\", \"stage > N ft\", \"precip > N in/24h\"", text)
}

// ZoneDef is a loaded zone declaration with its alert condition already
// parsed and validated.
type ZoneDef struct {
	domain.Zone
	Condition *AlertCondition // nil if the zone declared no condition
}

// ZoneRegistry is the immutable in-memory set of declared zones.
type ZoneRegistry struct {
	byID map[int]ZoneDef
}

func (r *ZoneRegistry) Get(id int) (ZoneDef, bool) {
	z, ok := r.byID[id]
	return z, ok
}

func (r *ZoneRegistry) All() []ZoneDef {
	out := make([]ZoneDef, 0, len(r.byID))
	for _, z := range r.byID {
		out = append(out, z)
	}
	return out
}

// LoadZones parses a zones.toml declaration file. Each primary_alert_condition
// is parsed immediately; an unsupported grammar aborts the load (spec §9).
func LoadZones(path string) (*ZoneRegistry, error) {
	var f zonesFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: zones file %s: %w", path, err)
	}

	reg := &ZoneRegistry{byID: make(map[int]ZoneDef, len(f.Zone))}
	for _, d := range f.Zone {
		if d.Name == "" {
			return nil, fmt.Errorf("config: zone %d missing required name", d.ID)
		}
		members := make([]domain.ZoneMember, 0, len(d.Members))
		for _, m := range d.Members {
			members = append(members, domain.ZoneMember{
				Source:     domain.Source(m.Source),
				Identifier: m.Identifier,
				Role:       domain.MemberRole(m.Role),
				Relevance:  m.Relevance,
			})
		}

		def := ZoneDef{
			Zone: domain.Zone{
				ID:                    d.ID,
				Name:                  d.Name,
				LeadTimeHoursMin:      d.LeadTimeHoursMin,
				LeadTimeHoursMax:      d.LeadTimeHoursMax,
				PrimaryAlertCondition: d.PrimaryAlertCondition,
				Members:               members,
			},
		}
		if d.PrimaryAlertCondition != "" {
			cond, err := ParseAlertCondition(d.PrimaryAlertCondition)
			if err != nil {
				return nil, err
			}
			def.Condition = &cond
		}
		reg.byID[d.ID] = def
	}
	return reg, nil
}
