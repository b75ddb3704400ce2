// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/usace-mvr/flomon/internal/domain"
)

// locationDecl mirrors one [[location]] table in locations.toml.
type locationDecl struct {
	ShefID        string   `toml:"shef_id"`
	CWMSLocation  string   `toml:"cwms_location"`
	Office        string   `toml:"office"`
	Name          string   `toml:"name"`
	RiverMile     float64  `toml:"river_mile"`
	DataTypes     []string `toml:"data_types"`
	Relevance     string   `toml:"relevance"`
	FloodNote     string   `toml:"flood_note"`
}

type locationsFile struct {
	Location []locationDecl `toml:"location"`
}

// LocationEntry pairs a CWMS location declaration with its derived poll
// priority and hydraulic role.
type LocationEntry struct {
	domain.CWMSLocation
	Priority domain.Priority
}

// LocationRegistry is the immutable in-memory set of declared lock/dam
// locations.
type LocationRegistry struct {
	byName map[string]LocationEntry
}

func (r *LocationRegistry) Get(name string) (LocationEntry, bool) {
	e, ok := r.byName[name]
	return e, ok
}

func (r *LocationRegistry) All() []LocationEntry {
	out := make([]LocationEntry, 0, len(r.byName))
	for _, e := range r.byName {
		out = append(out, e)
	}
	return out
}

// LoadLocations parses a locations.toml declaration file. Missing
// cwms_location/office/name is fatal, per spec §4.A.
func LoadLocations(path string) (*LocationRegistry, error) {
	var f locationsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: locations file %s: %w", path, err)
	}

	reg := &LocationRegistry{byName: make(map[string]LocationEntry, len(f.Location))}
	for _, d := range f.Location {
		if d.CWMSLocation == "" || d.Office == "" || d.Name == "" {
			return nil, fmt.Errorf("config: location declaration missing required fields: %+v", d)
		}
		dataKinds := make([]domain.DataKind, 0, len(d.DataTypes))
		for _, dt := range d.DataTypes {
			dataKinds = append(dataKinds, domain.DataKind(dt))
		}
		riverMile := d.RiverMile
		reg.byName[d.CWMSLocation] = LocationEntry{
			CWMSLocation: domain.CWMSLocation{
				Name:         d.CWMSLocation,
				SHEFID:       d.ShefID,
				Office:       d.Office,
				RiverMile:    &riverMile,
				DataTypes:    dataKinds,
				MonitoringOn: true,
				FloodNote:    d.FloodNote,
			},
			Priority: DerivePriority(d.Relevance),
		}
	}
	return reg, nil
}
