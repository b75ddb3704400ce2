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

// stationDecl mirrors one [[station]] table in stations.toml.
type stationDecl struct {
	SiteCode           string   `toml:"site_code"`
	Name               string   `toml:"name"`
	Latitude           float64  `toml:"latitude"`
	Longitude          float64  `toml:"longitude"`
	Description        string   `toml:"description"`
	Active             *bool    `toml:"active"`
	ExpectedParameters []string `toml:"expected_parameters"`
}

type stationsFile struct {
	Station []stationDecl `toml:"station"`
}

// StationRegistry is the immutable, in-memory set of declared gauge stations.
type StationRegistry struct {
	bySite map[string]domain.Site
}

func (r *StationRegistry) Get(siteCode string) (domain.Site, bool) {
	s, ok := r.bySite[siteCode]
	return s, ok
}

func (r *StationRegistry) All() []domain.Site {
	out := make([]domain.Site, 0, len(r.bySite))
	for _, s := range r.bySite {
		out = append(out, s)
	}
	return out
}

// LoadStations parses a stations.toml declaration file. A missing file or a
// declaration with no site_code/name is fatal, per spec §4.A.
func LoadStations(path string) (*StationRegistry, error) {
	var f stationsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: stations file %s: %w", path, err)
	}

	reg := &StationRegistry{bySite: make(map[string]domain.Site, len(f.Station))}
	for _, d := range f.Station {
		if d.SiteCode == "" || d.Name == "" {
			return nil, fmt.Errorf("config: station declaration missing required site_code/name: %+v", d)
		}
		active := true
		if d.Active != nil {
			active = *d.Active
		}
		params := make([]domain.Param, 0, len(d.ExpectedParameters))
		for _, p := range d.ExpectedParameters {
			params = append(params, domain.Param(p))
		}
		reg.bySite[d.SiteCode] = domain.Site{
			Code:      d.SiteCode,
			Name:      d.Name,
			Latitude:  d.Latitude,
			Longitude: d.Longitude,
			Active:    active,
			Expected:  params,
		}
	}
	return reg, nil
}
