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

// asosStationDecl mirrors one [[weather_station]] table in asos_stations.toml.
type asosStationDecl struct {
	StationID     string   `toml:"station_id"`
	Name          string   `toml:"name"`
	Latitude      float64  `toml:"latitude"`
	Longitude     float64  `toml:"longitude"`
	Elevation     float64  `toml:"elevation"`
	Basin         string   `toml:"basin"`
	UpstreamGauge string   `toml:"upstream_gauge"`
	DataTypes     []string `toml:"data_types"`
	Relevance     string   `toml:"relevance"`
}

type asosStationsFile struct {
	WeatherStation []asosStationDecl `toml:"weather_station"`
}

// ASOSRegistry is the immutable in-memory set of declared weather stations.
type ASOSRegistry struct {
	byID map[string]domain.ASOSStation
}

func (r *ASOSRegistry) Get(stationID string) (domain.ASOSStation, bool) {
	s, ok := r.byID[stationID]
	return s, ok
}

func (r *ASOSRegistry) All() []domain.ASOSStation {
	out := make([]domain.ASOSStation, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s)
	}
	return out
}

// LoadASOSStations parses an asos_stations.toml declaration file. A missing
// station_id/name is fatal, per spec §4.A.
func LoadASOSStations(path string) (*ASOSRegistry, error) {
	var f asosStationsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: weather-station file %s: %w", path, err)
	}

	reg := &ASOSRegistry{byID: make(map[string]domain.ASOSStation, len(f.WeatherStation))}
	for _, d := range f.WeatherStation {
		if d.StationID == "" || d.Name == "" {
			return nil, fmt.Errorf("config: weather station declaration missing required station_id/name: %+v", d)
		}
		reg.byID[d.StationID] = domain.ASOSStation{
			ID:            d.StationID,
			Name:          d.Name,
			Latitude:      d.Latitude,
			Longitude:     d.Longitude,
			Elevation:     d.Elevation,
			Basin:         d.Basin,
			UpstreamGauge: d.UpstreamGauge,
			Priority:      DerivePriority(d.Relevance),
			DataTypes:     d.DataTypes,
		}
	}
	return reg, nil
}
