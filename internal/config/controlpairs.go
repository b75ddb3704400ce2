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

// controlPairDecl mirrors one [[pair]] table in control_pairs.toml.
type controlPairDecl struct {
	Name            string  `toml:"name"`
	PoolSeries      string  `toml:"pool_series"`
	TailwaterSeries string  `toml:"tailwater_series"`
	MarginFt        float64 `toml:"margin_ft"`
}

type controlPairsFile struct {
	MississippiRef string            `toml:"mississippi_ref"`
	IllinoisRef    string            `toml:"illinois_ref"`
	Pair           []controlPairDecl `toml:"pair"`
}

// ControlPairRegistry is the immutable set of declared hydraulic-control
// pairs (spec §4.G's `(pool_series, tailwater_series, margin_ft=0.5)`)
// plus the shared Mississippi/Illinois interface reference series the
// backwater detector correlates against.
type ControlPairRegistry struct {
	Pairs          map[string]domain.HydraulicControlPair
	MississippiRef string
	IllinoisRef    string
}

// LoadControlPairs parses a control_pairs.toml declaration file. A
// missing name/pool_series/tailwater_series on any declared pair, or a
// missing mississippi_ref/illinois_ref, is fatal: the hydraulic-control-
// loss predicate is core Component G, not an optional extension.
func LoadControlPairs(path string) (*ControlPairRegistry, error) {
	var f controlPairsFile
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("config: control pairs file %s: %w", path, err)
	}
	if f.MississippiRef == "" || f.IllinoisRef == "" {
		return nil, fmt.Errorf("config: control pairs file %s missing required mississippi_ref/illinois_ref", path)
	}

	reg := &ControlPairRegistry{
		Pairs:          make(map[string]domain.HydraulicControlPair, len(f.Pair)),
		MississippiRef: f.MississippiRef,
		IllinoisRef:    f.IllinoisRef,
	}
	for _, d := range f.Pair {
		if d.Name == "" || d.PoolSeries == "" || d.TailwaterSeries == "" {
			return nil, fmt.Errorf("config: control pair declaration missing required name/pool_series/tailwater_series: %+v", d)
		}
		margin := d.MarginFt
		if margin == 0 {
			margin = 0.5
		}
		reg.Pairs[d.Name] = domain.HydraulicControlPair{PoolSeries: d.PoolSeries, TailwaterSeries: d.TailwaterSeries, MarginFt: margin}
	}
	return reg, nil
}
