// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ingest drives the per-source backfill and periodic poll loop
// from a single gocron.Scheduler (spec §4.E / §5).
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// State is the resumable backfill bookkeeping persisted to
// historical_ingest_state.json (spec §6).
type State struct {
	// DVCompletedYear records, per gauge site, the last calendar year
	// whose daily-values backfill has fully completed.
	DVCompletedYear map[string]int `json:"dvCompletedYear"`
	// IVInitialized/CWMSInitialized record whether the rolling-window
	// backfill has run at least once for a stream.
	IVInitialized   map[string]bool `json:"ivInitialized"`
	CWMSInitialized map[string]bool `json:"cwmsInitialized"`
	ASOSInitialized map[string]bool `json:"asosInitialized"`
}

func newState() *State {
	return &State{
		DVCompletedYear: make(map[string]int),
		IVInitialized:   make(map[string]bool),
		CWMSInitialized: make(map[string]bool),
		ASOSInitialized: make(map[string]bool),
	}
}

// LoadState reads the state file, returning a fresh empty State if it
// does not yet exist (first run).
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return newState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: reading state file %s: %w", path, err)
	}
	s := newState()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("ingest: parsing state file %s: %w", path, err)
	}
	return s, nil
}

// Save writes the state atomically: write to a temp file in the same
// directory, then rename into place, so a crash mid-write never
// corrupts the resumable state (same durability idiom as the teacher's
// machine-state file handling).
func (s *State) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("ingest: encoding state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("ingest: writing temp state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("ingest: renaming state file into place: %w", err)
	}
	return nil
}

// DefaultStatePath resolves the state file path relative to a base
// directory (the daemon's working directory by default).
func DefaultStatePath(baseDir string) string {
	return filepath.Join(baseDir, "historical_ingest_state.json")
}
