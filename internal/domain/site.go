// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package domain holds the types shared across flomon's ingestion,
// warehouse, and read-model layers: sites, readings, monitoring state,
// zones and the tagged Reading variant every source client produces.
package domain

// Site is a stream-gauge station. Created once on seeding, never
// destroyed; rarely mutated.
type Site struct {
	Code       string  `db:"site_code" json:"siteCode"` // opaque 8-character identifier
	Name       string  `db:"name" json:"name"`
	Latitude   float64 `db:"latitude" json:"latitude"`
	Longitude  float64 `db:"longitude" json:"longitude"`
	Active     bool    `db:"active" json:"active"`
	Expected   []Param `db:"-" json:"expectedParameters"`
}

// Param is a gauge parameter code.
type Param string

const (
	ParamDischarge Param = "discharge" // 00060, cubic feet per second
	ParamStage     Param = "stage"     // 00065, feet
)

// Qualifier is the data-quality tag carried by gauge and CWMS readings.
type Qualifier string

const (
	QualifierProvisional Qualifier = "provisional"
	QualifierApproved    Qualifier = "approved"
)
