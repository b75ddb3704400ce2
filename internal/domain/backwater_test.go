// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import "testing"

func TestClassifyBackwaterSeverity(t *testing.T) {
	cases := []struct {
		differential float64
		want         BackwaterSeverity
	}{
		{0.0, BackwaterNone},
		{0.49, BackwaterNone},
		{0.5, BackwaterMinor},
		{1.9, BackwaterMinor},
		{2.0, BackwaterModerate},
		{4.9, BackwaterModerate},
		{5.0, BackwaterMajor},
		{9.9, BackwaterMajor},
		{10.0, BackwaterExtreme},
		{15.0, BackwaterExtreme},
	}
	for _, tc := range cases {
		if got := ClassifyBackwaterSeverity(tc.differential); got != tc.want {
			t.Errorf("ClassifyBackwaterSeverity(%v) = %s, want %s", tc.differential, got, tc.want)
		}
	}
}

func TestHydraulicControlPair_ControlLost(t *testing.T) {
	pair := HydraulicControlPair{PoolSeries: "pool", TailwaterSeries: "tw", MarginFt: 0.5}

	if pair.ControlLost(10.0, 11.0) {
		t.Fatalf("tailwater+margin (10.5) < pool (11.0): control should not be lost")
	}
	if !pair.ControlLost(10.5, 11.0) {
		t.Fatalf("tailwater+margin (11.0) == pool (11.0): control should be lost")
	}
	if !pair.ControlLost(11.2, 11.0) {
		t.Fatalf("tailwater+margin (11.7) > pool (11.0): control should be lost")
	}
}

func TestHydraulicControlPair_ControlLost_DefaultMargin(t *testing.T) {
	pair := HydraulicControlPair{PoolSeries: "pool", TailwaterSeries: "tw"}
	if !pair.ControlLost(10.5, 11.0) {
		t.Fatalf("zero-value MarginFt should default to 0.5 ft")
	}
}
