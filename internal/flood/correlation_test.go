// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package flood

import "testing"

func TestCorrelateCWMS_FlagsBackwaterAboveThreshold(t *testing.T) {
	samples := []CWMSSample{
		{MississippiStage: 20.0, IllinoisStage: 19.0}, // diff 1.0
		{MississippiStage: 20.0, IllinoisStage: 17.5}, // diff 2.5
	}
	ctx := CorrelateCWMS(samples, 2.0)
	if ctx.BackwaterDetected != true {
		t.Fatalf("expected backwater detected")
	}
	if ctx.Differentials[0] != 1.0 || ctx.Differentials[1] != 2.5 {
		t.Fatalf("unexpected differentials: %+v", ctx.Differentials)
	}
}

func TestCorrelateCWMS_NoBackwaterBelowThreshold(t *testing.T) {
	samples := []CWMSSample{{MississippiStage: 20.0, IllinoisStage: 19.0}}
	ctx := CorrelateCWMS(samples, 2.0)
	if ctx.BackwaterDetected {
		t.Fatalf("expected no backwater")
	}
}

func TestClassifyEventType(t *testing.T) {
	upstream := []string{"zone-1", "zone-2"}
	tributary := []string{"zone-3"}
	compound := []string{"zone-4", "zone-5", "zone-6"}

	cases := []struct {
		name              string
		backwaterDetected bool
		activity          []ZoneActivity
		want              EventType
	}{
		{
			name:              "compound",
			backwaterDetected: true,
			activity:          []ZoneActivity{{ZoneID: "zone-5", Active: true}},
			want:              EventCompound,
		},
		{
			name:              "bottom up",
			backwaterDetected: true,
			activity:          []ZoneActivity{{ZoneID: "zone-1", Active: false}},
			want:              EventBottomUp,
		},
		{
			name:              "top down",
			backwaterDetected: false,
			activity:          []ZoneActivity{{ZoneID: "zone-1", Active: true}},
			want:              EventTopDown,
		},
		{
			name:              "local tributary",
			backwaterDetected: false,
			activity:          []ZoneActivity{{ZoneID: "zone-3", Active: true}},
			want:              EventLocalTributary,
		},
		{
			name:              "unclassified",
			backwaterDetected: false,
			activity:          nil,
			want:              EventUnclassified,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyEventType(tc.backwaterDetected, tc.activity, compound, upstream, tributary)
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}
