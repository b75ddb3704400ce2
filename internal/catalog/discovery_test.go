// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package catalog

import (
	"testing"

	"github.com/usace-mvr/flomon/internal/domain"
)

func TestKindPatterns_PoolElevation(t *testing.T) {
	pattern := kindPatterns[domain.DataKindPoolElevation]
	if !pattern.MatchString("Pool-1-Pool.Elev.Inst.15Minutes.0.rev") {
		t.Fatalf("expected pool elevation series name to match")
	}
	if pattern.MatchString("Pool-1.Stage.Inst.15Minutes.0.rev") {
		t.Fatalf("stage series should not match the pool-elevation pattern")
	}
}

func TestKindPatterns_TailwaterAcceptsAllThreeSpellings(t *testing.T) {
	pattern := kindPatterns[domain.DataKindTailwaterElevation]
	names := []string{
		"Lock-27-TW.Elev.Inst.15Minutes.0.rev",
		"Lock-27-Tailwater.Elev.Inst.15Minutes.0.rev",
		"TW-Lock-27.Elev.Inst.15Minutes.0.rev",
	}
	for _, n := range names {
		if !pattern.MatchString(n) {
			t.Errorf("expected %q to match the tailwater pattern", n)
		}
	}
}

func TestKindPatterns_FlowMatchesBothFlowAndDischarge(t *testing.T) {
	pattern := kindPatterns[domain.DataKindFlow]
	if !pattern.MatchString("Lock-27.Flow.Inst.15Minutes.0.rev") {
		t.Fatalf("expected .Flow. to match")
	}
	if !pattern.MatchString("Lock-27.Discharge.Inst.15Minutes.0.rev") {
		t.Fatalf("expected .Discharge. to match")
	}
}

func TestPreferInstant_PrefersInstOverAveraged(t *testing.T) {
	names := []string{
		"Pool-1.Pool.Elev.Ave.15Minutes.0.rev",
		"Pool-1.Pool.Elev.Inst.15Minutes.0.rev",
	}
	got := preferInstant(names)
	if got != "Pool-1.Pool.Elev.Inst.15Minutes.0.rev" {
		t.Fatalf("preferInstant = %q, want the Inst. series", got)
	}
}

func TestPreferInstant_PrefersShorterIntervalWhenTied(t *testing.T) {
	names := []string{
		"Pool-1.Pool.Elev.Inst.1Hour.0.rev",
		"Pool-1.Pool.Elev.Inst.15Minutes.0.rev",
	}
	got := preferInstant(names)
	if got != "Pool-1.Pool.Elev.Inst.15Minutes.0.rev" {
		t.Fatalf("preferInstant = %q, want the shorter-interval series", got)
	}
}

func TestPreferInstant_StableOnRepeatedCalls(t *testing.T) {
	names := []string{
		"Pool-1.Pool.Elev.Inst.1Hour.0.rev",
		"Pool-1.Pool.Elev.Ave.15Minutes.0.rev",
		"Pool-1.Pool.Elev.Inst.15Minutes.0.rev",
	}
	first := preferInstant(append([]string(nil), names...))
	second := preferInstant(append([]string(nil), names...))
	if first != second {
		t.Fatalf("preferInstant is not stable across calls: %q vs %q", first, second)
	}
	if first != "Pool-1.Pool.Elev.Inst.15Minutes.0.rev" {
		t.Fatalf("preferInstant = %q, want the Inst. + shortest-interval series", first)
	}
}
