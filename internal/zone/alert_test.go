// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package zone

import (
	"testing"

	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
)

func value(v float64) *float64 { return &v }

func TestEvaluateAlertCondition_NoConditionIsUnknown(t *testing.T) {
	def := config.ZoneDef{Condition: nil}
	members := []MemberSnapshot{{Role: domain.RoleDirect, LatestValue: value(12.0)}}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.AlertUnknown {
		t.Fatalf("status = %s, want unknown", status)
	}
}

func TestEvaluateAlertCondition_NoDirectMemberIsUnknownWithError(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPool, Threshold: 10.0}}
	members := []MemberSnapshot{{Role: domain.RoleBoundary, LatestValue: value(12.0)}}

	status, err := EvaluateAlertCondition(def, members)
	if err == nil {
		t.Fatalf("expected an error when no direct member is present")
	}
	if status != domain.AlertUnknown {
		t.Fatalf("status = %s, want unknown", status)
	}
}

func TestEvaluateAlertCondition_DirectMemberWithNoReadingIsUnknownWithError(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionStage, Threshold: 10.0}}
	members := []MemberSnapshot{{Role: domain.RoleDirect, LatestValue: nil}}

	status, err := EvaluateAlertCondition(def, members)
	if err == nil {
		t.Fatalf("expected an error when the direct member has no reading")
	}
	if status != domain.AlertUnknown {
		t.Fatalf("status = %s, want unknown", status)
	}
}

func TestEvaluateAlertCondition_Warning(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPool, Threshold: 10.0}}
	members := []MemberSnapshot{{Role: domain.RoleDirect, LatestValue: value(10.0)}}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.AlertWarning {
		t.Fatalf("status = %s, want warning", status)
	}
}

func TestEvaluateAlertCondition_Active(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPool, Threshold: 10.0}}
	members := []MemberSnapshot{{Role: domain.RoleDirect, LatestValue: value(10.5)}}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.AlertActive {
		t.Fatalf("status = %s, want active", status)
	}
}

func TestEvaluateAlertCondition_Critical(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPool, Threshold: 10.0}}
	members := []MemberSnapshot{{Role: domain.RoleDirect, LatestValue: value(11.5)}}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.AlertCritical {
		t.Fatalf("status = %s, want critical", status)
	}
}

func TestEvaluateAlertCondition_SkipsNonDirectMembers(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPool, Threshold: 10.0}}
	members := []MemberSnapshot{
		{Role: domain.RoleBoundary, LatestValue: value(99.0)},
		{Role: domain.RoleDirect, LatestValue: value(10.0)},
	}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.AlertWarning {
		t.Fatalf("status = %s, want warning (evaluated against the direct member, not the context member)", status)
	}
}

func TestEvaluateAlertCondition_PrecipConditionReadsThePrecipMember(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPrecip, Threshold: 2.0}}
	members := []MemberSnapshot{
		{Role: domain.RoleDirect, LatestValue: value(99.0)},
		{Role: domain.RolePrecip, LatestValue: value(2.5)},
	}

	status, err := EvaluateAlertCondition(def, members)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != domain.AlertActive {
		t.Fatalf("status = %s, want active (evaluated against the precip member, not the direct member)", status)
	}
}

func TestEvaluateAlertCondition_PrecipConditionWithNoPrecipMemberIsUnknown(t *testing.T) {
	def := config.ZoneDef{Condition: &config.AlertCondition{Kind: config.ConditionPrecip, Threshold: 2.0}}
	members := []MemberSnapshot{{Role: domain.RoleDirect, LatestValue: value(99.0)}}

	status, err := EvaluateAlertCondition(def, members)
	if err == nil {
		t.Fatalf("expected an error when no precip-role member is present")
	}
	if status != domain.AlertUnknown {
		t.Fatalf("status = %s, want unknown", status)
	}
}
