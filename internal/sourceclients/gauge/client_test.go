// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package gauge

import (
	"testing"

	"github.com/usace-mvr/flomon/internal/domain"
)

// S1 — Sentinel filtering: an IV envelope with one series containing
// values ["-999999", "4820"] and noDataValue -999999 yields exactly one
// reading, value 4820.0, qualifier provisional.
func TestParseEnvelope_SentinelFiltering(t *testing.T) {
	data := []byte(`{
		"series": [{
			"site": "05586100",
			"parameterCd": "00060",
			"noDataValue": -999999,
			"values": [
				{"dateTime": "2026-06-01T00:00:00Z", "value": "-999999", "qualifier": ""},
				{"dateTime": "2026-06-01T00:15:00Z", "value": "4820", "qualifier": ""}
			]
		}]
	}`)

	readings, err := parseEnvelope(data)
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if len(readings) != 1 {
		t.Fatalf("expected exactly 1 reading, got %d", len(readings))
	}
	r := readings[0]
	if r.Value != 4820.0 {
		t.Errorf("expected value 4820.0, got %v", r.Value)
	}
	if r.Qualifier != domain.QualifierProvisional {
		t.Errorf("expected qualifier provisional, got %v", r.Qualifier)
	}
}

func TestParseEnvelope_AllSentinelDropsSeries(t *testing.T) {
	data := []byte(`{
		"series": [{
			"site": "05586100",
			"parameterCd": "00065",
			"noDataValue": -999999,
			"values": [
				{"dateTime": "2026-06-01T00:00:00Z", "value": "-999999.0", "qualifier": ""}
			]
		}]
	}`)

	readings, err := parseEnvelope(data)
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected no readings from all-sentinel series, got %d", len(readings))
	}
}

func TestParseEnvelope_ApprovedQualifier(t *testing.T) {
	data := []byte(`{
		"series": [{
			"site": "05586100",
			"parameterCd": "00065",
			"noDataValue": -999999,
			"values": [
				{"dateTime": "2026-06-01T00:00:00Z", "value": "12.3", "qualifier": "A"}
			]
		}]
	}`)

	readings, err := parseEnvelope(data)
	if err != nil {
		t.Fatalf("parseEnvelope: %v", err)
	}
	if len(readings) != 1 || readings[0].Qualifier != domain.QualifierApproved {
		t.Fatalf("expected one approved reading, got %+v", readings)
	}
}
