// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package asos

import "testing"

func TestParseArchiveToReadings_PrecipAssumedZeroWhenHourHasData(t *testing.T) {
	data := []byte(
		"K1BF\t2026-06-01T12:00:00Z\t72.1\t65.0\t180\t5\tM\t0.02\t1013\t10\tCLR\n" +
			"K1BF\t2026-06-01T12:01:00Z\t72.0\t65.0\t180\t5\tM\tM\t1013\t10\tCLR\n")

	readings, err := parseArchiveToReadings(data, "K1BF")
	if err != nil {
		t.Fatalf("parseArchiveToReadings: %v", err)
	}
	if len(readings) != 2 {
		t.Fatalf("expected both records retained, got %d", len(readings))
	}
	second := readings[1].Observation
	if second.Precip1hIn == nil || *second.Precip1hIn != 0 {
		t.Fatalf("expected second record's missing precip assumed zero, got %+v", second.Precip1hIn)
	}
}

func TestParseArchiveToReadings_DiscardedWhenHourHasNoPrecipAtAll(t *testing.T) {
	data := []byte(
		"K1BF\t2026-06-01T12:00:00Z\t72.1\t65.0\t180\t5\tM\tM\t1013\t10\tCLR\n")

	readings, err := parseArchiveToReadings(data, "K1BF")
	if err != nil {
		t.Fatalf("parseArchiveToReadings: %v", err)
	}
	if len(readings) != 0 {
		t.Fatalf("expected record discarded when hour has no precip data, got %d", len(readings))
	}
}
