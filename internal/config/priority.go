// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the human-authored station, location, weather-station,
// and zone declarations, plus the JSON-schema-validated settings file, into
// immutable in-memory registries.
package config

import (
	"strings"

	"github.com/usace-mvr/flomon/internal/domain"
)

// DerivePriority maps a free-text relevance field to a poll priority.
// Case-insensitive token match; the first matching tier wins. This is the
// sole source of per-stream poll cadence (spec §4.A) — it is never
// overridable per-station.
func DerivePriority(relevance string) domain.Priority {
	upper := strings.ToUpper(relevance)
	switch {
	case containsAny(upper, "PRIMARY", "CRITICAL"):
		return domain.PriorityCritical
	case containsAny(upper, "HIGH", "UPSTREAM WARNING"):
		return domain.PriorityHigh
	case containsAny(upper, "EXTENDED", "CONFLUENCE MONITOR"):
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
