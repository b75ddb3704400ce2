// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package catalog resolves each declared lock/dam location's data kinds
// to concrete provider series ids at startup (spec §4.D). The resulting
// binding is a read-only, in-memory cache rebuilt on every restart.
package catalog

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/sourceclients/cwms"
	"github.com/usace-mvr/flomon/pkg/flog"
)

// LocationDataKind keys the discovered-series binding by (location, kind).
type LocationDataKind struct {
	Location string
	Kind     domain.DataKind
}

var kindPatterns = map[domain.DataKind]*regexp.Regexp{
	domain.DataKindPoolElevation:      regexp.MustCompile(`(?i)-Pool\.Elev\.`),
	domain.DataKindTailwaterElevation: regexp.MustCompile(`(?i)(-TW\.Elev\.|-Tailwater\.Elev\.|^TW-.*\.Elev\.)`),
	domain.DataKindStage:              regexp.MustCompile(`(?i)\.Stage\.`),
	domain.DataKindFlow:               regexp.MustCompile(`(?i)(\.Flow\.|\.Discharge\.)`),
}

// preferInstant ranks candidate series: prefer ".Inst." over averaged
// series, and prefer a shorter reporting interval token when tied (spec
// §4.D step 2, pool-elevation rule).
func preferInstant(names []string) string {
	sort.Slice(names, func(i, j int) bool {
		iInst := regexp.MustCompile(`(?i)\.Inst\.`).MatchString(names[i])
		jInst := regexp.MustCompile(`(?i)\.Inst\.`).MatchString(names[j])
		if iInst != jInst {
			return iInst
		}
		return intervalMinutes(names[i]) < intervalMinutes(names[j])
	})
	return names[0]
}

var intervalToken = regexp.MustCompile(`(?i)^(\d+)(minute|hour|day)s?$`)

// intervalMinutes returns a series id's reporting interval in minutes,
// or math.MaxInt32 when no field of the id is an interval token.
func intervalMinutes(name string) int {
	for _, field := range strings.Split(name, ".") {
		if m := intervalToken.FindStringSubmatch(field); m != nil {
			n, _ := strconv.Atoi(m[1])
			return n * map[string]int{"minute": 1, "hour": 60, "day": 1440}[strings.ToLower(m[2])]
		}
	}
	return math.MaxInt32
}

// Discover resolves series ids for every declared data kind of one
// location. A data kind with no matching catalog entry is skipped,
// logged once, and excluded from polling — the location as a whole is
// never rejected (spec §4.D step 3).
func Discover(ctx context.Context, client *cwms.Client, location string, dataKinds []domain.DataKind) (map[LocationDataKind]string, error) {
	entries, err := client.Catalog(ctx, location+".*")
	if err != nil {
		return nil, err
	}

	byKind := make(map[domain.DataKind][]string)
	for _, e := range entries {
		for _, kind := range dataKinds {
			pattern, ok := kindPatterns[kind]
			if !ok {
				continue
			}
			if pattern.MatchString(e.Name) {
				byKind[kind] = append(byKind[kind], e.Name)
			}
		}
	}

	bindings := make(map[LocationDataKind]string)
	for _, kind := range dataKinds {
		candidates := byKind[kind]
		if len(candidates) == 0 {
			flog.Expected("catalog", "location", location, "has no series for data kind", kind, "- skipped")
			continue
		}
		bindings[LocationDataKind{Location: location, Kind: kind}] = preferInstant(candidates)
	}
	return bindings, nil
}
