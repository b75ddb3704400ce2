// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package zone

import (
	"context"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/warehouse"
)

// BackwaterReport is the live hydraulic-control-loss/backwater state for
// one declared dam pair.
type BackwaterReport struct {
	Pair             domain.HydraulicControlPair
	ControlLost      bool
	TailwaterValue   float64
	PoolValue        float64
	Differential     float64
	Severity         domain.BackwaterSeverity
	GradientReversed bool
}

// DetectBackwater evaluates the hydraulic-control-loss predicate (spec
// §4.G) for one pool/tailwater pair using each series' latest reading.
func DetectBackwater(ctx context.Context, w *warehouse.Warehouse, pair domain.HydraulicControlPair, mississippiRef, illinoisRef string) (BackwaterReport, error) {
	pool, _, err := latestBySeriesRef(ctx, w, pair.PoolSeries)
	if err != nil {
		return BackwaterReport{}, err
	}
	tail, _, err := latestBySeriesRef(ctx, w, pair.TailwaterSeries)
	if err != nil {
		return BackwaterReport{}, err
	}

	lost := pair.ControlLost(tail, pool)

	mississippiStage, _, err := latestBySeriesRef(ctx, w, mississippiRef)
	if err != nil {
		return BackwaterReport{}, err
	}
	illinoisStage, _, err := latestBySeriesRef(ctx, w, illinoisRef)
	if err != nil {
		return BackwaterReport{}, err
	}
	differential := mississippiStage - illinoisStage

	return BackwaterReport{
		Pair:             pair,
		ControlLost:      lost,
		TailwaterValue:   tail,
		PoolValue:        pool,
		Differential:     differential,
		Severity:         domain.ClassifyBackwaterSeverity(differential),
		GradientReversed: differential < 0,
	}, nil
}

// latestBySeriesRef fetches the latest value for a CWMS series identified
// by its series id.
func latestBySeriesRef(ctx context.Context, w *warehouse.Warehouse, seriesID string) (float64, time.Time, error) {
	return w.LatestCWMSValue(ctx, seriesID)
}
