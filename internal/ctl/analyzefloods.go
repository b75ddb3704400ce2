// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package ctl

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/flood"
	"github.com/usace-mvr/flomon/internal/reportstore"
	"github.com/usace-mvr/flomon/internal/warehouse"
)

func init() {
	cmd := &cobra.Command{
		Use:   "analyze-floods",
		Short: "Run the historical flood-event analyzer for one crest and archive its report",
		RunE:  runAnalyzeFloods,
	}
	cmd.Flags().String("settings", "./settings.json", "path to settings.json")
	cmd.Flags().String("site", "", "site code of the crest (required)")
	cmd.Flags().String("stage-parameter", "00065", "stage parameter code")
	cmd.Flags().String("crest-instant", "", "crest instant, RFC3339 (required)")
	cmd.Flags().Float64("crest-stage", 0, "crest stage in feet (required)")
	cmd.Flags().String("severity", string(domain.SeverityFlood), "severity to record on the event row")
	cmd.Flags().Duration("reading-interval", 15*time.Minute, "nominal spacing between stage samples")
	cmd.Flags().String("mississippi-ref", "", "CWMS series id for the Mississippi reference gauge")
	cmd.Flags().String("illinois-ref", "", "CWMS series id for the Illinois reference gauge")
	cmd.Flags().Float64("backwater-differential-threshold", 2.0, "Mississippi-minus-Illinois stage differential flagging backwater, in feet")
	cmd.Flags().StringSlice("upstream-zones", nil, "zone ids playing the upstream role")
	cmd.Flags().StringSlice("tributary-zones", nil, "zone ids playing the local-tributary role")
	cmd.Flags().StringSlice("compound-zones", nil, "zone ids playing the compound role")
	cmd.Flags().StringSlice("active-zones", nil, "zone ids observed active during the event")
	cmd.MarkFlagRequired("site")
	cmd.MarkFlagRequired("crest-instant")
	cmd.MarkFlagRequired("crest-stage")
	rootCmd.AddCommand(cmd)
}

func runAnalyzeFloods(cmd *cobra.Command, args []string) error {
	settingsPath, _ := cmd.Flags().GetString("settings")
	site, _ := cmd.Flags().GetString("site")
	stageParam, _ := cmd.Flags().GetString("stage-parameter")
	crestInstantStr, _ := cmd.Flags().GetString("crest-instant")
	crestStage, _ := cmd.Flags().GetFloat64("crest-stage")
	severity, _ := cmd.Flags().GetString("severity")
	readingInterval, _ := cmd.Flags().GetDuration("reading-interval")
	mississippiRef, _ := cmd.Flags().GetString("mississippi-ref")
	illinoisRef, _ := cmd.Flags().GetString("illinois-ref")
	backwaterThreshold, _ := cmd.Flags().GetFloat64("backwater-differential-threshold")
	upstreamZones, _ := cmd.Flags().GetStringSlice("upstream-zones")
	tributaryZones, _ := cmd.Flags().GetStringSlice("tributary-zones")
	compoundZones, _ := cmd.Flags().GetStringSlice("compound-zones")
	activeZones, _ := cmd.Flags().GetStringSlice("active-zones")

	crestInstant, err := time.Parse(time.RFC3339, crestInstantStr)
	if err != nil {
		return fmt.Errorf("parsing --crest-instant: %w", err)
	}

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return err
	}

	if err := warehouse.Connect(requireDatabaseURL()); err != nil {
		return err
	}
	wh := warehouse.Get()

	store, err := reportstore.New(settings)
	if err != nil {
		return err
	}

	ctx := context.Background()
	lookback := time.Duration(settings.Analyzer.PrecursorLookbackDays+7) * 24 * time.Hour
	windowStart := crestInstant.Add(-lookback)
	windowEnd := crestInstant.Add(7 * 24 * time.Hour)

	rows, err := wh.GaugeReadingsInWindow(ctx, site, stageParam, windowStart, windowEnd)
	if err != nil {
		return err
	}
	stageSeries := make([]flood.StagePoint, 0, len(rows))
	for _, r := range rows {
		stageSeries = append(stageSeries, flood.StagePoint{Instant: r.Instant, Stage: r.Value})
	}

	var cwmsSamples []flood.CWMSSample
	if mississippiRef != "" && illinoisRef != "" {
		mRows, err := wh.CWMSReadingsInWindow(ctx, mississippiRef, windowStart, windowEnd)
		if err != nil {
			return err
		}
		iByInstant := make(map[time.Time]float64, len(mRows))
		iRows, err := wh.CWMSReadingsInWindow(ctx, illinoisRef, windowStart, windowEnd)
		if err != nil {
			return err
		}
		for _, r := range iRows {
			iByInstant[r.Instant] = r.Value
		}
		for _, r := range mRows {
			if iVal, ok := iByInstant[r.Instant]; ok {
				cwmsSamples = append(cwmsSamples, flood.CWMSSample{Instant: r.Instant, MississippiStage: r.Value, IllinoisStage: iVal})
			}
		}
	}

	activity := make([]flood.ZoneActivity, 0, len(activeZones))
	for _, id := range activeZones {
		activity = append(activity, flood.ZoneActivity{ZoneID: id, Active: true})
	}

	peak := flood.Peak{SiteCode: site, CrestInstant: crestInstant, PeakStage: crestStage, Severity: domain.Severity(severity)}
	taxonomy := flood.ZoneTaxonomy{UpstreamZoneIDs: upstreamZones, TributaryZoneIDs: tributaryZones, CompoundZoneIDs: compoundZones}

	result, err := flood.AnalyzeAndPersist(ctx, wh, store, stageSeries, cwmsSamples, peak, settings.Analyzer, backwaterThreshold, readingInterval, activity, taxonomy)
	if err != nil {
		return err
	}

	fmt.Printf("%s: event type %s, precursor start %s, total rise %.2f ft over %.1f h\n",
		site, result.EventType, result.Window.Start.Format(time.RFC3339), result.Window.TotalRiseFt, result.Window.DurationHours)
	return nil
}
