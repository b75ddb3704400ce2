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

	"github.com/usace-mvr/flomon/internal/catalog"
	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/sourceclients/cwms"
	"github.com/usace-mvr/flomon/internal/warehouse"
)

func init() {
	cmd := &cobra.Command{
		Use:   "backfill-cwms",
		Short: "Fetch a historical window from the CWMS lock/dam provider and insert it",
		RunE:  runBackfillCWMS,
	}
	cmd.Flags().String("locations", "./locations.toml", "path to locations.toml")
	cmd.Flags().String("cwms-base-url", "", "base URL of the CWMS lock/dam provider")
	cmd.Flags().String("cwms-office", "", "CWMS office code")
	cmd.Flags().String("location", "", "location name to backfill (required)")
	cmd.Flags().String("start", "", "window start, RFC3339 (required)")
	cmd.Flags().String("end", "", "window end, RFC3339 (required)")
	cmd.MarkFlagRequired("location")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	rootCmd.AddCommand(cmd)
}

func runBackfillCWMS(cmd *cobra.Command, args []string) error {
	locationsPath, _ := cmd.Flags().GetString("locations")
	baseURL, _ := cmd.Flags().GetString("cwms-base-url")
	office, _ := cmd.Flags().GetString("cwms-office")
	locationName, _ := cmd.Flags().GetString("location")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return fmt.Errorf("parsing --start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return fmt.Errorf("parsing --end: %w", err)
	}

	locations, err := config.LoadLocations(locationsPath)
	if err != nil {
		return err
	}
	loc, ok := locations.Get(locationName)
	if !ok {
		return fmt.Errorf("unknown location %q in %s", locationName, locationsPath)
	}

	if err := warehouse.Connect(requireDatabaseURL()); err != nil {
		return err
	}
	wh := warehouse.Get()

	client := cwms.New(baseURL, office)
	ctx := context.Background()

	bindings, err := catalog.Discover(ctx, client, loc.Name, loc.DataTypes)
	if err != nil {
		return fmt.Errorf("discovering series for %s: %w", loc.Name, err)
	}

	for kind, seriesID := range bindings {
		stream := domain.Stream{Source: domain.SourceCWMS, Identifier: seriesID, Parameter: "value"}
		result, err := client.FetchHistorical(ctx, stream, start, end)
		if err != nil {
			return fmt.Errorf("fetching %s (%s): %w", seriesID, kind.Kind, err)
		}
		if result.Status == domain.FetchTransportError {
			return fmt.Errorf("fetching %s (%s): %w", seriesID, kind.Kind, result.Err)
		}

		rows := make([]domain.CWMSTimeseriesReading, 0, len(result.Readings))
		for _, r := range result.Readings {
			rows = append(rows, domain.CWMSTimeseriesReading{SeriesID: r.Identifier, Instant: r.Instant, Value: r.Value, QualityCode: r.QualityCode, QualityFlagged: r.QualityFlagged})
		}
		n, err := wh.InsertCWMSReadings(ctx, rows)
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s): inserted %d of %d fetched readings\n", seriesID, kind.Kind, n, len(rows))
	}

	return nil
}
