// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package ctl

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/usace-mvr/flomon/internal/sourceclients/gauge"
	"github.com/usace-mvr/flomon/internal/warehouse"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import-peaks",
		Short: "Parse a gauge-peaks RDB file and insert its rows",
		RunE:  runImportPeaks,
	}
	cmd.Flags().String("site", "", "site code the file belongs to (required)")
	cmd.Flags().String("file", "", "path to the RDB peak-flow file (required)")
	cmd.MarkFlagRequired("site")
	cmd.MarkFlagRequired("file")
	rootCmd.AddCommand(cmd)
}

func runImportPeaks(cmd *cobra.Command, args []string) error {
	site, _ := cmd.Flags().GetString("site")
	path, _ := cmd.Flags().GetString("file")

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	records, err := gauge.ParsePeaks(f, site)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if err := warehouse.Connect(requireDatabaseURL()); err != nil {
		return err
	}
	wh := warehouse.Get()

	n, err := wh.InsertPeakRecords(context.Background(), records)
	if err != nil {
		return err
	}
	fmt.Printf("%s: inserted %d of %d parsed peak records\n", site, n, len(records))
	return nil
}
