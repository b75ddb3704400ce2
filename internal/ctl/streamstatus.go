// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package ctl

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/usace-mvr/flomon/internal/warehouse"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stream-status",
		Short: "List the per-stream staleness/monitoring status of every tracked stream",
		RunE:  runStreamStatus,
	}
	rootCmd.AddCommand(cmd)
}

func runStreamStatus(cmd *cobra.Command, args []string) error {
	if err := warehouse.Connect(requireDatabaseURL()); err != nil {
		return err
	}
	wh := warehouse.Get()

	rows, err := wh.StalenessView(context.Background())
	if err != nil {
		return err
	}

	for _, row := range rows {
		stale := ""
		if row.IsStale {
			stale = " (stale)"
		}
		fmt.Printf("%-8s %-24s %-12s %-10s%s\n", row.Source, row.Identifier, row.Parameter, row.Status, stale)
	}
	return nil
}
