// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ctl implements the flomonctl command-line interface using
// Cobra. Each subcommand is a one-shot operator task against the same
// warehouse and config files the daemon uses: backfilling history,
// importing peak-flow archives, running the historical flood-event
// analyzer, and printing a live backwater report.
package ctl

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "flomonctl",
	Short:         "Operator commands for the flomon ingestion daemon",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from cmd/flomonctl/main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// requireDatabaseURL fetches DATABASE_URL or exits, mirroring the
// daemon's own startup check.
func requireDatabaseURL() string {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: DATABASE_URL is not set")
		os.Exit(1)
	}
	return url
}
