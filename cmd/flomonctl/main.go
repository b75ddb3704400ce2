// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command flomonctl is the operator CLI: one-shot backfills, peak-flow
// imports, the historical flood-event analyzer, and ad hoc backwater
// reports, all run against the same warehouse the daemon writes to.
package main

import (
	"github.com/usace-mvr/flomon/internal/ctl"
	"github.com/usace-mvr/flomon/internal/runtimeEnv"
)

var version = "dev"

func main() {
	// Best-effort: flomonctl commands also work with DATABASE_URL
	// already set in the operator's shell, with no .env file present.
	_ = runtimeEnv.LoadEnv(".env")
	ctl.Execute(version)
}
