// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package warehouse is the relational-store adapter: connection pool,
// startup schema assertion, idempotent writes, and squirrel-built reads
// across the usgs_raw, nws, usace, and flood_analysis namespaces.
package warehouse

import (
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/usace-mvr/flomon/pkg/flog"
)

var (
	connOnce sync.Once
	instance *Warehouse
)

// Warehouse wraps the shared connection pool to the relational store.
// Writes to the readings tables are disjoint per stream and need no
// explicit locking; the monitoring-state upsert is serialized per row by
// the database itself (spec §5).
type Warehouse struct {
	DB *sqlx.DB
}

// requiredTables names the relations the daemon asserts exist at startup
// (spec §6), across every namespace it writes to.
var requiredTables = []string{
	"usgs_raw.sites",
	"usgs_raw.gauge_readings",
	"usgs_raw.monitoring_state",
	"usgs_raw.peak_flows",
	"usace.cwms_locations",
	"usace.cwms_timeseries",
	"nws.asos_stations",
	"nws.asos_observations",
	"flood_analysis.flood_thresholds",
	"flood_analysis.flood_events",
	"flood_analysis.backwater_events",
	"flood_analysis.event_observations",
	"flood_analysis.event_cwms_correlation",
	"flood_analysis.event_rise_metrics",
}

// Connect opens the pool against databaseURL exactly once per process,
// then asserts the required schema is present. A missing table aborts
// with a diagnostic naming it; the daemon never attempts migration.
func Connect(databaseURL string) error {
	var err error
	connOnce.Do(func() {
		var db *sqlx.DB
		db, err = sqlx.Open("postgres", databaseURL)
		if err != nil {
			err = fmt.Errorf("warehouse: opening connection: %w", err)
			return
		}
		db.SetConnMaxLifetime(time.Hour)
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)

		if pingErr := db.Ping(); pingErr != nil {
			err = fmt.Errorf("warehouse: connection not reachable: %w", pingErr)
			return
		}

		if assertErr := assertSchema(db); assertErr != nil {
			err = assertErr
			return
		}

		instance = &Warehouse{DB: db}
		flog.Info("warehouse: connected and schema asserted")
	})
	return err
}

// Get returns the process-wide warehouse handle. Exits the process via
// flog.Fatal if Connect has not succeeded yet — mirrors the teacher's
// fail-fast singleton access.
func Get() *Warehouse {
	if instance == nil {
		flog.Fatal("warehouse: connection not initialized")
	}
	return instance
}

// Live reports whether the pool can currently serve a query, for the
// /health endpoint.
func (w *Warehouse) Live() bool {
	return w.DB.Ping() == nil
}

func assertSchema(db *sqlx.DB) error {
	for _, qualified := range requiredTables {
		schemaName, tableName, ok := splitQualified(qualified)
		if !ok {
			return fmt.Errorf("warehouse: malformed required table name %q", qualified)
		}
		var exists bool
		err := db.Get(&exists,
			`SELECT EXISTS (
				SELECT 1 FROM information_schema.tables
				WHERE table_schema = $1 AND table_name = $2
			)`, schemaName, tableName)
		if err != nil {
			return fmt.Errorf("warehouse: checking for %s: %w", qualified, err)
		}
		if !exists {
			return fmt.Errorf("warehouse: required table %s is missing; the daemon does not migrate schema, run the provisioning scripts first", qualified)
		}
	}
	return nil
}

func splitQualified(name string) (schema, table string, ok bool) {
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i], name[i+1:], true
		}
	}
	return "", "", false
}
