// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import "time"

// StreamStatus is the health classification of one monitored stream.
type StreamStatus string

const (
	StatusActive   StreamStatus = "active"
	StatusDegraded StreamStatus = "degraded"
	StatusOffline  StreamStatus = "offline"
)

// MonitoringState is the side-table row for one (stream, parameter).
// Mutated by every poll attempt; never deleted.
type MonitoringState struct {
	Source               Source        `db:"source" json:"source"`
	Identifier           string        `db:"identifier" json:"identifier"`
	Parameter            string        `db:"parameter" json:"parameter"`
	LastPollAttempted    time.Time     `db:"last_poll_attempted" json:"lastPollAttempted"`
	LastPollSucceeded    time.Time     `db:"last_poll_succeeded" json:"lastPollSucceeded"`
	LastDataReceived     time.Time     `db:"last_data_received" json:"lastDataReceived"`
	LatestReadingInstant time.Time     `db:"latest_reading_instant" json:"latestReadingInstant"`
	LatestReadingValue   float64       `db:"latest_reading_value" json:"latestReadingValue"`
	ConsecutiveFailures  int           `db:"consecutive_failures" json:"consecutiveFailures"`
	Status               StreamStatus  `db:"status" json:"status"`
	StatusSince          time.Time     `db:"status_since" json:"statusSince"`
	IsStale              bool          `db:"is_stale" json:"isStale"`
	StaleSince           *time.Time    `db:"stale_since" json:"staleSince,omitempty"`
	StalenessThreshold   time.Duration `db:"staleness_threshold" json:"stalenessThresholdNs"`
}

// PollOutcome is the input to the monitoring-state transition function
// (spec §4.F): what one poll attempt observed for one stream.
type PollOutcome struct {
	Now                   time.Time
	PollSucceeded         bool
	ReadingsCount         int
	LatestReadingInstant  time.Time // zero if ReadingsCount == 0
	LatestReadingValue    float64
}

// IngestionLog is an append-only audit row of one backfill or catalog
// operation against a stream.
type IngestionLog struct {
	ID          string // google/uuid, for cross-process correlation
	Source      Source
	Identifier  string
	QueryStart  time.Time
	QueryEnd    time.Time
	Count       int
	Status      string
	DurationMs  int64
	LastError   string
	RecordedAt  time.Time
}
