// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package ingest

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"golang.org/x/sync/errgroup"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/monitoring"
	"github.com/usace-mvr/flomon/internal/warehouse"
	"github.com/usace-mvr/flomon/pkg/flog"
)

// s is the package-level scheduler instance, matching the teacher's
// taskManager convention of a single unexported package var.
var s gocron.Scheduler

// StreamSource binds a domain.Stream to the SourceClient that serves it
// and its derived poll priority.
type StreamSource struct {
	Stream   domain.Stream
	Client   domain.SourceClient
	Priority domain.Priority
}

// Ingestor owns the scheduler, the warehouse handle, and the set of
// streams to poll across all three providers.
type Ingestor struct {
	Warehouse *warehouse.Warehouse
	Streams   []StreamSource
	State     *State
	StatePath string
	// FanoutLimit bounds concurrent in-flight fetches across providers
	// (spec §5 default: 3).
	FanoutLimit int
}

// Start builds the gocron scheduler, registers the 15-minute poll tick,
// and runs the startup backfill synchronously before the first tick.
func (ig *Ingestor) Start(ctx context.Context) error {
	var err error
	s, err = gocron.NewScheduler()
	if err != nil {
		flog.Fatalf("ingest: could not create scheduler: %v", err)
	}

	if err := ig.runBackfill(ctx); err != nil {
		return err
	}

	if _, err := s.NewJob(
		gocron.DurationJob(15*time.Minute),
		gocron.NewTask(func() { ig.runPollTick(ctx) }),
	); err != nil {
		return err
	}

	s.Start()
	return nil
}

// Shutdown stops the scheduler between streams, never mid-stream (spec §5).
func (ig *Ingestor) Shutdown() error {
	return s.Shutdown()
}

// runPollTick fans out across providers with a bounded concurrency limit
// (errgroup.SetLimit), while each provider's own streams are visited
// sequentially in one goroutine, with the provider's rate limiter
// spacing the requests.
func (ig *Ingestor) runPollTick(ctx context.Context) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, ig.FanoutLimit))

	byProvider := make(map[domain.Source][]StreamSource)
	for _, ss := range ig.Streams {
		byProvider[ss.Stream.Source] = append(byProvider[ss.Stream.Source], ss)
	}
	for _, streams := range byProvider {
		streams := streams
		g.Go(func() error {
			for _, ss := range streams {
				if ig.dueForPoll(ss) {
					ig.pollOne(gctx, ss)
				}
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (ig *Ingestor) dueForPoll(ss StreamSource) bool {
	prior, ok, err := ig.Warehouse.MonitoringStateFor(context.Background(), ss.Stream.Source, ss.Stream.Identifier, ss.Stream.Parameter)
	if err != nil {
		flog.Unexpected("ingest", "checking poll due-ness for", ss.Stream.Identifier, ":", err)
		return true
	}
	if !ok {
		return true
	}
	return time.Since(prior.LastPollAttempted) >= ss.Priority.PollInterval()
}

// pollOne performs fetch_recent -> validate -> insert_readings ->
// upsert_monitoring_state for one stream (spec §4.E periodic-poll steps).
// A per-stream failure never terminates the ingestor.
func (ig *Ingestor) pollOne(ctx context.Context, ss StreamSource) {
	now := time.Now().UTC()
	result, err := ss.Client.FetchRecent(ctx, ss.Stream, 4*time.Hour)

	outcome := domain.PollOutcome{Now: now}

	switch result.Status {
	case domain.FetchTransportError:
		flog.Unexpected("ingest", "transport error polling", ss.Stream.Identifier, ":", err)
		outcome.PollSucceeded = false
	case domain.FetchNoData:
		flog.Unknown("ingest", "no data polling", ss.Stream.Identifier)
		outcome.PollSucceeded = true
	case domain.FetchPartial:
		flog.Unexpected("ingest", "partial parse polling", ss.Stream.Identifier)
		outcome.PollSucceeded = true
	case domain.FetchSuccess:
		outcome.PollSucceeded = true
	}

	if len(result.Readings) > 0 {
		inserted, latest := ig.persist(ctx, ss.Stream.Source, result.Readings)
		flog.Expected("ingest", "inserted", inserted, "of", len(result.Readings), "readings for", ss.Stream.Identifier)
		outcome.ReadingsCount = len(result.Readings)
		outcome.LatestReadingInstant = latest.Instant
		outcome.LatestReadingValue = latest.Value
	}

	threshold := monitoring.DefaultThreshold(ss.Stream.Source, ss.Priority)
	prior, _, _ := ig.Warehouse.MonitoringStateFor(ctx, ss.Stream.Source, ss.Stream.Identifier, ss.Stream.Parameter)
	prior.Source = ss.Stream.Source
	prior.Identifier = ss.Stream.Identifier
	prior.Parameter = ss.Stream.Parameter

	next := monitoring.Transition(prior, outcome, threshold)
	if err := ig.Warehouse.UpsertMonitoringState(ctx, next); err != nil {
		flog.Unexpected("ingest", "upserting monitoring state for", ss.Stream.Identifier, ":", err)
	}
}

// persist inserts readings in ascending time order (already guaranteed
// by provider parse order) and returns the inserted count and the
// chronologically-latest reading.
func (ig *Ingestor) persist(ctx context.Context, source domain.Source, readings []domain.Reading) (int, domain.Reading) {
	var latest domain.Reading
	for _, r := range readings {
		if r.Instant.After(latest.Instant) {
			latest = r
		}
	}

	switch source {
	case domain.SourceGauge:
		rows := make([]domain.GaugeReading, 0, len(readings))
		for _, r := range readings {
			rows = append(rows, domain.GaugeReading{SiteCode: r.Identifier, Parameter: r.Parameter, Instant: r.Instant, Value: r.Value, Qualifier: r.Qualifier})
		}
		n, err := ig.Warehouse.InsertGaugeReadings(ctx, rows)
		if err != nil {
			flog.Unexpected("ingest", "inserting gauge readings:", err)
		}
		return n, latest
	case domain.SourceCWMS:
		rows := make([]domain.CWMSTimeseriesReading, 0, len(readings))
		for _, r := range readings {
			rows = append(rows, domain.CWMSTimeseriesReading{SeriesID: r.Identifier, Instant: r.Instant, Value: r.Value, QualityCode: r.QualityCode, QualityFlagged: r.QualityFlagged})
		}
		n, err := ig.Warehouse.InsertCWMSReadings(ctx, rows)
		if err != nil {
			flog.Unexpected("ingest", "inserting cwms readings:", err)
		}
		return n, latest
	case domain.SourceASOS:
		rows := make([]domain.ASOSObservation, 0, len(readings))
		for _, r := range readings {
			if r.Observation != nil {
				rows = append(rows, *r.Observation)
			}
		}
		n, err := ig.Warehouse.InsertASOSObservations(ctx, rows)
		if err != nil {
			flog.Unexpected("ingest", "inserting asos observations:", err)
		}
		return n, latest
	}
	return 0, latest
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
