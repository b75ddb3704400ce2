// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command flomon is the daemon: one long-lived process owning the
// ingest scheduler and the read endpoint (spec §5 / §6).
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"

	"github.com/usace-mvr/flomon/internal/catalog"
	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/httpapi"
	"github.com/usace-mvr/flomon/internal/ingest"
	"github.com/usace-mvr/flomon/internal/runtimeEnv"
	"github.com/usace-mvr/flomon/internal/sourceclients/asos"
	"github.com/usace-mvr/flomon/internal/sourceclients/cwms"
	"github.com/usace-mvr/flomon/internal/sourceclients/gauge"
	"github.com/usace-mvr/flomon/internal/warehouse"
	"github.com/usace-mvr/flomon/pkg/flog"
)

func main() {
	var (
		settingsPath     = flag.String("settings", "./settings.json", "path to settings.json")
		stationsPath     = flag.String("stations", "./stations.toml", "path to stations.toml")
		locationsPath    = flag.String("locations", "./locations.toml", "path to locations.toml")
		asosPath         = flag.String("asos-stations", "./asos_stations.toml", "path to asos_stations.toml")
		zonesPath        = flag.String("zones", "./zones.toml", "path to zones.toml")
		controlPairsPath = flag.String("control-pairs", "./control_pairs.toml", "path to control_pairs.toml")
		gaugeBaseURL     = flag.String("gauge-base-url", "", "base URL of the streamgauge provider")
		cwmsBaseURL      = flag.String("cwms-base-url", "", "base URL of the CWMS lock/dam provider")
		cwmsOffice       = flag.String("cwms-office", "", "CWMS office code")
		asosBaseURL      = flag.String("asos-base-url", "", "base URL of the ASOS weather provider")
		asosNetwork      = flag.String("asos-network", "", "ASOS network id")
		flagGops         = flag.Bool("gops", false, "listen via github.com/google/gops/agent (for debugging)")
		envFile          = flag.String("env", ".env", "path to a .env file to load before startup")
		endpoint         = flag.String("endpoint", "", "port for the read endpoint (overrides httpAddr from settings.json)")
	)
	flag.Parse()

	if logFile, err := os.OpenFile("flomon_service.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644); err != nil {
		flog.Warn("main: opening flomon_service.log:", err)
	} else {
		flog.ToFile(logFile)
	}

	if err := runtimeEnv.LoadEnv(*envFile); err != nil && !os.IsNotExist(err) {
		flog.Warn("main: loading .env file:", err)
	}

	if *flagGops {
		if err := agent.Listen(agent.Options{}); err != nil {
			flog.Fatalf("main: gops/agent.Listen failed: %s", err.Error())
		}
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		flog.Fatal("main: DATABASE_URL is not set")
	}
	if err := warehouse.Connect(databaseURL); err != nil {
		flog.Fatal("main:", err)
	}
	wh := warehouse.Get()

	settings, err := config.LoadSettings(*settingsPath)
	if err != nil {
		flog.Fatal("main:", err)
	}
	stations, err := config.LoadStations(*stationsPath)
	if err != nil {
		flog.Fatal("main:", err)
	}
	locations, err := config.LoadLocations(*locationsPath)
	if err != nil {
		flog.Fatal("main:", err)
	}
	asosStations, err := config.LoadASOSStations(*asosPath)
	if err != nil {
		flog.Fatal("main:", err)
	}
	zones, err := config.LoadZones(*zonesPath)
	if err != nil {
		flog.Fatal("main:", err)
	}
	controlPairs, err := config.LoadControlPairs(*controlPairsPath)
	if err != nil {
		flog.Fatal("main:", err)
	}

	streams := buildStreams(stations, locations, asosStations, *gaugeBaseURL, *cwmsBaseURL, *cwmsOffice, *asosBaseURL, *asosNetwork)

	statePath := ingest.DefaultStatePath(".")
	state, err := ingest.LoadState(statePath)
	if err != nil {
		flog.Fatal("main:", err)
	}

	ingestor := &ingest.Ingestor{
		Warehouse:   wh,
		Streams:     streams,
		State:       state,
		StatePath:   statePath,
		FanoutLimit: settings.FanoutLimit,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := ingestor.Start(ctx); err != nil {
		flog.Fatal("main: starting ingestor:", err)
	}

	server := &httpapi.Server{
		Warehouse:      wh,
		Stations:       stations,
		Zones:          zones,
		ControlPairs:   controlPairs.Pairs,
		MississippiRef: controlPairs.MississippiRef,
		IllinoisRef:    controlPairs.IllinoisRef,
	}
	addr := settings.HTTPAddr
	if *endpoint != "" {
		addr = ":" + *endpoint
	}
	httpSrv := &http.Server{Addr: addr, Handler: server.Router()}

	go func() {
		flog.Info("main: read endpoint listening on", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			flog.Error("main: http server:", err)
		}
	}()

	runtimeEnv.SystemdNotify(true, "flomon daemon ready")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs

	flog.Info("main: shutting down")
	runtimeEnv.SystemdNotify(false, "stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = httpSrv.Shutdown(shutdownCtx)
	_ = ingestor.Shutdown()
}

// buildStreams wires every declared station/location/ASOS-station into
// a StreamSource bound to its provider client and derived poll priority
// (spec §4.B priority table).
func buildStreams(
	stations *config.StationRegistry,
	locations *config.LocationRegistry,
	asosStations *config.ASOSRegistry,
	gaugeBaseURL, cwmsBaseURL, cwmsOffice, asosBaseURL, asosNetwork string,
) []ingest.StreamSource {
	var streams []ingest.StreamSource

	gaugeClient := gauge.New(gaugeBaseURL)
	for _, site := range stations.All() {
		for _, param := range site.Expected {
			code := "00065"
			if param == domain.ParamDischarge {
				code = "00060"
			}
			// stations.toml carries no relevance token (unlike CWMS
			// locations and ASOS stations); every declared gauge site
			// is treated as PriorityCritical, matching the spec's
			// emphasis on streamgauges as the primary signal.
			streams = append(streams, ingest.StreamSource{
				Stream:   domain.Stream{Source: domain.SourceGauge, Identifier: site.Code, Parameter: code},
				Client:   gaugeClient,
				Priority: domain.PriorityCritical,
			})
		}
	}

	cwmsClient := cwms.New(cwmsBaseURL, cwmsOffice)
	for _, loc := range locations.All() {
		bindings, err := catalog.Discover(context.Background(), cwmsClient, loc.Name, loc.DataTypes)
		if err != nil {
			flog.Unexpected("main", "discovering cwms series for", loc.Name, ":", err)
			continue
		}
		for _, seriesID := range bindings {
			streams = append(streams, ingest.StreamSource{
				Stream:   domain.Stream{Source: domain.SourceCWMS, Identifier: seriesID, Parameter: "value"},
				Client:   cwmsClient,
				Priority: loc.Priority,
			})
		}
	}

	asosClient := asos.New(asosBaseURL, asosNetwork)
	for _, station := range asosStations.All() {
		streams = append(streams, ingest.StreamSource{
			Stream:   domain.Stream{Source: domain.SourceASOS, Identifier: station.ID, Parameter: "observation"},
			Client:   asosClient,
			Priority: station.Priority,
		})
	}

	return streams
}
