// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package httpapi serves the read-only JSON surface of spec §4.I / §6:
// /health, /zones, /zone/{id}, /site/{site_code}, /status, /backwater,
// plus an ambient /metrics endpoint. Every handler reads from the
// warehouse adapter and in-memory config registries; none of it mutates
// state (mirroring the teacher's short, read-only REST handlers).
package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/usace-mvr/flomon/internal/config"
	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/warehouse"
	"github.com/usace-mvr/flomon/internal/zone"
	"github.com/usace-mvr/flomon/pkg/flog"
)

// Server owns the registries and warehouse handle every handler reads
// from. All fields are read-only after construction.
type Server struct {
	Warehouse      *warehouse.Warehouse
	Stations       *config.StationRegistry
	Zones          *config.ZoneRegistry
	ControlPairs   map[string]domain.HydraulicControlPair
	MississippiRef string
	IllinoisRef    string
}

// Router builds the mux.Router with every route mounted and the
// teacher's standard middleware stack (compression, panic recovery,
// permissive CORS for a read-only API).
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/zones", s.handleZones).Methods(http.MethodGet)
	r.HandleFunc("/zone/{id}", s.handleZone).Methods(http.MethodGet)
	r.HandleFunc("/site/{site_code}", s.handleSite).Methods(http.MethodGet)
	r.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/backwater", s.handleBackwater).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.Use(handlers.CompressHandler)
	r.Use(handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)))
	r.Use(handlers.CORS(
		handlers.AllowedHeaders([]string{"Content-Type"}),
		handlers.AllowedMethods([]string{http.MethodGet}),
		handlers.AllowedOrigins([]string{"*"})))

	return handlers.CustomLoggingHandler(io.Discard, r, func(_ io.Writer, params handlers.LogFormatterParams) {
		flog.Debug("httpapi:", params.Request.Method, params.URL.Path, params.StatusCode)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		flog.Unexpected("httpapi", "encoding response:", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.Warehouse.Live() {
		writeError(w, http.StatusServiceUnavailable, "warehouse pool unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Zones.All())
}

func (s *Server) handleZone(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown zone id")
		return
	}
	def, ok := s.Zones.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown zone id")
		return
	}

	snap, err := zone.BuildSnapshot(r.Context(), s.Warehouse, def, time.Now().UTC())
	if err != nil {
		flog.Unexpected("httpapi", "building zone snapshot:", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SiteResponse is the JSON shape returned by /site/{site_code} (spec §6).
type SiteResponse struct {
	Site            domain.Site             `json:"site"`
	LatestDischarge *domain.GaugeReading    `json:"latestDischarge,omitempty"`
	LatestStage     *domain.GaugeReading    `json:"latestStage,omitempty"`
	Last48h         []domain.GaugeReading   `json:"last48h"`
	Threshold       *domain.FloodThreshold  `json:"threshold,omitempty"`
	MonitoringState *domain.MonitoringState `json:"monitoringState,omitempty"`
	CWMSContext     *CWMSContext            `json:"cwmsContext,omitempty"`
}

// CWMSContext embeds the Mississippi/Illinois backwater risk summary in
// a site's response (spec §6).
type CWMSContext struct {
	MississippiStage float64                  `json:"mississippiStage"`
	IllinoisStage    float64                  `json:"illinoisStage"`
	Differential     float64                  `json:"differential"`
	BackwaterRisk    domain.BackwaterSeverity `json:"backwaterRisk"`
}

func (s *Server) handleSite(w http.ResponseWriter, r *http.Request) {
	siteCode := mux.Vars(r)["site_code"]
	station, ok := s.Stations.Get(siteCode)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown site")
		return
	}

	resp := SiteResponse{Site: station}

	if reading, ok, err := s.Warehouse.LatestGaugeReading(r.Context(), siteCode, "00060"); err == nil && ok {
		resp.LatestDischarge = &reading
	}
	if reading, ok, err := s.Warehouse.LatestGaugeReading(r.Context(), siteCode, "00065"); err == nil && ok {
		resp.LatestStage = &reading
	}

	now := time.Now().UTC()
	if rows, err := s.Warehouse.GaugeReadingsInWindow(r.Context(), siteCode, "00065", now.Add(-48*time.Hour), now); err == nil {
		resp.Last48h = rows
	}

	if threshold, ok, err := s.Warehouse.FloodThresholdFor(r.Context(), siteCode); err == nil && ok {
		resp.Threshold = &threshold
	}

	if state, ok, err := s.Warehouse.MonitoringStateFor(r.Context(), domain.SourceGauge, siteCode, "00065"); err == nil && ok {
		resp.MonitoringState = &state
	}

	if s.MississippiRef != "" && s.IllinoisRef != "" {
		if mVal, _, err := s.Warehouse.LatestCWMSValue(r.Context(), s.MississippiRef); err == nil {
			if iVal, _, err := s.Warehouse.LatestCWMSValue(r.Context(), s.IllinoisRef); err == nil {
				diff := mVal - iVal
				resp.CWMSContext = &CWMSContext{
					MississippiStage: mVal,
					IllinoisStage:    iVal,
					Differential:     diff,
					BackwaterRisk:    domain.ClassifyBackwaterSeverity(diff),
				}
			}
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// ZoneStatus is one zone's contribution to the basin-wide roll-up.
type ZoneStatus struct {
	ID     int                `json:"id"`
	Name   string             `json:"name"`
	Status domain.AlertStatus `json:"status"`
}

// handleStatus returns the basin-wide roll-up across all zones: each
// zone's active/critical/warning/unknown status per its
// primary_alert_condition (spec §4.G/§6), not the per-stream staleness
// view (that is a zone-internal detail surfaced per-zone via
// /zone/{id}, not repeated here).
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	defs := s.Zones.All()
	rollup := make([]ZoneStatus, 0, len(defs))

	for _, def := range defs {
		snap, err := zone.BuildSnapshot(r.Context(), s.Warehouse, def, now)
		if err != nil {
			flog.Unexpected("httpapi", "building zone snapshot for status roll-up, zone", def.ID, ":", err)
			continue
		}
		rollup = append(rollup, ZoneStatus{ID: def.ID, Name: def.Name, Status: snap.AlertStatus})
	}

	writeJSON(w, http.StatusOK, map[string]any{"zones": rollup})
}

func (s *Server) handleBackwater(w http.ResponseWriter, r *http.Request) {
	reports := make([]zone.BackwaterReport, 0, len(s.ControlPairs))
	for _, pair := range s.ControlPairs {
		report, err := zone.DetectBackwater(r.Context(), s.Warehouse, pair, s.MississippiRef, s.IllinoisRef)
		if err != nil {
			flog.Unexpected("httpapi", "detecting backwater:", err)
			continue
		}
		reports = append(reports, report)
	}
	writeJSON(w, http.StatusOK, map[string]any{"dams": reports})
}
