// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package asos implements the weather-station source client: current
// conditions and 1-minute archive endpoints, shaped like an ASOS service
// (spec §4.C.3).
package asos

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/sourceclients"
)

// Client implements domain.SourceClient for the weather-station provider.
type Client struct {
	BaseURL   string
	Network   string
	transport *sourceclients.Transport
}

func New(baseURL, network string) *Client {
	return &Client{
		BaseURL:   baseURL,
		Network:   network,
		transport: sourceclients.NewTransport("asos", 2*time.Second, 15*time.Second),
	}
}

type currentEnvelope struct {
	Station      string   `json:"station"`
	Valid        string   `json:"valid"`
	TemperatureF *float64 `json:"tmpf"`
	DewpointF    *float64 `json:"dwpf"`
	WindDirDeg   *float64 `json:"drct"`
	WindSpeedKt  *float64 `json:"sknt"`
	WindGustKt   *float64 `json:"gust"`
	Precip1hIn   *float64 `json:"p01i"`
	PressureMb   *float64 `json:"mslp"`
	VisibilitySm *float64 `json:"vsby"`
	SkyCode      string   `json:"skyc1"`
}

// FetchRecent queries the current-conditions endpoint, which returns a
// single observation regardless of the requested window.
func (c *Client) FetchRecent(ctx context.Context, stream domain.Stream, window time.Duration) (domain.FetchResult, error) {
	path := fmt.Sprintf("/json/current.py?station=%s&network=%s", stream.Identifier, c.Network)
	body, err := c.transport.Get(ctx, c.BaseURL+path)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}

	var env currentEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, fmt.Errorf("asos: malformed current-conditions envelope: %w", err)
	}

	instant, err := time.Parse(time.RFC3339, env.Valid)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchNoData}, nil
	}

	obs := domain.ASOSObservation{
		StationID:    stream.Identifier,
		Instant:      instant,
		TemperatureF: env.TemperatureF,
		DewpointF:    env.DewpointF,
		WindDirDeg:   env.WindDirDeg,
		WindSpeedKt:  env.WindSpeedKt,
		WindGustKt:   env.WindGustKt,
		Precip1hIn:   applyPrecipRule(env.Precip1hIn, recordOtherwiseComplete(env)),
		PressureMb:   env.PressureMb,
		VisibilitySm: env.VisibilitySm,
		SkyCode:      env.SkyCode,
		Provenance:   "current",
	}
	if obs.Precip1hIn == nil && env.Precip1hIn == nil {
		// No precipitation data at all and nothing else in "the hour" to
		// corroborate completeness: spec §9 says discard such a record,
		// but a current-conditions call carries only one sample, so
		// completeness is judged on the other fields instead.
		if !recordOtherwiseComplete(env) {
			return domain.FetchResult{Status: domain.FetchNoData}, nil
		}
	}

	return toReading(obs)
}

// rawMinuteRecord is one parsed line of the tab-delimited 1-minute
// archive.
type rawMinuteRecord struct {
	instant      time.Time
	temperatureF *float64
	dewpointF    *float64
	windDirDeg   *float64
	windSpeedKt  *float64
	windGustKt   *float64
	precip1hIn   *float64
	pressureMb   *float64
	visibilitySm *float64
	skyCode      string
}

func parseOptionalFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "M" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// parseArchive parses the tab-delimited 1-minute archive format. Columns:
// station, valid(UTC RFC3339), tmpf, dwpf, drct, sknt, gust, p01i, mslp, vsby, skyc1.
func parseArchive(r *bytes.Reader) ([]rawMinuteRecord, error) {
	scanner := bufio.NewScanner(r)
	var out []rawMinuteRecord
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 11 {
			continue
		}
		instant, err := time.Parse(time.RFC3339, fields[1])
		if err != nil {
			continue
		}
		out = append(out, rawMinuteRecord{
			instant:      instant,
			temperatureF: parseOptionalFloat(fields[2]),
			dewpointF:    parseOptionalFloat(fields[3]),
			windDirDeg:   parseOptionalFloat(fields[4]),
			windSpeedKt:  parseOptionalFloat(fields[5]),
			windGustKt:   parseOptionalFloat(fields[6]),
			precip1hIn:   parseOptionalFloat(fields[7]),
			pressureMb:   parseOptionalFloat(fields[8]),
			visibilitySm: parseOptionalFloat(fields[9]),
			skyCode:      strings.TrimSpace(fields[10]),
		})
	}
	return out, scanner.Err()
}

// applyPrecipRule resolves the fixed Open Question of spec §9: a missing
// precipitation field is assumed zero iff the surrounding hour has any
// non-missing precipitation field; hourHasData carries that fact in for
// the caller (computed per-hour in parseArchiveToReadings).
func applyPrecipRule(value *float64, hourHasData bool) *float64 {
	if value != nil {
		return value
	}
	if hourHasData {
		zero := 0.0
		return &zero
	}
	return nil
}

func recordOtherwiseComplete(env currentEnvelope) bool {
	return env.TemperatureF != nil || env.DewpointF != nil || env.PressureMb != nil
}

func hourKey(t time.Time) time.Time {
	return t.Truncate(time.Hour)
}

// parseArchiveToReadings groups minute records by hour to resolve the
// precipitation Open Question, then drops any record whose precip field
// is missing and whose hour has no precipitation data at all.
func parseArchiveToReadings(data []byte, stationID string) ([]domain.Reading, error) {
	raw, err := parseArchive(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("asos: malformed 1-minute archive: %w", err)
	}

	hourHasPrecip := make(map[time.Time]bool)
	for _, rec := range raw {
		if rec.precip1hIn != nil {
			hourHasPrecip[hourKey(rec.instant)] = true
		}
	}

	var out []domain.Reading
	for _, rec := range raw {
		precip := applyPrecipRule(rec.precip1hIn, hourHasPrecip[hourKey(rec.instant)])
		if rec.precip1hIn == nil && precip == nil {
			continue // discard: missing precip, hour otherwise incomplete
		}
		obs := domain.ASOSObservation{
			StationID:    stationID,
			Instant:      rec.instant,
			TemperatureF: rec.temperatureF,
			DewpointF:    rec.dewpointF,
			WindDirDeg:   rec.windDirDeg,
			WindSpeedKt:  rec.windSpeedKt,
			WindGustKt:   rec.windGustKt,
			Precip1hIn:   precip,
			PressureMb:   rec.pressureMb,
			VisibilitySm: rec.visibilitySm,
			SkyCode:      rec.skyCode,
			Provenance:   "1min-archive",
		}
		out = append(out, domain.Reading{
			Kind:       domain.SourceASOS,
			Identifier: stationID,
			Instant:    rec.instant,
			Observation: &obs,
		})
	}
	return out, nil
}

func toReading(obs domain.ASOSObservation) (domain.FetchResult, error) {
	r := domain.Reading{
		Kind:        domain.SourceASOS,
		Identifier:  obs.StationID,
		Instant:     obs.Instant,
		Observation: &obs,
	}
	return domain.FetchResult{Status: domain.FetchSuccess, Readings: []domain.Reading{r}}, nil
}

// FetchHistorical queries the 1-minute archive endpoint for an explicit window.
func (c *Client) FetchHistorical(ctx context.Context, stream domain.Stream, start, end time.Time) (domain.FetchResult, error) {
	path := fmt.Sprintf("/cgi-bin/request/asos1min.py?station=%s&network=%s&begin=%s&end=%s",
		stream.Identifier, c.Network, start.Format("200601021504"), end.Format("200601021504"))
	body, err := c.transport.Get(ctx, c.BaseURL+path)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}

	readings, err := parseArchiveToReadings(body, stream.Identifier)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}
	if len(readings) == 0 {
		return domain.FetchResult{Status: domain.FetchNoData}, nil
	}
	return domain.FetchResult{Status: domain.FetchSuccess, Readings: readings}, nil
}

var _ domain.SourceClient = (*Client)(nil)
