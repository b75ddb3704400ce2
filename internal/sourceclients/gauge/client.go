// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package gauge implements the stream-gauge source client: instantaneous
// (IV) and daily (DV) value endpoints, shaped like the USGS IV/DV
// services (spec §4.C.1).
package gauge

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/sourceclients"
)

const sentinel = -999999.0

// Client implements domain.SourceClient for the stream-gauge provider.
type Client struct {
	BaseURL   string
	transport *sourceclients.Transport
}

// New builds a gauge client with the spec §5 defaults: one request every
// 2 seconds to this provider, 15-second per-call timeout.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:   baseURL,
		transport: sourceclients.NewTransport("gauge", 2*time.Second, 15*time.Second),
	}
}

// envelope mirrors the IV/DV response shape shared by both sub-APIs.
type envelope struct {
	Series []series `json:"series"`
}

type series struct {
	SiteCode    string  `json:"site"`
	ParameterCd string  `json:"parameterCd"`
	NoDataValue float64 `json:"noDataValue"`
	Values      []point `json:"values"`
}

type point struct {
	DateTime string `json:"dateTime"` // ISO-8601 with explicit UTC offset
	Value    string `json:"value"`    // textual decimal
	Qualifier string `json:"qualifier"`
}

func parameterName(code string) string {
	switch code {
	case "00060":
		return string(domain.ParamDischarge)
	case "00065":
		return string(domain.ParamStage)
	default:
		return code
	}
}

// parseEnvelope implements the shared IV/DV parsing rules of spec §4.C.1:
// textual decimals, sentinel filtering within 0.1, empty/all-sentinel
// series dropped, qualifiers default to provisional.
func parseEnvelope(data []byte) ([]domain.Reading, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("gauge: malformed envelope: %w", err)
	}

	var out []domain.Reading
	for _, s := range env.Series {
		noData := s.NoDataValue
		if noData == 0 {
			noData = sentinel
		}
		for _, p := range s.Values {
			v, err := strconv.ParseFloat(p.Value, 64)
			if err != nil {
				continue // malformed single value: drop, keep siblings
			}
			if math.Abs(v-noData) <= 0.1 {
				continue // sentinel, within tolerance
			}
			instant, err := time.Parse(time.RFC3339, p.DateTime)
			if err != nil {
				continue // naked/unparseable time: drop
			}
			qualifier := domain.QualifierProvisional
			if p.Qualifier == "A" {
				qualifier = domain.QualifierApproved
			}
			out = append(out, domain.Reading{
				Kind:       domain.SourceGauge,
				Identifier: s.SiteCode,
				Instant:    instant,
				Value:      v,
				Parameter:  parameterName(s.ParameterCd),
				Qualifier:  qualifier,
			})
		}
	}
	return out, nil
}

func (c *Client) fetch(ctx context.Context, path string) (domain.FetchResult, error) {
	body, err := c.transport.Get(ctx, c.BaseURL+path)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}

	readings, err := parseEnvelope(body)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}
	if len(readings) == 0 {
		return domain.FetchResult{Status: domain.FetchNoData}, nil
	}
	return domain.FetchResult{Status: domain.FetchSuccess, Readings: readings}, nil
}

// FetchRecent queries the instantaneous-values endpoint for a rolling
// window ending now.
func (c *Client) FetchRecent(ctx context.Context, stream domain.Stream, window time.Duration) (domain.FetchResult, error) {
	hours := int(window.Hours())
	if hours < 1 {
		hours = 1
	}
	path := fmt.Sprintf("/iv?sites=%s&parameterCd=00060,00065&period=PT%dH&format=json&siteStatus=active", stream.Identifier, hours)
	return c.fetch(ctx, path)
}

// FetchHistorical queries the daily-values endpoint for an explicit
// [start, end] window.
func (c *Client) FetchHistorical(ctx context.Context, stream domain.Stream, start, end time.Time) (domain.FetchResult, error) {
	path := fmt.Sprintf("/dv?sites=%s&parameterCd=00060,00065&startDT=%s&endDT=%s&format=json", stream.Identifier, start.Format("2006-01-02"), end.Format("2006-01-02"))
	return c.fetch(ctx, path)
}

var _ domain.SourceClient = (*Client)(nil)
