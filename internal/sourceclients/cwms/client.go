// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cwms implements the lock/dam timeseries source client: catalog
// discovery and values endpoints, shaped like a CWMS timeseries service
// (spec §4.C.2).
package cwms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/usace-mvr/flomon/internal/domain"
	"github.com/usace-mvr/flomon/internal/sourceclients"
)

// Client implements domain.SourceClient for the lock/dam provider, plus
// the catalog lookup used by internal/catalog at startup.
type Client struct {
	BaseURL   string
	Office    string
	transport *sourceclients.Transport
}

func New(baseURL, office string) *Client {
	return &Client{
		BaseURL:   baseURL,
		Office:    office,
		transport: sourceclients.NewTransport("cwms", 2*time.Second, 15*time.Second),
	}
}

// CatalogEntry is one series entry returned by the catalog endpoint.
type CatalogEntry struct {
	Name   string `json:"name"`
	Office string `json:"office"`
}

type catalogEnvelope struct {
	Entries []CatalogEntry `json:"entries"`
}

// Catalog queries the catalog endpoint for series matching a
// name-prefix pattern within this office (spec §4.D step 1).
func (c *Client) Catalog(ctx context.Context, likePattern string) ([]CatalogEntry, error) {
	path := fmt.Sprintf("/catalog/TIMESERIES?office=%s&like=%s&format=json", c.Office, url.QueryEscape(likePattern))
	body, err := c.transport.Get(ctx, c.BaseURL+path)
	if err != nil {
		return nil, err
	}
	var env catalogEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("cwms: malformed catalog envelope: %w", err)
	}
	return env.Entries, nil
}

type valuePoint struct {
	Instant     string  `json:"instant"`
	Value       float64 `json:"value"`
	QualityCode int     `json:"quality_code"`
}

type valuesEnvelope struct {
	Values []valuePoint `json:"values"`
}

// parseValues implements spec §4.C.2: only quality codes 1 (good) and 2
// (questionable) are kept, with 2 retained but tagged QualityFlagged —
// both codes are preserved per the spec's fixed Open Question, not
// filtered down to code 1 alone.
func parseValues(data []byte, seriesID string) ([]domain.Reading, error) {
	var env valuesEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("cwms: malformed values envelope: %w", err)
	}

	var out []domain.Reading
	for _, v := range env.Values {
		if v.QualityCode != 1 && v.QualityCode != 2 {
			continue
		}
		instant, err := time.Parse(time.RFC3339, v.Instant)
		if err != nil {
			continue
		}
		out = append(out, domain.Reading{
			Kind:           domain.SourceCWMS,
			Identifier:     seriesID,
			Instant:        instant,
			Value:          v.Value,
			QualityCode:    v.QualityCode,
			QualityFlagged: v.QualityCode == 2,
		})
	}
	return out, nil
}

func (c *Client) values(ctx context.Context, seriesID string, begin, end time.Time) (domain.FetchResult, error) {
	path := fmt.Sprintf("/timeseries?name=%s&office=%s&begin=%s&end=%s",
		url.QueryEscape(seriesID), c.Office, begin.Format(time.RFC3339), end.Format(time.RFC3339))
	body, err := c.transport.Get(ctx, c.BaseURL+path)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}

	readings, err := parseValues(body, seriesID)
	if err != nil {
		return domain.FetchResult{Status: domain.FetchTransportError, Err: err}, err
	}
	if len(readings) == 0 {
		return domain.FetchResult{Status: domain.FetchNoData}, nil
	}
	return domain.FetchResult{Status: domain.FetchSuccess, Readings: readings}, nil
}

// FetchRecent fetches the values window ending now.
func (c *Client) FetchRecent(ctx context.Context, stream domain.Stream, window time.Duration) (domain.FetchResult, error) {
	end := time.Now().UTC()
	return c.values(ctx, stream.Identifier, end.Add(-window), end)
}

// FetchHistorical fetches an explicit [start, end] window.
func (c *Client) FetchHistorical(ctx context.Context, stream domain.Stream, start, end time.Time) (domain.FetchResult, error) {
	return c.values(ctx, stream.Identifier, start, end)
}

var _ domain.SourceClient = (*Client)(nil)
