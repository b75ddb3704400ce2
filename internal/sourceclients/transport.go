// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sourceclients holds the shared rate-limited, circuit-broken
// HTTP transport used by the gauge, CWMS, and ASOS provider clients, plus
// the sub-package implementations themselves (gauge, cwms, asos).
package sourceclients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/usace-mvr/flomon/pkg/flog"
)

// Transport wraps one provider's outbound HTTP calls with a per-provider
// rate limiter (spec §5: 2-second floor between calls to the same
// provider) and a circuit breaker. The breaker is additive resilience —
// a tripped breaker still surfaces as a transport-error FetchResult, the
// same classification a timeout would produce; it never changes the
// monitoring-state semantics of spec §4.F.
type Transport struct {
	name    string
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// NewTransport builds a Transport for one named provider. interval is the
// minimum spacing between requests (spec §5 default: 2s); timeout bounds
// each individual call (spec §5 default: 15s).
func NewTransport(name string, interval, timeout time.Duration) *Transport {
	return &Transport{
		name:    name,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Interval:    time.Minute,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}
}

// Get performs a rate-limited, circuit-broken GET and returns the
// response body. Any failure — rate-limiter wait cancellation, breaker
// open, non-2xx status, network error — is returned as a plain error;
// callers classify it as FetchTransportError.
func (t *Transport) Get(ctx context.Context, url string) ([]byte, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("sourceclients: %s rate limiter: %w", t.name, err)
	}

	body, err := t.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		resp, err := t.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("non-2xx status %d from %s", resp.StatusCode, url)
		}
		return data, nil
	})
	if err != nil {
		flog.Unexpected(t.name, "transport error fetching", url, ":", err)
		return nil, err
	}
	return body.([]byte), nil
}
