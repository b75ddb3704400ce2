// Copyright (C) 2026 flomon Authors.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.
package domain

import (
	"context"
	"time"
)

// FetchStatus is the outcome of one source-client call. Exactly one of
// these four applies; the client never retries internally (spec §4.C).
type FetchStatus string

const (
	FetchSuccess        FetchStatus = "success"
	FetchPartial        FetchStatus = "partial"
	FetchNoData         FetchStatus = "no-data"
	FetchTransportError FetchStatus = "transport-error"
)

// FetchResult is what every SourceClient call returns: a status plus
// whatever readings were successfully parsed. Readings may be non-empty
// even on FetchPartial (iterate-and-collect-successes, spec §9).
type FetchResult struct {
	Status   FetchStatus
	Readings []Reading
	Err      error // set on FetchTransportError; nil otherwise
}

// SourceClient is the capability set all three provider clients conform
// to (spec §9: "prefer a tagged variant... over shared inheritance").
// Each call has its own 15-second timeout (spec §5); callers pass a
// context carrying that deadline.
type SourceClient interface {
	FetchRecent(ctx context.Context, stream Stream, window time.Duration) (FetchResult, error)
	FetchHistorical(ctx context.Context, stream Stream, start, end time.Time) (FetchResult, error)
}
