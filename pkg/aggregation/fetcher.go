// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package aggregation

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

const DefaultLimit = 1000

// Fetcher reads aggregated buckets for one record type whose window overlaps [start, end).
type Fetcher interface {
	FetchAggregatedMetrics(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time) ([]model.AggregatedMetricRecord, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time) ([]model.AggregatedMetricRecord, error)

func (f FetcherFunc) FetchAggregatedMetrics(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time) ([]model.AggregatedMetricRecord, error) {
	return f(ctx, accountID, recordType, start, end)
}
