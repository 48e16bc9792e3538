// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package aggregation

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

// StoreFetcher reads buckets straight from the aggregation tables.
type StoreFetcher struct {
	facade database.AggregatedMetricFacadeInterface
	limit  int
}

func NewStoreFetcher(facade database.AggregatedMetricFacadeInterface, limit int) *StoreFetcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &StoreFetcher{facade: facade, limit: limit}
}

func (f *StoreFetcher) FetchAggregatedMetrics(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time) ([]model.AggregatedMetricRecord, error) {
	if err := ValidateWindow(recordType, start, end); err != nil {
		return nil, err
	}
	rows, err := f.facade.ListOverlapping(ctx, accountID, recordType, start, end, f.limit)
	if err != nil {
		return nil, errors.WrapError(err, "list aggregated metrics", errors.CodeDatabaseError)
	}
	out := make([]model.AggregatedMetricRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
}
