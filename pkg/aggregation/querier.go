// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package aggregation

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

// Querier is the lenient face of a Fetcher: invalid input and transport
// failures are logged and turned into an empty result.
type Querier struct {
	fetcher Fetcher
}

func NewQuerier(fetcher Fetcher) *Querier {
	return &Querier{fetcher: fetcher}
}

func (q *Querier) QueryAggregatedMetrics(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time) []model.AggregatedMetricRecord {
	if err := ValidateWindow(recordType, start, end); err != nil {
		log.Warnf("aggregation query rejected: %v", err)
		return []model.AggregatedMetricRecord{}
	}
	records, err := q.fetcher.FetchAggregatedMetrics(ctx, accountID, recordType, start, end)
	if err != nil {
		log.GlobalLogger().WithContext(ctx).Warnf("aggregation query for %s failed: %v", recordType, err)
		return []model.AggregatedMetricRecord{}
	}
	if records == nil {
		return []model.AggregatedMetricRecord{}
	}
	return records
}

// ValidateWindow checks the input constraints shared by every fetcher.
func ValidateWindow(recordType model.RecordType, start, end time.Time) error {
	if !recordType.Valid() {
		return errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessagef("unknown record type %q", recordType)
	}
	if !start.Before(end) {
		return errors.NewError().WithCode(errors.RequestParameterInvalid).
			WithMessagef("window start %s is not before end %s", start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return nil
}
