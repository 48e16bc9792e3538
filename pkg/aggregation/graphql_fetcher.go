// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package aggregation

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

const listAggregatedMetricsQuery = `query ListAggregatedMetrics($accountId: String!, $recordType: String!, $startTime: String!, $endTime: String!, $limit: Int) {
  listAggregatedMetricsByAccountIdAndTimeRange(accountId: $accountId, recordType: $recordType, startTime: $startTime, endTime: $endTime, limit: $limit) {
    items {
      accountId
      recordType
      timeRangeStart
      timeRangeEnd
      numberOfMinutes
      count
      errorCount
      complete
    }
  }
}`

// GraphQLFetcher reads buckets from the backend API in one windowed query.
type GraphQLFetcher struct {
	client graphql.Client
	limit  int
}

func NewGraphQLFetcher(client graphql.Client, limit int) *GraphQLFetcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &GraphQLFetcher{client: client, limit: limit}
}

func (f *GraphQLFetcher) FetchAggregatedMetrics(ctx context.Context, accountID string, recordType model.RecordType, start, end time.Time) ([]model.AggregatedMetricRecord, error) {
	if err := ValidateWindow(recordType, start, end); err != nil {
		return nil, err
	}
	var out struct {
		List *graphql.Page[model.AggregatedMetricRecord] `json:"listAggregatedMetricsByAccountIdAndTimeRange"`
	}
	vars := map[string]any{
		"accountId":  accountID,
		"recordType": string(recordType),
		"startTime":  start.UTC().Format(time.RFC3339Nano),
		"endTime":    end.UTC().Format(time.RFC3339Nano),
		"limit":      f.limit,
	}
	if err := f.client.Query(ctx, listAggregatedMetricsQuery, vars, &out); err != nil {
		return nil, errors.WrapError(err, "list aggregated metrics", errors.CodeRemoteServiceError)
	}
	if out.List == nil {
		return []model.AggregatedMetricRecord{}, nil
	}
	return out.List.Items, nil
}
