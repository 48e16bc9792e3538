// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package aggregation

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	now   = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	start = now.Add(-24 * time.Hour)
)

type fakeGraphQL struct {
	body  string
	err   error
	calls int
	vars  map[string]any
}

func (f *fakeGraphQL) Query(_ context.Context, _ string, variables map[string]any, out any) error {
	f.calls++
	f.vars = variables
	if f.err != nil {
		return f.err
	}
	return json.Unmarshal([]byte(f.body), out)
}

func (f *fakeGraphQL) Subscribe(context.Context, string, map[string]any) (graphql.Subscription, error) {
	return nil, stderrors.New("not supported")
}

func TestGraphQLFetcher(t *testing.T) {
	client := &fakeGraphQL{body: `{"listAggregatedMetricsByAccountIdAndTimeRange":{"items":[
		{"accountId":"acct","recordType":"items","timeRangeStart":"2026-03-01T11:00:00Z","timeRangeEnd":"2026-03-01T12:00:00Z","numberOfMinutes":60,"count":7,"errorCount":1,"complete":true}
	]}}`}
	f := NewGraphQLFetcher(client, 0)

	got, err := f.FetchAggregatedMetrics(context.Background(), "acct", model.RecordTypeItems, start, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Count)
	assert.Equal(t, 1, got[0].ErrorCount)
	assert.True(t, got[0].Complete)

	assert.Equal(t, "acct", client.vars["accountId"])
	assert.Equal(t, "items", client.vars["recordType"])
	assert.Equal(t, DefaultLimit, client.vars["limit"])
	assert.Equal(t, "2026-03-01T12:30:00Z", client.vars["endTime"])
}

func TestGraphQLFetcher_NullList(t *testing.T) {
	f := NewGraphQLFetcher(&fakeGraphQL{body: `{"listAggregatedMetricsByAccountIdAndTimeRange":null}`}, 10)
	got, err := f.FetchAggregatedMetrics(context.Background(), "acct", model.RecordTypeTasks, start, now)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGraphQLFetcher_Errors(t *testing.T) {
	client := &fakeGraphQL{err: &graphql.Error{StatusCode: 500, Body: "down"}}
	f := NewGraphQLFetcher(client, 10)

	_, err := f.FetchAggregatedMetrics(context.Background(), "acct", model.RecordTypeItems, start, now)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeRemoteServiceError))

	_, err = f.FetchAggregatedMetrics(context.Background(), "acct", model.RecordTypeItems, now, start)
	assert.True(t, errors.IsCode(err, errors.RequestParameterInvalid))
	assert.Equal(t, 1, client.calls)
}

func TestQuerier(t *testing.T) {
	records := []model.AggregatedMetricRecord{{Count: 3}}
	var calls int
	ok := FetcherFunc(func(context.Context, string, model.RecordType, time.Time, time.Time) ([]model.AggregatedMetricRecord, error) {
		calls++
		return records, nil
	})
	failing := FetcherFunc(func(context.Context, string, model.RecordType, time.Time, time.Time) ([]model.AggregatedMetricRecord, error) {
		calls++
		return nil, stderrors.New("network down")
	})
	empty := FetcherFunc(func(context.Context, string, model.RecordType, time.Time, time.Time) ([]model.AggregatedMetricRecord, error) {
		calls++
		return nil, nil
	})

	tests := []struct {
		name       string
		fetcher    Fetcher
		recordType model.RecordType
		start, end time.Time
		wantLen    int
		wantCalls  int
	}{
		{"success", ok, model.RecordTypeItems, start, now, 1, 1},
		{"transport error", failing, model.RecordTypeItems, start, now, 0, 1},
		{"nil result", empty, model.RecordTypeItems, start, now, 0, 1},
		{"start equals end", ok, model.RecordTypeItems, now, now, 0, 0},
		{"start after end", ok, model.RecordTypeItems, now, start, 0, 0},
		{"invalid type", ok, model.RecordType("bogus"), start, now, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls = 0
			got := NewQuerier(tt.fetcher).QueryAggregatedMetrics(context.Background(), "acct", tt.recordType, tt.start, tt.end)
			require.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestStoreFetcher(t *testing.T) {
	helper := database.NewTestHelper(t)
	defer helper.Cleanup()
	facade := database.NewAggregatedMetricFacade(helper.DB)
	ctx := helper.CreateTestContext()

	hour := now.Truncate(time.Hour)
	require.NoError(t, facade.BatchSave(ctx, []*model.AggregatedMetricRecord{
		{AccountID: "acct", RecordType: model.RecordTypeItems, TimeRangeStart: hour.Add(-time.Hour), TimeRangeEnd: hour, Count: 4, Complete: true},
		{AccountID: "acct", RecordType: model.RecordTypeItems, TimeRangeStart: hour.Add(-48 * time.Hour), TimeRangeEnd: hour.Add(-47 * time.Hour), Count: 9, Complete: true},
	}))

	f := NewStoreFetcher(facade, 0)
	got, err := f.FetchAggregatedMetrics(ctx, "acct", model.RecordTypeItems, start, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].Count)

	_, err = f.FetchAggregatedMetrics(ctx, "acct", model.RecordType("nope"), start, now)
	assert.True(t, errors.IsCode(err, errors.RequestParameterInvalid))
}
