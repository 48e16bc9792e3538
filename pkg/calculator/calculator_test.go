// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package calculator

import (
	"testing"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func rec(startMin, endMin, count, errCount int, complete bool) model.AggregatedMetricRecord {
	return model.AggregatedMetricRecord{
		TimeRangeStart: epoch.Add(time.Duration(startMin) * time.Minute),
		TimeRangeEnd:   epoch.Add(time.Duration(endMin) * time.Minute),
		Count:          count,
		ErrorCount:     errCount,
		Complete:       complete,
	}
}

func TestSumOverlapping(t *testing.T) {
	records := []model.AggregatedMetricRecord{
		rec(0, 10, 5, 1, true),
		rec(10, 20, 3, 2, false),
	}
	got := SumOverlapping(records, epoch, epoch.Add(20*time.Minute))
	assert.Equal(t, Totals{Count: 5, ErrorCount: 1}, got)
}

func TestSumOverlapping_Boundaries(t *testing.T) {
	records := []model.AggregatedMetricRecord{
		rec(0, 60, 1, 0, true),
		rec(60, 120, 10, 0, true),
		rec(120, 180, 100, 0, true),
	}
	tests := []struct {
		name       string
		start, end int
		want       int
	}{
		{"exact middle bucket", 60, 120, 10},
		{"touching edge excluded", 30, 60, 1},
		{"partial overlap counts whole record", 90, 150, 110},
		{"everything", 0, 180, 111},
		{"nothing", 180, 240, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SumOverlapping(records, epoch.Add(time.Duration(tt.start)*time.Minute), epoch.Add(time.Duration(tt.end)*time.Minute))
			assert.Equal(t, tt.want, got.Count)
		})
	}
}

func TestBucketize_AlwaysTwentyFour(t *testing.T) {
	now := epoch.Add(30*time.Hour + 17*time.Minute)
	buckets := Bucketize(now, nil, nil)
	require.Len(t, buckets, ChartBuckets)
	for i, b := range buckets {
		assert.Zero(t, b.Primary)
		assert.Zero(t, b.Secondary)
		assert.Equal(t, time.Hour, b.End.Sub(b.Start))
		if i > 0 {
			assert.Equal(t, buckets[i-1].End, b.Start, "buckets must be contiguous and oldest first")
		}
	}
	last := buckets[ChartBuckets-1]
	assert.Equal(t, now.Truncate(time.Hour), last.Start)
	assert.True(t, !now.Before(last.Start) && now.Before(last.End))
	assert.Equal(t, "06:00", last.Time)
}

func TestBucketize_SeriesIndependent(t *testing.T) {
	now := epoch.Add(24*time.Hour + 30*time.Minute)
	currentHour := now.Truncate(time.Hour)
	primary := []model.AggregatedMetricRecord{{
		TimeRangeStart: currentHour.Add(-time.Hour), TimeRangeEnd: currentHour, Count: 7, Complete: true,
	}}
	secondary := []model.AggregatedMetricRecord{
		{TimeRangeStart: currentHour, TimeRangeEnd: currentHour.Add(time.Hour), Count: 4, Complete: true},
		{TimeRangeStart: currentHour, TimeRangeEnd: currentHour.Add(time.Hour), Count: 99, Complete: false},
	}
	buckets := Bucketize(now, primary, secondary)
	assert.Equal(t, 7, buckets[22].Primary)
	assert.Equal(t, 0, buckets[22].Secondary)
	assert.Equal(t, 0, buckets[23].Primary)
	assert.Equal(t, 4, buckets[23].Secondary)
}

func TestPeak(t *testing.T) {
	assert.Equal(t, 50, Peak([]int{1, 2, 3}, 50))
	assert.Equal(t, 300, Peak(make([]int, 24), 300))
	assert.Equal(t, 75, Peak([]int{10, 75, 20}, 50))
	assert.Equal(t, 10, Peak(nil, 10))
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0, Average(0))
	assert.Equal(t, 1, Average(12))
	assert.Equal(t, 0, Average(11))
	assert.Equal(t, 2, Average(48))
	assert.Equal(t, 4, Average(100))
}

func TestSummarize(t *testing.T) {
	now := epoch.Add(48*time.Hour + 30*time.Minute)
	currentHour := now.Truncate(time.Hour)
	hour := func(offset, count, errs int) model.AggregatedMetricRecord {
		start := currentHour.Add(time.Duration(offset) * time.Hour)
		return model.AggregatedMetricRecord{TimeRangeStart: start, TimeRangeEnd: start.Add(time.Hour), Count: count, ErrorCount: errs, Complete: true}
	}
	primary := []model.AggregatedMetricRecord{hour(-1, 20, 1), hour(-5, 100, 0), hour(-30, 500, 9)}
	secondary := []model.AggregatedMetricRecord{hour(0, 6, 2)}

	s := Summarize(now, "items", primary, secondary, Floors{Primary: DefaultItemFloor, Secondary: DefaultScoreResultFloor})

	assert.Equal(t, "items", s.Family)
	assert.Equal(t, 20, s.PrimaryPerHour)
	assert.Equal(t, 120, s.PrimaryTotal24h)
	assert.Equal(t, 5, s.PrimaryAveragePerHour)
	assert.Equal(t, 100, s.PrimaryPeakHourly)

	assert.Equal(t, 6, s.SecondaryPerHour)
	assert.Equal(t, 6, s.SecondaryTotal24h)
	assert.Equal(t, 300, s.SecondaryPeakHourly)

	assert.True(t, s.HasErrorsLast24h)
	assert.Equal(t, 3, s.TotalErrors24h)
	assert.Len(t, s.ChartData, ChartBuckets)
	assert.Equal(t, now, s.LastUpdated)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(epoch, "tasks", nil, nil, Floors{Primary: DefaultTaskFloor, Secondary: DefaultTaskFloor})
	assert.Equal(t, 10, s.PrimaryPeakHourly)
	assert.Equal(t, 10, s.SecondaryPeakHourly)
	assert.False(t, s.HasErrorsLast24h)
	assert.Len(t, s.ChartData, ChartBuckets)
}
