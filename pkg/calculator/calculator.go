// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package calculator reduces aggregated metric buckets into dashboard summaries.
// Every function is pure; callers pass the reference time explicitly.
package calculator

import (
	"math"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

const (
	ChartBuckets = 24

	DefaultItemFloor        = 50
	DefaultScoreResultFloor = 300
	DefaultTaskFloor        = 10
)

type Totals struct {
	Count      int `json:"count"`
	ErrorCount int `json:"errorCount"`
}

// Floors are the minimum peaks reported for the primary and secondary series.
type Floors struct {
	Primary   int
	Secondary int
}

// SumOverlapping totals the complete records whose window intersects [rangeStart, rangeEnd).
func SumOverlapping(records []model.AggregatedMetricRecord, rangeStart, rangeEnd time.Time) Totals {
	var t Totals
	for _, r := range records {
		if !r.Complete || !r.Overlaps(rangeStart, rangeEnd) {
			continue
		}
		t.Count += r.Count
		t.ErrorCount += r.ErrorCount
	}
	return t
}

// Bucketize returns the hourly chart for the 24 hours up to and including the
// hour containing now, oldest first.
func Bucketize(now time.Time, primary, secondary []model.AggregatedMetricRecord) []model.ChartBucket {
	currentHour := now.Truncate(time.Hour)
	buckets := make([]model.ChartBucket, 0, ChartBuckets)
	for i := ChartBuckets - 1; i >= 0; i-- {
		start := currentHour.Add(-time.Duration(i) * time.Hour)
		end := start.Add(time.Hour)
		buckets = append(buckets, model.ChartBucket{
			Time:      start.Format("15:04"),
			Start:     start,
			End:       end,
			Primary:   SumOverlapping(primary, start, end).Count,
			Secondary: SumOverlapping(secondary, start, end).Count,
		})
	}
	return buckets
}

func Peak(series []int, floor int) int {
	peak := floor
	for _, v := range series {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Average is the hourly mean of a 24h total, rounded half away from zero.
func Average(total24h int) int {
	return int(math.Round(float64(total24h) / float64(ChartBuckets)))
}

// Summarize builds the full snapshot for one refresh.
func Summarize(now time.Time, family string, primary, secondary []model.AggregatedMetricRecord, floors Floors) model.MetricsSnapshot {
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)

	primaryHour := SumOverlapping(primary, hourAgo, now)
	secondaryHour := SumOverlapping(secondary, hourAgo, now)
	primaryDay := SumOverlapping(primary, dayAgo, now)
	secondaryDay := SumOverlapping(secondary, dayAgo, now)

	chart := Bucketize(now, primary, secondary)
	primarySeries := make([]int, len(chart))
	secondarySeries := make([]int, len(chart))
	for i, b := range chart {
		primarySeries[i] = b.Primary
		secondarySeries[i] = b.Secondary
	}

	totalErrors := primaryDay.ErrorCount + secondaryDay.ErrorCount
	return model.MetricsSnapshot{
		Family: family,

		PrimaryPerHour:        primaryHour.Count,
		PrimaryAveragePerHour: Average(primaryDay.Count),
		PrimaryPeakHourly:     Peak(primarySeries, floors.Primary),
		PrimaryTotal24h:       primaryDay.Count,

		SecondaryPerHour:        secondaryHour.Count,
		SecondaryAveragePerHour: Average(secondaryDay.Count),
		SecondaryPeakHourly:     Peak(secondarySeries, floors.Secondary),
		SecondaryTotal24h:       secondaryDay.Count,

		ChartData:        chart,
		LastUpdated:      now,
		HasErrorsLast24h: totalErrors > 0,
		TotalErrors24h:   totalErrors,
	}
}
