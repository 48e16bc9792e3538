// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import "time"

// ChartBucket is one hour of the trend chart.
type ChartBucket struct {
	Time      string    `json:"time"`
	Start     time.Time `json:"bucketStart"`
	End       time.Time `json:"bucketEnd"`
	Primary   int       `json:"items"`
	Secondary int       `json:"scoreResults"`
}

// MetricsSnapshot is the published result of one metrics refresh. The JSON
// names follow the dashboard cards: items is the primary series and
// scoreResults the secondary one, whatever the family.
type MetricsSnapshot struct {
	Family string `json:"family"`

	PrimaryPerHour        int `json:"itemsPerHour"`
	PrimaryAveragePerHour int `json:"itemsAveragePerHour"`
	PrimaryPeakHourly     int `json:"itemsPeakHourly"`
	PrimaryTotal24h       int `json:"itemsTotal24h"`

	SecondaryPerHour        int `json:"scoreResultsPerHour"`
	SecondaryAveragePerHour int `json:"scoreResultsAveragePerHour"`
	SecondaryPeakHourly     int `json:"scoreResultsPeakHourly"`
	SecondaryTotal24h       int `json:"scoreResultsTotal24h"`

	ChartData        []ChartBucket `json:"chartData"`
	LastUpdated      time.Time     `json:"lastUpdated"`
	HasErrorsLast24h bool          `json:"hasErrorsLast24h"`
	TotalErrors24h   int           `json:"totalErrors24h"`
}

// Clone returns a deep copy so a published snapshot can never be mutated by its reader.
func (s *MetricsSnapshot) Clone() *MetricsSnapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.ChartData = make([]ChartBucket, len(s.ChartData))
	copy(out.ChartData, s.ChartData)
	return &out
}
