// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import "time"

// RecordType identifies which kind of event an aggregated bucket counts.
type RecordType string

const (
	RecordTypeItems                  RecordType = "items"
	RecordTypeScoreResults           RecordType = "scoreResults"
	RecordTypeTasks                  RecordType = "tasks"
	RecordTypeProcedures             RecordType = "procedures"
	RecordTypePredictionItems        RecordType = "predictionItems"
	RecordTypeEvaluationItems        RecordType = "evaluationItems"
	RecordTypeFeedbackItems          RecordType = "feedbackItems"
	RecordTypePredictionScoreResults RecordType = "predictionScoreResults"
	RecordTypeEvaluationScoreResults RecordType = "evaluationScoreResults"
)

var allRecordTypes = []RecordType{
	RecordTypeItems,
	RecordTypeScoreResults,
	RecordTypeTasks,
	RecordTypeProcedures,
	RecordTypePredictionItems,
	RecordTypeEvaluationItems,
	RecordTypeFeedbackItems,
	RecordTypePredictionScoreResults,
	RecordTypeEvaluationScoreResults,
}

func AllRecordTypes() []RecordType {
	out := make([]RecordType, len(allRecordTypes))
	copy(out, allRecordTypes)
	return out
}

func (r RecordType) Valid() bool {
	for _, t := range allRecordTypes {
		if t == r {
			return true
		}
	}
	return false
}

func (r RecordType) String() string {
	return string(r)
}

// AggregatedMetricRecord is one pre-computed bucket of counts for a record type
// over [TimeRangeStart, TimeRangeEnd). Records still accumulating have Complete=false.
type AggregatedMetricRecord struct {
	ID              uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AccountID       string     `gorm:"type:varchar(128);not null;index:idx_account_type_range" json:"accountId"`
	RecordType      RecordType `gorm:"type:varchar(64);not null;index:idx_account_type_range" json:"recordType"`
	TimeRangeStart  time.Time  `gorm:"type:timestamp;not null;index:idx_account_type_range" json:"timeRangeStart"`
	TimeRangeEnd    time.Time  `gorm:"type:timestamp;not null" json:"timeRangeEnd"`
	NumberOfMinutes int        `gorm:"not null;default:0" json:"numberOfMinutes"`
	Count           int        `gorm:"not null;default:0" json:"count"`
	ErrorCount      int        `gorm:"not null;default:0" json:"errorCount"`
	Complete        bool       `gorm:"not null;default:false" json:"complete"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// TableName specifies the table name
func (AggregatedMetricRecord) TableName() string {
	return "aggregated_metric_records"
}

// Overlaps reports whether the record's window intersects the half-open range [start, end).
func (r AggregatedMetricRecord) Overlaps(start, end time.Time) bool {
	return r.TimeRangeStart.Before(end) && r.TimeRangeEnd.After(start)
}
