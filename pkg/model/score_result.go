// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// RawText holds a metadata payload as text. It accepts either a JSON string
// (the usual, possibly double-encoded, form) or any other JSON value, which is
// kept verbatim.
type RawText string

func (t *RawText) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*t = ""
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = RawText(s)
		return nil
	}
	*t = RawText(trimmed)
	return nil
}

type ScoreResult struct {
	ID             string         `json:"id"`
	Value          string         `json:"value"`
	Confidence     *float64       `json:"confidence,omitempty"`
	Explanation    string         `json:"explanation,omitempty"`
	Metadata       RawText        `json:"metadata,omitempty"`
	ParsedMetadata map[string]any `json:"parsedMetadata,omitempty"`
	ItemID         string         `json:"itemId"`
	EvaluationID   string         `json:"evaluationId,omitempty"`
	ScorecardID    string         `json:"scorecardId,omitempty"`
	ScoreID        string         `json:"scoreId,omitempty"`
	TraceID        *string        `json:"traceId,omitempty"`
	FeedbackItemID *string        `json:"feedbackItemId,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt,omitempty"`
}

type EvaluationStatus string

const (
	EvaluationStatusPending   EvaluationStatus = "PENDING"
	EvaluationStatusRunning   EvaluationStatus = "RUNNING"
	EvaluationStatusCompleted EvaluationStatus = "COMPLETED"
	EvaluationStatusFailed    EvaluationStatus = "FAILED"
)

type Evaluation struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	AccountID      string           `json:"accountId"`
	ScorecardID    string           `json:"scorecardId,omitempty"`
	ScoreID        string           `json:"scoreId,omitempty"`
	Status         EvaluationStatus `json:"status"`
	TotalItems     int              `json:"totalItems"`
	ProcessedItems int              `json:"processedItems"`
	Accuracy       *float64         `json:"accuracy,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}
