// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package evaluation

import (
	"context"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

type EventKind string

const (
	// EventSnapshot carries the full result set and replaces the displayed list.
	EventSnapshot EventKind = "snapshot"
	EventCreated  EventKind = "created"
	EventUpdated  EventKind = "updated"
)

type ResultEvent struct {
	Kind    EventKind
	Results []model.ScoreResult
	Err     error
}

// ResultSubscription streams changes for one evaluation. Events is closed
// when the stream ends; Unsubscribe is idempotent.
type ResultSubscription interface {
	Events() <-chan ResultEvent
	Unsubscribe()
}

// ResultSource loads and follows the score results of an evaluation.
type ResultSource interface {
	FetchPage(ctx context.Context, evaluationID string, nextToken *string, limit int) (graphql.Page[model.ScoreResult], error)
	Subscribe(ctx context.Context, evaluationID string) (ResultSubscription, error)
}
