// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package evaluation

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

const scoreResultFields = `id
      value
      confidence
      explanation
      metadata
      itemId
      evaluationId
      scorecardId
      scoreId
      traceId
      feedbackItemId
      createdAt
      updatedAt`

const listScoreResultsQuery = `query ListScoreResultByEvaluationId($evaluationId: String!, $limit: Int, $nextToken: String) {
  listScoreResultByEvaluationId(evaluationId: $evaluationId, limit: $limit, nextToken: $nextToken) {
    items {
      ` + scoreResultFields + `
    }
    nextToken
  }
}`

const onCreateScoreResultSubscription = `subscription OnCreateScoreResult($evaluationId: String!) {
  onCreateScoreResult(evaluationId: $evaluationId) {
    ` + scoreResultFields + `
  }
}`

const onUpdateScoreResultSubscription = `subscription OnUpdateScoreResult($evaluationId: String!) {
  onUpdateScoreResult(evaluationId: $evaluationId) {
    ` + scoreResultFields + `
  }
}`

const listEvaluationsQuery = `query ListEvaluationByAccountIdAndUpdatedAt($accountId: String!, $limit: Int, $nextToken: String) {
  listEvaluationByAccountIdAndUpdatedAt(accountId: $accountId, sortDirection: DESC, limit: $limit, nextToken: $nextToken) {
    items {
      id
      type
      accountId
      scorecardId
      scoreId
      status
      totalItems
      processedItems
      accuracy
      createdAt
      updatedAt
    }
    nextToken
  }
}`

// GraphQLSource reads score results and their live changes from the backend API.
type GraphQLSource struct {
	client graphql.Client
}

func NewGraphQLSource(client graphql.Client) *GraphQLSource {
	return &GraphQLSource{client: client}
}

func (s *GraphQLSource) FetchPage(ctx context.Context, evaluationID string, nextToken *string, limit int) (graphql.Page[model.ScoreResult], error) {
	vars := map[string]any{
		"evaluationId": evaluationID,
		"limit":        limit,
	}
	if nextToken != nil {
		vars["nextToken"] = *nextToken
	}
	var out struct {
		List *graphql.Page[model.ScoreResult] `json:"listScoreResultByEvaluationId"`
	}
	if err := s.client.Query(ctx, listScoreResultsQuery, vars, &out); err != nil {
		return graphql.Page[model.ScoreResult]{}, errors.WrapError(err, "list score results", errors.CodeRemoteServiceError)
	}
	if out.List == nil {
		return graphql.Page[model.ScoreResult]{}, nil
	}
	return *out.List, nil
}

// ListEvaluations returns one page of the account's evaluations, most recently updated first.
func (s *GraphQLSource) ListEvaluations(ctx context.Context, accountID string, limit int, nextToken *string) (graphql.Page[model.Evaluation], error) {
	vars := map[string]any{
		"accountId": accountID,
		"limit":     limit,
	}
	if nextToken != nil {
		vars["nextToken"] = *nextToken
	}
	var out struct {
		List *graphql.Page[model.Evaluation] `json:"listEvaluationByAccountIdAndUpdatedAt"`
	}
	if err := s.client.Query(ctx, listEvaluationsQuery, vars, &out); err != nil {
		return graphql.Page[model.Evaluation]{}, errors.WrapError(err, "list evaluations", errors.CodeRemoteServiceError)
	}
	if out.List == nil {
		return graphql.Page[model.Evaluation]{Items: []model.Evaluation{}}, nil
	}
	return *out.List, nil
}

func (s *GraphQLSource) Subscribe(ctx context.Context, evaluationID string) (ResultSubscription, error) {
	vars := map[string]any{"evaluationId": evaluationID}
	created, err := s.client.Subscribe(ctx, onCreateScoreResultSubscription, vars)
	if err != nil {
		return nil, errors.WrapError(err, "subscribe to created score results", errors.CodeRemoteServiceError)
	}
	updated, err := s.client.Subscribe(ctx, onUpdateScoreResultSubscription, vars)
	if err != nil {
		created.Unsubscribe()
		return nil, errors.WrapError(err, "subscribe to updated score results", errors.CodeRemoteServiceError)
	}
	return newTranslatedSubscription(graphql.Merge(created, updated)), nil
}

// translatedSubscription turns raw subscription payloads into result events.
type translatedSubscription struct {
	inner  graphql.Subscription
	events chan ResultEvent
	done   chan struct{}
	once   sync.Once
}

func newTranslatedSubscription(inner graphql.Subscription) *translatedSubscription {
	t := &translatedSubscription{
		inner:  inner,
		events: make(chan ResultEvent, 16),
		done:   make(chan struct{}),
	}
	go t.loop()
	return t
}

func (t *translatedSubscription) Events() <-chan ResultEvent {
	return t.events
}

func (t *translatedSubscription) Unsubscribe() {
	t.once.Do(func() {
		close(t.done)
		t.inner.Unsubscribe()
	})
}

func (t *translatedSubscription) loop() {
	defer close(t.events)
	for msg := range t.inner.Events() {
		ev := decodeMessage(msg)
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

func decodeMessage(msg graphql.Message) ResultEvent {
	if msg.Err != nil {
		return ResultEvent{Err: msg.Err}
	}
	if len(msg.Errors) > 0 {
		return ResultEvent{Err: &graphql.Error{Errors: msg.Errors}}
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(msg.Data, &payload); err != nil {
		return ResultEvent{Err: errors.WrapError(err, "decode subscription payload", errors.ClientError)}
	}
	for field, raw := range payload {
		if string(raw) == "null" {
			continue
		}
		kind := EventUpdated
		if field == "onCreateScoreResult" {
			kind = EventCreated
		}
		var result model.ScoreResult
		if err := json.Unmarshal(raw, &result); err != nil {
			return ResultEvent{Err: errors.WrapError(err, "decode score result", errors.ClientError)}
		}
		return ResultEvent{Kind: kind, Results: []model.ScoreResult{result}}
	}
	return ResultEvent{Err: errors.NewError().WithCode(errors.ClientError).WithMessage("empty subscription payload")}
}
