// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metricscontroller

import (
	"context"
	"fmt"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

// ChangeFeed notifies that records for the account were created or updated.
// Message payloads are not inspected; every delivery is a refresh hint.
type ChangeFeed interface {
	Changes(ctx context.Context, accountID string) (graphql.Subscription, error)
}

var changeTopics = map[model.RecordType][]string{
	model.RecordTypeItems:         {"onCreateItem", "onUpdateItem"},
	model.RecordTypeScoreResults:  {"onCreateScoreResult", "onUpdateScoreResult"},
	model.RecordTypeTasks:         {"onCreateTask", "onUpdateTask"},
	model.RecordTypeProcedures:    {"onCreateProcedure", "onUpdateProcedure"},
	model.RecordTypeFeedbackItems: {"onCreateFeedbackItem", "onUpdateFeedbackItem"},
}

// baseRecordType folds filtered record types into the type that owns the change topic.
func baseRecordType(rt model.RecordType) model.RecordType {
	switch rt {
	case model.RecordTypePredictionItems, model.RecordTypeEvaluationItems:
		return model.RecordTypeItems
	case model.RecordTypePredictionScoreResults, model.RecordTypeEvaluationScoreResults:
		return model.RecordTypeScoreResults
	}
	return rt
}

// GraphQLChangeFeed subscribes to the create/update topics behind a pair of series.
type GraphQLChangeFeed struct {
	client graphql.Client
	topics []string
}

func NewGraphQLChangeFeed(client graphql.Client, recordTypes ...model.RecordType) *GraphQLChangeFeed {
	seen := map[string]bool{}
	var topics []string
	for _, rt := range recordTypes {
		for _, topic := range changeTopics[baseRecordType(rt)] {
			if !seen[topic] {
				seen[topic] = true
				topics = append(topics, topic)
			}
		}
	}
	return &GraphQLChangeFeed{client: client, topics: topics}
}

func (f *GraphQLChangeFeed) Topics() []string {
	return f.topics
}

func (f *GraphQLChangeFeed) Changes(ctx context.Context, accountID string) (graphql.Subscription, error) {
	subs := make([]graphql.Subscription, 0, len(f.topics))
	for _, topic := range f.topics {
		doc := fmt.Sprintf("subscription On%s($accountId: String!) { %s(accountId: $accountId) { id } }", topic[2:], topic)
		sub, err := f.client.Subscribe(ctx, doc, map[string]any{"accountId": accountID})
		if err != nil {
			for _, s := range subs {
				s.Unsubscribe()
			}
			return nil, err
		}
		subs = append(subs, sub)
	}
	return graphql.Merge(subs...), nil
}
