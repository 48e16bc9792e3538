// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"context"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/aggregation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/evaluation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metricscontroller"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/gin-gonic/gin"
)

// EvaluationLister pages through the evaluations of an account.
type EvaluationLister interface {
	ListEvaluations(ctx context.Context, accountID string, limit int, nextToken *string) (graphql.Page[model.Evaluation], error)
}

type Handler struct {
	accountID   string
	metrics     *metricscontroller.Registry
	sessions    *evaluation.Sessions
	evaluations EvaluationLister
	querier     *aggregation.Querier
	store       database.AggregatedMetricFacadeInterface
}

func NewHandler(accountID string, registry *metricscontroller.Registry, sessions *evaluation.Sessions,
	evaluations EvaluationLister, querier *aggregation.Querier) *Handler {
	return &Handler{
		accountID:   accountID,
		metrics:     registry,
		sessions:    sessions,
		evaluations: evaluations,
		querier:     querier,
	}
}

// WithStore enables record ingestion into the aggregation store.
func (h *Handler) WithStore(store database.AggregatedMetricFacadeInterface) *Handler {
	h.store = store
	return h
}

func (h *Handler) RegisterRouter(group *gin.RouterGroup) error {
	metricsGroup := group.Group("/metrics")
	{
		metricsGroup.GET("/:family", h.getMetrics)
		metricsGroup.POST("/:family/refetch", h.refetchMetrics)
	}

	recordGroup := group.Group("/aggregated-metrics")
	{
		recordGroup.GET("", h.queryRecords)
		if h.store != nil {
			recordGroup.POST("", h.ingestRecords)
		}
	}

	evaluationGroup := group.Group("/evaluations")
	{
		evaluationGroup.GET("", h.listEvaluations)
		evaluationGroup.GET("/selection", h.getSelection)
		evaluationGroup.PUT("/selection", h.putSelection)
		evaluationGroup.DELETE("/selection", h.deleteSelection)
		evaluationGroup.GET("/selection/stream", h.streamSelection)
	}
	return nil
}
