// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metricscontroller"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model/rest"
	"github.com/gin-gonic/gin"
)

func (h *Handler) controllerFor(c *gin.Context) (*metricscontroller.Controller, error) {
	family, err := metricscontroller.ParseFamily(c.Param("family"))
	if err != nil {
		return nil, err
	}
	itemType, err := metricscontroller.ParseFilter(c.Query("itemType"))
	if err != nil {
		return nil, err
	}
	scoreResultType, err := metricscontroller.ParseFilter(c.Query("scoreResultType"))
	if err != nil {
		return nil, err
	}
	return h.metrics.Get(family, metricscontroller.FilterOptions{
		ItemType:        itemType,
		ScoreResultType: scoreResultType,
	})
}

func (h *Handler) getMetrics(c *gin.Context) {
	controller, err := h.controllerFor(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), controller.State()))
}

func (h *Handler) refetchMetrics(c *gin.Context) {
	controller, err := h.controllerFor(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), controller.Refetch(c.Request.Context())))
}
