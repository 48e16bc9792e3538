// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"
	"strconv"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/evaluation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model/rest"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000

	SessionHeader     = "X-Session-Id"
	SessionQueryParam = "sessionId"
	maxSessionIDLen   = 128
)

type SelectionRequest struct {
	EvaluationID *string `json:"evaluationId"`
}

func (h *Handler) listEvaluations(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxListLimit {
			_ = c.Error(errors.NewError().WithCode(errors.RequestParameterInvalid).
				WithMessagef("limit must be between 1 and %d", maxListLimit))
			return
		}
		limit = parsed
	}
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}

	page, err := h.evaluations.ListEvaluations(c.Request.Context(), h.accountID, limit, nextToken)
	if err != nil {
		_ = c.Error(errors.WrapError(err, "failed to list evaluations", errors.CodeRemoteServiceError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), rest.NewListData(page.Items, page.NextToken)))
}

// sessionID identifies the viewer. Browsers cannot set headers on a websocket
// handshake, so the query parameter is accepted too.
func sessionID(c *gin.Context) (string, error) {
	id := c.GetHeader(SessionHeader)
	if id == "" {
		id = c.Query(SessionQueryParam)
	}
	if id == "" || len(id) > maxSessionIDLen {
		return "", errors.NewError().WithCode(errors.RequestParameterInvalid).
			WithMessagef("%s header or %s query parameter of 1 to %d characters is required",
				SessionHeader, SessionQueryParam, maxSessionIDLen)
	}
	return id, nil
}

func (h *Handler) getSelection(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	state := evaluation.SelectionState{Phase: evaluation.PhaseIdle}
	if synchronizer, ok := h.sessions.Lookup(id); ok {
		state = synchronizer.State()
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), state))
}

// putSelection switches the session's selected evaluation. An empty id clears it.
func (h *Handler) putSelection(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.WrapError(err, "invalid selection request", errors.RequestParameterInvalid))
		return
	}
	if req.EvaluationID == nil {
		_ = c.Error(errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessage("evaluationId is required"))
		return
	}
	synchronizer, err := h.sessions.Acquire(id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	synchronizer.Select(*req.EvaluationID)
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), synchronizer.State()))
}

// deleteSelection ends the session and releases its subscription.
func (h *Handler) deleteSelection(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), gin.H{"ended": h.sessions.End(id)}))
}
