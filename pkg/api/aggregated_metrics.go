// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/aggregation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model/rest"
	"github.com/gin-gonic/gin"
)

const maxIngestBatch = 1000

type RecordQuery struct {
	RecordType string    `form:"recordType" binding:"required"`
	Start      time.Time `form:"start" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	End        time.Time `form:"end" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
}

type IngestRequest struct {
	Records []*model.AggregatedMetricRecord `json:"records" binding:"required"`
}

// queryRecords returns the raw aggregated records overlapping a window. Backend
// failures degrade to an empty list.
func (h *Handler) queryRecords(c *gin.Context) {
	var q RecordQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(errors.WrapError(err, "recordType, start and end are required", errors.RequestParameterInvalid))
		return
	}
	recordType := model.RecordType(q.RecordType)
	if err := aggregation.ValidateWindow(recordType, q.Start, q.End); err != nil {
		_ = c.Error(err)
		return
	}
	records := h.querier.QueryAggregatedMetrics(c.Request.Context(), h.accountID, recordType, q.Start, q.End)
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), rest.NewListData(records, nil)))
}

func (h *Handler) ingestRecords(c *gin.Context) {
	var req IngestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.WrapError(err, "invalid ingest request", errors.RequestParameterInvalid))
		return
	}
	if len(req.Records) > maxIngestBatch {
		_ = c.Error(errors.NewError().WithCode(errors.RequestParameterInvalid).
			WithMessagef("at most %d records per request", maxIngestBatch))
		return
	}
	for i, record := range req.Records {
		if record == nil {
			_ = c.Error(errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessagef("record %d is null", i))
			return
		}
		if record.AccountID == "" {
			record.AccountID = h.accountID
		}
		if err := aggregation.ValidateWindow(record.RecordType, record.TimeRangeStart, record.TimeRangeEnd); err != nil {
			_ = c.Error(err)
			return
		}
		if record.Count < 0 || record.ErrorCount < 0 {
			_ = c.Error(errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessagef("record %d has a negative count", i))
			return
		}
		record.ID = 0
	}
	if err := h.store.BatchSave(c.Request.Context(), req.Records); err != nil {
		_ = c.Error(errors.WrapError(err, "failed to save aggregated records", errors.CodeDatabaseError))
		return
	}
	c.JSON(http.StatusOK, rest.SuccessResp(c.Request.Context(), gin.H{"saved": len(req.Records)}))
}
