// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package middleware

import (
	"strconv"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metrics"
	"github.com/gin-gonic/gin"
)

var (
	requestCounter = metrics.NewCounterVec("http_requests",
		"Number of API requests by route, method and status", []string{"route", "method", "status"})
	requestLatency = metrics.NewHistogramVec("http_request_duration",
		"API request latency", []string{"route", "method"}, nil)
)

// HandleMetrics records request counts and latency keyed by the matched
// route template, so path parameters do not explode label cardinality.
func HandleMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		requestCounter.Inc(route, c.Request.Method, strconv.Itoa(c.Writer.Status()))
		requestLatency.Observe(time.Since(start).Seconds(), route, c.Request.Method)
	}
}
