// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package middleware

import (
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/trace"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

func HandleTracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))

		operationName := c.Request.Method + " " + c.Request.URL.Path
		ctx, span := trace.StartSpan(ctx, operationName, oteltrace.WithSpanKind(oteltrace.SpanKindServer))
		span.SetAttributes(
			semconv.HTTPMethod(c.Request.Method),
			semconv.HTTPRoute(c.FullPath()),
			attribute.String("component", "gin-http"),
			attribute.String("http.path", c.Request.URL.Path),
		)

		defer func() {
			statusCode := c.Writer.Status()
			span.SetAttributes(semconv.HTTPStatusCode(statusCode))
			if statusCode >= 400 || len(c.Errors) > 0 {
				span.SetStatus(codes.Error, "request failed")
			} else {
				span.SetStatus(codes.Ok, "")
			}
			span.End()
			log.Debugf("finished span %s trace=%s status=%d",
				operationName, span.SpanContext().TraceID().String(), statusCode)
		}()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
