// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package trace

import (
	"context"
	"time"

	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "evaluation-dashboard"

var tracerProvider *sdktrace.TracerProvider

// InitTracer installs a global tracer provider. Spans are sampled by ratio and
// are used to stamp trace ids on responses and log lines.
func InitTracer(serviceName string, samplingRatio float64, opts ...sdktrace.TracerProviderOption) {
	if samplingRatio <= 0 || samplingRatio > 1 {
		samplingRatio = 1
	}
	opts = append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplingRatio))),
	}, opts...)
	tracerProvider = sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	log.Infof("Tracer initialized: service=%s, ratio=%.2f", serviceName, samplingRatio)
}

// CloseTracer flushes and shuts down the provider installed by InitTracer.
func CloseTracer() error {
	if tracerProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return tracerProvider.Shutdown(ctx)
}

func StartSpan(ctx context.Context, operationName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, operationName, opts...)
}

// SpanFromContext returns the span in ctx and whether it carries a valid span context.
func SpanFromContext(ctx context.Context) (trace.Span, bool) {
	if ctx == nil {
		return nil, false
	}
	span := trace.SpanFromContext(ctx)
	return span, span.SpanContext().IsValid()
}

func GetTraceIDAndSpanID(span trace.Span) (string, string, bool) {
	if span == nil {
		return "", "", false
	}
	sc := span.SpanContext()
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
