// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package trace

import (
	"context"
	"os"

	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const otlpEndpointEnv = "OTEL_EXPORTER_OTLP_ENDPOINT"

// ExportEndpoint returns configured, or the standard OTLP environment variable when it is empty.
func ExportEndpoint(configured string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(otlpEndpointEnv)
}

// OTLPOptions builds tracer provider options that batch spans to an OTLP gRPC
// collector at endpoint and tag them with the service name.
func OTLPOptions(ctx context.Context, serviceName, endpoint string) ([]sdktrace.TracerProviderOption, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
		resource.WithHost(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, err
	}
	log.Infof("OTLP trace exporter configured: endpoint=%s", endpoint)
	return []sdktrace.TracerProviderOption{
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	}, nil
}
