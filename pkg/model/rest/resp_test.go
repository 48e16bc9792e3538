// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package rest

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/trace"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSuccessResp(t *testing.T) {
	resp := SuccessResp(context.Background(), map[string]int{"a": 1})
	assert.Equal(t, CodeSuccess, resp.Meta.Code)
	assert.Equal(t, "OK", resp.Meta.Message)
	assert.Nil(t, resp.Tracing)

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"meta":{"code":2000,"message":"OK"},"data":{"a":1},"tracing":null}`, string(data))
}

func TestErrorResp(t *testing.T) {
	resp := ErrorResp(context.Background(), 4001, "bad family", nil)
	assert.Equal(t, 4001, resp.Meta.Code)
	assert.Equal(t, "bad family", resp.Meta.Message)
	assert.Nil(t, resp.Data)
}

func TestResp_WithTracing(t *testing.T) {
	trace.InitTracer("rest-test", 1, sdktrace.WithSampler(sdktrace.AlwaysSample()))
	defer func() { _ = trace.CloseTracer() }()

	ctx, span := trace.StartSpan(context.Background(), "handler")
	defer span.End()

	resp := SuccessResp(ctx, nil)
	require.NotNil(t, resp.Tracing)
	assert.Equal(t, span.SpanContext().TraceID().String(), resp.Tracing.TraceId)
	assert.Equal(t, span.SpanContext().SpanID().String(), resp.Tracing.SpanId)
}

func TestNewListData(t *testing.T) {
	token := "next"
	ld := NewListData([]string{"a"}, &token)
	data, err := json.Marshal(ld)
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":["a"],"nextToken":"next"}`, string(data))
}
