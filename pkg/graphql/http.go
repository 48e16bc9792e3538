// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package graphql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const apiKeyHeader = "x-api-key"

type HTTPConfig struct {
	Endpoint      string
	APIKey        string
	Timeout       time.Duration
	RetryCount    int
	RetryWaitTime time.Duration
}

// HTTPClient sends queries over HTTP POST and delegates subscriptions to an
// optional Subscriber.
type HTTPClient struct {
	client     *resty.Client
	endpoint   string
	subscriber Subscriber
}

func NewHTTPClient(cfg HTTPConfig, subscriber Subscriber) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RetryWaitTime <= 0 {
		cfg.RetryWaitTime = 500 * time.Millisecond
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWaitTime).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader(apiKeyHeader, cfg.APIKey)
	}
	return &HTTPClient{
		client:     client,
		endpoint:   cfg.Endpoint,
		subscriber: subscriber,
	}
}

func (c *HTTPClient) Query(ctx context.Context, document string, variables map[string]any, out any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(request{Query: document, Variables: variables}).
		Post(c.endpoint)
	if err != nil {
		return errors.Wrap(err, "graphql request failed")
	}

	var envelope response
	decodeErr := json.Unmarshal(resp.Body(), &envelope)
	if resp.IsError() {
		return &Error{StatusCode: resp.StatusCode(), Errors: envelope.Errors, Body: resp.String()}
	}
	if decodeErr != nil {
		return errors.Wrap(decodeErr, "decode graphql response")
	}
	if len(envelope.Errors) > 0 {
		return &Error{StatusCode: resp.StatusCode(), Errors: envelope.Errors}
	}
	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return errors.Wrap(err, "decode graphql data")
	}
	return nil
}

func (c *HTTPClient) Subscribe(ctx context.Context, document string, variables map[string]any) (Subscription, error) {
	if c.subscriber == nil {
		return nil, errors.New("graphql subscriptions are not configured")
	}
	return c.subscriber.Subscribe(ctx, document, variables)
}
