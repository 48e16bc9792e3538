// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Client runs GraphQL documents against the backend.
type Client interface {
	Query(ctx context.Context, document string, variables map[string]any, out any) error
	Subscribe(ctx context.Context, document string, variables map[string]any) (Subscription, error)
}

// Subscriber opens subscription streams.
type Subscriber interface {
	Subscribe(ctx context.Context, document string, variables map[string]any) (Subscription, error)
}

// Subscription is a live event stream. The Events channel is closed when the
// stream ends for any reason. Unsubscribe may be called any number of times.
type Subscription interface {
	Events() <-chan Message
	Unsubscribe()
}

// Message is one subscription delivery. Err is set for stream level failures.
type Message struct {
	Data   json.RawMessage
	Errors []GQLError
	Err    error
}

// Page is one page of a paginated list query.
type Page[T any] struct {
	Items     []T     `json:"items"`
	NextToken *string `json:"nextToken"`
}

type GQLError struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// Error is returned when the server answers with a non-2xx status or a
// non-empty errors array.
type Error struct {
	StatusCode int
	Errors     []GQLError
	Body       string
}

func (e *Error) Error() string {
	if len(e.Errors) > 0 {
		msgs := make([]string, 0, len(e.Errors))
		for _, ge := range e.Errors {
			msgs = append(msgs, ge.Message)
		}
		return fmt.Sprintf("graphql error (status %d): %s", e.StatusCode, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("graphql error (status %d): %s", e.StatusCode, e.Body)
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []GQLError      `json:"errors"`
}
