// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package graphql

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func errorsAs(err error, target any) bool {
	return stderrors.As(err, target)
}

// fakeGraphQLWS speaks the server side of graphql-transport-ws. After the
// subscribe frame it sends the given payloads as next frames.
type fakeGraphQLWS struct {
	t        *testing.T
	payloads []string
	complete bool

	mu          sync.Mutex
	apiKey      string
	gotComplete chan struct{}
}

func (f *fakeGraphQLWS) handler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{Subprotocols: []string{subprotocol}}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.apiKey = r.Header.Get(apiKeyHeader)
	f.mu.Unlock()

	var init frame
	if err := conn.ReadJSON(&init); err != nil || init.Type != msgConnectionInit {
		return
	}
	_ = conn.WriteJSON(frame{Type: msgConnectionAck})

	var sub frame
	if err := conn.ReadJSON(&sub); err != nil || sub.Type != msgSubscribe {
		return
	}
	for _, p := range f.payloads {
		_ = conn.WriteJSON(frame{ID: sub.ID, Type: msgNext, Payload: json.RawMessage(p)})
	}
	if f.complete {
		_ = conn.WriteJSON(frame{ID: sub.ID, Type: msgComplete})
	}
	for {
		var in frame
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		if in.Type == msgComplete && f.gotComplete != nil {
			close(f.gotComplete)
			return
		}
	}
}

func startFakeWS(t *testing.T, f *fakeGraphQLWS) string {
	srv := httptest.NewServer(http.HandlerFunc(f.handler))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSSubscriber_ReceivesEvents(t *testing.T) {
	fake := &fakeGraphQLWS{
		t: t,
		payloads: []string{
			`{"data":{"onCreate":{"id":"a"}}}`,
			`{"data":{"onCreate":{"id":"b"}}}`,
		},
		complete: true,
	}
	url := startFakeWS(t, fake)

	sub, err := NewWSSubscriber(url, "secret", time.Second).Subscribe(context.Background(), "subscription { onCreate { id } }", nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	var got []string
	for msg := range sub.Events() {
		require.NoError(t, msg.Err)
		got = append(got, string(msg.Data))
	}
	assert.Equal(t, []string{`{"onCreate":{"id":"a"}}`, `{"onCreate":{"id":"b"}}`}, got)

	fake.mu.Lock()
	assert.Equal(t, "secret", fake.apiKey)
	fake.mu.Unlock()
}

func TestWSSubscriber_UnsubscribeIsIdempotent(t *testing.T) {
	fake := &fakeGraphQLWS{t: t, gotComplete: make(chan struct{})}
	url := startFakeWS(t, fake)

	sub, err := NewWSSubscriber(url, "", time.Second).Subscribe(context.Background(), "subscription { x }", nil)
	require.NoError(t, err)

	sub.Unsubscribe()
	sub.Unsubscribe()

	select {
	case <-fake.gotComplete:
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw complete")
	}
	assert.Eventually(t, func() bool {
		_, open := <-sub.Events()
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWSSubscriber_ContextCancel(t *testing.T) {
	fake := &fakeGraphQLWS{t: t, gotComplete: make(chan struct{})}
	url := startFakeWS(t, fake)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := NewWSSubscriber(url, "", time.Second).Subscribe(ctx, "subscription { x }", nil)
	require.NoError(t, err)
	cancel()

	select {
	case <-fake.gotComplete:
	case <-time.After(2 * time.Second):
		t.Fatal("server never saw complete")
	}
	sub.Unsubscribe()
}

func TestWSSubscriber_DialFailure(t *testing.T) {
	_, err := NewWSSubscriber("ws://127.0.0.1:1", "", 200*time.Millisecond).Subscribe(context.Background(), "subscription { x }", nil)
	assert.Error(t, err)
}

func TestHTTPClient_DelegatesSubscribe(t *testing.T) {
	fake := &fakeGraphQLWS{t: t, payloads: []string{`{"data":{"x":1}}`}, complete: true}
	url := startFakeWS(t, fake)

	client := NewHTTPClient(HTTPConfig{Endpoint: "http://unused"}, NewWSSubscriber(url, "", time.Second))
	sub, err := client.Subscribe(context.Background(), "subscription { x }", nil)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	msg, ok := <-sub.Events()
	require.True(t, ok)
	assert.JSONEq(t, `{"x":1}`, string(msg.Data))
}
