// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	subprotocol = "graphql-transport-ws"

	msgConnectionInit = "connection_init"
	msgConnectionAck  = "connection_ack"
	msgSubscribe      = "subscribe"
	msgNext           = "next"
	msgError          = "error"
	msgComplete       = "complete"
	msgPing           = "ping"
	msgPong           = "pong"

	eventBuffer = 16
)

type frame struct {
	ID      string          `json:"id,omitempty"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSSubscriber opens one graphql-transport-ws connection per subscription.
type WSSubscriber struct {
	endpoint   string
	apiKey     string
	ackTimeout time.Duration
	dialer     *websocket.Dialer
}

func NewWSSubscriber(endpoint, apiKey string, ackTimeout time.Duration) *WSSubscriber {
	if ackTimeout <= 0 {
		ackTimeout = 10 * time.Second
	}
	return &WSSubscriber{
		endpoint:   endpoint,
		apiKey:     apiKey,
		ackTimeout: ackTimeout,
		dialer: &websocket.Dialer{
			Subprotocols:     []string{subprotocol},
			HandshakeTimeout: ackTimeout,
		},
	}
}

func (s *WSSubscriber) Subscribe(ctx context.Context, document string, variables map[string]any) (Subscription, error) {
	header := http.Header{}
	if s.apiKey != "" {
		header.Set(apiKeyHeader, s.apiKey)
	}
	conn, _, err := s.dialer.DialContext(ctx, s.endpoint, header)
	if err != nil {
		return nil, errors.Wrap(err, "dial graphql websocket")
	}

	if err := s.handshake(conn); err != nil {
		conn.Close()
		return nil, err
	}

	payload, err := json.Marshal(request{Query: document, Variables: variables})
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "encode subscription")
	}
	sub := &wsSubscription{
		conn:     conn,
		id:       uuid.NewString(),
		events:   make(chan Message, eventBuffer),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	if err := sub.write(frame{ID: sub.id, Type: msgSubscribe, Payload: payload}); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "send subscribe")
	}

	go sub.readLoop()
	go func() {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
		case <-sub.finished:
		}
	}()
	return sub, nil
}

func (s *WSSubscriber) handshake(conn *websocket.Conn) error {
	initPayload, _ := json.Marshal(map[string]string{apiKeyHeader: s.apiKey})
	if err := conn.WriteJSON(frame{Type: msgConnectionInit, Payload: initPayload}); err != nil {
		return errors.Wrap(err, "send connection_init")
	}
	_ = conn.SetReadDeadline(time.Now().Add(s.ackTimeout))
	defer conn.SetReadDeadline(time.Time{})
	for {
		var f frame
		if err := conn.ReadJSON(&f); err != nil {
			return errors.Wrap(err, "wait for connection_ack")
		}
		switch f.Type {
		case msgConnectionAck:
			return nil
		case msgPing:
			if err := conn.WriteJSON(frame{Type: msgPong}); err != nil {
				return errors.Wrap(err, "send pong")
			}
		default:
			return errors.Errorf("unexpected %q before connection_ack", f.Type)
		}
	}
}

type wsSubscription struct {
	conn    *websocket.Conn
	id      string
	writeMu sync.Mutex

	events   chan Message
	done     chan struct{}
	finished chan struct{}
	once     sync.Once
}

func (s *wsSubscription) Events() <-chan Message {
	return s.events
}

func (s *wsSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.done)
		_ = s.write(frame{ID: s.id, Type: msgComplete})
		_ = s.conn.Close()
	})
}

func (s *wsSubscription) write(f frame) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(f)
}

func (s *wsSubscription) readLoop() {
	defer close(s.finished)
	defer close(s.events)
	for {
		var f frame
		if err := s.conn.ReadJSON(&f); err != nil {
			select {
			case <-s.done:
			default:
				log.Warnf("graphql subscription %s read failed: %v", s.id, err)
				s.deliver(Message{Err: errors.Wrap(err, "subscription stream closed")})
			}
			return
		}
		switch f.Type {
		case msgNext:
			var payload response
			if err := json.Unmarshal(f.Payload, &payload); err != nil {
				s.deliver(Message{Err: errors.Wrap(err, "decode subscription payload")})
				continue
			}
			s.deliver(Message{Data: payload.Data, Errors: payload.Errors})
		case msgError:
			var gqlErrs []GQLError
			_ = json.Unmarshal(f.Payload, &gqlErrs)
			s.deliver(Message{Err: &Error{Errors: gqlErrs, Body: string(f.Payload)}})
		case msgComplete:
			return
		case msgPing:
			_ = s.write(frame{Type: msgPong})
		}
	}
}

func (s *wsSubscription) deliver(m Message) {
	select {
	case s.events <- m:
	case <-s.done:
	}
}
