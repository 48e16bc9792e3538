// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"net/http"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamSelection pushes every state the session publishes as a JSON text
// frame until the peer goes away or the session ends. An open stream keeps its
// session alive.
func (h *Handler) streamSelection(c *gin.Context) {
	id, err := sessionID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	synchronizer, err := h.sessions.Acquire(id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// the upgrader has already replied
		log.GlobalLogger().WithContext(c.Request.Context()).Warnf("selection stream upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	states, stop := synchronizer.Watch()
	defer stop()

	// drain client frames so close and pong control messages are processed
	peerGone := make(chan struct{})
	go func() {
		defer close(peerGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	period := streamPingPeriod
	if half := h.sessions.TTL() / 2; half < period {
		period = half
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-peerGone:
			return
		case state, ok := <-states:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "selection session ended"),
					time.Now().Add(streamWriteWait))
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(state); err != nil {
				log.Debugf("selection stream write failed: %v", err)
				return
			}
		case <-ticker.C:
			h.sessions.Lookup(id)
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}
