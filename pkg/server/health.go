// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once     sync.Once
	engineMu sync.Mutex
	engine   *gin.Engine

	registersMu sync.Mutex
	registers   = []func(g *gin.RouterGroup){addMetrics}

	defaultGather prometheus.Gatherer = prometheus.DefaultGatherer
)

// SetDefaultGather replaces the gatherer served on /metrics.
func SetDefaultGather(g prometheus.Gatherer) {
	defaultGather = g
}

func AddRegister(register func(g *gin.RouterGroup)) {
	registersMu.Lock()
	defer registersMu.Unlock()
	registers = append(registers, register)
}

// AddDefaultRegister serves GET path with the JSON value returned by fn. An
// error from fn answers 503.
func AddDefaultRegister(path string, fn func() (interface{}, error)) {
	AddRegister(func(g *gin.RouterGroup) {
		g.GET(path, func(c *gin.Context) {
			data, err := fn()
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, data)
		})
	})
}

func addMetrics(g *gin.RouterGroup) {
	g.GET("/metrics", gin.WrapH(promhttp.HandlerFor(defaultGather, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})))
}

// InitHealthServer starts the health and metrics listener once.
func InitHealthServer(port int) {
	once.Do(func() {
		engineMu.Lock()
		engine = gin.New()
		engine.Use(gin.Recovery())
		group := engine.Group("")
		registersMu.Lock()
		for _, register := range registers {
			register(group)
		}
		registersMu.Unlock()
		e := engine
		engineMu.Unlock()

		go func() {
			log.Infof("Health server listening on :%d", port)
			if err := e.Run(fmt.Sprintf(":%d", port)); err != nil {
				log.Errorf("health server stopped: %v", err)
			}
		}()
	})
}
