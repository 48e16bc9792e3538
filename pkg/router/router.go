// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package router

import (
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/router/middleware"
	"github.com/gin-gonic/gin"
)

// GroupRegister attaches a set of handlers to the versioned API group.
type GroupRegister func(group *gin.RouterGroup) error

var (
	groupRegisters []GroupRegister
)

func RegisterGroup(group GroupRegister) {
	groupRegisters = append(groupRegisters, group)
}

// InitRouter installs the middleware chain on /v1, then the globally
// registered groups followed by extra.
func InitRouter(engine *gin.Engine, cfg *config.Config, extra ...GroupRegister) error {
	g := engine.Group("/v1")
	g.Use(middleware.HandleMetrics())
	if cfg.Middleware.IsLoggingEnabled() {
		log.Info("HTTP request logging middleware enabled")
		g.Use(middleware.HandleLogging())
	} else {
		log.Info("HTTP request logging middleware disabled")
	}

	g.Use(middleware.HandleErrors())

	if cfg.Middleware.IsTracingEnabled() {
		log.Info("Distributed tracing middleware enabled")
		g.Use(middleware.HandleTracing())
	} else {
		log.Info("Distributed tracing middleware disabled")
	}

	g.Use(middleware.CorsMiddleware())

	registers := append(append([]GroupRegister{}, groupRegisters...), extra...)
	for _, group := range registers {
		err := group(g)
		if err != nil {
			return err
		}
	}
	return nil
}
