// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/aggregation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/api"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/cache"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/evaluation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metricscontroller"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/router"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/trace"
	"github.com/gin-gonic/gin"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serviceName     = "evaluation-dashboard"
	wsAckTimeout    = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

// App holds the wired components behind the HTTP engine.
type App struct {
	Config    *config.Config
	Engine    *gin.Engine
	Registry  *metricscontroller.Registry
	Sessions  *evaluation.Sessions

	closers []func()
}

// NewApp builds every component from cfg. Background work is bound to ctx.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	client := graphql.NewHTTPClient(graphql.HTTPConfig{
		Endpoint:   cfg.GraphQL.Endpoint,
		APIKey:     cfg.GraphQL.APIKey,
		Timeout:    cfg.GraphQL.Timeout,
		RetryCount: cfg.GraphQL.RetryCount,
	}, graphql.NewWSSubscriber(wsEndpoint(cfg.GraphQL), cfg.GraphQL.APIKey, wsAckTimeout))

	var (
		fetcher aggregation.Fetcher
		store   database.AggregatedMetricFacadeInterface
	)
	switch cfg.Aggregation.Source {
	case config.AggregationSourceDatabase:
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			app.closers = append(app.closers, func() { _ = sqlDB.Close() })
		}
		store = database.NewAggregatedMetricFacade(db)
		fetcher = aggregation.NewStoreFetcher(store, cfg.Aggregation.Limit)
		if cfg.Database != nil && cfg.Database.Retention > 0 {
			if _, err := NewRetentionJob(store, cfg.Database.Retention).Schedule(ctx); err != nil {
				app.Close()
				return nil, errors.WrapError(err, "schedule retention", errors.CodeInitializeError)
			}
		}
	default:
		fetcher = aggregation.NewGraphQLFetcher(client, cfg.Aggregation.Limit)
	}

	app.Registry = metricscontroller.NewRegistry(ctx, fetcher,
		func(primary, secondary model.RecordType) metricscontroller.ChangeFeed {
			return metricscontroller.NewGraphQLChangeFeed(client, primary, secondary)
		},
		metricscontroller.Options{
			AccountID:       cfg.AccountId,
			FloorOverrides:  cfg.Metrics.Floors,
			RefreshInterval: cfg.Metrics.RefreshInterval,
			Debounce:        cfg.Metrics.Debounce,
			MaxWait:         cfg.Metrics.MaxWait,
		})
	app.closers = append(app.closers, app.Registry.StopAll)

	source := evaluation.NewGraphQLSource(client)
	// one synchronizer per viewer session, all sharing one result cache
	app.Sessions = evaluation.NewSessions(source, cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL),
		evaluation.Options{PageSize: cfg.Selection.PageSize},
		evaluation.SessionOptions{TTL: cfg.Selection.SessionTTL, MaxSessions: cfg.Selection.MaxSessions})
	app.closers = append(app.closers, app.Sessions.Close)

	handler := api.NewHandler(cfg.AccountId, app.Registry, app.Sessions, source, aggregation.NewQuerier(fetcher))
	if store != nil {
		handler.WithStore(store)
	}

	app.Engine = gin.New()
	app.Engine.Use(gin.Recovery())
	if err := router.InitRouter(app.Engine, cfg, handler.RegisterRouter); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Close stops background work in reverse construction order.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// wsEndpoint falls back to the query endpoint with a websocket scheme.
func wsEndpoint(cfg config.GraphQLConfig) string {
	if cfg.WSEndpoint != "" {
		return cfg.WSEndpoint
	}
	switch {
	case strings.HasPrefix(cfg.Endpoint, "https://"):
		return "wss://" + strings.TrimPrefix(cfg.Endpoint, "https://")
	case strings.HasPrefix(cfg.Endpoint, "http://"):
		return "ws://" + strings.TrimPrefix(cfg.Endpoint, "http://")
	}
	return cfg.Endpoint
}

func InitServer(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	return Run(ctx, cfg)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	var err error
	if err = log.InitGlobalLogger(cfg.Log); err != nil {
		return errors.WrapError(err, "init logger", errors.CodeInitializeError)
	}
	if cfg.Middleware.IsTracingEnabled() {
		var opts []sdktrace.TracerProviderOption
		if endpoint := trace.ExportEndpoint(cfg.Trace.Endpoint); endpoint != "" {
			opts, err = trace.OTLPOptions(ctx, serviceName, endpoint)
			if err != nil {
				// keep serving; spans still stamp response ids
				log.Errorf("Failed to configure OTLP exporter, spans stay local: %v", err)
			}
		}
		trace.InitTracer(serviceName, cfg.Trace.SamplingRatio, opts...)
		defer func() {
			if err := trace.CloseTracer(); err != nil {
				log.Errorf("Failed to close tracer: %v", err)
			}
		}()
	}

	app, err := NewApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	AddDefaultRegister("/health", func() (interface{}, error) {
		return gin.H{
			"status":      "ok",
			"controllers": app.Registry.Len(),
			"sessions":    app.Sessions.Len(),
		}, nil
	})
	InitHealthServer(cfg.HttpPort + 1)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HttpPort),
		Handler: app.Engine,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("API server listening on %s (account=%s, aggregation=%s)", srv.Addr, cfg.AccountId, cfg.Aggregation.Source)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.WrapError(err, "serve api", errors.InternalError)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapError(err, "shutdown api", errors.InternalError)
	}
	return nil
}
