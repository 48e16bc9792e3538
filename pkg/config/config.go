// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/conf"
	"gopkg.in/yaml.v2"
)

const (
	AggregationSourceGraphQL  = "graphql"
	AggregationSourceDatabase = "database"
)

type Config struct {
	HttpPort    int               `json:"httpPort" yaml:"httpPort"`
	AccountId   string            `json:"accountId" yaml:"accountId"`
	Log         *conf.LogConfig   `json:"log" yaml:"log"`
	GraphQL     GraphQLConfig     `json:"graphql" yaml:"graphql"`
	Aggregation AggregationConfig `json:"aggregation" yaml:"aggregation"`
	Database    *DatabaseConfig   `json:"database" yaml:"database"`
	Metrics     MetricsConfig     `json:"metrics" yaml:"metrics"`
	Selection   SelectionConfig   `json:"selection" yaml:"selection"`
	Cache       CacheConfig       `json:"cache" yaml:"cache"`
	Middleware  MiddlewareConfig  `json:"middleware" yaml:"middleware"`
	Trace       TraceConfig       `json:"trace" yaml:"trace"`
}

type GraphQLConfig struct {
	Endpoint   string        `json:"endpoint" yaml:"endpoint"`
	WSEndpoint string        `json:"wsEndpoint" yaml:"wsEndpoint"`
	APIKey     string        `json:"apiKey" yaml:"apiKey"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	RetryCount int           `json:"retryCount" yaml:"retryCount"`
}

type AggregationConfig struct {
	// Source is either "graphql" or "database".
	Source string `json:"source" yaml:"source"`
	Limit  int    `json:"limit" yaml:"limit"`
}

type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"` // postgres or sqlite
	DSN    string `json:"dsn" yaml:"dsn"`
	// Retention bounds how long aggregated records are kept; zero disables cleanup.
	Retention time.Duration `json:"retention" yaml:"retention"`
}

type MetricsConfig struct {
	RefreshInterval time.Duration  `json:"refreshInterval" yaml:"refreshInterval"`
	Debounce        time.Duration  `json:"debounce" yaml:"debounce"`
	MaxWait         time.Duration  `json:"maxWait" yaml:"maxWait"`
	Floors          map[string]int `json:"floors" yaml:"floors"`
}

type SelectionConfig struct {
	PageSize int `json:"pageSize" yaml:"pageSize"`
	// SessionTTL ends a viewer session after this long without a request or
	// an open stream.
	SessionTTL  time.Duration `json:"sessionTTL" yaml:"sessionTTL"`
	MaxSessions int           `json:"maxSessions" yaml:"maxSessions"`
}

type CacheConfig struct {
	MaxEntries int           `json:"maxEntries" yaml:"maxEntries"`
	TTL        time.Duration `json:"ttl" yaml:"ttl"`
}

type MiddlewareConfig struct {
	Logging *bool `json:"logging" yaml:"logging"`
	Tracing *bool `json:"tracing" yaml:"tracing"`
}

// TraceConfig is read only when tracing middleware is enabled. Without an
// endpoint spans are kept in-process and only stamp ids on responses.
type TraceConfig struct {
	Endpoint      string  `json:"endpoint" yaml:"endpoint"`
	SamplingRatio float64 `json:"samplingRatio" yaml:"samplingRatio"`
}

func (m MiddlewareConfig) IsLoggingEnabled() bool {
	return m.Logging == nil || *m.Logging
}

func (m MiddlewareConfig) IsTracingEnabled() bool {
	return m.Tracing != nil && *m.Tracing
}

// ApplyDefaults fills every unset field with the service default.
func (c *Config) ApplyDefaults() {
	if c.HttpPort == 0 {
		c.HttpPort = 8989
	}
	if c.Log == nil {
		c.Log = conf.DefaultConfig()
	}
	if c.GraphQL.Timeout == 0 {
		c.GraphQL.Timeout = 30 * time.Second
	}
	if c.GraphQL.RetryCount == 0 {
		c.GraphQL.RetryCount = 2
	}
	if c.Aggregation.Source == "" {
		c.Aggregation.Source = AggregationSourceGraphQL
	}
	if c.Aggregation.Limit == 0 {
		c.Aggregation.Limit = 1000
	}
	if c.Metrics.RefreshInterval == 0 {
		c.Metrics.RefreshInterval = 30 * time.Second
	}
	if c.Metrics.Debounce == 0 {
		c.Metrics.Debounce = 500 * time.Millisecond
	}
	if c.Selection.PageSize == 0 {
		c.Selection.PageSize = 1000
	}
	if c.Selection.SessionTTL == 0 {
		c.Selection.SessionTTL = 30 * time.Minute
	}
	if c.Selection.MaxSessions == 0 {
		c.Selection.MaxSessions = 1000
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 256
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 30 * time.Minute
	}
	if c.Trace.SamplingRatio == 0 {
		c.Trace.SamplingRatio = 1
	}
}

func (c *Config) Validate() error {
	if c.AccountId == "" {
		return errors.NewError().WithCode(errors.CodeLackOfConfig).WithMessage("accountId is required")
	}
	// score results and change events always come from graphql
	if c.GraphQL.Endpoint == "" {
		return errors.NewError().WithCode(errors.CodeLackOfConfig).WithMessage("graphql.endpoint is required")
	}
	switch c.Aggregation.Source {
	case AggregationSourceGraphQL:
	case AggregationSourceDatabase:
		if c.Database == nil || c.Database.DSN == "" {
			return errors.NewError().WithCode(errors.CodeLackOfConfig).
				WithMessage("database.dsn is required when aggregation.source is database")
		}
	default:
		return errors.NewError().WithCode(errors.CodeLackOfConfig).
			WithMessage(fmt.Sprintf("unknown aggregation.source %q", c.Aggregation.Source))
	}
	return nil
}

func LoadConfig() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	return LoadConfigFile(configPath)
}

func LoadConfigFile(configPath string) (*Config, error) {
	configFile, err := os.Open(configPath)
	if err != nil {
		return nil, errors.NewError().
			WithCode(errors.CodeInitializeError).
			WithMessage("failed to open config file").
			WithError(err)
	}
	defer configFile.Close()

	cfg := &Config{}
	decoder := yaml.NewDecoder(configFile)
	if err = decoder.Decode(cfg); err != nil {
		return nil, errors.NewError().
			WithCode(errors.CodeInitializeError).
			WithMessage("failed to parse config file").
			WithError(err)
	}
	cfg.ApplyDefaults()
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
