// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metricscontroller

import (
	"context"
	"fmt"
	"sync"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/aggregation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

// FeedFactory builds the change feed for a controller's series.
type FeedFactory func(primary, secondary model.RecordType) ChangeFeed

// Registry lazily creates and starts one controller per family and filter.
type Registry struct {
	ctx     context.Context
	fetcher aggregation.Fetcher
	feeds   FeedFactory
	base    Options

	mu          sync.Mutex
	controllers map[string]*Controller
}

func NewRegistry(ctx context.Context, fetcher aggregation.Fetcher, feeds FeedFactory, base Options) *Registry {
	return &Registry{
		ctx:         ctx,
		fetcher:     fetcher,
		feeds:       feeds,
		base:        base,
		controllers: map[string]*Controller{},
	}
}

func registryKey(family Family, filter FilterOptions) string {
	filter = filter.normalize()
	return fmt.Sprintf("%s/%s/%s", family, filter.ItemType, filter.ScoreResultType)
}

func (r *Registry) Get(family Family, filter FilterOptions) (*Controller, error) {
	key := registryKey(family, filter)
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.controllers[key]; ok {
		return c, nil
	}

	opts := r.base
	opts.Family = family
	opts.Filter = filter
	primary, secondary, err := ResolveRecordTypes(family, filter)
	if err != nil {
		return nil, err
	}
	var feed ChangeFeed
	if r.feeds != nil {
		feed = r.feeds(primary, secondary)
	}
	c, err := New(r.fetcher, feed, opts)
	if err != nil {
		return nil, err
	}
	if err := c.Start(r.ctx); err != nil {
		return nil, err
	}
	r.controllers[key] = c
	return c, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.controllers)
}

func (r *Registry) StopAll() {
	r.mu.Lock()
	controllers := r.controllers
	r.controllers = map[string]*Controller{}
	r.mu.Unlock()
	for _, c := range controllers {
		c.Stop()
	}
}
