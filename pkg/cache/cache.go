// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package cache

import (
	"sync"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metrics"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultMaxEntries = 256
	DefaultTTL        = 30 * time.Minute
)

var requestCounter = metrics.NewCounterVec("result_cache_requests",
	"Score result cache lookups by result (hit|miss)", []string{"result"})

// ResultCache maps an evaluation id to its last known score result list.
type ResultCache interface {
	Get(evaluationID string) ([]model.ScoreResult, bool)
	Set(evaluationID string, results []model.ScoreResult)
}

// Cache is a bounded ResultCache. Entries expire after ttl without access and
// a Set on a full cache evicts the entry closest to expiry.
type Cache struct {
	mu         sync.Mutex
	store      *gocache.Cache
	ttl        time.Duration
	maxEntries int
}

func New(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		store:      gocache.New(ttl, ttl*2),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

func (c *Cache) Get(evaluationID string) ([]model.ScoreResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.store.Get(evaluationID)
	if !ok {
		requestCounter.Inc("miss")
		return nil, false
	}
	requestCounter.Inc("hit")
	results := v.([]model.ScoreResult)
	// sliding expiry
	c.store.Set(evaluationID, results, c.ttl)
	return clone(results), true
}

func (c *Cache) Set(evaluationID string, results []model.ScoreResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.store.Get(evaluationID); !exists {
		// ItemCount includes expired entries the janitor has not swept yet
		c.store.DeleteExpired()
		if c.store.ItemCount() >= c.maxEntries {
			c.evictOldest()
		}
	}
	c.store.Set(evaluationID, clone(results), c.ttl)
}

func (c *Cache) Delete(evaluationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.Delete(evaluationID)
}

func (c *Cache) Len() int {
	return c.store.ItemCount()
}

func (c *Cache) evictOldest() {
	var (
		oldestKey string
		oldestExp int64
	)
	for k, item := range c.store.Items() {
		if oldestKey == "" || item.Expiration < oldestExp {
			oldestKey = k
			oldestExp = item.Expiration
		}
	}
	if oldestKey != "" {
		c.store.Delete(oldestKey)
	}
}

func clone(results []model.ScoreResult) []model.ScoreResult {
	if results == nil {
		return nil
	}
	out := make([]model.ScoreResult, len(results))
	copy(out, results)
	return out
}
