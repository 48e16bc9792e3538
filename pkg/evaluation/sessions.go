// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package evaluation

import (
	"sync"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/cache"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const (
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 1000
)

var sessionGauge = metrics.NewGaugeVec("selection_sessions",
	"Viewer sessions holding a selection", nil)

type SessionOptions struct {
	TTL         time.Duration
	MaxSessions int
}

// Sessions gives every viewer session its own Synchronizer so one viewer's
// selection never replaces another's. All sessions share one result cache.
// A session ends on End, after TTL without access, or when evicted to make
// room; its Synchronizer is closed in every case.
type Sessions struct {
	source ResultSource
	cache  cache.ResultCache
	opts   Options
	ttl    time.Duration
	max    int

	mu     sync.Mutex
	store  *gocache.Cache
	closed bool
}

func NewSessions(source ResultSource, resultCache cache.ResultCache, opts Options, sessionOpts SessionOptions) *Sessions {
	if sessionOpts.TTL <= 0 {
		sessionOpts.TTL = DefaultSessionTTL
	}
	if sessionOpts.MaxSessions <= 0 {
		sessionOpts.MaxSessions = DefaultMaxSessions
	}
	s := &Sessions{
		source: source,
		cache:  resultCache,
		opts:   opts,
		ttl:    sessionOpts.TTL,
		max:    sessionOpts.MaxSessions,
		store:  gocache.New(sessionOpts.TTL, sessionOpts.TTL/2),
	}
	s.store.OnEvicted(func(id string, v interface{}) {
		log.Debugf("selection session %s ended", id)
		v.(*Synchronizer).Close()
		sessionGauge.Dec()
	})
	return s
}

// TTL is how long a session survives without access.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Acquire returns the session's Synchronizer, creating it on first use, and
// extends the session's lifetime.
func (s *Sessions) Acquire(id string) (*Synchronizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, errors.NewError().WithCode(errors.ServiceUnavailable).WithMessage("selection sessions are closed")
	}
	if v, ok := s.store.Get(id); ok {
		s.store.Set(id, v, s.ttl)
		return v.(*Synchronizer), nil
	}
	// an expired but unswept entry must still be closed
	s.store.Delete(id)
	s.store.DeleteExpired()
	if s.store.ItemCount() >= s.max {
		s.evictOldest()
	}
	synchronizer := New(s.source, s.cache, s.opts)
	s.store.Set(id, synchronizer, s.ttl)
	sessionGauge.Inc()
	return synchronizer, nil
}

// Lookup returns an existing session without creating one.
func (s *Sessions) Lookup(id string) (*Synchronizer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.store.Get(id)
	if !ok {
		return nil, false
	}
	s.store.Set(id, v, s.ttl)
	return v.(*Synchronizer), true
}

// End closes the session. It reports whether the session existed.
func (s *Sessions) End(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.store.Get(id)
	s.store.Delete(id)
	return ok
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.DeleteExpired()
	return s.store.ItemCount()
}

// Close ends every session. Acquire fails afterwards.
func (s *Sessions) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.store.DeleteExpired()
	for id := range s.store.Items() {
		s.store.Delete(id)
	}
}

func (s *Sessions) evictOldest() {
	var (
		oldestID  string
		oldestExp int64
	)
	for id, item := range s.store.Items() {
		if oldestID == "" || item.Expiration < oldestExp {
			oldestID = id
			oldestExp = item.Expiration
		}
	}
	if oldestID != "" {
		log.Infof("selection session %s evicted at capacity %d", oldestID, s.max)
		s.store.Delete(oldestID)
	}
}
