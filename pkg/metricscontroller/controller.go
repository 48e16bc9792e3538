// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metricscontroller

import (
	"context"
	"sync"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/aggregation"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/calculator"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metrics"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/utils/debounce"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultRefreshInterval = 30 * time.Second
	DefaultDebounce        = 500 * time.Millisecond
	// a steady change stream still refreshes once per this many debounce windows
	defaultMaxWaitWindows = 10
)

var (
	refreshCounter = metrics.NewCounterVec("metrics_refresh",
		"Metrics controller refreshes by family and result", []string{"family", "result"})
	refreshDuration = metrics.NewGaugeVec("metrics_refresh_duration",
		"Duration in seconds of the last metrics refresh", []string{"family"}, metrics.WithoutSuffix())
)

// State is what consumers observe. Data is nil until the first successful
// refresh; a failed refresh sets Error and keeps the previous Data.
type State struct {
	Data      *model.MetricsSnapshot `json:"data"`
	IsLoading bool                   `json:"isLoading"`
	Error     string                 `json:"error,omitempty"`
}

func (s State) clone() State {
	s.Data = s.Data.Clone()
	return s
}

type Options struct {
	AccountID       string
	Family          Family
	Filter          FilterOptions
	FloorOverrides  map[string]int
	RefreshInterval time.Duration
	Debounce        time.Duration
	// MaxWait caps how long change events can keep postponing a refresh.
	MaxWait time.Duration
	// Now is the clock used to anchor each refresh.
	Now func() time.Time
}

// Controller keeps one family's snapshot fresh.
type Controller struct {
	fetcher aggregation.Fetcher
	feed    ChangeFeed
	opts    Options

	primary   model.RecordType
	secondary model.RecordType
	floors    calculator.Floors

	refreshMu sync.Mutex

	mu       sync.RWMutex
	state    State
	watchers map[int]chan State
	nextID   int

	lifecycleMu sync.Mutex
	cancel      context.CancelFunc
	cron        *cron.Cron
	debouncer   *debounce.Debouncer

	// runMu guards running and every wg.Add made by a background trigger
	runMu   sync.Mutex
	running bool
	wg      sync.WaitGroup
}

func New(fetcher aggregation.Fetcher, feed ChangeFeed, opts Options) (*Controller, error) {
	primary, secondary, err := ResolveRecordTypes(opts.Family, opts.Filter)
	if err != nil {
		return nil, err
	}
	if opts.AccountID == "" {
		return nil, errors.NewError().WithCode(errors.RequestParameterInvalid).WithMessage("account id is required")
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = DefaultRefreshInterval
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = defaultMaxWaitWindows * opts.Debounce
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Filter = opts.Filter.normalize()
	return &Controller{
		fetcher:   fetcher,
		feed:      feed,
		opts:      opts,
		primary:   primary,
		secondary: secondary,
		floors:    FloorsFromConfig(opts.Family, primary, secondary, opts.FloorOverrides),
		watchers:  map[int]chan State{},
	}, nil
}

func (c *Controller) RecordTypes() (model.RecordType, model.RecordType) {
	return c.primary, c.secondary
}

// Start runs an initial refresh and wires the periodic and change-driven
// triggers. It is a no-op when already started.
func (c *Controller) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()
	if c.cancel != nil {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	background := func() {
		c.runBackground(runCtx)
	}
	c.debouncer = debounce.New(c.opts.Debounce, background, debounce.WithMaxWait(c.opts.MaxWait))

	// the periodic tick bypasses the debouncer so change events cannot postpone it
	c.cron = cron.New()
	if _, err := c.cron.AddFunc("@every "+c.opts.RefreshInterval.String(), background); err != nil {
		cancel()
		return errors.WrapError(err, "schedule metrics refresh", errors.CodeInitializeError)
	}
	c.cancel = cancel
	c.runMu.Lock()
	c.running = true
	c.runMu.Unlock()
	c.cron.Start()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.refresh(runCtx)
	}()

	if c.feed != nil {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			c.watchChanges(runCtx)
		}()
	}
	log.Infof("Metrics controller started: family=%s primary=%s secondary=%s interval=%s",
		c.opts.Family, c.primary, c.secondary, c.opts.RefreshInterval)
	return nil
}

func (c *Controller) Stop() {
	c.lifecycleMu.Lock()
	if c.cancel == nil {
		c.lifecycleMu.Unlock()
		return
	}
	c.runMu.Lock()
	c.running = false
	c.runMu.Unlock()
	c.cancel()
	c.cancel = nil
	<-c.cron.Stop().Done()
	c.debouncer.Stop()
	c.lifecycleMu.Unlock()
	c.wg.Wait()
}

// runBackground refreshes on behalf of a timer or change trigger. Once Stop
// has begun it does nothing, so no refresh publishes after Stop returns.
func (c *Controller) runBackground(ctx context.Context) {
	c.runMu.Lock()
	if !c.running || ctx.Err() != nil {
		c.runMu.Unlock()
		return
	}
	c.wg.Add(1)
	c.runMu.Unlock()
	defer c.wg.Done()
	c.refresh(ctx)
}

func (c *Controller) watchChanges(ctx context.Context) {
	sub, err := c.feed.Changes(ctx, c.opts.AccountID)
	if err != nil {
		log.Warnf("metrics %s: change feed unavailable, relying on timer: %v", c.opts.Family, err)
		return
	}
	defer sub.Unsubscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Events():
			if !ok {
				log.Warnf("metrics %s: change feed closed, relying on timer", c.opts.Family)
				return
			}
			if msg.Err != nil {
				log.Warnf("metrics %s: change feed error: %v", c.opts.Family, msg.Err)
				continue
			}
			c.debouncer.Trigger()
		}
	}
}

// Refetch refreshes synchronously and returns the resulting state.
func (c *Controller) Refetch(ctx context.Context) State {
	c.refresh(ctx)
	return c.State()
}

func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

// Watch streams every published state. Slow readers only see the latest one.
func (c *Controller) Watch() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	ch := make(chan State, 1)
	c.watchers[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.watchers, id)
			close(ch)
		})
	}
}

func (c *Controller) refresh(ctx context.Context) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.update(func(s *State) { s.IsLoading = true })

	started := time.Now()
	now := c.opts.Now()
	since := now.Add(-24 * time.Hour)

	var primary, secondary []model.AggregatedMetricRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := c.fetcher.FetchAggregatedMetrics(gctx, c.opts.AccountID, c.primary, since, now)
		primary = records
		return err
	})
	g.Go(func() error {
		records, err := c.fetcher.FetchAggregatedMetrics(gctx, c.opts.AccountID, c.secondary, since, now)
		secondary = records
		return err
	})
	err := g.Wait()
	refreshDuration.Set(time.Since(started).Seconds(), string(c.opts.Family))

	if err != nil && ctx.Err() != nil {
		// shutting down or caller went away; leave the last state as is
		c.update(func(s *State) { s.IsLoading = false })
		return
	}
	if err != nil {
		refreshCounter.Inc(string(c.opts.Family), "error")
		log.GlobalLogger().WithContext(ctx).Warnf("metrics %s refresh failed: %v", c.opts.Family, err)
		c.update(func(s *State) {
			s.IsLoading = false
			s.Error = err.Error()
		})
		return
	}

	snapshot := calculator.Summarize(now, string(c.opts.Family), primary, secondary, c.floors)
	refreshCounter.Inc(string(c.opts.Family), "success")
	c.update(func(s *State) {
		s.Data = &snapshot
		s.IsLoading = false
		s.Error = ""
	})
}

// update applies fn to a copy of the state and publishes the result as one value.
func (c *Controller) update(fn func(s *State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	fn(&next)
	c.state = next
	for _, ch := range c.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- next.clone()
	}
}
