// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package evaluation

import (
	"context"
	"sync"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/cache"
	log "github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/metrics"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
)

const DefaultPageSize = 1000

var (
	staleDiscards = metrics.NewCounterVec("selection_stale_discards",
		"Asynchronous selection work dropped because the selection changed", []string{"stage"})
	pagesFetched = metrics.NewCounterVec("selection_pages",
		"Score result pages fetched for the current selection", nil)
)

type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseHydrating Phase = "hydrating"
	PhaseLive      Phase = "live"
)

// SelectionState is the published view of the current selection.
type SelectionState struct {
	EvaluationID string              `json:"evaluationId"`
	Phase        Phase               `json:"phase"`
	Generation   uint64              `json:"generation"`
	Results      []model.ScoreResult `json:"results"`
	Error        string              `json:"error,omitempty"`
}

func (s SelectionState) clone() SelectionState {
	if s.Results != nil {
		results := make([]model.ScoreResult, len(s.Results))
		copy(results, s.Results)
		s.Results = results
	}
	return s
}

type Options struct {
	PageSize int
	// Observer, when set, is called synchronously with every published state.
	// It must not call back into the Synchronizer.
	Observer func(SelectionState)
}

// Synchronizer tracks which evaluation is selected and keeps its score results
// loaded and live. Every asynchronous continuation carries the generation it
// was started under and is dropped if the selection has moved on.
type Synchronizer struct {
	source ResultSource
	cache  cache.ResultCache
	opts   Options

	mu          sync.Mutex
	generation  uint64
	state       SelectionState
	sub         ResultSubscription
	cancelFetch context.CancelFunc
	watchers    map[int]chan SelectionState
	nextID      int
	closed      bool

	wg sync.WaitGroup
}

func New(source ResultSource, resultCache cache.ResultCache, opts Options) *Synchronizer {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	return &Synchronizer{
		source:   source,
		cache:    resultCache,
		opts:     opts,
		state:    SelectionState{Phase: PhaseIdle},
		watchers: map[int]chan SelectionState{},
	}
}

// Select switches to evaluationID, or clears the selection when it is empty.
// Cached results for the new id are published before Select returns. The
// returned value is the generation of the new selection.
func (s *Synchronizer) Select(evaluationID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(evaluationID, false)
}

// Refresh reloads the current selection from scratch, keeping what is shown
// until the new list arrives.
func (s *Synchronizer) Refresh() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectLocked(s.state.EvaluationID, true)
}

func (s *Synchronizer) selectLocked(evaluationID string, keepResults bool) uint64 {
	if s.closed {
		return s.generation
	}
	s.generation++
	gen := s.generation
	s.detachLocked()

	if evaluationID == "" {
		s.state = SelectionState{Phase: PhaseIdle, Generation: gen}
		s.publishLocked()
		return gen
	}

	next := SelectionState{
		EvaluationID: evaluationID,
		Phase:        PhaseHydrating,
		Generation:   gen,
		Results:      []model.ScoreResult{},
	}
	if keepResults && s.state.EvaluationID == evaluationID {
		next.Results = s.state.Results
	}
	if cached, ok := s.cache.Get(evaluationID); ok {
		next.Results = cached
	}
	s.state = next
	s.publishLocked()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFetch = cancel
	s.wg.Add(1)
	go s.run(ctx, gen, evaluationID)
	return gen
}

// detachLocked tears down the work of the previous generation.
func (s *Synchronizer) detachLocked() {
	if s.cancelFetch != nil {
		s.cancelFetch()
		s.cancelFetch = nil
	}
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
}

func (s *Synchronizer) isCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation == gen
}

func (s *Synchronizer) run(ctx context.Context, gen uint64, evaluationID string) {
	defer s.wg.Done()
	if !s.hydrate(ctx, gen, evaluationID) {
		return
	}
	s.follow(ctx, gen, evaluationID)
}

// hydrate loads every page and publishes the merged list. It reports whether
// the selection went live.
func (s *Synchronizer) hydrate(ctx context.Context, gen uint64, evaluationID string) bool {
	var (
		all   []model.ScoreResult
		token *string
	)
	for {
		if !s.isCurrent(gen) {
			staleDiscards.Inc("page")
			return false
		}
		page, err := s.source.FetchPage(ctx, evaluationID, token, s.opts.PageSize)
		if !s.isCurrent(gen) {
			staleDiscards.Inc("page")
			return false
		}
		if err != nil {
			log.Warnf("evaluation %s: score result page fetch failed: %v", evaluationID, err)
			s.mu.Lock()
			if s.generation == gen {
				s.state.Error = err.Error()
				s.publishLocked()
			}
			s.mu.Unlock()
			return false
		}
		pagesFetched.Inc()
		all = append(all, page.Items...)
		if page.NextToken == nil || *page.NextToken == "" {
			break
		}
		token = page.NextToken
	}

	results := Normalize(all)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		staleDiscards.Inc("complete")
		return false
	}
	s.cache.Set(evaluationID, results)
	s.state.Results = results
	s.state.Phase = PhaseLive
	s.state.Error = ""
	s.publishLocked()
	log.Debugf("evaluation %s: hydrated %d score results (generation %d)", evaluationID, len(results), gen)
	return true
}

func (s *Synchronizer) follow(ctx context.Context, gen uint64, evaluationID string) {
	sub, err := s.source.Subscribe(ctx, evaluationID)

	s.mu.Lock()
	if s.generation != gen {
		s.mu.Unlock()
		if sub != nil {
			sub.Unsubscribe()
		}
		staleDiscards.Inc("subscribe")
		return
	}
	if err != nil {
		s.mu.Unlock()
		log.Warnf("evaluation %s: live updates unavailable: %v", evaluationID, err)
		return
	}
	s.sub = sub
	s.mu.Unlock()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				log.Infof("evaluation %s: live updates ended", evaluationID)
				return
			}
			s.apply(gen, evaluationID, ev)
		}
	}
}

func (s *Synchronizer) apply(gen uint64, evaluationID string, ev ResultEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		staleDiscards.Inc("event")
		return
	}
	if ev.Err != nil {
		log.Warnf("evaluation %s: subscription error: %v", evaluationID, ev.Err)
		return
	}

	var merged []model.ScoreResult
	switch ev.Kind {
	case EventSnapshot:
		merged = ev.Results
	case EventCreated, EventUpdated:
		merged = make([]model.ScoreResult, 0, len(s.state.Results)+len(ev.Results))
		merged = append(merged, s.state.Results...)
		merged = append(merged, ev.Results...)
	default:
		log.Warnf("evaluation %s: ignoring event of kind %q", evaluationID, ev.Kind)
		return
	}
	results := Normalize(merged)
	s.cache.Set(evaluationID, results)
	s.state.Results = results
	s.publishLocked()
}

func (s *Synchronizer) State() SelectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Watch streams published states, starting with the current one. Slow
// readers only see the latest state.
func (s *Synchronizer) Watch() (<-chan SelectionState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan SelectionState, 1)
	ch <- s.state.clone()
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	s.watchers[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.watchers[id]; ok {
				delete(s.watchers, id)
				close(ch)
			}
		})
	}
}

func (s *Synchronizer) publishLocked() {
	if s.opts.Observer != nil {
		s.opts.Observer(s.state.clone())
	}
	for _, ch := range s.watchers {
		select {
		case <-ch:
		default:
		}
		ch <- s.state.clone()
	}
}

// Close ends the session: the selection is cleared, live work is torn down
// and watchers are closed.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	s.detachLocked()
	s.state = SelectionState{Phase: PhaseIdle, Generation: s.generation}
	s.publishLocked()
	s.closed = true
	for id, ch := range s.watchers {
		delete(s.watchers, id)
		close(ch)
	}
	s.mu.Unlock()
	s.wg.Wait()
}
