// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package metricscontroller

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/graphql"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

type stubSubscription struct {
	ch   chan graphql.Message
	once sync.Once
	done int32
}

func newStubSubscription() *stubSubscription {
	return &stubSubscription{ch: make(chan graphql.Message, 16)}
}

func (s *stubSubscription) Events() <-chan graphql.Message { return s.ch }

func (s *stubSubscription) Unsubscribe() {
	s.once.Do(func() { atomic.StoreInt32(&s.done, 1) })
}

func (s *stubSubscription) isUnsubscribed() bool { return atomic.LoadInt32(&s.done) == 1 }

type stubFeed struct {
	sub *stubSubscription
	err error
}

func (f *stubFeed) Changes(context.Context, string) (graphql.Subscription, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sub, nil
}

// fakeFetcher returns one complete bucket in the previous hour per record type.
type fakeFetcher struct {
	mu     sync.Mutex
	calls  int
	fail   bool
	counts map[model.RecordType]int
}

func (f *fakeFetcher) FetchAggregatedMetrics(_ context.Context, accountID string, rt model.RecordType, start, end time.Time) ([]model.AggregatedMetricRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.fail {
		return nil, stderrors.New("store unavailable")
	}
	hour := end.Truncate(time.Hour)
	return []model.AggregatedMetricRecord{{
		AccountID:      accountID,
		RecordType:     rt,
		TimeRangeStart: hour.Add(-time.Hour),
		TimeRangeEnd:   hour,
		Count:          f.counts[rt],
		ErrorCount:     1,
		Complete:       true,
	}}, nil
}

func (f *fakeFetcher) setFail(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail = v
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestController(t *testing.T, fetcher *fakeFetcher, feed ChangeFeed) *Controller {
	t.Helper()
	c, err := New(fetcher, feed, Options{
		AccountID:       "acct",
		Family:          FamilyItems,
		RefreshInterval: time.Hour,
		Debounce:        20 * time.Millisecond,
		Now:             func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return c
}

func TestController_New(t *testing.T) {
	_, err := New(&fakeFetcher{}, nil, Options{AccountID: "acct", Family: "bogus"})
	assert.Error(t, err)
	_, err = New(&fakeFetcher{}, nil, Options{Family: FamilyItems})
	assert.Error(t, err)
}

func TestController_InitialState(t *testing.T) {
	c := newTestController(t, &fakeFetcher{}, nil)
	s := c.State()
	assert.Nil(t, s.Data)
	assert.False(t, s.IsLoading)
	assert.Empty(t, s.Error)
}

func TestController_Refetch(t *testing.T) {
	fetcher := &fakeFetcher{counts: map[model.RecordType]int{
		model.RecordTypeItems:        12,
		model.RecordTypeScoreResults: 480,
	}}
	c := newTestController(t, fetcher, nil)

	s := c.Refetch(context.Background())
	require.NotNil(t, s.Data)
	assert.Empty(t, s.Error)
	assert.False(t, s.IsLoading)
	assert.Equal(t, 2, fetcher.callCount())

	assert.Equal(t, "items", s.Data.Family)
	assert.Equal(t, 12, s.Data.PrimaryPerHour)
	assert.Equal(t, 480, s.Data.SecondaryTotal24h)
	assert.Equal(t, 50, s.Data.PrimaryPeakHourly)
	assert.Equal(t, 480, s.Data.SecondaryPeakHourly)
	assert.Equal(t, 2, s.Data.TotalErrors24h)
	assert.Len(t, s.Data.ChartData, 24)
	assert.Equal(t, fixedNow, s.Data.LastUpdated)
}

func TestController_FirstLoadFailure(t *testing.T) {
	fetcher := &fakeFetcher{fail: true}
	c := newTestController(t, fetcher, nil)

	s := c.Refetch(context.Background())
	assert.Nil(t, s.Data)
	assert.Contains(t, s.Error, "store unavailable")
}

func TestController_ErrorPreservesData(t *testing.T) {
	fetcher := &fakeFetcher{counts: map[model.RecordType]int{model.RecordTypeItems: 7}}
	c := newTestController(t, fetcher, nil)

	first := c.Refetch(context.Background())
	require.NotNil(t, first.Data)

	fetcher.setFail(true)
	failed := c.Refetch(context.Background())
	require.NotNil(t, failed.Data)
	assert.Equal(t, first.Data, failed.Data)
	assert.NotEmpty(t, failed.Error)

	fetcher.setFail(false)
	recovered := c.Refetch(context.Background())
	assert.Empty(t, recovered.Error)
	assert.Equal(t, 7, recovered.Data.PrimaryPerHour)
}

func TestController_StateIsACopy(t *testing.T) {
	c := newTestController(t, &fakeFetcher{}, nil)
	s := c.Refetch(context.Background())
	s.Data.ChartData[0].Primary = 1000
	s.Data.PrimaryPerHour = 1000

	again := c.State()
	assert.Equal(t, 0, again.Data.ChartData[0].Primary)
	assert.Equal(t, 0, again.Data.PrimaryPerHour)
}

func TestController_ConcurrentRefreshesNeverTear(t *testing.T) {
	fetcher := &fakeFetcher{counts: map[model.RecordType]int{model.RecordTypeItems: 3, model.RecordTypeScoreResults: 9}}
	c := newTestController(t, fetcher, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Refetch(context.Background())
		}()
	}
	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				s := c.State()
				if s.Data != nil {
					assert.Equal(t, 3, s.Data.PrimaryPerHour)
					assert.Equal(t, 9, s.Data.SecondaryPerHour)
				}
			}
		}
	}()
	wg.Wait()
	close(stop)
	assert.Equal(t, 16, fetcher.callCount())
}

func TestController_Watch(t *testing.T) {
	c := newTestController(t, &fakeFetcher{}, nil)
	ch, cancel := c.Watch()
	defer cancel()

	c.Refetch(context.Background())
	var last State
	require.Eventually(t, func() bool {
		select {
		case last = <-ch:
		default:
		}
		return last.Data != nil && !last.IsLoading
	}, time.Second, 5*time.Millisecond)

	cancel()
	cancel()
	for range ch {
	}
	_, open := <-ch
	assert.False(t, open)
}

func TestController_StartAndChangeFeed(t *testing.T) {
	fetcher := &fakeFetcher{}
	sub := newStubSubscription()
	c := newTestController(t, fetcher, &stubFeed{sub: sub})

	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Start(context.Background()))

	// initial refresh
	require.Eventually(t, func() bool { return fetcher.callCount() == 2 }, time.Second, 5*time.Millisecond)

	// a burst of change events coalesces into one refresh
	for i := 0; i < 5; i++ {
		sub.ch <- graphql.Message{Data: []byte(`{}`)}
	}
	require.Eventually(t, func() bool { return fetcher.callCount() == 4 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 4, fetcher.callCount())

	// subscription errors are logged, data is kept
	sub.ch <- graphql.Message{Err: stderrors.New("socket reset")}
	time.Sleep(60 * time.Millisecond)
	assert.NotNil(t, c.State().Data)
	assert.Equal(t, 4, fetcher.callCount())

	c.Stop()
	c.Stop()
	assert.True(t, sub.isUnsubscribed())
}

func TestController_PeriodicRefresh(t *testing.T) {
	fetcher := &fakeFetcher{}
	c, err := New(fetcher, nil, Options{
		AccountID:       "acct",
		Family:          FamilyItems,
		RefreshInterval: time.Second,
		Now:             func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	// initial refresh plus at least two ticks, two fetches each
	require.Eventually(t, func() bool { return fetcher.callCount() >= 6 }, 5*time.Second, 20*time.Millisecond)
}

func TestController_PeriodicRefreshUnderSteadyChanges(t *testing.T) {
	fetcher := &fakeFetcher{}
	sub := newStubSubscription()
	c, err := New(fetcher, &stubFeed{sub: sub}, Options{
		AccountID:       "acct",
		Family:          FamilyItems,
		RefreshInterval: time.Second,
		Debounce:        300 * time.Millisecond,
		MaxWait:         time.Hour,
		Now:             func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	require.Eventually(t, func() bool { return fetcher.callCount() == 2 }, time.Second, 5*time.Millisecond)

	// a change every 100ms keeps the debounce window from ever closing
	done := make(chan struct{})
	var sender sync.WaitGroup
	sender.Add(1)
	go func() {
		defer sender.Done()
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case sub.ch <- graphql.Message{Data: []byte(`{}`)}:
				default:
				}
			}
		}
	}()
	defer func() {
		close(done)
		sender.Wait()
		c.Stop()
	}()

	require.Eventually(t, func() bool { return fetcher.callCount() >= 6 }, 5*time.Second, 20*time.Millisecond)
}

func TestController_NoPublishAfterStop(t *testing.T) {
	fetcher := &fakeFetcher{}
	sub := newStubSubscription()
	c := newTestController(t, fetcher, &stubFeed{sub: sub})
	require.NoError(t, c.Start(context.Background()))
	require.Eventually(t, func() bool { return fetcher.callCount() == 2 }, time.Second, 5*time.Millisecond)

	ch, cancel := c.Watch()
	defer cancel()

	sub.ch <- graphql.Message{Data: []byte(`{}`)}
	time.Sleep(25 * time.Millisecond)
	sub.ch <- graphql.Message{Data: []byte(`{}`)}
	c.Stop()

	calls := fetcher.callCount()
	select {
	case <-ch:
	default:
	}
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, calls, fetcher.callCount())
	select {
	case s := <-ch:
		t.Fatalf("state published after Stop: %+v", s)
	default:
	}
}

func TestController_FeedUnavailable(t *testing.T) {
	fetcher := &fakeFetcher{}
	c := newTestController(t, fetcher, &stubFeed{err: stderrors.New("no websocket")})
	require.NoError(t, c.Start(context.Background()))
	defer c.Stop()

	require.Eventually(t, func() bool { return c.State().Data != nil }, time.Second, 5*time.Millisecond)
}

func TestRegistry(t *testing.T) {
	fetcher := &fakeFetcher{}
	var feedsBuilt int32
	r := NewRegistry(context.Background(), fetcher, func(primary, secondary model.RecordType) ChangeFeed {
		atomic.AddInt32(&feedsBuilt, 1)
		return nil
	}, Options{AccountID: "acct", RefreshInterval: time.Hour, Debounce: 10 * time.Millisecond})
	defer r.StopAll()

	a, err := r.Get(FamilyItems, FilterOptions{})
	require.NoError(t, err)
	b, err := r.Get(FamilyItems, FilterOptions{ItemType: FilterAll, ScoreResultType: FilterAll})
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := r.Get(FamilyItems, FilterOptions{ItemType: FilterPrediction})
	require.NoError(t, err)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, int32(2), atomic.LoadInt32(&feedsBuilt))

	_, err = r.Get(Family("nope"), FilterOptions{})
	assert.Error(t, err)
}
