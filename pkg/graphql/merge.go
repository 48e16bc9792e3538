// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package graphql

import "sync"

// Merge fans several subscriptions into one. The merged stream closes once
// every source has closed; Unsubscribe tears down all sources.
func Merge(subs ...Subscription) Subscription {
	m := &mergedSubscription{
		subs:   subs,
		events: make(chan Message, eventBuffer),
		done:   make(chan struct{}),
	}
	var wg sync.WaitGroup
	for _, s := range subs {
		wg.Add(1)
		go func(s Subscription) {
			defer wg.Done()
			for msg := range s.Events() {
				select {
				case m.events <- msg:
				case <-m.done:
					return
				}
			}
		}(s)
	}
	go func() {
		wg.Wait()
		close(m.events)
	}()
	return m
}

type mergedSubscription struct {
	subs   []Subscription
	events chan Message
	done   chan struct{}
	once   sync.Once
}

func (m *mergedSubscription) Events() <-chan Message {
	return m.events
}

func (m *mergedSubscription) Unsubscribe() {
	m.once.Do(func() {
		close(m.done)
		for _, s := range m.subs {
			s.Unsubscribe()
		}
	})
}
