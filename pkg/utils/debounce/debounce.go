// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package debounce

import (
	"sync"
	"time"
)

type Option func(*Debouncer)

// WithMaxWait bounds how long a pending invocation can be pushed back by a
// steady stream of triggers. Zero means unbounded.
func WithMaxWait(d time.Duration) Option {
	return func(db *Debouncer) {
		db.maxWait = d
	}
}

// Debouncer coalesces bursts of Trigger calls into a single invocation of fn,
// fired once the window has passed without a new trigger or maxWait after the
// first pending trigger, whichever comes first.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	maxWait time.Duration
	fn      func()
	timer   *time.Timer
	pending time.Time
	stopped bool
	now     func() time.Time
}

func New(window time.Duration, fn func(), opts ...Option) *Debouncer {
	d := &Debouncer{
		window: window,
		fn:     fn,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	now := d.now()
	if d.timer != nil {
		d.timer.Stop()
	} else {
		d.pending = now
	}
	delay := d.window
	if d.maxWait > 0 {
		if left := d.pending.Add(d.maxWait).Sub(now); left < delay {
			delay = max(left, 0)
		}
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	d.pending = time.Time{}
	d.mu.Unlock()
	d.fn()
}

// Stop cancels a pending invocation. Triggers after Stop are ignored. An
// invocation already running is not waited for.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
