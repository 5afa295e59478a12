// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the frame interval of a Loop without WithInterval.
const DefaultInterval = time.Second / 60

// LoopOption configures a Loop.
type LoopOption func(*loopOptions)

type loopOptions struct {
	interval time.Duration
	clock    func() float64
}

func defaultLoopOptions() loopOptions {
	start := time.Now()
	return loopOptions{
		interval: DefaultInterval,
		clock: func() float64 {
			return float64(time.Since(start).Microseconds()) / 1000
		},
	}
}

// WithInterval sets the time between frames pumped by Run. Zero runs
// frames back to back.
func WithInterval(d time.Duration) LoopOption {
	return func(o *loopOptions) {
		if d >= 0 {
			o.interval = d
		}
	}
}

// WithClock sets the clock whose reading, in milliseconds, is passed to
// callbacks by Run.
func WithClock(clock func() float64) LoopOption {
	return func(o *loopOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// Loop is a Scheduler whose frames are driven by Step or Run.
// It is safe for concurrent use; callbacks run on the goroutine calling
// Step or Run.
type Loop struct {
	opts loopOptions

	mu      sync.Mutex
	next    ID
	order   []ID
	pending map[ID]func(float64)
}

var _ Scheduler = (*Loop)(nil)

// NewLoop returns an empty loop.
func NewLoop(opts ...LoopOption) *Loop {
	o := defaultLoopOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Loop{opts: o, pending: make(map[ID]func(float64))}
}

// RequestFrame queues cb for the next Step.
func (l *Loop) RequestFrame(cb func(now float64)) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	id := l.next
	l.pending[id] = cb
	l.order = append(l.order, id)
	return id
}

// CancelFrame removes a queued callback.
func (l *Loop) CancelFrame(id ID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.pending, id)
}

// Pending returns the number of queued callbacks.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Step runs the callbacks queued before the call, in request order, and
// returns how many ran. Callbacks requested during the step wait for the
// next one.
func (l *Loop) Step(now float64) int {
	l.mu.Lock()
	batch := l.order
	l.order = nil
	l.mu.Unlock()

	ran := 0
	for _, id := range batch {
		l.mu.Lock()
		cb, ok := l.pending[id]
		delete(l.pending, id)
		l.mu.Unlock()
		if !ok {
			continue
		}
		cb(now)
		ran++
	}
	return ran
}

// Run steps the loop once per interval until ctx is done and returns
// ctx.Err().
func (l *Loop) Run(ctx context.Context) error {
	return l.run(ctx, -1)
}

// RunFrames steps the loop n times, pacing by the interval. It stops
// early, returning ctx.Err(), when ctx is done.
func (l *Loop) RunFrames(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	return l.run(ctx, n)
}

func (l *Loop) run(ctx context.Context, n int) error {
	var tick <-chan time.Time
	if l.opts.interval > 0 {
		t := time.NewTicker(l.opts.interval)
		defer t.Stop()
		tick = t.C
	}
	for i := 0; n < 0 || i < n; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}
		ran := l.Step(l.opts.clock())
		Logger().Debug("frame: step", "frame", i, "callbacks", ran)
	}
	return nil
}
