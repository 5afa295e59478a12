// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoopStepRunsInRequestOrder(t *testing.T) {
	l := NewLoop()
	var got []string
	l.RequestFrame(func(float64) { got = append(got, "a") })
	l.RequestFrame(func(float64) { got = append(got, "b") })
	l.RequestFrame(func(float64) { got = append(got, "c") })

	assert.Equal(t, 3, l.Pending())
	assert.Equal(t, 3, l.Step(1))
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Zero(t, l.Pending())
}

func TestLoopStepPassesNow(t *testing.T) {
	l := NewLoop()
	var now float64
	l.RequestFrame(func(n float64) { now = n })
	l.Step(42.5)
	assert.InDelta(t, 42.5, now, 1e-9)
}

func TestLoopIDsAreUniqueAndNonZero(t *testing.T) {
	l := NewLoop()
	seen := map[ID]bool{}
	for range 10 {
		id := l.RequestFrame(func(float64) {})
		require.NotZero(t, id)
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestLoopCancel(t *testing.T) {
	l := NewLoop()
	ran := false
	id := l.RequestFrame(func(float64) { ran = true })
	l.CancelFrame(id)

	assert.Zero(t, l.Step(0))
	assert.False(t, ran)

	// Cancelling twice, or an id that already ran, is harmless.
	l.CancelFrame(id)
	id2 := l.RequestFrame(func(float64) {})
	l.Step(0)
	l.CancelFrame(id2)
}

func TestLoopCancelDuringStep(t *testing.T) {
	l := NewLoop()
	ranSecond := false
	var second ID
	l.RequestFrame(func(float64) { l.CancelFrame(second) })
	second = l.RequestFrame(func(float64) { ranSecond = true })

	assert.Equal(t, 1, l.Step(0))
	assert.False(t, ranSecond)
}

func TestLoopRequestDuringStepWaitsForNextStep(t *testing.T) {
	l := NewLoop()
	count := 0
	var tick func(float64)
	tick = func(float64) {
		count++
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	assert.Equal(t, 1, l.Step(0))
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, l.Pending())

	assert.Equal(t, 1, l.Step(16))
	assert.Equal(t, 2, count)
}

func TestLoopRunFrames(t *testing.T) {
	var clock float64
	l := NewLoop(WithInterval(0), WithClock(func() float64 {
		clock += 16
		return clock
	}))

	var stamps []float64
	var tick func(float64)
	tick = func(now float64) {
		stamps = append(stamps, now)
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	require.NoError(t, l.RunFrames(context.Background(), 3))
	assert.Equal(t, []float64{16, 32, 48}, stamps)
	assert.NoError(t, l.RunFrames(context.Background(), 0))
}

func TestLoopRunStopsOnCancel(t *testing.T) {
	l := NewLoop(WithInterval(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	frames := 0
	var tick func(float64)
	tick = func(float64) {
		frames++
		if frames == 3 {
			cancel()
		}
		l.RequestFrame(tick)
	}
	l.RequestFrame(tick)

	err := l.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.GreaterOrEqual(t, frames, 3)
}

func TestLoopRunFramesCancelledContext(t *testing.T) {
	l := NewLoop(WithInterval(0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.RunFrames(ctx, 5), context.Canceled)
}

func TestOptionsIgnoreInvalid(t *testing.T) {
	l := NewLoop(WithInterval(-time.Second), WithClock(nil))
	assert.Equal(t, DefaultInterval, l.opts.interval)
	assert.NotNil(t, l.opts.clock)
}

func TestSetLogger(t *testing.T) {
	l := slog.New(slog.DiscardHandler)
	SetLogger(l)
	assert.Same(t, l, Logger())
	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
