//go:build !js

package recording

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/wrend"
	"github.com/gogpu/wrend/backend/headless"
	"github.com/gogpu/wrend/frame"
)

func TestWithRecorderClosesOnHandleClose(t *testing.T) {
	r, err := wrend.NewBuilder().
		SetCanvas(headless.NewCanvas(2, 2)).
		SetRenderCallback(func(*wrend.Renderer) {}).
		Build()
	require.NoError(t, err)

	sink := &memorySink{}
	capture := NewFrameCapture(r, WithCaptureClock(func() float64 { return 0 }))
	rec := New(capture, sink)

	loop := frame.NewLoop()
	h := wrend.NewAnimationHandle(r,
		wrend.WithScheduler(loop),
		wrend.WithAnimationCallback(func(*wrend.Renderer) {
			assert.NoError(t, capture.CaptureFrame())
		}),
		WithRecorder(rec),
	)

	require.NoError(t, rec.Start())
	require.NoError(t, h.StartAnimating())
	loop.Step(0)
	loop.Step(1)

	require.NoError(t, h.Close())
	assert.False(t, rec.IsRecording())
	assert.True(t, r.Closed())
	assert.ErrorIs(t, rec.Start(), ErrClosed)

	require.Len(t, sink.saved, 1, "the running recording is saved on close")
	frames, err := DecodeFrames(bytes.NewReader(sink.saved[0].data))
	require.NoError(t, err)
	assert.Len(t, frames, 2)
}
