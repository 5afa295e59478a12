package recording

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// solidSource returns 2x2 frames whose red channel counts up.
type solidSource struct {
	n   uint8
	err error
}

func (s *solidSource) Snapshot() (*image.RGBA, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.n++
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := range 2 {
		for x := range 2 {
			img.SetRGBA(x, y, color.RGBA{R: s.n, A: 255})
		}
	}
	return img, nil
}

// eventLog records the order of events and forwards them to a Recorder.
type eventLog struct {
	*Recorder
	events []string
}

func (e *eventLog) HandleStart()  { e.events = append(e.events, "start"); e.Recorder.HandleStart() }
func (e *eventLog) HandleStop()   { e.events = append(e.events, "stop"); e.Recorder.HandleStop() }
func (e *eventLog) HandlePause()  { e.events = append(e.events, "pause"); e.Recorder.HandlePause() }
func (e *eventLog) HandleResume() { e.events = append(e.events, "resume"); e.Recorder.HandleResume() }
func (e *eventLog) HandleData(b []byte) error {
	e.events = append(e.events, "data")
	return e.Recorder.HandleData(b)
}

type captureHarness struct {
	capture *FrameCapture
	rec     *Recorder
	log     *eventLog
	sink    *memorySink
	clock   float64
	src     *solidSource
}

func newCaptureHarness() *captureHarness {
	h := &captureHarness{sink: &memorySink{}, src: &solidSource{}}
	h.capture = NewFrameCapture(h.src, WithCaptureClock(func() float64 { return h.clock }))
	h.rec = New(h.capture, h.sink)
	h.log = &eventLog{Recorder: h.rec}
	h.capture.Attach(h.log)
	return h
}

func TestFrameCaptureRoundTrip(t *testing.T) {
	h := newCaptureHarness()
	require.NoError(t, h.rec.Start())
	require.True(t, h.rec.IsRecording())

	for i := range 5 {
		h.clock = float64(i) * 400
		require.NoError(t, h.capture.CaptureFrame())
	}
	assert.Equal(t, 5, h.capture.Frames())

	require.NoError(t, h.rec.Stop())
	assert.False(t, h.rec.IsRecording())
	assert.Equal(t, []string{"start", "data", "stop", "data"}, h.log.events,
		"one chunk after 1000ms, then stop before the final chunk")

	require.Len(t, h.sink.saved, 1)
	assert.Equal(t, MimeFrames, h.sink.saved[0].mime)

	frames, err := DecodeFrames(bytes.NewReader(h.sink.saved[0].data))
	require.NoError(t, err)
	require.Len(t, frames, 5)
	for i, f := range frames {
		assert.InDelta(t, float64(i)*400, f.Now, 1e-9)
		assert.Equal(t, color.RGBA{R: uint8(i + 1), A: 255}, f.Image.RGBAAt(1, 1))
	}
}

func TestFrameCapturePause(t *testing.T) {
	h := newCaptureHarness()
	require.NoError(t, h.rec.Start())
	require.NoError(t, h.capture.CaptureFrame())
	h.capture.Pause()
	require.NoError(t, h.capture.CaptureFrame())
	h.capture.Resume()
	require.NoError(t, h.capture.CaptureFrame())
	require.NoError(t, h.rec.Stop())

	assert.Equal(t, 2, h.capture.Frames())
	assert.Equal(t, []string{"start", "pause", "resume", "stop", "data"}, h.log.events)

	frames, err := DecodeFrames(bytes.NewReader(h.sink.saved[0].data))
	require.NoError(t, err)
	assert.Len(t, frames, 2)
}

func TestFrameCaptureIdle(t *testing.T) {
	h := newCaptureHarness()
	assert.NoError(t, h.capture.CaptureFrame(), "idle capture ignores frames")
	assert.ErrorIs(t, h.capture.Stop(), ErrNotRecording)
	assert.Zero(t, h.src.n)

	require.NoError(t, h.capture.Start(time.Second))
	assert.Error(t, h.capture.Start(time.Second), "second start")
}

func TestFrameCaptureSnapshotError(t *testing.T) {
	h := newCaptureHarness()
	require.NoError(t, h.rec.Start())
	h.src.err = errors.New("context lost")
	assert.ErrorIs(t, h.capture.CaptureFrame(), h.src.err)
	assert.False(t, h.rec.IsRecording())

	h.src.err = nil
	require.NoError(t, h.rec.Start(), "capture restarts after an error")
	assert.True(t, h.rec.IsRecording())
	require.NoError(t, h.capture.CaptureFrame())
	assert.Equal(t, 1, h.capture.Frames())
}

func TestFrameCaptureNeedsReceiver(t *testing.T) {
	c := NewFrameCapture(&solidSource{})
	assert.Error(t, c.Start(time.Second))
}

func TestDecodeFramesErrors(t *testing.T) {
	frames, err := DecodeFrames(bytes.NewReader([]byte("definitely not lz4")))
	assert.Error(t, err)
	assert.Empty(t, frames)
}
