package recording

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMedia records calls and lets tests drive events by hand.
type fakeMedia struct {
	starts   []time.Duration
	stops    int
	mime     string
	startErr error
	closes   int
	attached Events
}

func (m *fakeMedia) Start(ts time.Duration) error {
	if m.startErr != nil {
		return m.startErr
	}
	m.starts = append(m.starts, ts)
	return nil
}

func (m *fakeMedia) Stop() error      { m.stops++; return nil }
func (m *fakeMedia) MimeType() string { return m.mime }
func (m *fakeMedia) Attach(e Events)  { m.attached = e }
func (m *fakeMedia) Close()           { m.closes++ }

type savedRecording struct {
	data []byte
	mime string
}

type memorySink struct {
	saved []savedRecording
	err   error
}

func (s *memorySink) Save(data []byte, mime string) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, savedRecording{data: data, mime: mime})
	return nil
}

func newTestRecorder(opts ...RecorderOption) (*Recorder, *fakeMedia, *memorySink) {
	media := &fakeMedia{mime: MimeVP9}
	sink := &memorySink{}
	return New(media, sink, opts...), media, sink
}

func TestRecorderAttaches(t *testing.T) {
	r, media, _ := newTestRecorder()
	assert.Same(t, r, media.attached)
}

func TestRecorderStartUsesTimeslice(t *testing.T) {
	r, media, _ := newTestRecorder()
	require.NoError(t, r.Start())
	assert.Equal(t, []time.Duration{time.Second}, media.starts)
	assert.False(t, r.IsRecording(), "recording begins with HandleStart")

	r.HandleStart()
	assert.True(t, r.IsRecording())

	// Starting again is a no-op.
	require.NoError(t, r.Start())
	assert.Len(t, media.starts, 1)
}

func TestRecorderStartError(t *testing.T) {
	r, media, _ := newTestRecorder()
	media.startErr = errors.New("no camera")
	err := r.Start()
	assert.ErrorIs(t, err, media.startErr)
}

func TestRecorderStopWhenIdle(t *testing.T) {
	r, media, _ := newTestRecorder()
	assert.ErrorIs(t, r.Stop(), ErrNotRecording)
	assert.Zero(t, media.stops)
}

func TestRecorderLifecycle(t *testing.T) {
	r, media, sink := newTestRecorder()

	require.NoError(t, r.Start())
	r.HandleStart()
	require.NoError(t, r.HandleData([]byte("ab")))
	require.NoError(t, r.HandleData([]byte("cd")))
	assert.Empty(t, sink.saved, "nothing is saved while recording")

	r.HandlePause()
	r.HandleResume()

	require.NoError(t, r.Stop())
	assert.Equal(t, 1, media.stops)

	r.HandleStop()
	assert.False(t, r.IsRecording())
	require.NoError(t, r.HandleData([]byte("ef")))

	require.Len(t, sink.saved, 1)
	assert.Equal(t, "abcdef", string(sink.saved[0].data))
	assert.Equal(t, MimeVP9, sink.saved[0].mime)

	// The buffer was cleared: a new recording starts empty.
	r.HandleStart()
	r.HandleStop()
	require.NoError(t, r.HandleData([]byte("gh")))
	require.Len(t, sink.saved, 2)
	assert.Equal(t, "gh", string(sink.saved[1].data))
}

func TestRecorderHandleStartResetsBuffer(t *testing.T) {
	r, _, sink := newTestRecorder()
	r.HandleStart()
	require.NoError(t, r.HandleData([]byte("stale")))
	r.HandleStart()
	r.HandleStop()
	require.NoError(t, r.HandleData([]byte("fresh")))
	require.Len(t, sink.saved, 1)
	assert.Equal(t, "fresh", string(sink.saved[0].data))
}

func TestRecorderSinkError(t *testing.T) {
	r, _, sink := newTestRecorder()
	sink.err = errors.New("disk full")
	err := r.HandleData([]byte("x"))
	assert.ErrorIs(t, err, sink.err)
}

func TestRecorderMimeOverride(t *testing.T) {
	r, _, sink := newTestRecorder(WithMimeType("video/mp4"))
	require.NoError(t, r.HandleData([]byte("x")))
	require.Len(t, sink.saved, 1)
	assert.Equal(t, "video/mp4", sink.saved[0].mime)
}

func TestRecorderHandleErrorEndsRecording(t *testing.T) {
	r, media, _ := newTestRecorder()
	require.NoError(t, r.Start())
	r.HandleStart()
	r.HandleError(errors.New("encoder crashed"))
	assert.False(t, r.IsRecording())
	assert.ErrorIs(t, r.Stop(), ErrNotRecording)
	assert.Zero(t, media.stops)

	require.NoError(t, r.Start())
	assert.Len(t, media.starts, 2, "start reaches the media recorder again")
}

func TestRecorderClose(t *testing.T) {
	r, media, _ := newTestRecorder()
	require.NoError(t, r.Start())
	r.HandleStart()

	require.NoError(t, r.Close())
	assert.Equal(t, 1, media.stops)
	assert.Equal(t, 1, media.closes)

	assert.ErrorIs(t, r.Start(), ErrClosed)
	assert.ErrorIs(t, r.Stop(), ErrClosed)
	assert.Len(t, media.starts, 1)

	require.NoError(t, r.Close())
	assert.Equal(t, 1, media.stops)
	assert.Equal(t, 1, media.closes)
}

func TestRecorderCloseWhenIdle(t *testing.T) {
	r, media, _ := newTestRecorder()
	require.NoError(t, r.Close())
	assert.Zero(t, media.stops)
	assert.Equal(t, 1, media.closes)
}

func TestSelectMimeType(t *testing.T) {
	tests := []struct {
		name      string
		supported map[string]bool
		want      string
	}{
		{"vp9", map[string]bool{MimeVP9: true, MimeVP8: true}, MimeVP9},
		{"vp8 fallback", map[string]bool{MimeVP8: true}, MimeVP8},
		{"plain webm", map[string]bool{MimeWebM: true}, MimeWebM},
		{"nothing supported", nil, MimeWebM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectMimeType(func(m string) bool { return tt.supported[m] })
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, MimeWebM, SelectMimeType(nil))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "webm", Extension(MimeVP9))
	assert.Equal(t, "webm", Extension("video/webm"))
	assert.Equal(t, "frames.lz4", Extension(MimeFrames))
	assert.Equal(t, "bin", Extension("application/octet-stream"))
}
