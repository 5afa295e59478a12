package recording

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/wrend"
)

var (
	// ErrNotRecording is returned by Stop when no recording is in progress.
	ErrNotRecording = errors.New("recording: not recording")

	// ErrClosed is returned by Start and Stop after Close.
	ErrClosed = errors.New("recording: recorder closed")
)

// RecorderOption configures a Recorder.
type RecorderOption func(*recorderOptions)

type recorderOptions struct {
	mimeType string
}

// WithMimeType overrides the type reported to the sink. The default is the
// media recorder's MimeType.
func WithMimeType(mimeType string) RecorderOption {
	return func(o *recorderOptions) {
		o.mimeType = mimeType
	}
}

// Recorder buffers the chunks of a MediaRecorder and hands finished
// recordings to a Sink. It is safe for concurrent use.
type Recorder struct {
	media MediaRecorder
	sink  Sink
	opts  recorderOptions

	mu        sync.Mutex
	recording bool
	closed    bool
	buf       bytes.Buffer
	chunks    int
}

// mediaCloser is implemented by media recorders that hold resources, such
// as the DOM listeners of BrowserMedia.
type mediaCloser interface {
	Close()
}

var _ Events = (*Recorder)(nil)

// New returns an idle Recorder. If media implements EventSource, the
// recorder attaches itself to it.
func New(media MediaRecorder, sink Sink, opts ...RecorderOption) *Recorder {
	var o recorderOptions
	for _, opt := range opts {
		opt(&o)
	}
	r := &Recorder{media: media, sink: sink, opts: o}
	if src, ok := media.(EventSource); ok {
		src.Attach(r)
	}
	return r
}

// IsRecording reports whether a recording is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start starts the media recorder. Starting while recording is a no-op.
func (r *Recorder) Start() error {
	r.mu.Lock()
	recording, closed := r.recording, r.closed
	r.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if recording {
		wrend.Logger().Info("recording: already recording")
		return nil
	}
	if err := r.media.Start(Timeslice); err != nil {
		return fmt.Errorf("recording: start: %w", err)
	}
	return nil
}

// Stop asks the media recorder to stop. The recording is saved when the
// final chunk arrives.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	recording, closed := r.recording, r.closed
	r.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if !recording {
		wrend.Logger().Error("recording: stop requested while idle")
		return ErrNotRecording
	}
	if err := r.media.Stop(); err != nil {
		return fmt.Errorf("recording: stop: %w", err)
	}
	return nil
}

// Close stops a recording in progress and releases the media recorder.
// The final chunk of a stopped recording is still saved when the media
// recorder delivers it synchronously. Close is idempotent.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	recording := r.recording
	r.mu.Unlock()

	var err error
	if recording {
		if stopErr := r.media.Stop(); stopErr != nil {
			err = fmt.Errorf("recording: stop: %w", stopErr)
		}
	}
	if c, ok := r.media.(mediaCloser); ok {
		c.Close()
	}

	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	wrend.Logger().Debug("recording: closed", "was_recording", recording)
	return err
}

// WithRecorder ties r to an AnimationHandle: closing the handle closes
// the recorder before the renderer goes away.
func WithRecorder(r *Recorder) wrend.HandleOption {
	return wrend.WithOnClose(r.Close)
}

// HandleStart marks the recording as started and clears the buffer.
func (r *Recorder) HandleStart() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = true
	r.buf.Reset()
	r.chunks = 0
	wrend.Logger().Info("recording: started", "mime", r.mimeType())
}

// HandleStop marks the recording as finished. The final chunk follows.
func (r *Recorder) HandleStop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	wrend.Logger().Info("recording: stopped", "chunks", r.chunks)
}

// HandleData buffers chunk. When no recording is in progress the buffer
// is saved to the sink and cleared.
func (r *Recorder) HandleData(chunk []byte) error {
	r.mu.Lock()
	r.buf.Write(chunk)
	r.chunks++
	if r.recording {
		r.mu.Unlock()
		return nil
	}
	data := bytes.Clone(r.buf.Bytes())
	r.buf.Reset()
	r.chunks = 0
	mime := r.mimeType()
	r.mu.Unlock()

	if err := r.sink.Save(data, mime); err != nil {
		wrend.Logger().Error("recording: save failed", "err", err)
		return fmt.Errorf("recording: save: %w", err)
	}
	wrend.Logger().Info("recording: saved", "bytes", len(data), "mime", mime)
	return nil
}

// HandleError ends the recording; the media recorder stops on error.
func (r *Recorder) HandleError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	wrend.Logger().Error("recording: media recorder error", "err", err)
}

// HandlePause logs the pause.
func (r *Recorder) HandlePause() {
	wrend.Logger().Info("recording: paused")
}

// HandleResume logs the resume.
func (r *Recorder) HandleResume() {
	wrend.Logger().Info("recording: resumed")
}

func (r *Recorder) mimeType() string {
	if r.opts.mimeType != "" {
		return r.opts.mimeType
	}
	return r.media.MimeType()
}
