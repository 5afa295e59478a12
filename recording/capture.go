package recording

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"sync"
	"time"

	"github.com/pierrec/lz4/v4"
)

// frameHeaderSize is the size of the header preceding each frame's pixels:
// width and height as uint32, the timestamp in milliseconds as float64,
// all little-endian.
const frameHeaderSize = 16

// maxFrameBytes bounds the pixel data of one decoded frame.
const maxFrameBytes = 1 << 28

// Snapshotter reads back the current frame. *wrend.Renderer implements it.
type Snapshotter interface {
	Snapshot() (*image.RGBA, error)
}

// CaptureOption configures a FrameCapture.
type CaptureOption func(*captureOptions)

type captureOptions struct {
	clock func() float64
	level lz4.CompressionLevel
}

func defaultCaptureOptions() captureOptions {
	start := time.Now()
	return captureOptions{
		clock: func() float64 { return float64(time.Since(start).Microseconds()) / 1000 },
		level: lz4.Fast,
	}
}

// WithCaptureClock sets the clock, in milliseconds, used for frame
// timestamps and timeslices.
func WithCaptureClock(clock func() float64) CaptureOption {
	return func(o *captureOptions) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithCompressionLevel sets the lz4 compression level.
func WithCompressionLevel(level lz4.CompressionLevel) CaptureOption {
	return func(o *captureOptions) {
		o.level = level
	}
}

type captureState int

const (
	captureIdle captureState = iota
	captureActive
	capturePaused
)

// FrameCapture is a MediaRecorder that records frames read back from a
// Snapshotter. Call CaptureFrame after each rendered frame. Frames are
// written as raw RGBA into a single lz4 stream; the stream is flushed into
// a chunk once per timeslice.
type FrameCapture struct {
	src  Snapshotter
	opts captureOptions

	mu         sync.Mutex
	events     Events
	state      captureState
	timeslice  float64
	sliceStart float64
	buf        bytes.Buffer
	zw         *lz4.Writer
	frames     int
}

var (
	_ MediaRecorder = (*FrameCapture)(nil)
	_ EventSource   = (*FrameCapture)(nil)
)

// NewFrameCapture returns an idle capture reading from src.
func NewFrameCapture(src Snapshotter, opts ...CaptureOption) *FrameCapture {
	o := defaultCaptureOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &FrameCapture{src: src, opts: o}
}

// Attach sets the receiver of recording events.
func (c *FrameCapture) Attach(e Events) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = e
}

// MimeType returns MimeFrames.
func (c *FrameCapture) MimeType() string { return MimeFrames }

// Frames returns the number of frames captured since Start.
func (c *FrameCapture) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// Start begins a new stream.
func (c *FrameCapture) Start(timeslice time.Duration) error {
	c.mu.Lock()
	if c.events == nil {
		c.mu.Unlock()
		return errors.New("recording: capture has no event receiver")
	}
	if c.state != captureIdle {
		c.mu.Unlock()
		return errors.New("recording: capture already started")
	}
	c.buf.Reset()
	c.zw = lz4.NewWriter(&c.buf)
	if err := c.zw.Apply(lz4.CompressionLevelOption(c.opts.level)); err != nil {
		c.mu.Unlock()
		return fmt.Errorf("recording: %w", err)
	}
	c.state = captureActive
	c.timeslice = float64(timeslice.Milliseconds())
	c.sliceStart = c.opts.clock()
	c.frames = 0
	events := c.events
	c.mu.Unlock()

	events.HandleStart()
	return nil
}

// CaptureFrame appends the current frame while capturing and emits a chunk
// when the timeslice has elapsed. It does nothing when idle or paused.
// A failure reports HandleError and ends the capture.
func (c *FrameCapture) CaptureFrame() error {
	c.mu.Lock()
	if c.state != captureActive {
		c.mu.Unlock()
		return nil
	}
	events := c.events
	img, err := c.src.Snapshot()
	if err != nil {
		c.abortLocked()
		c.mu.Unlock()
		events.HandleError(err)
		return fmt.Errorf("recording: snapshot: %w", err)
	}
	now := c.opts.clock()
	if err := writeFrame(c.zw, img, now); err != nil {
		c.abortLocked()
		c.mu.Unlock()
		events.HandleError(err)
		return fmt.Errorf("recording: %w", err)
	}
	c.frames++

	var chunk []byte
	if now-c.sliceStart >= c.timeslice {
		if err := c.zw.Flush(); err != nil {
			c.abortLocked()
			c.mu.Unlock()
			events.HandleError(err)
			return fmt.Errorf("recording: %w", err)
		}
		chunk = bytes.Clone(c.buf.Bytes())
		c.buf.Reset()
		c.sliceStart = now
	}
	c.mu.Unlock()

	if len(chunk) > 0 {
		return events.HandleData(chunk)
	}
	return nil
}

// abortLocked drops the stream after a failure. The capture is idle
// afterwards and can be started again.
func (c *FrameCapture) abortLocked() {
	c.zw = nil
	c.buf.Reset()
	c.state = captureIdle
}

// Stop ends the stream. HandleStop is delivered before the final chunk.
func (c *FrameCapture) Stop() error {
	c.mu.Lock()
	if c.state == captureIdle {
		c.mu.Unlock()
		return ErrNotRecording
	}
	closeErr := c.zw.Close()
	chunk := bytes.Clone(c.buf.Bytes())
	c.buf.Reset()
	c.zw = nil
	c.state = captureIdle
	events := c.events
	c.mu.Unlock()

	if closeErr != nil {
		events.HandleError(closeErr)
	}
	events.HandleStop()
	return events.HandleData(chunk)
}

// Pause suspends capturing; CaptureFrame ignores frames until Resume.
func (c *FrameCapture) Pause() {
	c.mu.Lock()
	if c.state != captureActive {
		c.mu.Unlock()
		return
	}
	c.state = capturePaused
	events := c.events
	c.mu.Unlock()
	events.HandlePause()
}

// Resume continues a paused capture.
func (c *FrameCapture) Resume() {
	c.mu.Lock()
	if c.state != capturePaused {
		c.mu.Unlock()
		return
	}
	c.state = captureActive
	events := c.events
	c.mu.Unlock()
	events.HandleResume()
}

func writeFrame(w io.Writer, img *image.RGBA, now float64) error {
	b := img.Bounds()
	hdr := make([]byte, 0, frameHeaderSize)
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(b.Dx()))
	hdr = binary.LittleEndian.AppendUint32(hdr, uint32(b.Dy()))
	hdr = binary.LittleEndian.AppendUint64(hdr, math.Float64bits(now))
	if _, err := w.Write(hdr); err != nil {
		return err
	}
	row := 4 * b.Dx()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		if _, err := w.Write(img.Pix[off : off+row]); err != nil {
			return err
		}
	}
	return nil
}

// Frame is one decoded captured frame.
type Frame struct {
	// Now is the capture time in milliseconds.
	Now   float64
	Image *image.RGBA
}

// DecodeFrames reads a stream written by FrameCapture.
func DecodeFrames(r io.Reader) ([]Frame, error) {
	zr := lz4.NewReader(r)
	var frames []Frame
	hdr := make([]byte, frameHeaderSize)
	for {
		if _, err := io.ReadFull(zr, hdr); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("recording: frame %d header: %w", len(frames), err)
		}
		w := int(binary.LittleEndian.Uint32(hdr[0:4]))
		h := int(binary.LittleEndian.Uint32(hdr[4:8]))
		now := math.Float64frombits(binary.LittleEndian.Uint64(hdr[8:16]))
		if w <= 0 || h <= 0 || 4*w*h > maxFrameBytes {
			return frames, fmt.Errorf("recording: frame %d has invalid size %dx%d", len(frames), w, h)
		}
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		if _, err := io.ReadFull(zr, img.Pix); err != nil {
			return frames, fmt.Errorf("recording: frame %d pixels: %w", len(frames), err)
		}
		frames = append(frames, Frame{Now: now, Image: img})
	}
}
