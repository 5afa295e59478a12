package wrend

import (
	"errors"
	"sync"

	"github.com/gogpu/wrend/frame"
)

// AnimationHandle drives a Renderer from a frame scheduler.
//
// A handle is Idle or Animating. While animating exactly one frame is
// pending with the scheduler; each frame runs the animation callback and
// requests the next one. StopAnimating cancels the pending frame.
//
// The handle is safe to stop from another goroutine, but the renderer
// itself is still driven on the scheduler's goroutine.
type AnimationHandle struct {
	r    *Renderer
	opts handleOptions

	mu         sync.Mutex
	animating  bool
	gen        uint64
	pending    frame.ID
	hasPending bool
	inFrame    bool
	mutating   bool
	closed     bool
}

// NewAnimationHandle returns an idle handle for r.
func NewAnimationHandle(r *Renderer, opts ...HandleOption) *AnimationHandle {
	o := defaultHandleOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &AnimationHandle{r: r, opts: o}
}

// Renderer returns the driven renderer.
func (h *AnimationHandle) Renderer() *Renderer { return h.r }

// IsAnimating reports whether a frame loop is running.
func (h *AnimationHandle) IsAnimating() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.animating
}

// StartAnimating schedules the first frame. Starting an animating handle
// logs an error and restarts the loop.
func (h *AnimationHandle) StartAnimating() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if h.animating {
		Logger().Error("wrend: StartAnimating called while animating, restarting")
		h.stopLocked()
	}
	h.animating = true
	h.gen++
	h.scheduleLocked(h.gen)
	Logger().Debug("wrend: animation started", "generation", h.gen)
	return nil
}

// StopAnimating cancels the pending frame. Stopping an idle handle logs an
// error and returns ErrNotAnimating.
func (h *AnimationHandle) StopAnimating() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	if !h.animating {
		Logger().Error("wrend: StopAnimating called while idle")
		return ErrNotAnimating
	}
	h.stopLocked()
	Logger().Debug("wrend: animation stopped")
	return nil
}

// Close stops the loop, runs the WithOnClose hooks and closes the
// renderer. Close is idempotent.
func (h *AnimationHandle) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	if h.animating {
		h.stopLocked()
	}
	h.closed = true
	h.mu.Unlock()

	var errs []error
	for _, fn := range h.opts.onClose {
		if err := fn(); err != nil {
			Logger().Warn("wrend: close hook failed", "err", err)
			errs = append(errs, err)
		}
	}
	errs = append(errs, h.r.Close())
	return errors.Join(errs...)
}

// Mutate gives fn access to the renderer outside of a frame, e.g. from an
// input handler. It panics when called from inside a frame or another
// Mutate.
func (h *AnimationHandle) Mutate(fn func(*Renderer)) error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return ErrClosed
	}
	if h.inFrame || h.mutating || h.r.borrowed {
		h.mu.Unlock()
		panic("wrend: renderer already borrowed")
	}
	h.mutating = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.mutating = false
		h.mu.Unlock()
	}()
	fn(h.r)
	return nil
}

func (h *AnimationHandle) stopLocked() {
	if h.hasPending {
		h.opts.scheduler.CancelFrame(h.pending)
		h.hasPending = false
	}
	h.animating = false
	h.gen++
}

func (h *AnimationHandle) scheduleLocked(gen uint64) {
	h.pending = h.opts.scheduler.RequestFrame(func(float64) { h.frame(gen) })
	h.hasPending = true
}

func (h *AnimationHandle) frame(gen uint64) {
	h.mu.Lock()
	if !h.animating || h.closed || gen != h.gen {
		h.mu.Unlock()
		return
	}
	h.hasPending = false
	h.inFrame = true
	h.mu.Unlock()

	// A panicking callback still clears inFrame and keeps the loop going.
	defer func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		h.inFrame = false
		if h.animating && !h.closed && gen == h.gen {
			h.scheduleLocked(gen)
		}
	}()
	h.opts.callback(h.r)
}

// defaultAnimation updates every uniform and buffer, then renders.
func defaultAnimation(r *Renderer) {
	for _, step := range []func() error{r.UpdateUniforms, r.UpdateBuffers, r.Render} {
		if err := step(); err != nil {
			Logger().Error("wrend: animation frame failed", "err", err)
			return
		}
	}
}
