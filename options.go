package wrend

import (
	"github.com/gogpu/wrend/frame"
	"github.com/gogpu/wrend/gl"
)

// BuilderOption configures a Builder.
//
// Example:
//
//	b := wrend.NewBuilder(wrend.WithClock(func() float64 { return 0 }))
type BuilderOption func(*builderOptions)

type builderOptions struct {
	clock      Clock
	getContext func(gl.Canvas) (gl.Context, error)
}

func defaultBuilderOptions() builderOptions {
	return builderOptions{
		clock: defaultClock(),
	}
}

// WithClock sets the clock whose reading is passed to callbacks as Now.
func WithClock(c Clock) BuilderOption {
	return func(o *builderOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithGetContext is the option form of Builder.SetGetContext.
func WithGetContext(fn func(gl.Canvas) (gl.Context, error)) BuilderOption {
	return func(o *builderOptions) {
		o.getContext = fn
	}
}

// HandleOption configures an AnimationHandle.
type HandleOption func(*handleOptions)

type handleOptions struct {
	scheduler frame.Scheduler
	callback  func(*Renderer)
	onClose   []func() error
}

func defaultHandleOptions() handleOptions {
	return handleOptions{
		scheduler: frame.Default(),
		callback:  defaultAnimation,
	}
}

// WithScheduler sets the frame scheduler. The default is frame.Default().
func WithScheduler(s frame.Scheduler) HandleOption {
	return func(o *handleOptions) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithAnimationCallback replaces the per-frame callback. The default
// updates every uniform and buffer and then renders.
func WithAnimationCallback(fn func(*Renderer)) HandleOption {
	return func(o *handleOptions) {
		if fn != nil {
			o.callback = fn
		}
	}
}

// WithOnClose registers fn to run when the handle is closed, after the
// frame loop stops and before the renderer is closed. Hooks run in the
// order they were registered.
func WithOnClose(fn func() error) HandleOption {
	return func(o *handleOptions) {
		if fn != nil {
			o.onClose = append(o.onClose, fn)
		}
	}
}
