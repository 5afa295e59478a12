//go:build !js

package wrend

import (
	"errors"
	"testing"

	"github.com/gogpu/wrend/frame"
)

func newAnimated(t *testing.T, callback func(*Renderer)) (*AnimationHandle, *frame.Loop) {
	t.Helper()
	b, _ := newTestBuilder(t)
	r := mustBuild(t, withQuad(b))
	loop := frame.NewLoop(frame.WithInterval(0))
	opts := []HandleOption{WithScheduler(loop)}
	if callback != nil {
		opts = append(opts, WithAnimationCallback(callback))
	}
	return NewAnimationHandle(r, opts...), loop
}

func TestAnimationRunsOneFramePerStep(t *testing.T) {
	frames := 0
	h, loop := newAnimated(t, func(*Renderer) { frames++ })

	if h.IsAnimating() {
		t.Fatal("new handle is animating")
	}
	if err := h.StartAnimating(); err != nil {
		t.Fatal(err)
	}
	for i := 1; i <= 3; i++ {
		if n := loop.Step(float64(i)); n != 1 {
			t.Fatalf("step %d ran %d callbacks, want 1", i, n)
		}
		if frames != i {
			t.Fatalf("frames = %d after step %d", frames, i)
		}
		if loop.Pending() != 1 {
			t.Fatalf("pending = %d after step %d, want 1", loop.Pending(), i)
		}
	}
}

func TestAnimationRestartKeepsSingleFrame(t *testing.T) {
	frames := 0
	h, loop := newAnimated(t, func(*Renderer) { frames++ })

	_ = h.StartAnimating()
	_ = h.StartAnimating()
	_ = h.StartAnimating()

	if loop.Pending() != 1 {
		t.Errorf("pending = %d after restarts, want 1", loop.Pending())
	}
	loop.Step(0)
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
	if !h.IsAnimating() {
		t.Error("handle stopped animating after restart")
	}
}

func TestStopAnimating(t *testing.T) {
	frames := 0
	h, loop := newAnimated(t, func(*Renderer) { frames++ })

	if err := h.StopAnimating(); !errors.Is(err, ErrNotAnimating) {
		t.Errorf("StopAnimating() on idle handle = %v, want ErrNotAnimating", err)
	}

	_ = h.StartAnimating()
	if err := h.StopAnimating(); err != nil {
		t.Fatalf("StopAnimating() error = %v", err)
	}
	if h.IsAnimating() {
		t.Error("IsAnimating() = true after stop")
	}
	if n := loop.Step(0); n != 0 || frames != 0 {
		t.Errorf("step after stop ran %d callbacks, frames = %d", n, frames)
	}
}

func TestStopAnimatingFromFrame(t *testing.T) {
	var h *AnimationHandle
	frames := 0
	h, loop := newAnimated(t, func(*Renderer) {
		frames++
		if err := h.StopAnimating(); err != nil {
			t.Errorf("StopAnimating() in frame error = %v", err)
		}
	})

	_ = h.StartAnimating()
	loop.Step(0)
	loop.Step(1)
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d, want 0", loop.Pending())
	}
}

func TestStaleFrameIsIgnored(t *testing.T) {
	loop := frame.NewLoop()
	frames := 0
	b, _ := newTestBuilder(t)
	r := mustBuild(t, withQuad(b))
	h := NewAnimationHandle(r, WithScheduler(loop), WithAnimationCallback(func(*Renderer) { frames++ }))

	_ = h.StartAnimating()
	stale := h.gen
	_ = h.StopAnimating()
	_ = h.StartAnimating()

	h.frame(stale)
	if frames != 0 {
		t.Errorf("stale frame ran the callback")
	}
	loop.Step(0)
	if frames != 1 {
		t.Errorf("frames = %d, want 1", frames)
	}
}

func TestAnimationClose(t *testing.T) {
	h, loop := newAnimated(t, func(*Renderer) {})
	_ = h.StartAnimating()

	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if !h.Renderer().Closed() {
		t.Error("renderer not closed")
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d after Close, want 0", loop.Pending())
	}
	for name, err := range map[string]error{
		"StartAnimating": h.StartAnimating(),
		"StopAnimating":  h.StopAnimating(),
		"Mutate":         h.Mutate(func(*Renderer) {}),
	} {
		if !errors.Is(err, ErrClosed) {
			t.Errorf("%s after Close = %v, want ErrClosed", name, err)
		}
	}
}

func TestMutate(t *testing.T) {
	var h *AnimationHandle
	h, loop := newAnimated(t, func(*Renderer) {
		_ = h.Mutate(func(*Renderer) {})
	})

	called := false
	if err := h.Mutate(func(r *Renderer) {
		called = r == h.Renderer()
		if err := r.UpdateUniforms(); err != nil {
			t.Errorf("UpdateUniforms() in Mutate error = %v", err)
		}
	}); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("Mutate did not pass the renderer")
	}

	mustPanic(t, "wrend: renderer already borrowed", func() {
		_ = h.Mutate(func(*Renderer) { _ = h.Mutate(func(*Renderer) {}) })
	})

	_ = h.StartAnimating()
	mustPanic(t, "wrend: renderer already borrowed", func() { loop.Step(0) })
}

func TestDefaultAnimation(t *testing.T) {
	b, ctx := newTestBuilder(t)
	withQuad(b)
	updates, renders := 0, 0
	b.AddUniformLink(NewUniformLink("u_time", nil, "quad").WithUpdate(func(*UniformContext) { updates++ }))
	b.SetRenderCallback(func(*Renderer) { renders++ })
	r := mustBuild(t, b)

	loop := frame.NewLoop()
	h := NewAnimationHandle(r, WithScheduler(loop))
	_ = h.StartAnimating()
	loop.Step(0)
	loop.Step(1)

	if updates != 2 || renders != 2 {
		t.Errorf("updates=%d renders=%d, want 2 and 2", updates, renders)
	}
	if ctx.LiveObjects() == 0 {
		t.Error("objects deleted while animating")
	}
}

func TestAnimationRecoversFromPanickingFrame(t *testing.T) {
	frames := 0
	h, loop := newAnimated(t, func(*Renderer) {
		frames++
		if frames == 1 {
			panic("frame failed")
		}
	})
	_ = h.StartAnimating()

	mustPanic(t, "frame failed", func() { loop.Step(0) })

	if !h.IsAnimating() || loop.Pending() != 1 {
		t.Fatalf("after panic: IsAnimating=%v pending=%d, want true and 1", h.IsAnimating(), loop.Pending())
	}
	if err := h.Mutate(func(*Renderer) {}); err != nil {
		t.Errorf("Mutate() after panic error = %v", err)
	}
	loop.Step(1)
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestCloseHooks(t *testing.T) {
	b, ctx := newTestBuilder(t)
	r := mustBuild(t, withQuad(b))
	loop := frame.NewLoop()

	var order []string
	hookErr := errors.New("hook failed")
	h := NewAnimationHandle(r, WithScheduler(loop),
		WithOnClose(func() error {
			order = append(order, "first")
			if ctx.LiveObjects() == 0 {
				t.Error("renderer closed before hook ran")
			}
			return nil
		}),
		WithOnClose(nil),
		WithOnClose(func() error {
			order = append(order, "second")
			return hookErr
		}),
	)
	_ = h.StartAnimating()

	if err := h.Close(); !errors.Is(err, hookErr) {
		t.Errorf("Close() error = %v, want %v", err, hookErr)
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("hooks ran as %v, want [first second]", order)
	}
	if !r.Closed() {
		t.Error("renderer not closed after failing hook")
	}
	if loop.Pending() != 0 {
		t.Errorf("pending = %d after Close, want 0", loop.Pending())
	}

	order = nil
	if err := h.Close(); err != nil || order != nil {
		t.Errorf("second Close() = %v, hooks %v", err, order)
	}
}
