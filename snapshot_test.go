//go:build !js

package wrend

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/gogpu/wrend/backend/headless"
	"github.com/gogpu/wrend/gl"
)

func TestSnapshotTopDown(t *testing.T) {
	b, ctx := newTestBuilder(t)
	b.SetRenderCallback(func(r *Renderer) {
		r.GL().ClearColor(0, 0, 1, 1)
		r.GL().Clear(gl.COLOR_BUFFER_BIT)
	})
	r := mustBuild(t, withQuad(b))
	if err := r.Render(); err != nil {
		t.Fatal(err)
	}

	// GL row 0 is the bottom of the canvas.
	pix := ctx.Pixels()
	copy(pix[0:4], []byte{0, 255, 0, 255})

	img, err := r.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got := img.Bounds().Size(); got.X != 8 || got.Y != 8 {
		t.Fatalf("size = %v, want 8x8", got)
	}
	if got, want := img.RGBAAt(0, 7), (color.RGBA{0, 255, 0, 255}); got != want {
		t.Errorf("bottom-left = %v, want %v", got, want)
	}
	if got, want := img.RGBAAt(0, 0), (color.RGBA{0, 0, 255, 255}); got != want {
		t.Errorf("top-left = %v, want %v", got, want)
	}
}

func TestSaveImage(t *testing.T) {
	b, _ := newTestBuilder(t)
	r := mustBuild(t, withQuad(b))

	var buf bytes.Buffer
	if err := r.SaveImage(&buf); err != nil {
		t.Fatalf("SaveImage() error = %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
		t.Errorf("decoded bounds = %v", img.Bounds())
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := r.SavePNG(path); err != nil {
		t.Errorf("SavePNG() error = %v", err)
	}
}

func TestSnapshotErrors(t *testing.T) {
	b, _ := newTestBuilder(t)
	b.SetCanvas(headless.NewCanvas(0, 8))
	r := mustBuild(t, withQuad(b))
	if _, err := r.Snapshot(); err == nil {
		t.Error("Snapshot() of empty canvas succeeded")
	}
	_ = r.Close()
	if _, err := r.Snapshot(); !errors.Is(err, ErrClosed) {
		t.Errorf("Snapshot() after Close = %v, want ErrClosed", err)
	}
}
