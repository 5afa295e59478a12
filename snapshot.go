package wrend

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/gogpu/wrend/gl"
)

// Snapshot reads the default framebuffer back into an image. Rows are
// returned top-down.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	if r.closed {
		return nil, ErrClosed
	}
	w, h := r.canvas.Width(), r.canvas.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("wrend: snapshot: canvas is %dx%d", w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r.ctx.BindFramebuffer(gl.FRAMEBUFFER, gl.Framebuffer{})
	r.ctx.ReadPixels(0, 0, w, h, gl.RGBA, gl.UNSIGNED_BYTE, img.Pix)
	gl.FlipRows(img.Pix, img.Stride)
	return img, nil
}

// SaveImage writes a PNG snapshot of the canvas to w.
func (r *Renderer) SaveImage(w io.Writer) error {
	img, err := r.Snapshot()
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("wrend: encode snapshot: %w", err)
	}
	return nil
}

// SavePNG writes a PNG snapshot of the canvas to the named file.
func (r *Renderer) SavePNG(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wrend: create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return r.SaveImage(f)
}
