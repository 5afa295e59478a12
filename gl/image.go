// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"slices"

	"github.com/gogpu/gputypes"
	_ "golang.org/x/image/bmp" // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register WebP
)

// DecodeImage decodes a PNG, JPEG, BMP or WebP image.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("gl: decode image: %w", err)
	}
	Logger().Debug("decoded image", "format", format, "bounds", img.Bounds())
	return img, nil
}

// ToRGBA returns img as a tightly packed *image.RGBA whose longer side is
// at most maxSize. Larger images are scaled down with bilinear filtering.
// maxSize <= 0 disables scaling.
func ToRGBA(img image.Image, maxSize int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		if w >= h {
			h = max(1, h*maxSize/w)
			w = maxSize
		} else {
			w = max(1, w*maxSize/h)
			h = maxSize
		}
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*w && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// UploadImage creates an RGBA8 texture holding img, scaled to fit the
// context's MAX_TEXTURE_SIZE. Rows are flipped so that the image's top row
// lands at texture coordinate v=1; img itself is not modified.
func UploadImage(ctx Context, img image.Image) (Texture, error) {
	rgba := ToRGBA(img, ctx.GetInteger(MAX_TEXTURE_SIZE))
	pix := slices.Clone(rgba.Pix)
	FlipRows(pix, rgba.Stride)
	b := rgba.Bounds()
	return NewTexture2D(ctx, b.Dx(), b.Dy(), gputypes.TextureFormatRGBA8Unorm, pix)
}

// FlipRows reverses the row order of pix in place. GL reads and writes
// pixels bottom-up while images are stored top-down.
func FlipRows(pix []byte, stride int) {
	if stride <= 0 {
		return
	}
	rows := len(pix) / stride
	tmp := make([]byte, stride)
	for top, bottom := 0, rows-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		z := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, z)
		copy(z, tmp)
	}
}
