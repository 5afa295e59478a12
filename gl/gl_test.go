// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package gl_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/wrend/backend/headless"
	"github.com/gogpu/wrend/gl"
)

// callLog is a gl.Context that records the few calls a test cares about.
// Any other call panics on the nil embedded interface.
type callLog struct {
	gl.Context
	attribs  []gl.VertexLayout
	matrices [][]float32
	vecs     [][]float32
}

func (c *callLog) VertexAttribPointer(_ gl.Attrib, size int, typ gl.Enum, normalized bool, _, _ int) {
	c.attribs = append(c.attribs, gl.VertexLayout{Size: size, Type: typ, Normalized: normalized})
}

func (c *callLog) UniformMatrix4fv(_ gl.Uniform, transpose bool, data []float32) {
	if transpose {
		panic("unexpected transpose")
	}
	c.matrices = append(c.matrices, slices.Clone(data))
}

func (c *callLog) Uniform2f(_ gl.Uniform, v0, v1 float32) { c.vecs = append(c.vecs, []float32{v0, v1}) }
func (c *callLog) Uniform3f(_ gl.Uniform, v0, v1, v2 float32) {
	c.vecs = append(c.vecs, []float32{v0, v1, v2})
}
func (c *callLog) Uniform4f(_ gl.Uniform, v0, v1, v2, v3 float32) {
	c.vecs = append(c.vecs, []float32{v0, v1, v2, v3})
}

func TestVertexFormatLayout(t *testing.T) {
	tests := []struct {
		f    gputypes.VertexFormat
		want gl.VertexLayout
	}{
		{gputypes.VertexFormatFloat32, gl.VertexLayout{Size: 1, Type: gl.FLOAT, Normalized: false}},
		{gputypes.VertexFormatFloat32x2, gl.VertexLayout{Size: 2, Type: gl.FLOAT, Normalized: false}},
		{gputypes.VertexFormatFloat32x4, gl.VertexLayout{Size: 4, Type: gl.FLOAT, Normalized: false}},
		{gputypes.VertexFormatUnorm8x4, gl.VertexLayout{Size: 4, Type: gl.UNSIGNED_BYTE, Normalized: true}},
		{gputypes.VertexFormatSnorm16x2, gl.VertexLayout{Size: 2, Type: gl.SHORT, Normalized: true}},
		{gputypes.VertexFormatUint32x3, gl.VertexLayout{Size: 3, Type: gl.UNSIGNED_INT, Normalized: false}},
	}
	for _, tt := range tests {
		got, err := gl.VertexFormatLayout(tt.f)
		if err != nil {
			t.Errorf("VertexFormatLayout(%v) error = %v", tt.f, err)
			continue
		}
		if got != tt.want {
			t.Errorf("VertexFormatLayout(%v) = %+v, want %+v", tt.f, got, tt.want)
		}
	}

	if _, err := gl.VertexFormatLayout(gputypes.VertexFormatUndefined); !errors.Is(err, gl.ErrUnsupportedFormat) {
		t.Errorf("undefined format error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestVertexAttribFormat(t *testing.T) {
	ctx := &callLog{}
	if err := gl.VertexAttribFormat(ctx, 0, gputypes.VertexFormatFloat32x3, 12, 0); err != nil {
		t.Fatal(err)
	}
	if err := gl.VertexAttribFormat(ctx, 1, gputypes.VertexFormatUndefined, 0, 0); err == nil {
		t.Error("undefined format accepted")
	}
	if len(ctx.attribs) != 1 || ctx.attribs[0] != (gl.VertexLayout{Size: 3, Type: gl.FLOAT, Normalized: false}) {
		t.Errorf("VertexAttribPointer calls = %+v", ctx.attribs)
	}
}

func TestTexImageFormat(t *testing.T) {
	f, err := gl.TexImageFormat(gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	if f != (gl.TexFormat{Internal: gl.RGBA8, Format: gl.RGBA, Type: gl.UNSIGNED_BYTE, BytesPerPixel: 4}) {
		t.Errorf("RGBA8Unorm = %+v", f)
	}
	if f, _ := gl.TexImageFormat(gputypes.TextureFormatRGBA32Float); f.BytesPerPixel != 16 {
		t.Errorf("RGBA32Float bytes per pixel = %d, want 16", f.BytesPerPixel)
	}
	if _, err := gl.TexImageFormat(gputypes.TextureFormatBGRA8Unorm); !errors.Is(err, gl.ErrUnsupportedFormat) {
		t.Errorf("BGRA8Unorm error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestNewTexture2D(t *testing.T) {
	ctx := headless.New(4, 4)
	tex, err := gl.NewTexture2D(ctx, 2, 3, gputypes.TextureFormatRGBA8Unorm, nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, h, ok := ctx.TextureSize(tex); !ok || w != 2 || h != 3 {
		t.Errorf("TextureSize() = %d, %d, %v, want 2, 3, true", w, h, ok)
	}

	if _, err := gl.NewTexture2D(ctx, 2, 2, gputypes.TextureFormatRGBA8Unorm, make([]byte, 3)); err == nil {
		t.Error("short data accepted")
	}
	if _, err := gl.NewTexture2D(ctx, 2, 2, gputypes.TextureFormatBGRA8Unorm, nil); !errors.Is(err, gl.ErrUnsupportedFormat) {
		t.Errorf("unsupported format error = %v", err)
	}
	if n := ctx.Live()[headless.KindTexture]; n != 1 {
		t.Errorf("live textures = %d, want 1", n)
	}
}

func TestNewColorTarget(t *testing.T) {
	ctx := headless.New(4, 4)
	tex, _ := gl.NewTexture2D(ctx, 4, 4, gputypes.TextureFormatRGBA8Unorm, nil)
	fb, err := gl.NewColorTarget(ctx, tex)
	if err != nil {
		t.Fatal(err)
	}
	if !fb.Valid() {
		t.Error("framebuffer not valid")
	}

	bad := headless.New(4, 4, headless.WithFramebufferStatus(gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT))
	tex, _ = gl.NewTexture2D(bad, 4, 4, gputypes.TextureFormatRGBA8Unorm, nil)
	if _, err := gl.NewColorTarget(bad, tex); err == nil {
		t.Fatal("incomplete framebuffer accepted")
	}
	if n := bad.Live()[headless.KindFramebuffer]; n != 0 {
		t.Errorf("incomplete framebuffer not deleted, live = %d", n)
	}
}

func TestClassifyAdapter(t *testing.T) {
	tests := []struct {
		s    string
		want gpucontext.AdapterType
	}{
		{"", gpucontext.AdapterTypeUnknown},
		{"Mesa llvmpipe (LLVM 17.0.6, 256 bits)", gpucontext.AdapterTypeSoftware},
		{"Google SwiftShader", gpucontext.AdapterTypeSoftware},
		{"Intel(R) UHD Graphics 620", gpucontext.AdapterTypeIntegrated},
		{"Apple M2", gpucontext.AdapterTypeIntegrated},
		{"NVIDIA GeForce RTX 4070", gpucontext.AdapterTypeDiscrete},
		{"AMD Radeon RX 7800 XT", gpucontext.AdapterTypeDiscrete},
		{"Some Vendor GPU", gpucontext.AdapterTypeUnknown},
	}
	for _, tt := range tests {
		if got := gl.ClassifyAdapter(tt.s); got != tt.want {
			t.Errorf("ClassifyAdapter(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestDescribeAdapter(t *testing.T) {
	info := gl.DescribeAdapter(headless.New(1, 1))
	if info.Type != gpucontext.AdapterTypeSoftware {
		t.Errorf("headless adapter type = %v, want software", info.Type)
	}

	ctx := headless.New(1, 1, headless.WithRenderer("NVIDIA Corporation", "NVIDIA GeForce RTX 3080"))
	info = gl.DescribeAdapter(ctx)
	if info.Name != "NVIDIA GeForce RTX 3080" || info.Type != gpucontext.AdapterTypeDiscrete {
		t.Errorf("DescribeAdapter() = %+v", info)
	}

	ctx = headless.New(1, 1, headless.WithRenderer("Acme", ""))
	if info := gl.DescribeAdapter(ctx); info.Name != "Acme" {
		t.Errorf("Name without renderer = %q, want vendor", info.Name)
	}
}

func TestFlipRows(t *testing.T) {
	pix := []byte{1, 1, 2, 2, 3, 3}
	gl.FlipRows(pix, 2)
	if !slices.Equal(pix, []byte{3, 3, 2, 2, 1, 1}) {
		t.Errorf("FlipRows = %v", pix)
	}
	gl.FlipRows(pix, 0) // no-op
}

func twoRowImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	for x := range 2 {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, blue)
	}
	return img
}

func TestToRGBA(t *testing.T) {
	img := twoRowImage()
	if got := gl.ToRGBA(img, 0); got != img {
		t.Error("tight RGBA image was copied")
	}

	sub := img.SubImage(image.Rect(0, 1, 2, 2))
	got := gl.ToRGBA(sub, 0)
	if got.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("sub-image bounds = %v", got.Bounds())
	}
	if got.RGBAAt(0, 0) != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("sub-image pixel = %v, want blue", got.RGBAAt(0, 0))
	}

	wide := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	if b := gl.ToRGBA(wide, 4).Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("scaled bounds = %v, want 4x2", b)
	}
	tall := image.NewGray(image.Rect(0, 0, 3, 9))
	if b := gl.ToRGBA(tall, 3).Bounds(); b.Dx() != 1 || b.Dy() != 3 {
		t.Errorf("scaled bounds = %v, want 1x3", b)
	}
}

func TestDecodeImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, twoRowImage()); err != nil {
		t.Fatal(err)
	}
	img, err := gl.DecodeImage(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("bounds = %v", img.Bounds())
	}
	if _, err := gl.DecodeImage(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("garbage decoded")
	}
}

func TestUploadImage(t *testing.T) {
	ctx := headless.New(1, 1)
	tex, err := gl.UploadImage(ctx, twoRowImage())
	if err != nil {
		t.Fatal(err)
	}
	data := ctx.TextureData(tex)
	if len(data) != 16 {
		t.Fatalf("texture data = %d bytes, want 16", len(data))
	}
	// The bottom image row comes first.
	if !slices.Equal(data[:4], []byte{0, 0, 255, 255}) || !slices.Equal(data[8:12], []byte{255, 0, 0, 255}) {
		t.Errorf("texture rows not flipped: %v", data)
	}

	small := headless.New(1, 1, headless.WithMaxTextureSize(1))
	tex, _ = gl.UploadImage(small, twoRowImage())
	if w, h, _ := small.TextureSize(tex); w != 1 || h != 1 {
		t.Errorf("clamped size = %dx%d, want 1x1", w, h)
	}
}

func TestFloatBytes(t *testing.T) {
	b := gl.Float32Bytes(1, -2.5, 0)
	if len(b) != 12 {
		t.Fatalf("len = %d", len(b))
	}
	if got := gl.BytesFloat32(append(b, 0xff)); !slices.Equal(got, []float32{1, -2.5, 0}) {
		t.Errorf("BytesFloat32 = %v", got)
	}
	if got := gl.BytesFloat32(gl.Vec2Bytes([]mgl32.Vec2{{1, 2}, {3, 4}})); !slices.Equal(got, []float32{1, 2, 3, 4}) {
		t.Errorf("Vec2Bytes = %v", got)
	}
	if got := gl.BytesFloat32(gl.Vec3Bytes([]mgl32.Vec3{{1, 2, 3}})); !slices.Equal(got, []float32{1, 2, 3}) {
		t.Errorf("Vec3Bytes = %v", got)
	}
}

func TestUniformHelpers(t *testing.T) {
	ctx := &callLog{}
	m := mgl32.Translate3D(1, 2, 3)
	gl.UniformMat4(ctx, gl.Uniform{}, m)
	gl.UniformVec2(ctx, gl.Uniform{}, mgl32.Vec2{1, 2})
	gl.UniformVec3(ctx, gl.Uniform{}, mgl32.Vec3{1, 2, 3})
	gl.UniformVec4(ctx, gl.Uniform{}, mgl32.Vec4{1, 2, 3, 4})

	if len(ctx.matrices) != 1 || !slices.Equal(ctx.matrices[0], m[:]) {
		t.Errorf("matrix = %v", ctx.matrices)
	}
	// Column-major: the translation sits in elements 12..14.
	if !slices.Equal(ctx.matrices[0][12:15], []float32{1, 2, 3}) {
		t.Errorf("translation = %v", ctx.matrices[0][12:15])
	}
	if len(ctx.vecs) != 3 || len(ctx.vecs[2]) != 4 {
		t.Errorf("vector uploads = %v", ctx.vecs)
	}
}
