// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// ErrUnsupportedFormat is returned for formats WebGL2 cannot express.
var ErrUnsupportedFormat = errors.New("gl: unsupported format")

// VertexLayout is the VertexAttribPointer shape of a vertex format.
type VertexLayout struct {
	Size       int
	Type       Enum
	Normalized bool
}

// VertexFormatLayout maps a gputypes vertex format onto GL component
// count, type and normalization.
func VertexFormatLayout(f gputypes.VertexFormat) (VertexLayout, error) {
	switch f {
	case gputypes.VertexFormatFloat32:
		return VertexLayout{1, FLOAT, false}, nil
	case gputypes.VertexFormatFloat32x2:
		return VertexLayout{2, FLOAT, false}, nil
	case gputypes.VertexFormatFloat32x3:
		return VertexLayout{3, FLOAT, false}, nil
	case gputypes.VertexFormatFloat32x4:
		return VertexLayout{4, FLOAT, false}, nil
	case gputypes.VertexFormatFloat16x2:
		return VertexLayout{2, HALF_FLOAT, false}, nil
	case gputypes.VertexFormatFloat16x4:
		return VertexLayout{4, HALF_FLOAT, false}, nil
	case gputypes.VertexFormatUnorm8x2:
		return VertexLayout{2, UNSIGNED_BYTE, true}, nil
	case gputypes.VertexFormatUnorm8x4:
		return VertexLayout{4, UNSIGNED_BYTE, true}, nil
	case gputypes.VertexFormatSnorm8x2:
		return VertexLayout{2, BYTE, true}, nil
	case gputypes.VertexFormatSnorm8x4:
		return VertexLayout{4, BYTE, true}, nil
	case gputypes.VertexFormatUnorm16x2:
		return VertexLayout{2, UNSIGNED_SHORT, true}, nil
	case gputypes.VertexFormatUnorm16x4:
		return VertexLayout{4, UNSIGNED_SHORT, true}, nil
	case gputypes.VertexFormatSnorm16x2:
		return VertexLayout{2, SHORT, true}, nil
	case gputypes.VertexFormatSnorm16x4:
		return VertexLayout{4, SHORT, true}, nil
	case gputypes.VertexFormatUint8x2:
		return VertexLayout{2, UNSIGNED_BYTE, false}, nil
	case gputypes.VertexFormatUint8x4:
		return VertexLayout{4, UNSIGNED_BYTE, false}, nil
	case gputypes.VertexFormatSint8x2:
		return VertexLayout{2, BYTE, false}, nil
	case gputypes.VertexFormatSint8x4:
		return VertexLayout{4, BYTE, false}, nil
	case gputypes.VertexFormatUint16x2:
		return VertexLayout{2, UNSIGNED_SHORT, false}, nil
	case gputypes.VertexFormatUint16x4:
		return VertexLayout{4, UNSIGNED_SHORT, false}, nil
	case gputypes.VertexFormatSint16x2:
		return VertexLayout{2, SHORT, false}, nil
	case gputypes.VertexFormatSint16x4:
		return VertexLayout{4, SHORT, false}, nil
	case gputypes.VertexFormatUint32:
		return VertexLayout{1, UNSIGNED_INT, false}, nil
	case gputypes.VertexFormatUint32x2:
		return VertexLayout{2, UNSIGNED_INT, false}, nil
	case gputypes.VertexFormatUint32x3:
		return VertexLayout{3, UNSIGNED_INT, false}, nil
	case gputypes.VertexFormatUint32x4:
		return VertexLayout{4, UNSIGNED_INT, false}, nil
	case gputypes.VertexFormatSint32:
		return VertexLayout{1, INT, false}, nil
	case gputypes.VertexFormatSint32x2:
		return VertexLayout{2, INT, false}, nil
	case gputypes.VertexFormatSint32x3:
		return VertexLayout{3, INT, false}, nil
	case gputypes.VertexFormatSint32x4:
		return VertexLayout{4, INT, false}, nil
	}
	return VertexLayout{}, fmt.Errorf("%w: vertex format %s", ErrUnsupportedFormat, f)
}

// VertexAttribFormat calls VertexAttribPointer for a tightly described
// attribute. Integer formats that are not normalized are still fed through
// the float path, matching WebGL's vertexAttribPointer conversion rules.
func VertexAttribFormat(ctx Context, a Attrib, f gputypes.VertexFormat, stride, offset int) error {
	l, err := VertexFormatLayout(f)
	if err != nil {
		return err
	}
	ctx.VertexAttribPointer(a, l.Size, l.Type, l.Normalized, stride, offset)
	return nil
}

// TexFormat is the TexImage2D triple for a texture format.
type TexFormat struct {
	Internal Enum
	Format   Enum
	Type     Enum
	// BytesPerPixel of client data in Format/Type.
	BytesPerPixel int
}

// TexImageFormat maps a gputypes texture format onto a TexImage2D triple.
func TexImageFormat(f gputypes.TextureFormat) (TexFormat, error) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return TexFormat{RGBA8, RGBA, UNSIGNED_BYTE, 4}, nil
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return TexFormat{SRGB8_ALPHA8, RGBA, UNSIGNED_BYTE, 4}, nil
	case gputypes.TextureFormatR8Unorm:
		return TexFormat{R8, RED, UNSIGNED_BYTE, 1}, nil
	case gputypes.TextureFormatRG8Unorm:
		return TexFormat{RG8, RG, UNSIGNED_BYTE, 2}, nil
	case gputypes.TextureFormatR32Float:
		return TexFormat{R32F, RED, FLOAT, 4}, nil
	case gputypes.TextureFormatRGBA16Float:
		return TexFormat{RGBA16F, RGBA, HALF_FLOAT, 8}, nil
	case gputypes.TextureFormatRGBA32Float:
		return TexFormat{RGBA32F, RGBA, FLOAT, 16}, nil
	case gputypes.TextureFormatDepth24Plus:
		return TexFormat{DEPTH_COMPONENT24, DEPTH_COMPONENT, UNSIGNED_INT, 4}, nil
	case gputypes.TextureFormatDepth32Float:
		return TexFormat{DEPTH_COMPONENT32F, DEPTH_COMPONENT, FLOAT, 4}, nil
	}
	return TexFormat{}, fmt.Errorf("%w: texture format %s", ErrUnsupportedFormat, f)
}

// NewTexture2D creates and allocates a 2D texture with nearest filtering
// and clamped edges. data may be nil to allocate uninitialized storage.
func NewTexture2D(ctx Context, width, height int, f gputypes.TextureFormat, data []byte) (Texture, error) {
	tf, err := TexImageFormat(f)
	if err != nil {
		return Texture{}, err
	}
	if data != nil && len(data) != width*height*tf.BytesPerPixel {
		return Texture{}, fmt.Errorf("gl: texture data is %d bytes, want %d", len(data), width*height*tf.BytesPerPixel)
	}
	t := ctx.CreateTexture()
	ctx.BindTexture(TEXTURE_2D, t)
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int(NEAREST))
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, int(NEAREST))
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, int(CLAMP_TO_EDGE))
	ctx.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, int(CLAMP_TO_EDGE))
	ctx.TexImage2D(TEXTURE_2D, 0, tf.Internal, width, height, tf.Format, tf.Type, data)
	ctx.BindTexture(TEXTURE_2D, Texture{})
	return t, nil
}

// NewColorTarget creates a framebuffer with tex attached as its first
// color attachment and verifies completeness.
func NewColorTarget(ctx Context, tex Texture) (Framebuffer, error) {
	fb := ctx.CreateFramebuffer()
	ctx.BindFramebuffer(FRAMEBUFFER, fb)
	ctx.FramebufferTexture2D(FRAMEBUFFER, COLOR_ATTACHMENT0, TEXTURE_2D, tex, 0)
	status := ctx.CheckFramebufferStatus(FRAMEBUFFER)
	ctx.BindFramebuffer(FRAMEBUFFER, Framebuffer{})
	if status != FRAMEBUFFER_COMPLETE {
		ctx.DeleteFramebuffer(fb)
		return Framebuffer{}, fmt.Errorf("gl: framebuffer incomplete (status 0x%x)", uint32(status))
	}
	return fb, nil
}
