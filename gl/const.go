// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

// Enum is a GL enumeration value.
type Enum uint32

// WebGL2 constants used by the engine and its backends.
const (
	ARRAY_BUFFER              Enum = 0x8892
	ELEMENT_ARRAY_BUFFER      Enum = 0x8893
	UNIFORM_BUFFER            Enum = 0x8A11
	TRANSFORM_FEEDBACK_BUFFER Enum = 0x8C8E
	STATIC_DRAW               Enum = 0x88E4
	DYNAMIC_DRAW              Enum = 0x88E8
	STREAM_DRAW               Enum = 0x88E0
	DYNAMIC_READ              Enum = 0x88E9

	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30
	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	INFO_LOG_LENGTH Enum = 0x8B84

	TRANSFORM_FEEDBACK  Enum = 0x8E22
	INTERLEAVED_ATTRIBS Enum = 0x8C8C
	SEPARATE_ATTRIBS    Enum = 0x8C8D
	RASTERIZER_DISCARD  Enum = 0x8C89

	BYTE           Enum = 0x1400
	UNSIGNED_BYTE  Enum = 0x1401
	SHORT          Enum = 0x1402
	UNSIGNED_SHORT Enum = 0x1403
	INT            Enum = 0x1404
	UNSIGNED_INT   Enum = 0x1405
	FLOAT          Enum = 0x1406
	HALF_FLOAT     Enum = 0x140B

	POINTS         Enum = 0x0
	LINES          Enum = 0x1
	LINE_STRIP     Enum = 0x3
	TRIANGLES      Enum = 0x4
	TRIANGLE_STRIP Enum = 0x5
	TRIANGLE_FAN   Enum = 0x6

	TEXTURE_2D         Enum = 0x0DE1
	TEXTURE0           Enum = 0x84C0
	TEXTURE_MAG_FILTER Enum = 0x2800
	TEXTURE_MIN_FILTER Enum = 0x2801
	TEXTURE_WRAP_S     Enum = 0x2802
	TEXTURE_WRAP_T     Enum = 0x2803
	NEAREST            Enum = 0x2600
	LINEAR             Enum = 0x2601
	CLAMP_TO_EDGE      Enum = 0x812F
	REPEAT             Enum = 0x2901
	UNPACK_ALIGNMENT   Enum = 0x0CF5
	PACK_ALIGNMENT     Enum = 0x0D05
	MAX_TEXTURE_SIZE   Enum = 0x0D33

	RED                Enum = 0x1903
	RG                 Enum = 0x8227
	RGB                Enum = 0x1907
	RGBA               Enum = 0x1908
	R8                 Enum = 0x8229
	RG8                Enum = 0x822B
	R32F               Enum = 0x822E
	RGBA8              Enum = 0x8058
	SRGB8_ALPHA8       Enum = 0x8C43
	RGBA16F            Enum = 0x881A
	RGBA32F            Enum = 0x8814
	DEPTH_COMPONENT    Enum = 0x1902
	DEPTH_COMPONENT24  Enum = 0x81A6
	DEPTH_COMPONENT32F Enum = 0x8CAC

	FRAMEBUFFER          Enum = 0x8D40
	READ_FRAMEBUFFER     Enum = 0x8CA8
	DRAW_FRAMEBUFFER     Enum = 0x8CA9
	COLOR_ATTACHMENT0    Enum = 0x8CE0
	DEPTH_ATTACHMENT     Enum = 0x8D00
	FRAMEBUFFER_COMPLETE Enum = 0x8CD5

	FRAMEBUFFER_INCOMPLETE_ATTACHMENT         Enum = 0x8CD6
	FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT Enum = 0x8CD7

	COLOR_BUFFER_BIT   Enum = 0x4000
	DEPTH_BUFFER_BIT   Enum = 0x0100
	STENCIL_BUFFER_BIT Enum = 0x0400

	BLEND               Enum = 0x0BE2
	DEPTH_TEST          Enum = 0x0B71
	CULL_FACE           Enum = 0x0B44
	SRC_ALPHA           Enum = 0x0302
	ONE_MINUS_SRC_ALPHA Enum = 0x0303

	VENDOR   Enum = 0x1F00
	RENDERER Enum = 0x1F01
	VERSION  Enum = 0x1F02

	NO_ERROR Enum = 0x0
)
