// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// UniformMat4 uploads m to a mat4 uniform. mgl32 matrices are column-major,
// so no transpose is requested.
func UniformMat4(ctx Context, u Uniform, m mgl32.Mat4) {
	ctx.UniformMatrix4fv(u, false, m[:])
}

// UniformVec2 uploads v to a vec2 uniform.
func UniformVec2(ctx Context, u Uniform, v mgl32.Vec2) {
	ctx.Uniform2f(u, v[0], v[1])
}

// UniformVec3 uploads v to a vec3 uniform.
func UniformVec3(ctx Context, u Uniform, v mgl32.Vec3) {
	ctx.Uniform3f(u, v[0], v[1], v[2])
}

// UniformVec4 uploads v to a vec4 uniform.
func UniformVec4(ctx Context, u Uniform, v mgl32.Vec4) {
	ctx.Uniform4f(u, v[0], v[1], v[2], v[3])
}

// Float32Bytes encodes vs as little-endian bytes for BufferData.
func Float32Bytes(vs ...float32) []byte {
	b := make([]byte, 4*len(vs))
	for i, v := range vs {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(v))
	}
	return b
}

// Vec2Bytes flattens vs into little-endian float32 bytes.
func Vec2Bytes(vs []mgl32.Vec2) []byte {
	b := make([]byte, 0, 8*len(vs))
	for _, v := range vs {
		b = append(b, Float32Bytes(v[0], v[1])...)
	}
	return b
}

// Vec3Bytes flattens vs into little-endian float32 bytes.
func Vec3Bytes(vs []mgl32.Vec3) []byte {
	b := make([]byte, 0, 12*len(vs))
	for _, v := range vs {
		b = append(b, Float32Bytes(v[0], v[1], v[2])...)
	}
	return b
}

// BytesFloat32 decodes little-endian float32 data, as read back from
// a transform feedback buffer. Trailing bytes are ignored.
func BytesFloat32(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
	return out
}
