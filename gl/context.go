// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

// Attrib is a vertex attribute location.
type Attrib uint32

// Canvas is a drawing surface a backend can create a Context for.
type Canvas interface {
	Width() int
	Height() int
}

// Releaser is implemented by contexts that own platform resources
// (display connections, native contexts) beyond their GL objects.
type Releaser interface {
	Release()
}

// Context is a WebGL2-shaped GL function table.
//
// Method names and argument order follow the WebGL2RenderingContext API.
// Passing a zero handle to a Bind or Use call unbinds the target.
// All calls must be made from the goroutine that owns the context.
type Context interface {
	CreateShader(typ Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	CreateProgram() Program
	AttachShader(p Program, s Shader)
	BindAttribLocation(p Program, a Attrib, name string)
	TransformFeedbackVaryings(p Program, varyings []string, bufferMode Enum)
	LinkProgram(p Program)
	GetProgrami(p Program, pname Enum) int
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	// GetUniformLocation returns NoUniform when the program has no
	// active uniform with the given name.
	GetUniformLocation(p Program, name string) Uniform
	// GetAttribLocation returns -1 when the program has no active
	// attribute with the given name.
	GetAttribLocation(p Program, name string) int

	Uniform1i(u Uniform, v int)
	Uniform1f(u Uniform, v float32)
	Uniform2f(u Uniform, v0, v1 float32)
	Uniform3f(u Uniform, v0, v1, v2 float32)
	Uniform4f(u Uniform, v0, v1, v2, v3 float32)
	UniformMatrix4fv(u Uniform, transpose bool, data []float32)

	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BindBufferBase(target Enum, index int, b Buffer)
	BufferData(target Enum, data []byte, usage Enum)
	BufferSubData(target Enum, offset int, data []byte)
	DeleteBuffer(b Buffer)

	EnableVertexAttribArray(a Attrib)
	DisableVertexAttribArray(a Attrib)
	VertexAttribPointer(a Attrib, size int, typ Enum, normalized bool, stride, offset int)
	CreateVertexArray() VertexArray
	BindVertexArray(v VertexArray)
	DeleteVertexArray(v VertexArray)

	CreateTexture() Texture
	ActiveTexture(unit Enum)
	BindTexture(target Enum, t Texture)
	TexParameteri(target, pname Enum, param int)
	TexImage2D(target Enum, level int, internalFormat Enum, width, height int, format, typ Enum, data []byte)
	DeleteTexture(t Texture)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(target Enum, fb Framebuffer)
	FramebufferTexture2D(target, attachment, texTarget Enum, t Texture, level int)
	CheckFramebufferStatus(target Enum) Enum
	DeleteFramebuffer(fb Framebuffer)

	CreateTransformFeedback() TransformFeedback
	BindTransformFeedback(target Enum, tf TransformFeedback)
	BeginTransformFeedback(primitiveMode Enum)
	EndTransformFeedback()
	DeleteTransformFeedback(tf TransformFeedback)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	DrawArrays(mode Enum, first, count int)
	ReadPixels(x, y, width, height int, format, typ Enum, data []byte)
	GetString(pname Enum) string
	GetInteger(pname Enum) int
	Flush()
}
