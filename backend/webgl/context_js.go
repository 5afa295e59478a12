// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgl

import (
	"syscall/js"

	"github.com/gogpu/wrend/gl"
)

// Context forwards to a WebGL2RenderingContext.
type Context struct {
	v js.Value
}

var _ gl.Context = (*Context)(nil)

// Value returns the underlying WebGL2RenderingContext.
func (c *Context) Value() js.Value { return c.v }

// IsContextLost reports whether the browser dropped the context.
func (c *Context) IsContextLost() bool { return c.v.Call("isContextLost").Bool() }

// orNull maps the zero handle to null, which WebGL uses to unbind.
func orNull(v js.Value) js.Value {
	if v.IsUndefined() {
		return js.Null()
	}
	return v
}

func uint8Array(data []byte) js.Value {
	if data == nil {
		return js.Null()
	}
	a := js.Global().Get("Uint8Array").New(len(data))
	js.CopyBytesToJS(a, data)
	return a
}

func float32Array(data []float32) js.Value {
	a := uint8Array(gl.Float32Bytes(data...))
	return js.Global().Get("Float32Array").New(a.Get("buffer"))
}

// integer converts a getParameter result: booleans become 0 or 1 and
// null becomes 0.
func integer(v js.Value) int {
	switch v.Type() {
	case js.TypeBoolean:
		if v.Bool() {
			return 1
		}
		return 0
	case js.TypeNumber:
		return v.Int()
	default:
		return 0
	}
}

func (c *Context) CreateShader(typ gl.Enum) gl.Shader {
	return gl.Shader{V: c.v.Call("createShader", uint32(typ))}
}

func (c *Context) ShaderSource(s gl.Shader, src string) { c.v.Call("shaderSource", s.V, src) }
func (c *Context) CompileShader(s gl.Shader)            { c.v.Call("compileShader", s.V) }
func (c *Context) DeleteShader(s gl.Shader)             { c.v.Call("deleteShader", orNull(s.V)) }

// GetShaderi emulates INFO_LOG_LENGTH, which WebGL does not expose.
func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	if pname == gl.INFO_LOG_LENGTH {
		return len(c.GetShaderInfoLog(s))
	}
	return integer(c.v.Call("getShaderParameter", s.V, uint32(pname)))
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	log := c.v.Call("getShaderInfoLog", s.V)
	if log.Type() != js.TypeString {
		return ""
	}
	return log.String()
}

func (c *Context) CreateProgram() gl.Program { return gl.Program{V: c.v.Call("createProgram")} }

func (c *Context) AttachShader(p gl.Program, s gl.Shader) { c.v.Call("attachShader", p.V, s.V) }

func (c *Context) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	c.v.Call("bindAttribLocation", p.V, uint32(a), name)
}

func (c *Context) TransformFeedbackVaryings(p gl.Program, varyings []string, bufferMode gl.Enum) {
	names := make([]any, len(varyings))
	for i, v := range varyings {
		names[i] = v
	}
	c.v.Call("transformFeedbackVaryings", p.V, names, uint32(bufferMode))
}

func (c *Context) LinkProgram(p gl.Program)   { c.v.Call("linkProgram", p.V) }
func (c *Context) UseProgram(p gl.Program)    { c.v.Call("useProgram", orNull(p.V)) }
func (c *Context) DeleteProgram(p gl.Program) { c.v.Call("deleteProgram", orNull(p.V)) }

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	if pname == gl.INFO_LOG_LENGTH {
		return len(c.GetProgramInfoLog(p))
	}
	return integer(c.v.Call("getProgramParameter", p.V, uint32(pname)))
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	log := c.v.Call("getProgramInfoLog", p.V)
	if log.Type() != js.TypeString {
		return ""
	}
	return log.String()
}

func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	return gl.Uniform{V: c.v.Call("getUniformLocation", p.V, name)}
}

func (c *Context) GetAttribLocation(p gl.Program, name string) int {
	return c.v.Call("getAttribLocation", p.V, name).Int()
}

func (c *Context) Uniform1i(u gl.Uniform, v int)     { c.v.Call("uniform1i", u.V, v) }
func (c *Context) Uniform1f(u gl.Uniform, v float32) { c.v.Call("uniform1f", u.V, v) }

func (c *Context) Uniform2f(u gl.Uniform, v0, v1 float32) {
	c.v.Call("uniform2f", u.V, v0, v1)
}

func (c *Context) Uniform3f(u gl.Uniform, v0, v1, v2 float32) {
	c.v.Call("uniform3f", u.V, v0, v1, v2)
}

func (c *Context) Uniform4f(u gl.Uniform, v0, v1, v2, v3 float32) {
	c.v.Call("uniform4f", u.V, v0, v1, v2, v3)
}

func (c *Context) UniformMatrix4fv(u gl.Uniform, transpose bool, data []float32) {
	c.v.Call("uniformMatrix4fv", u.V, transpose, float32Array(data))
}

func (c *Context) CreateBuffer() gl.Buffer { return gl.Buffer{V: c.v.Call("createBuffer")} }

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.v.Call("bindBuffer", uint32(target), orNull(b.V))
}

func (c *Context) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	c.v.Call("bindBufferBase", uint32(target), index, orNull(b.V))
}

func (c *Context) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	if data == nil {
		data = []byte{}
	}
	c.v.Call("bufferData", uint32(target), uint8Array(data), uint32(usage))
}

func (c *Context) BufferSubData(target gl.Enum, offset int, data []byte) {
	c.v.Call("bufferSubData", uint32(target), offset, uint8Array(data))
}

func (c *Context) DeleteBuffer(b gl.Buffer) { c.v.Call("deleteBuffer", orNull(b.V)) }

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	c.v.Call("enableVertexAttribArray", uint32(a))
}

func (c *Context) DisableVertexAttribArray(a gl.Attrib) {
	c.v.Call("disableVertexAttribArray", uint32(a))
}

func (c *Context) VertexAttribPointer(a gl.Attrib, size int, typ gl.Enum, normalized bool, stride, offset int) {
	c.v.Call("vertexAttribPointer", uint32(a), size, uint32(typ), normalized, stride, offset)
}

func (c *Context) CreateVertexArray() gl.VertexArray {
	return gl.VertexArray{V: c.v.Call("createVertexArray")}
}

func (c *Context) BindVertexArray(v gl.VertexArray)   { c.v.Call("bindVertexArray", orNull(v.V)) }
func (c *Context) DeleteVertexArray(v gl.VertexArray) { c.v.Call("deleteVertexArray", orNull(v.V)) }

func (c *Context) CreateTexture() gl.Texture  { return gl.Texture{V: c.v.Call("createTexture")} }
func (c *Context) ActiveTexture(unit gl.Enum) { c.v.Call("activeTexture", uint32(unit)) }

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	c.v.Call("bindTexture", uint32(target), orNull(t.V))
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.v.Call("texParameteri", uint32(target), uint32(pname), param)
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, typ gl.Enum, data []byte) {
	c.v.Call("texImage2D", uint32(target), level, uint32(internalFormat), width, height, 0,
		uint32(format), uint32(typ), uint8Array(data))
}

func (c *Context) DeleteTexture(t gl.Texture) { c.v.Call("deleteTexture", orNull(t.V)) }

func (c *Context) CreateFramebuffer() gl.Framebuffer {
	return gl.Framebuffer{V: c.v.Call("createFramebuffer")}
}

func (c *Context) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	c.v.Call("bindFramebuffer", uint32(target), orNull(fb.V))
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	c.v.Call("framebufferTexture2D", uint32(target), uint32(attachment), uint32(texTarget), orNull(t.V), level)
}

func (c *Context) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(c.v.Call("checkFramebufferStatus", uint32(target)).Int())
}

func (c *Context) DeleteFramebuffer(fb gl.Framebuffer) {
	c.v.Call("deleteFramebuffer", orNull(fb.V))
}

func (c *Context) CreateTransformFeedback() gl.TransformFeedback {
	return gl.TransformFeedback{V: c.v.Call("createTransformFeedback")}
}

func (c *Context) BindTransformFeedback(target gl.Enum, tf gl.TransformFeedback) {
	c.v.Call("bindTransformFeedback", uint32(target), orNull(tf.V))
}

func (c *Context) BeginTransformFeedback(primitiveMode gl.Enum) {
	c.v.Call("beginTransformFeedback", uint32(primitiveMode))
}

func (c *Context) EndTransformFeedback() { c.v.Call("endTransformFeedback") }

func (c *Context) DeleteTransformFeedback(tf gl.TransformFeedback) {
	c.v.Call("deleteTransformFeedback", orNull(tf.V))
}

func (c *Context) Viewport(x, y, width, height int) { c.v.Call("viewport", x, y, width, height) }
func (c *Context) ClearColor(r, g, b, a float32)    { c.v.Call("clearColor", r, g, b, a) }
func (c *Context) Clear(mask gl.Enum)               { c.v.Call("clear", uint32(mask)) }
func (c *Context) Enable(capability gl.Enum)        { c.v.Call("enable", uint32(capability)) }
func (c *Context) Disable(capability gl.Enum)       { c.v.Call("disable", uint32(capability)) }

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.v.Call("drawArrays", uint32(mode), first, count)
}

func (c *Context) ReadPixels(x, y, width, height int, format, typ gl.Enum, data []byte) {
	buf := js.Global().Get("Uint8Array").New(len(data))
	c.v.Call("readPixels", x, y, width, height, uint32(format), uint32(typ), buf)
	js.CopyBytesToGo(data, buf)
}

func (c *Context) GetString(pname gl.Enum) string {
	v := c.v.Call("getParameter", uint32(pname))
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

func (c *Context) GetInteger(pname gl.Enum) int {
	return integer(c.v.Call("getParameter", uint32(pname)))
}

func (c *Context) Flush() { c.v.Call("flush") }
