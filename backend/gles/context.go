// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux && !js

package gles

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/wgpu/hal/gles/egl"
	halgl "github.com/gogpu/wgpu/hal/gles/gl"

	"github.com/gogpu/wrend/backend"
	"github.com/gogpu/wrend/gl"
)

// Context is an OpenGL ES 3.0 context rendering into an off-screen
// framebuffer. It must be used from the goroutine that created it.
type Context struct {
	egl *egl.Context
	gl  *halgl.Context
	p   procs

	width, height int
	fbo, color    uint32
	released      bool
}

var (
	_ gl.Context  = (*Context)(nil)
	_ gl.Releaser = (*Context)(nil)
)

// New creates a context with a width x height off-screen framebuffer.
// The calling goroutine stays locked to its OS thread until Release.
func New(width, height int) (*Context, error) {
	if err := loadEGL(); err != nil {
		return nil, fmt.Errorf("%w: %w", backend.ErrContextRetrieval, err)
	}

	runtime.LockOSThread()
	cfg := egl.DefaultContextConfig()
	cfg.GLES = true
	cfg.GLVersionMajor = 3
	cfg.GLVersionMinor = 0
	cfg.CoreProfile = false
	ec, err := egl.NewContext(cfg)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %w", backend.ErrContextRetrieval, err)
	}
	if err := ec.MakeCurrent(); err != nil {
		ec.Destroy()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("%w: %w", backend.ErrContextRetrieval, err)
	}

	c := &Context{egl: ec, gl: &halgl.Context{}, width: width, height: height}
	if err := c.gl.Load(egl.GetGLProcAddress); err != nil {
		c.destroy()
		return nil, fmt.Errorf("%w: %w", backend.ErrContextRetrieval, err)
	}
	if err := c.p.load(egl.GetGLProcAddress); err != nil {
		c.destroy()
		return nil, fmt.Errorf("%w: %w", backend.ErrContextRetrieval, err)
	}
	if err := c.initTarget(); err != nil {
		c.destroy()
		return nil, err
	}

	backend.Logger().Info("gles: context created",
		"version", c.gl.GetString(halgl.VERSION),
		"renderer", c.gl.GetString(halgl.RENDERER),
		"size", fmt.Sprintf("%dx%d", width, height),
	)
	return c, nil
}

// initTarget creates the off-screen framebuffer standing in for the
// canvas.
func (c *Context) initTarget() error {
	c.color = c.p.genTextures.gen()
	c.gl.BindTexture(uint32(gl.TEXTURE_2D), c.color)
	c.gl.TexParameteri(uint32(gl.TEXTURE_2D), uint32(gl.TEXTURE_MIN_FILTER), int32(gl.NEAREST))
	c.gl.TexParameteri(uint32(gl.TEXTURE_2D), uint32(gl.TEXTURE_MAG_FILTER), int32(gl.NEAREST))
	c.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, c.width, c.height, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	c.gl.BindTexture(uint32(gl.TEXTURE_2D), 0)

	c.fbo = c.p.genFramebuffers.gen()
	c.gl.BindFramebuffer(uint32(gl.FRAMEBUFFER), c.fbo)
	c.gl.FramebufferTexture2D(uint32(gl.FRAMEBUFFER), uint32(gl.COLOR_ATTACHMENT0), uint32(gl.TEXTURE_2D), c.color, 0)
	if status := gl.Enum(c.gl.CheckFramebufferStatus(uint32(gl.FRAMEBUFFER))); status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("%w: off-screen framebuffer status 0x%x", backend.ErrContextRetrieval, uint32(status))
	}
	c.gl.Viewport(0, 0, int32(c.width), int32(c.height))
	return nil
}

// Width returns the width of the off-screen framebuffer.
func (c *Context) Width() int { return c.width }

// Height returns the height of the off-screen framebuffer.
func (c *Context) Height() int { return c.height }

// Release destroys the framebuffer and the EGL context and unlocks the
// OS thread. Release is idempotent.
func (c *Context) Release() {
	if c.released {
		return
	}
	c.gl.BindFramebuffer(uint32(gl.FRAMEBUFFER), 0)
	c.p.deleteFramebuffers.del(c.fbo)
	c.p.deleteTextures.del(c.color)
	c.destroy()
	backend.Logger().Debug("gles: context released")
}

func (c *Context) destroy() {
	c.released = true
	c.egl.Destroy()
	runtime.UnlockOSThread()
}

// Shaders

func (c *Context) CreateShader(typ gl.Enum) gl.Shader {
	return gl.Shader{V: c.gl.CreateShader(uint32(typ))}
}

func (c *Context) ShaderSource(s gl.Shader, src string) { c.gl.ShaderSource(s.V, src) }
func (c *Context) CompileShader(s gl.Shader)            { c.gl.CompileShader(s.V) }
func (c *Context) DeleteShader(s gl.Shader)             { c.gl.DeleteShader(s.V) }

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	var v int32
	pn := uint32(pname)
	c.p.getShaderiv.call(nil, unsafe.Pointer(&s.V), unsafe.Pointer(&pn), box(unsafe.Pointer(&v)))
	return int(v)
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	return infoLog(c.GetShaderi(s, gl.INFO_LOG_LENGTH), &c.p.getShaderInfoLog, s.V)
}

func infoLog(size int, p *proc, obj uint32) string {
	if size <= 0 {
		return ""
	}
	buf := make([]byte, size)
	maxLen := int32(size)
	var n int32
	p.call(nil, unsafe.Pointer(&obj), unsafe.Pointer(&maxLen), box(unsafe.Pointer(&n)), box(unsafe.Pointer(&buf[0])))
	n = min(max(n, 0), maxLen)
	return string(buf[:n])
}

// Programs

func (c *Context) CreateProgram() gl.Program              { return gl.Program{V: c.gl.CreateProgram()} }
func (c *Context) AttachShader(p gl.Program, s gl.Shader) { c.gl.AttachShader(p.V, s.V) }
func (c *Context) LinkProgram(p gl.Program)               { c.gl.LinkProgram(p.V) }
func (c *Context) UseProgram(p gl.Program)                { c.gl.UseProgram(p.V) }
func (c *Context) DeleteProgram(p gl.Program)             { c.gl.DeleteProgram(p.V) }

func (c *Context) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	cname := cstring(name)
	idx := uint32(a)
	c.p.bindAttribLocation.call(nil, unsafe.Pointer(&p.V), unsafe.Pointer(&idx), box(unsafe.Pointer(&cname[0])))
}

func (c *Context) TransformFeedbackVaryings(p gl.Program, varyings []string, bufferMode gl.Enum) {
	names := make([][]byte, len(varyings))
	ptrs := make([]unsafe.Pointer, len(varyings))
	for i, v := range varyings {
		names[i] = cstring(v)
		ptrs[i] = unsafe.Pointer(&names[i][0])
	}
	count := int32(len(varyings))
	mode := uint32(bufferMode)
	var arr unsafe.Pointer
	if len(ptrs) > 0 {
		arr = unsafe.Pointer(&ptrs[0])
	}
	c.p.transformFeedbackVaryings.call(nil, unsafe.Pointer(&p.V), unsafe.Pointer(&count), box(arr), unsafe.Pointer(&mode))
	runtime.KeepAlive(names)
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	var v int32
	pn := uint32(pname)
	c.p.getProgramiv.call(nil, unsafe.Pointer(&p.V), unsafe.Pointer(&pn), box(unsafe.Pointer(&v)))
	return int(v)
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	return infoLog(c.GetProgrami(p, gl.INFO_LOG_LENGTH), &c.p.getProgramInfoLog, p.V)
}

func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	cname := cstring(name)
	var loc int32
	c.p.getUniformLocation.call(unsafe.Pointer(&loc), unsafe.Pointer(&p.V), box(unsafe.Pointer(&cname[0])))
	return gl.Uniform{V: loc}
}

func (c *Context) GetAttribLocation(p gl.Program, name string) int {
	cname := cstring(name)
	var loc int32
	c.p.getAttribLocation.call(unsafe.Pointer(&loc), unsafe.Pointer(&p.V), box(unsafe.Pointer(&cname[0])))
	return int(loc)
}

// Uniforms

func (c *Context) Uniform1i(u gl.Uniform, v int) { c.gl.Uniform1i(u.V, int32(v)) }

func (c *Context) Uniform1f(u gl.Uniform, v float32) {
	c.p.uniform1f.call(nil, unsafe.Pointer(&u.V), unsafe.Pointer(&v))
}

func (c *Context) Uniform2f(u gl.Uniform, v0, v1 float32) {
	c.p.uniform2f.call(nil, unsafe.Pointer(&u.V), unsafe.Pointer(&v0), unsafe.Pointer(&v1))
}

func (c *Context) Uniform3f(u gl.Uniform, v0, v1, v2 float32) {
	c.p.uniform3f.call(nil, unsafe.Pointer(&u.V), unsafe.Pointer(&v0), unsafe.Pointer(&v1), unsafe.Pointer(&v2))
}

func (c *Context) Uniform4f(u gl.Uniform, v0, v1, v2, v3 float32) {
	c.p.uniform4f.call(nil, unsafe.Pointer(&u.V), unsafe.Pointer(&v0), unsafe.Pointer(&v1), unsafe.Pointer(&v2), unsafe.Pointer(&v3))
}

func (c *Context) UniformMatrix4fv(u gl.Uniform, transpose bool, data []float32) {
	count := int32(len(data) / 16)
	if count == 0 {
		return
	}
	var t uint8
	if transpose {
		t = 1
	}
	c.p.uniformMatrix4fv.call(nil, unsafe.Pointer(&u.V), unsafe.Pointer(&count), unsafe.Pointer(&t), box(unsafe.Pointer(&data[0])))
}

// Buffers

func (c *Context) CreateBuffer() gl.Buffer  { return gl.Buffer{V: c.p.genBuffers.gen()} }
func (c *Context) DeleteBuffer(b gl.Buffer) { c.p.deleteBuffers.del(b.V) }

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) { c.gl.BindBuffer(uint32(target), b.V) }

func (c *Context) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	c.gl.BindBufferBase(uint32(target), uint32(index), b.V)
}

func (c *Context) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	t, u := uint32(target), uint32(usage)
	size := uint64(len(data))
	c.p.bufferData.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&size), box(bytesPtr(data)), unsafe.Pointer(&u))
}

func (c *Context) BufferSubData(target gl.Enum, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	t := uint32(target)
	off, size := uint64(offset), uint64(len(data))
	c.p.bufferSubData.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&off), unsafe.Pointer(&size), box(bytesPtr(data)))
}

// Vertex arrays

func (c *Context) EnableVertexAttribArray(a gl.Attrib)  { c.gl.EnableVertexAttribArray(uint32(a)) }
func (c *Context) DisableVertexAttribArray(a gl.Attrib) { c.gl.DisableVertexAttribArray(uint32(a)) }

func (c *Context) VertexAttribPointer(a gl.Attrib, size int, typ gl.Enum, normalized bool, stride, offset int) {
	c.gl.VertexAttribPointer(uint32(a), int32(size), uint32(typ), normalized, int32(stride), uintptr(offset))
}

func (c *Context) CreateVertexArray() gl.VertexArray {
	return gl.VertexArray{V: c.p.genVertexArrays.gen()}
}

func (c *Context) BindVertexArray(v gl.VertexArray)   { c.gl.BindVertexArray(v.V) }
func (c *Context) DeleteVertexArray(v gl.VertexArray) { c.p.deleteVertexArrays.del(v.V) }

// Textures

func (c *Context) CreateTexture() gl.Texture  { return gl.Texture{V: c.p.genTextures.gen()} }
func (c *Context) DeleteTexture(t gl.Texture) { c.p.deleteTextures.del(t.V) }
func (c *Context) ActiveTexture(unit gl.Enum) { c.gl.ActiveTexture(uint32(unit)) }

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) { c.gl.BindTexture(uint32(target), t.V) }

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.gl.TexParameteri(uint32(target), uint32(pname), int32(param))
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, typ gl.Enum, data []byte) {
	tgt, f, ty := uint32(target), uint32(format), uint32(typ)
	lvl, ifmt, w, h, border := int32(level), int32(internalFormat), int32(width), int32(height), int32(0)
	c.p.texImage2D.call(nil,
		unsafe.Pointer(&tgt), unsafe.Pointer(&lvl), unsafe.Pointer(&ifmt),
		unsafe.Pointer(&w), unsafe.Pointer(&h), unsafe.Pointer(&border),
		unsafe.Pointer(&f), unsafe.Pointer(&ty), box(bytesPtr(data)))
}

// Framebuffers

func (c *Context) CreateFramebuffer() gl.Framebuffer {
	return gl.Framebuffer{V: c.p.genFramebuffers.gen()}
}

// BindFramebuffer binds fb, or the off-screen canvas framebuffer when fb
// is the zero handle.
func (c *Context) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	id := fb.V
	if !fb.Valid() {
		id = c.fbo
	}
	c.gl.BindFramebuffer(uint32(target), id)
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	c.gl.FramebufferTexture2D(uint32(target), uint32(attachment), uint32(texTarget), t.V, int32(level))
}

func (c *Context) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	return gl.Enum(c.gl.CheckFramebufferStatus(uint32(target)))
}

func (c *Context) DeleteFramebuffer(fb gl.Framebuffer) { c.p.deleteFramebuffers.del(fb.V) }

// Transform feedback

func (c *Context) CreateTransformFeedback() gl.TransformFeedback {
	return gl.TransformFeedback{V: c.p.genTransformFeedbacks.gen()}
}

func (c *Context) BindTransformFeedback(target gl.Enum, tf gl.TransformFeedback) {
	t := uint32(target)
	c.p.bindTransformFeedback.call(nil, unsafe.Pointer(&t), unsafe.Pointer(&tf.V))
}

func (c *Context) BeginTransformFeedback(primitiveMode gl.Enum) {
	m := uint32(primitiveMode)
	c.p.beginTransformFeedback.call(nil, unsafe.Pointer(&m))
}

func (c *Context) EndTransformFeedback() { c.p.endTransformFeedback.call(nil) }

func (c *Context) DeleteTransformFeedback(tf gl.TransformFeedback) {
	c.p.deleteTransformFeedbacks.del(tf.V)
}

// State and drawing

func (c *Context) Viewport(x, y, width, height int) {
	c.gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) ClearColor(r, g, b, a float32) { c.gl.ClearColor(r, g, b, a) }
func (c *Context) Clear(mask gl.Enum)            { c.gl.Clear(uint32(mask)) }
func (c *Context) Enable(capability gl.Enum)     { c.gl.Enable(uint32(capability)) }
func (c *Context) Disable(capability gl.Enum)    { c.gl.Disable(uint32(capability)) }

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.gl.DrawArrays(uint32(mode), int32(first), int32(count))
}

func (c *Context) ReadPixels(x, y, width, height int, format, typ gl.Enum, data []byte) {
	x32, y32, w, h := int32(x), int32(y), int32(width), int32(height)
	f, t := uint32(format), uint32(typ)
	c.p.readPixels.call(nil,
		unsafe.Pointer(&x32), unsafe.Pointer(&y32), unsafe.Pointer(&w), unsafe.Pointer(&h),
		unsafe.Pointer(&f), unsafe.Pointer(&t), box(bytesPtr(data)))
}

func (c *Context) GetString(pname gl.Enum) string { return c.gl.GetString(uint32(pname)) }

func (c *Context) GetInteger(pname gl.Enum) int {
	var v int32
	pn := uint32(pname)
	c.p.getIntegerv.call(nil, unsafe.Pointer(&pn), box(unsafe.Pointer(&v)))
	return int(v)
}

func (c *Context) Flush() { c.gl.Flush() }
