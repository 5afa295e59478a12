// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package headless

import (
	"fmt"
	"math"
	"slices"

	"github.com/gogpu/wrend/gl"
)

// Kind classifies GL objects for accounting.
type Kind int

const (
	KindShader Kind = iota
	KindProgram
	KindBuffer
	KindTexture
	KindFramebuffer
	KindVertexArray
	KindTransformFeedback
)

var kindNames = [...]string{"shader", "program", "buffer", "texture", "framebuffer", "vertex array", "transform feedback"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

type shaderObj struct {
	typ      gl.Enum
	src      string
	compiled bool
	log      string
	decls    decls
}

type programObj struct {
	shaders  []uint32
	bindings map[string]int
	varyings []string
	tfMode   gl.Enum
	linked   bool
	log      string
	uniforms []string
	attribs  map[string]int
	values   map[int32][]float32
}

type textureObj struct {
	width, height int
	internal      gl.Enum
	data          []byte
	params        map[gl.Enum]int
}

// AttribState is the recorded vertex attribute setup of one location.
type AttribState struct {
	Enabled    bool
	Buffer     gl.Buffer
	Size       int
	Type       gl.Enum
	Normalized bool
	Stride     int
	Offset     int
}

type vaoObj struct {
	attribs map[gl.Attrib]*AttribState
}

// Context is an in-memory gl.Context. It is not safe for concurrent use,
// matching the single-owner contract of real GL contexts.
type Context struct {
	opts          options
	width, height int

	next    uint32
	kinds   map[uint32]Kind
	shaders map[uint32]*shaderObj
	progs   map[uint32]*programObj
	buffers map[uint32][]byte
	texs    map[uint32]*textureObj
	fbs     map[uint32]uint32 // framebuffer -> color texture
	vaos    map[uint32]*vaoObj

	program     uint32
	bufBinding  map[gl.Enum]uint32
	bufBases    map[int]uint32
	vao         uint32
	framebuffer uint32
	activeUnit  gl.Enum
	texBinding  map[gl.Enum]uint32
	tfBinding   uint32
	tfActive    bool
	enabled     map[gl.Enum]bool
	viewport    [4]int

	clearColor [4]float32
	pixels     []byte

	draws    int
	flushes  int
	released bool
	trace    []string
}

var _ gl.Context = (*Context)(nil)

// New returns a context with a width x height RGBA default framebuffer.
func New(width, height int, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		opts:       o,
		width:      width,
		height:     height,
		kinds:      make(map[uint32]Kind),
		shaders:    make(map[uint32]*shaderObj),
		progs:      make(map[uint32]*programObj),
		buffers:    make(map[uint32][]byte),
		texs:       make(map[uint32]*textureObj),
		fbs:        make(map[uint32]uint32),
		vaos:       map[uint32]*vaoObj{0: {attribs: make(map[gl.Attrib]*AttribState)}},
		bufBinding: make(map[gl.Enum]uint32),
		bufBases:   make(map[int]uint32),
		texBinding: make(map[gl.Enum]uint32),
		enabled:    make(map[gl.Enum]bool),
		activeUnit: gl.TEXTURE0,
		viewport:   [4]int{0, 0, width, height},
		pixels:     make([]byte, 4*width*height),
	}
	return c
}

func (c *Context) record(call string) {
	if c.opts.trace {
		c.trace = append(c.trace, call)
	}
}

func (c *Context) alloc(k Kind) uint32 {
	if c.opts.nullKinds[k] {
		return 0
	}
	c.next++
	c.kinds[c.next] = k
	return c.next
}

func (c *Context) free(k Kind, id uint32) bool {
	if id == 0 || c.kinds[id] != k {
		return false
	}
	if _, ok := c.kinds[id]; !ok {
		return false
	}
	delete(c.kinds, id)
	return true
}

// Live reports the number of live objects per kind.
func (c *Context) Live() map[Kind]int {
	m := make(map[Kind]int)
	for _, k := range c.kinds {
		m[k]++
	}
	return m
}

// LiveObjects reports the total number of live objects.
func (c *Context) LiveObjects() int { return len(c.kinds) }

// Trace returns the recorded call names when WithTrace was given.
func (c *Context) Trace() []string { return slices.Clone(c.trace) }

// ResetTrace clears the call record.
func (c *Context) ResetTrace() { c.trace = c.trace[:0] }

// Draws reports the number of DrawArrays calls.
func (c *Context) Draws() int { return c.draws }

// Flushes reports the number of Flush calls.
func (c *Context) Flushes() int { return c.flushes }

// Released reports whether Release was called.
func (c *Context) Released() bool { return c.released }

// Pixels exposes the default framebuffer, bottom row first, RGBA8.
func (c *Context) Pixels() []byte { return c.pixels }

// CurrentProgram returns the program bound by UseProgram.
func (c *Context) CurrentProgram() gl.Program { return gl.Program{V: c.program} }

// UniformValue returns the last value set on the named uniform of p.
func (c *Context) UniformValue(p gl.Program, name string) ([]float32, bool) {
	po := c.progs[p.V]
	if po == nil {
		return nil, false
	}
	loc := slices.Index(po.uniforms, name)
	if loc < 0 {
		return nil, false
	}
	v, ok := po.values[int32(loc)]
	return v, ok
}

// BufferBytes returns the data store of b.
func (c *Context) BufferBytes(b gl.Buffer) []byte { return c.buffers[b.V] }

// Attrib returns the recorded setup of location a on vertex array v;
// the zero VertexArray is the default one.
func (c *Context) Attrib(v gl.VertexArray, a gl.Attrib) (AttribState, bool) {
	vo := c.vaos[v.V]
	if vo == nil || vo.attribs[a] == nil {
		return AttribState{}, false
	}
	return *vo.attribs[a], true
}

// TextureSize returns the allocated size of t.
func (c *Context) TextureSize(t gl.Texture) (width, height int, ok bool) {
	to := c.texs[t.V]
	if to == nil {
		return 0, 0, false
	}
	return to.width, to.height, true
}

// TextureData returns the level 0 contents of t as uploaded.
func (c *Context) TextureData(t gl.Texture) []byte {
	if to := c.texs[t.V]; to != nil {
		return to.data
	}
	return nil
}

// Release implements gl.Releaser.
func (c *Context) Release() {
	c.record("Release")
	c.released = true
}

// Shaders.

func (c *Context) CreateShader(typ gl.Enum) gl.Shader {
	c.record("CreateShader")
	id := c.alloc(KindShader)
	if id != 0 {
		c.shaders[id] = &shaderObj{typ: typ}
	}
	return gl.Shader{V: id}
}

func (c *Context) ShaderSource(s gl.Shader, src string) {
	c.record("ShaderSource")
	if so := c.shaders[s.V]; so != nil {
		so.src = src
	}
}

func (c *Context) CompileShader(s gl.Shader) {
	c.record("CompileShader")
	so := c.shaders[s.V]
	if so == nil {
		return
	}
	so.decls = scan(so.src)
	switch {
	case so.decls.errorMsg != "":
		so.compiled = false
		so.log = "ERROR: 0:1: '#error' : " + so.decls.errorMsg
	case !so.decls.hasMain:
		so.compiled = false
		so.log = "ERROR: 0:1: 'main' : function not defined"
	default:
		so.compiled = true
		so.log = ""
	}
	if c.opts.emptyLogs {
		so.log = ""
	}
}

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	so := c.shaders[s.V]
	if so == nil {
		return 0
	}
	switch pname {
	case gl.COMPILE_STATUS:
		return boolInt(so.compiled)
	case gl.INFO_LOG_LENGTH:
		return len(so.log)
	}
	return 0
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	if so := c.shaders[s.V]; so != nil {
		return so.log
	}
	return ""
}

func (c *Context) DeleteShader(s gl.Shader) {
	c.record("DeleteShader")
	if c.free(KindShader, s.V) {
		delete(c.shaders, s.V)
	}
}

// Programs.

func (c *Context) CreateProgram() gl.Program {
	c.record("CreateProgram")
	id := c.alloc(KindProgram)
	if id != 0 {
		c.progs[id] = &programObj{bindings: make(map[string]int)}
	}
	return gl.Program{V: id}
}

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	c.record("AttachShader")
	if po := c.progs[p.V]; po != nil && c.shaders[s.V] != nil {
		po.shaders = append(po.shaders, s.V)
	}
}

func (c *Context) BindAttribLocation(p gl.Program, a gl.Attrib, name string) {
	c.record("BindAttribLocation")
	if po := c.progs[p.V]; po != nil {
		po.bindings[name] = int(a)
	}
}

func (c *Context) TransformFeedbackVaryings(p gl.Program, varyings []string, bufferMode gl.Enum) {
	c.record("TransformFeedbackVaryings")
	if po := c.progs[p.V]; po != nil {
		po.varyings = slices.Clone(varyings)
		po.tfMode = bufferMode
	}
}

func (c *Context) LinkProgram(p gl.Program) {
	c.record("LinkProgram")
	po := c.progs[p.V]
	if po == nil {
		return
	}
	po.linked, po.log = false, ""
	var vs, fs *shaderObj
	for _, id := range po.shaders {
		so := c.shaders[id]
		if so == nil {
			continue
		}
		switch so.typ {
		case gl.VERTEX_SHADER:
			vs = so
		case gl.FRAGMENT_SHADER:
			fs = so
		}
	}
	switch {
	case vs == nil || fs == nil:
		po.log = "ERROR: Link failed: program requires a vertex and a fragment shader"
	case !vs.compiled || !fs.compiled:
		po.log = "ERROR: Link failed: attached shader not compiled"
	}
	if po.log == "" {
		for _, v := range po.varyings {
			if v != "gl_Position" && !slices.Contains(vs.decls.outputs, v) {
				po.log = fmt.Sprintf("ERROR: transform feedback varying %q is not a vertex shader output", v)
				break
			}
		}
	}
	if po.log != "" {
		if c.opts.emptyLogs {
			po.log = ""
		}
		return
	}

	po.linked = true
	po.uniforms = nil
	for _, u := range append(slices.Clone(vs.decls.uniforms), fs.decls.uniforms...) {
		if !slices.Contains(po.uniforms, u) {
			po.uniforms = append(po.uniforms, u)
		}
	}
	po.values = make(map[int32][]float32)
	po.attribs = make(map[string]int)
	used := make(map[int]bool)
	for _, name := range vs.decls.inputs {
		if loc, ok := po.bindings[name]; ok {
			po.attribs[name] = loc
			used[loc] = true
		}
	}
	loc := 0
	for _, name := range vs.decls.inputs {
		if _, ok := po.attribs[name]; ok {
			continue
		}
		for used[loc] {
			loc++
		}
		po.attribs[name] = loc
		used[loc] = true
	}
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	po := c.progs[p.V]
	if po == nil {
		return 0
	}
	switch pname {
	case gl.LINK_STATUS:
		return boolInt(po.linked)
	case gl.INFO_LOG_LENGTH:
		return len(po.log)
	}
	return 0
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	if po := c.progs[p.V]; po != nil {
		return po.log
	}
	return ""
}

func (c *Context) UseProgram(p gl.Program) {
	c.record("UseProgram")
	c.program = p.V
}

func (c *Context) DeleteProgram(p gl.Program) {
	c.record("DeleteProgram")
	if c.free(KindProgram, p.V) {
		delete(c.progs, p.V)
		if c.program == p.V {
			c.program = 0
		}
	}
}

func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	c.record("GetUniformLocation")
	po := c.progs[p.V]
	if po == nil || !po.linked {
		return gl.NoUniform
	}
	if i := slices.Index(po.uniforms, name); i >= 0 {
		return gl.Uniform{V: int32(i)}
	}
	return gl.NoUniform
}

func (c *Context) GetAttribLocation(p gl.Program, name string) int {
	c.record("GetAttribLocation")
	po := c.progs[p.V]
	if po == nil || !po.linked {
		return -1
	}
	if loc, ok := po.attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) setUniform(u gl.Uniform, v ...float32) {
	po := c.progs[c.program]
	if po == nil || !u.Valid() || int(u.V) >= len(po.uniforms) {
		return
	}
	po.values[u.V] = v
}

func (c *Context) Uniform1i(u gl.Uniform, v int) {
	c.record("Uniform1i")
	c.setUniform(u, float32(v))
}

func (c *Context) Uniform1f(u gl.Uniform, v float32) {
	c.record("Uniform1f")
	c.setUniform(u, v)
}

func (c *Context) Uniform2f(u gl.Uniform, v0, v1 float32) {
	c.record("Uniform2f")
	c.setUniform(u, v0, v1)
}

func (c *Context) Uniform3f(u gl.Uniform, v0, v1, v2 float32) {
	c.record("Uniform3f")
	c.setUniform(u, v0, v1, v2)
}

func (c *Context) Uniform4f(u gl.Uniform, v0, v1, v2, v3 float32) {
	c.record("Uniform4f")
	c.setUniform(u, v0, v1, v2, v3)
}

func (c *Context) UniformMatrix4fv(u gl.Uniform, transpose bool, data []float32) {
	c.record("UniformMatrix4fv")
	c.setUniform(u, slices.Clone(data)...)
}

// Buffers.

func (c *Context) CreateBuffer() gl.Buffer {
	c.record("CreateBuffer")
	id := c.alloc(KindBuffer)
	if id != 0 {
		c.buffers[id] = nil
	}
	return gl.Buffer{V: id}
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.record("BindBuffer")
	c.bufBinding[target] = b.V
}

func (c *Context) BindBufferBase(target gl.Enum, index int, b gl.Buffer) {
	c.record("BindBufferBase")
	c.bufBinding[target] = b.V
	c.bufBases[index] = b.V
}

func (c *Context) BufferData(target gl.Enum, data []byte, usage gl.Enum) {
	c.record("BufferData")
	if id := c.bufBinding[target]; id != 0 {
		c.buffers[id] = slices.Clone(data)
	}
}

func (c *Context) BufferSubData(target gl.Enum, offset int, data []byte) {
	c.record("BufferSubData")
	id := c.bufBinding[target]
	if id == 0 || offset < 0 || offset+len(data) > len(c.buffers[id]) {
		return
	}
	copy(c.buffers[id][offset:], data)
}

func (c *Context) DeleteBuffer(b gl.Buffer) {
	c.record("DeleteBuffer")
	if c.free(KindBuffer, b.V) {
		delete(c.buffers, b.V)
		for t, id := range c.bufBinding {
			if id == b.V {
				c.bufBinding[t] = 0
			}
		}
	}
}

// Vertex arrays.

func (c *Context) attrib(a gl.Attrib) *AttribState {
	vo := c.vaos[c.vao]
	if vo == nil {
		return nil
	}
	st := vo.attribs[a]
	if st == nil {
		st = &AttribState{}
		vo.attribs[a] = st
	}
	return st
}

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	c.record("EnableVertexAttribArray")
	if st := c.attrib(a); st != nil {
		st.Enabled = true
	}
}

func (c *Context) DisableVertexAttribArray(a gl.Attrib) {
	c.record("DisableVertexAttribArray")
	if st := c.attrib(a); st != nil {
		st.Enabled = false
	}
}

func (c *Context) VertexAttribPointer(a gl.Attrib, size int, typ gl.Enum, normalized bool, stride, offset int) {
	c.record("VertexAttribPointer")
	st := c.attrib(a)
	if st == nil {
		return
	}
	st.Buffer = gl.Buffer{V: c.bufBinding[gl.ARRAY_BUFFER]}
	st.Size, st.Type, st.Normalized = size, typ, normalized
	st.Stride, st.Offset = stride, offset
}

func (c *Context) CreateVertexArray() gl.VertexArray {
	c.record("CreateVertexArray")
	id := c.alloc(KindVertexArray)
	if id != 0 {
		c.vaos[id] = &vaoObj{attribs: make(map[gl.Attrib]*AttribState)}
	}
	return gl.VertexArray{V: id}
}

func (c *Context) BindVertexArray(v gl.VertexArray) {
	c.record("BindVertexArray")
	c.vao = v.V
}

func (c *Context) DeleteVertexArray(v gl.VertexArray) {
	c.record("DeleteVertexArray")
	if c.free(KindVertexArray, v.V) {
		delete(c.vaos, v.V)
		if c.vao == v.V {
			c.vao = 0
		}
	}
}

// Textures.

func (c *Context) CreateTexture() gl.Texture {
	c.record("CreateTexture")
	id := c.alloc(KindTexture)
	if id != 0 {
		c.texs[id] = &textureObj{params: make(map[gl.Enum]int)}
	}
	return gl.Texture{V: id}
}

func (c *Context) ActiveTexture(unit gl.Enum) {
	c.record("ActiveTexture")
	c.activeUnit = unit
}

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	c.record("BindTexture")
	c.texBinding[c.activeUnit] = t.V
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.record("TexParameteri")
	if to := c.texs[c.texBinding[c.activeUnit]]; to != nil {
		to.params[pname] = param
	}
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat gl.Enum, width, height int, format, typ gl.Enum, data []byte) {
	c.record("TexImage2D")
	to := c.texs[c.texBinding[c.activeUnit]]
	if to == nil || level != 0 {
		return
	}
	to.width, to.height, to.internal = width, height, internalFormat
	to.data = slices.Clone(data)
	if to.data == nil && internalFormat == gl.RGBA8 {
		to.data = make([]byte, 4*width*height)
	}
}

func (c *Context) DeleteTexture(t gl.Texture) {
	c.record("DeleteTexture")
	if c.free(KindTexture, t.V) {
		delete(c.texs, t.V)
	}
}

// Framebuffers.

func (c *Context) CreateFramebuffer() gl.Framebuffer {
	c.record("CreateFramebuffer")
	id := c.alloc(KindFramebuffer)
	if id != 0 {
		c.fbs[id] = 0
	}
	return gl.Framebuffer{V: id}
}

func (c *Context) BindFramebuffer(target gl.Enum, fb gl.Framebuffer) {
	c.record("BindFramebuffer")
	c.framebuffer = fb.V
}

func (c *Context) FramebufferTexture2D(target, attachment, texTarget gl.Enum, t gl.Texture, level int) {
	c.record("FramebufferTexture2D")
	if _, ok := c.fbs[c.framebuffer]; ok && c.framebuffer != 0 && attachment == gl.COLOR_ATTACHMENT0 {
		c.fbs[c.framebuffer] = t.V
	}
}

func (c *Context) CheckFramebufferStatus(target gl.Enum) gl.Enum {
	if c.framebuffer == 0 {
		return gl.FRAMEBUFFER_COMPLETE
	}
	if c.opts.fbStatus != 0 {
		return c.opts.fbStatus
	}
	if c.texs[c.fbs[c.framebuffer]] == nil {
		return gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT
	}
	return gl.FRAMEBUFFER_COMPLETE
}

func (c *Context) DeleteFramebuffer(fb gl.Framebuffer) {
	c.record("DeleteFramebuffer")
	if c.free(KindFramebuffer, fb.V) {
		delete(c.fbs, fb.V)
		if c.framebuffer == fb.V {
			c.framebuffer = 0
		}
	}
}

// Transform feedback.

func (c *Context) CreateTransformFeedback() gl.TransformFeedback {
	c.record("CreateTransformFeedback")
	return gl.TransformFeedback{V: c.alloc(KindTransformFeedback)}
}

func (c *Context) BindTransformFeedback(target gl.Enum, tf gl.TransformFeedback) {
	c.record("BindTransformFeedback")
	c.tfBinding = tf.V
}

func (c *Context) BeginTransformFeedback(primitiveMode gl.Enum) {
	c.record("BeginTransformFeedback")
	c.tfActive = true
}

func (c *Context) EndTransformFeedback() {
	c.record("EndTransformFeedback")
	c.tfActive = false
}

func (c *Context) DeleteTransformFeedback(tf gl.TransformFeedback) {
	c.record("DeleteTransformFeedback")
	if c.free(KindTransformFeedback, tf.V) && c.tfBinding == tf.V {
		c.tfBinding = 0
	}
}

// Drawing and state.

func (c *Context) Viewport(x, y, width, height int) {
	c.record("Viewport")
	c.viewport = [4]int{x, y, width, height}
}

func (c *Context) ClearColor(r, g, b, a float32) {
	c.record("ClearColor")
	c.clearColor = [4]float32{r, g, b, a}
}

// colorTarget returns the RGBA8 store and width of the bound draw target.
func (c *Context) colorTarget() ([]byte, int) {
	if c.framebuffer == 0 {
		return c.pixels, c.width
	}
	to := c.texs[c.fbs[c.framebuffer]]
	if to == nil || to.internal != gl.RGBA8 {
		return nil, 0
	}
	return to.data, to.width
}

func (c *Context) Clear(mask gl.Enum) {
	c.record("Clear")
	if mask&gl.COLOR_BUFFER_BIT == 0 {
		return
	}
	pix, _ := c.colorTarget()
	var px [4]byte
	for i, v := range c.clearColor {
		px[i] = byte(math.Round(float64(clamp01(v)) * 255))
	}
	for i := 0; i+3 < len(pix); i += 4 {
		copy(pix[i:i+4], px[:])
	}
}

func (c *Context) Enable(capability gl.Enum) {
	c.record("Enable")
	c.enabled[capability] = true
}

func (c *Context) Disable(capability gl.Enum) {
	c.record("Disable")
	c.enabled[capability] = false
}

// Enabled reports whether capability was turned on with Enable.
func (c *Context) Enabled(capability gl.Enum) bool { return c.enabled[capability] }

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.record("DrawArrays")
	c.draws++
}

func (c *Context) ReadPixels(x, y, width, height int, format, typ gl.Enum, data []byte) {
	c.record("ReadPixels")
	if format != gl.RGBA || typ != gl.UNSIGNED_BYTE {
		return
	}
	pix, stride := c.colorTarget()
	if stride == 0 {
		return
	}
	rows := len(pix) / (4 * stride)
	for row := 0; row < height; row++ {
		sy := y + row
		if sy < 0 || sy >= rows {
			continue
		}
		for col := 0; col < width; col++ {
			sx := x + col
			if sx < 0 || sx >= stride {
				continue
			}
			di := 4 * (row*width + col)
			si := 4 * (sy*stride + sx)
			if di+4 > len(data) {
				return
			}
			copy(data[di:di+4], pix[si:si+4])
		}
	}
}

func (c *Context) GetString(pname gl.Enum) string {
	switch pname {
	case gl.VENDOR:
		return c.opts.vendor
	case gl.RENDERER:
		return c.opts.renderer
	case gl.VERSION:
		return "WebGL 2.0 (headless)"
	}
	return ""
}

func (c *Context) GetInteger(pname gl.Enum) int {
	if pname == gl.MAX_TEXTURE_SIZE {
		return c.opts.maxTextureSize
	}
	return 0
}

func (c *Context) Flush() {
	c.record("Flush")
	c.flushes++
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
