package wrend

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wrend/gl"
)

type resolvedUniform struct {
	link      UniformLink
	locations map[ProgramID]gl.Uniform
}

type resolvedBuffer struct {
	link   BufferLink
	buffer gl.Buffer
}

type resolvedAttribute struct {
	link     AttributeLink
	location gl.Attrib
}

// BoundUniform describes a resolved uniform.
type BoundUniform struct {
	Link UniformLink
	// Locations maps each target program to the uniform's location in it.
	Locations map[ProgramID]gl.Uniform
}

// BoundAttribute describes a resolved attribute.
type BoundAttribute struct {
	Link     AttributeLink
	Location gl.Attrib
}

// Renderer owns the GL objects produced by a Builder. Its set of resources
// is fixed at build time.
//
// A Renderer belongs to the goroutine that owns its GL context.
// UpdateUniform(s), UpdateBuffer(s), Render and Close take an exclusive
// borrow of the renderer; calling any of them from inside a callback they
// invoked panics.
type Renderer struct {
	canvas  gl.Canvas
	ctx     gl.Context
	adapter gpucontext.AdapterInfo
	clock   Clock
	userCtx any
	render  Callback[*Renderer]

	vertexShaders      map[VertexShaderID]gl.Shader
	fragmentShaders    map[FragmentShaderID]gl.Shader
	programs           map[ProgramID]gl.Program
	uniforms           map[UniformID]*resolvedUniform
	buffers            map[BufferID]*resolvedBuffer
	attributes         map[AttributeID]*resolvedAttribute
	textures           map[TextureID]gl.Texture
	framebuffers       map[FramebufferID]gl.Framebuffer
	transformFeedbacks map[TransformFeedbackID]gl.TransformFeedback
	vaos               map[VAOID]gl.VertexArray

	// owned deletes every created object; run newest first.
	owned []func()

	borrowed bool
	closed   bool
}

func newRenderer(b *Builder, ctx gl.Context) *Renderer {
	return &Renderer{
		canvas:             b.canvas,
		ctx:                ctx,
		adapter:            gl.DescribeAdapter(ctx),
		clock:              b.opts.clock,
		userCtx:            b.userCtx,
		render:             b.render,
		vertexShaders:      make(map[VertexShaderID]gl.Shader),
		fragmentShaders:    make(map[FragmentShaderID]gl.Shader),
		programs:           make(map[ProgramID]gl.Program),
		uniforms:           make(map[UniformID]*resolvedUniform),
		buffers:            make(map[BufferID]*resolvedBuffer),
		attributes:         make(map[AttributeID]*resolvedAttribute),
		textures:           make(map[TextureID]gl.Texture),
		framebuffers:       make(map[FramebufferID]gl.Framebuffer),
		transformFeedbacks: make(map[TransformFeedbackID]gl.TransformFeedback),
		vaos:               make(map[VAOID]gl.VertexArray),
	}
}

func (r *Renderer) env() Env {
	return Env{GL: r.ctx, Now: r.clock(), UserCtx: r.userCtx}
}

// borrow marks the renderer in use and returns the matching release.
func (r *Renderer) borrow() func() {
	if r.borrowed {
		panic("wrend: renderer already borrowed")
	}
	r.borrowed = true
	return func() { r.borrowed = false }
}

// Canvas returns the canvas the renderer draws to.
func (r *Renderer) Canvas() gl.Canvas { return r.canvas }

// GL returns the GL context.
func (r *Renderer) GL() gl.Context { return r.ctx }

// AdapterInfo describes the GPU behind the context.
func (r *Renderer) AdapterInfo() gpucontext.AdapterInfo { return r.adapter }

// UserCtx returns the value set with Builder.SetUserCtx.
func (r *Renderer) UserCtx() any { return r.userCtx }

// Now reads the renderer's clock in milliseconds.
func (r *Renderer) Now() float64 { return r.clock() }

// Closed reports whether Close has been called.
func (r *Renderer) Closed() bool { return r.closed }

// Program returns the linked program with the given id.
func (r *Renderer) Program(id ProgramID) (gl.Program, bool) {
	p, ok := r.programs[id]
	return p, ok
}

// VertexShader returns a compiled vertex shader.
func (r *Renderer) VertexShader(id VertexShaderID) (gl.Shader, bool) {
	s, ok := r.vertexShaders[id]
	return s, ok
}

// FragmentShader returns a compiled fragment shader.
func (r *Renderer) FragmentShader(id FragmentShaderID) (gl.Shader, bool) {
	s, ok := r.fragmentShaders[id]
	return s, ok
}

// Uniform returns the link and per-program locations of a uniform.
func (r *Renderer) Uniform(id UniformID) (BoundUniform, bool) {
	ru, ok := r.uniforms[id]
	if !ok {
		return BoundUniform{}, false
	}
	return BoundUniform{Link: ru.link, Locations: maps.Clone(ru.locations)}, true
}

// Buffer returns the buffer created for id.
func (r *Renderer) Buffer(id BufferID) (gl.Buffer, bool) {
	rb, ok := r.buffers[id]
	if !ok {
		return gl.Buffer{}, false
	}
	return rb.buffer, true
}

// Attribute returns the link and resolved location of an attribute.
func (r *Renderer) Attribute(id AttributeID) (BoundAttribute, bool) {
	ra, ok := r.attributes[id]
	if !ok {
		return BoundAttribute{}, false
	}
	return BoundAttribute{Link: ra.link, Location: ra.location}, true
}

// Texture returns the texture created for id.
func (r *Renderer) Texture(id TextureID) (gl.Texture, bool) {
	t, ok := r.textures[id]
	return t, ok
}

// Textures looks up several textures at once. ok is false if any id is
// unknown; the corresponding entry is the zero handle.
func (r *Renderer) Textures(ids ...TextureID) (textures []gl.Texture, ok bool) {
	textures = make([]gl.Texture, len(ids))
	ok = true
	for i, id := range ids {
		t, found := r.textures[id]
		if !found {
			ok = false
			continue
		}
		textures[i] = t
	}
	return textures, ok
}

// Framebuffer returns the framebuffer created for id.
func (r *Renderer) Framebuffer(id FramebufferID) (gl.Framebuffer, bool) {
	fb, ok := r.framebuffers[id]
	return fb, ok
}

// TransformFeedback returns the transform feedback object created for id.
func (r *Renderer) TransformFeedback(id TransformFeedbackID) (gl.TransformFeedback, bool) {
	tf, ok := r.transformFeedbacks[id]
	return tf, ok
}

// VAO returns the vertex array created for id.
func (r *Renderer) VAO(id VAOID) (gl.VertexArray, bool) {
	v, ok := r.vaos[id]
	return v, ok
}

// ProgramIDs returns the program ids in sorted order.
func (r *Renderer) ProgramIDs() []ProgramID { return sortedKeys(r.programs) }

// UniformIDs returns the uniform ids in sorted order.
func (r *Renderer) UniformIDs() []UniformID { return sortedKeys(r.uniforms) }

// BufferIDs returns the buffer ids in sorted order.
func (r *Renderer) BufferIDs() []BufferID { return sortedKeys(r.buffers) }

// AttributeIDs returns the attribute ids in sorted order.
func (r *Renderer) AttributeIDs() []AttributeID { return sortedKeys(r.attributes) }

// TextureIDs returns the texture ids in sorted order.
func (r *Renderer) TextureIDs() []TextureID { return sortedKeys(r.textures) }

// VAOIDs returns the vertex array ids in sorted order.
func (r *Renderer) VAOIDs() []VAOID { return sortedKeys(r.vaos) }

// FramebufferIDs returns the framebuffer ids in sorted order.
func (r *Renderer) FramebufferIDs() []FramebufferID { return sortedKeys(r.framebuffers) }

// TransformFeedbackIDs returns the transform feedback ids in sorted order.
func (r *Renderer) TransformFeedbackIDs() []TransformFeedbackID {
	return sortedKeys(r.transformFeedbacks)
}

// UseProgram binds a program by id.
func (r *Renderer) UseProgram(id ProgramID) error {
	if r.closed {
		return ErrClosed
	}
	p, ok := r.programs[id]
	if !ok {
		return fmt.Errorf("%w: program %q", ErrUnknownID, id)
	}
	r.ctx.UseProgram(p)
	return nil
}

// UseVAO binds a vertex array by id.
func (r *Renderer) UseVAO(id VAOID) error {
	if r.closed {
		return ErrClosed
	}
	v, ok := r.vaos[id]
	if !ok {
		return fmt.Errorf("%w: vertex array %q", ErrUnknownID, id)
	}
	r.ctx.BindVertexArray(v)
	return nil
}

// UpdateUniform runs the update of one uniform in every program it was
// resolved for. For each program the program is bound, the should-update
// predicate is consulted, and the update callback (or the init callback
// when UseInitForUpdate is set) runs; the program is unbound afterwards.
func (r *Renderer) UpdateUniform(id UniformID) error {
	if r.closed {
		return ErrClosed
	}
	ru, ok := r.uniforms[id]
	if !ok {
		return fmt.Errorf("%w: uniform %q", ErrUnknownID, id)
	}
	defer r.borrow()()
	r.updateUniform(id, ru)
	return nil
}

// UpdateUniforms updates every uniform, in id order.
func (r *Renderer) UpdateUniforms() error {
	if r.closed {
		return ErrClosed
	}
	defer r.borrow()()
	for _, id := range sortedKeys(r.uniforms) {
		r.updateUniform(id, r.uniforms[id])
	}
	return nil
}

func (r *Renderer) updateUniform(id UniformID, ru *resolvedUniform) {
	cb := ru.link.Update
	if ru.link.UseInitForUpdate {
		cb = ru.link.Init
	}
	for _, pid := range sortedKeys(ru.locations) {
		r.ctx.UseProgram(r.programs[pid])
		uctx := &UniformContext{Env: r.env(), UniformID: id, ProgramID: pid, Location: ru.locations[pid]}
		if ru.link.ShouldUpdate.Eval(uctx) {
			cb.Call(uctx)
		}
		r.ctx.UseProgram(gl.Program{})
	}
}

// UpdateBuffer runs the update callback of one buffer. The owning program,
// if any, and the buffer are bound around the call.
func (r *Renderer) UpdateBuffer(id BufferID) error {
	if r.closed {
		return ErrClosed
	}
	rb, ok := r.buffers[id]
	if !ok {
		return fmt.Errorf("%w: buffer %q", ErrUnknownID, id)
	}
	defer r.borrow()()
	r.updateBuffer(id, rb)
	return nil
}

// UpdateBuffers updates every buffer, in id order.
func (r *Renderer) UpdateBuffers() error {
	if r.closed {
		return ErrClosed
	}
	defer r.borrow()()
	for _, id := range sortedKeys(r.buffers) {
		r.updateBuffer(id, r.buffers[id])
	}
	return nil
}

func (r *Renderer) updateBuffer(id BufferID, rb *resolvedBuffer) {
	bctx := &BufferContext{Env: r.env(), BufferID: id, Buffer: rb.buffer}
	p, hasProgram := r.programs[rb.link.ProgramID]
	if hasProgram {
		r.ctx.UseProgram(p)
	}
	r.ctx.BindBuffer(gl.ARRAY_BUFFER, rb.buffer)
	if rb.link.ShouldUpdate.Eval(bctx) {
		rb.link.Update.Call(bctx)
	}
	r.ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	if hasProgram {
		r.ctx.UseProgram(gl.Program{})
	}
}

// Render invokes the render callback.
func (r *Renderer) Render() error {
	if r.closed {
		return ErrClosed
	}
	defer r.borrow()()
	r.render.Call(r)
	return nil
}

// Close deletes every GL object the renderer owns, newest first, and
// releases the context if it holds platform resources. Close is
// idempotent.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	defer r.borrow()()
	r.release()
	Logger().Debug("wrend: renderer closed")
	return nil
}

// release runs the deleters and drops the context.
func (r *Renderer) release() {
	for _, del := range slices.Backward(r.owned) {
		del()
	}
	r.owned = nil
	if rel, ok := r.ctx.(gl.Releaser); ok {
		rel.Release()
	}
	r.closed = true
}
