package wrend

import "github.com/gogpu/wrend/gl"

// Env is embedded in every callback context.
type Env struct {
	// GL is the context the renderer draws with.
	GL gl.Context
	// Now is the clock reading in milliseconds when the callback runs.
	Now float64
	// UserCtx is the value given to Builder.SetUserCtx.
	UserCtx any
}

// UniformContext is passed to uniform init, update and should-update
// callbacks. The uniform's program is already bound.
type UniformContext struct {
	Env
	UniformID UniformID
	ProgramID ProgramID
	Location  gl.Uniform
}

// BufferContext is passed to buffer callbacks. During creation Buffer is
// the zero handle; during updates it is the built buffer, already bound to
// ARRAY_BUFFER.
type BufferContext struct {
	Env
	BufferID BufferID
	Buffer   gl.Buffer
}

// AttributeContext is passed to attribute create callbacks. The vertex
// array (or the default one), the array buffer and the attribute array
// are already bound and enabled; the callback describes the layout with
// VertexAttribPointer.
type AttributeContext struct {
	Env
	AttributeID AttributeID
	Location    gl.Attrib
	BufferID    BufferID
	Buffer      gl.Buffer
	ProgramID   ProgramID
	Program     gl.Program
	// VAOID is empty when the default vertex array is bound.
	VAOID VAOID
}

// TextureContext is passed to texture create callbacks.
type TextureContext struct {
	Env
	TextureID TextureID
}

// TextureView is a read-only view of already built textures.
type TextureView struct {
	m map[TextureID]gl.Texture
}

// Get returns the texture built for id.
func (v TextureView) Get(id TextureID) (gl.Texture, bool) {
	t, ok := v.m[id]
	return t, ok
}

// IDs lists the built texture ids in sorted order.
func (v TextureView) IDs() []TextureID { return sortedKeys(v.m) }

// Len is the number of built textures.
func (v TextureView) Len() int { return len(v.m) }

// FramebufferContext is passed to framebuffer create callbacks.
type FramebufferContext struct {
	Env
	FramebufferID FramebufferID
	// TextureID and Texture are set when the link names a texture.
	TextureID TextureID
	Texture   gl.Texture
	Textures  TextureView
}

// TransformFeedbackContext is passed to transform feedback create
// callbacks after the object has been created and bound.
type TransformFeedbackContext struct {
	Env
	TransformFeedbackID TransformFeedbackID
	TransformFeedback   gl.TransformFeedback
}
