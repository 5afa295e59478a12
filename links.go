package wrend

import (
	"slices"

	"github.com/gogpu/wrend/gl"
)

// Links describe resources. They own no GPU state and may be copied and
// registered with any number of builders.

// ProgramLink pairs a vertex and a fragment shader into a program.
type ProgramLink struct {
	ProgramID        ProgramID
	VertexShaderID   VertexShaderID
	FragmentShaderID FragmentShaderID
	// TransformFeedbackVaryings are captured interleaved when non-empty.
	TransformFeedbackVaryings []string
}

// NewProgramLink returns a link for a program built from vs and fs.
func NewProgramLink(id ProgramID, vs VertexShaderID, fs FragmentShaderID) ProgramLink {
	return ProgramLink{ProgramID: id, VertexShaderID: vs, FragmentShaderID: fs}
}

// WithVaryings returns a copy of l capturing the named vertex outputs.
func (l ProgramLink) WithVaryings(varyings ...string) ProgramLink {
	l.TransformFeedbackVaryings = slices.Clone(varyings)
	return l
}

// UniformLink describes a uniform shared by one or more programs.
type UniformLink struct {
	UniformID  UniformID
	ProgramIDs []ProgramID
	// Init runs once per program at build time.
	Init Callback[*UniformContext]
	// Update runs per program on every UpdateUniform.
	Update Callback[*UniformContext]
	// ShouldUpdate gates Update; unset means always.
	ShouldUpdate Predicate[*UniformContext]
	// UseInitForUpdate makes updates call Init instead of Update.
	UseInitForUpdate bool
}

// NewUniformLink returns a link for uniform id in each of programs.
func NewUniformLink(id UniformID, init func(*UniformContext), programs ...ProgramID) UniformLink {
	return UniformLink{
		UniformID:  id,
		ProgramIDs: slices.Clone(programs),
		Init:       NewCallback(init),
	}
}

// WithUpdate sets the per-frame update callback.
func (l UniformLink) WithUpdate(fn func(*UniformContext)) UniformLink {
	l.Update = NewCallback(fn)
	return l
}

// WithShouldUpdate sets the predicate that gates updates.
func (l UniformLink) WithShouldUpdate(fn func(*UniformContext) bool) UniformLink {
	l.ShouldUpdate = NewPredicate(fn)
	return l
}

// WithInitForUpdate makes updates re-run the init callback.
func (l UniformLink) WithInitForUpdate() UniformLink {
	l.UseInitForUpdate = true
	return l
}

// BufferLink describes a buffer created by a callback.
type BufferLink struct {
	BufferID BufferID
	// ProgramID is bound before updates when set.
	ProgramID    ProgramID
	Create       Factory[*BufferContext, gl.Buffer]
	Update       Callback[*BufferContext]
	ShouldUpdate Predicate[*BufferContext]
}

// NewBufferLink returns a link whose create callback allocates the buffer.
func NewBufferLink(id BufferID, create func(*BufferContext) gl.Buffer) BufferLink {
	return BufferLink{BufferID: id, Create: NewFactory(create)}
}

// WithProgram binds program p around updates.
func (l BufferLink) WithProgram(p ProgramID) BufferLink {
	l.ProgramID = p
	return l
}

// WithUpdate sets the per-frame update callback.
func (l BufferLink) WithUpdate(fn func(*BufferContext)) BufferLink {
	l.Update = NewCallback(fn)
	return l
}

// WithShouldUpdate sets the predicate that gates updates.
func (l BufferLink) WithShouldUpdate(fn func(*BufferContext) bool) BufferLink {
	l.ShouldUpdate = NewPredicate(fn)
	return l
}

// AttributeLink connects a vertex attribute of a program to a buffer.
type AttributeLink struct {
	AttributeID AttributeID
	ProgramID   ProgramID
	BufferID    BufferID
	// VAOIDs lists the vertex arrays the attribute is recorded into. When
	// empty, the attribute is set up on the default vertex array.
	VAOIDs []VAOID
	Create Callback[*AttributeContext]
}

// NewAttributeLink returns a link for attribute id of program p sourced
// from buffer b.
func NewAttributeLink(id AttributeID, p ProgramID, b BufferID, create func(*AttributeContext), vaos ...VAOID) AttributeLink {
	return AttributeLink{
		AttributeID: id,
		ProgramID:   p,
		BufferID:    b,
		VAOIDs:      slices.Clone(vaos),
		Create:      NewCallback(create),
	}
}

// TextureLink describes a texture created by a callback.
type TextureLink struct {
	TextureID TextureID
	Create    Factory[*TextureContext, gl.Texture]
}

// NewTextureLink returns a texture link.
func NewTextureLink(id TextureID, create func(*TextureContext) gl.Texture) TextureLink {
	return TextureLink{TextureID: id, Create: NewFactory(create)}
}

// FramebufferLink describes a framebuffer created by a callback, optionally
// rendering into a built texture.
type FramebufferLink struct {
	FramebufferID FramebufferID
	TextureID     TextureID
	Create        Factory[*FramebufferContext, gl.Framebuffer]
}

// NewFramebufferLink returns a framebuffer link.
func NewFramebufferLink(id FramebufferID, create func(*FramebufferContext) gl.Framebuffer) FramebufferLink {
	return FramebufferLink{FramebufferID: id, Create: NewFactory(create)}
}

// WithTexture links texture t; it is looked up before Create runs.
func (l FramebufferLink) WithTexture(t TextureID) FramebufferLink {
	l.TextureID = t
	return l
}

// TransformFeedbackLink describes a transform feedback object. The engine
// creates the object; Create, when set, runs with it bound.
type TransformFeedbackLink struct {
	TransformFeedbackID TransformFeedbackID
	Create              Callback[*TransformFeedbackContext]
}

// NewTransformFeedbackLink returns a transform feedback link.
func NewTransformFeedbackLink(id TransformFeedbackID) TransformFeedbackLink {
	return TransformFeedbackLink{TransformFeedbackID: id}
}

// WithCreate sets the callback run after the object is created.
func (l TransformFeedbackLink) WithCreate(fn func(*TransformFeedbackContext)) TransformFeedbackLink {
	l.Create = NewCallback(fn)
	return l
}
