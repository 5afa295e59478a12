package wrend

import (
	"github.com/gogpu/wrend/gl"
)

type shaderSource struct {
	src  string
	wgsl bool
}

// Builder collects shader sources and resource links and resolves them
// into a Renderer.
//
// Every Add method registers under the link's id; adding the same id again
// replaces the earlier registration. Build runs once.
//
// Example:
//
//	r, err := wrend.NewBuilder().
//	    SetCanvas(canvas).
//	    AddVertexShaderSrc("quad", quadVS).
//	    AddFragmentShaderSrc("quad", quadFS).
//	    AddProgramLink(wrend.NewProgramLink("quad", "quad", "quad")).
//	    SetRenderCallback(draw).
//	    Build()
type Builder struct {
	opts     builderOptions
	consumed bool

	canvas  gl.Canvas
	userCtx any
	render  Callback[*Renderer]

	vertexShaders      map[VertexShaderID]shaderSource
	fragmentShaders    map[FragmentShaderID]shaderSource
	programs           map[ProgramID]ProgramLink
	uniforms           map[UniformID]UniformLink
	buffers            map[BufferID]BufferLink
	attributes         map[AttributeID]AttributeLink
	attribLocations    map[AttributeID]gl.Attrib
	textures           map[TextureID]TextureLink
	framebuffers       map[FramebufferID]FramebufferLink
	transformFeedbacks map[TransformFeedbackID]TransformFeedbackLink
	vaos               map[VAOID]struct{}
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	o := defaultBuilderOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Builder{
		opts:               o,
		vertexShaders:      make(map[VertexShaderID]shaderSource),
		fragmentShaders:    make(map[FragmentShaderID]shaderSource),
		programs:           make(map[ProgramID]ProgramLink),
		uniforms:           make(map[UniformID]UniformLink),
		buffers:            make(map[BufferID]BufferLink),
		attributes:         make(map[AttributeID]AttributeLink),
		attribLocations:    make(map[AttributeID]gl.Attrib),
		textures:           make(map[TextureID]TextureLink),
		framebuffers:       make(map[FramebufferID]FramebufferLink),
		transformFeedbacks: make(map[TransformFeedbackID]TransformFeedbackLink),
		vaos:               make(map[VAOID]struct{}),
	}
}

// put stores v under id, logging when it replaces an earlier entry.
func put[K ~string, V any](m map[K]V, kind string, id K, v V) {
	if _, dup := m[id]; dup {
		Logger().Warn("wrend: replacing registration", "kind", kind, "id", string(id))
	}
	m[id] = v
}

// SetCanvas sets the canvas the context is acquired for.
func (b *Builder) SetCanvas(c gl.Canvas) *Builder {
	b.canvas = c
	return b
}

// SetGetContext replaces context acquisition. The default opens the best
// available backend for the canvas with backend.Open.
func (b *Builder) SetGetContext(fn func(gl.Canvas) (gl.Context, error)) *Builder {
	b.opts.getContext = fn
	return b
}

// SetRenderCallback sets the callback run by Renderer.Render.
func (b *Builder) SetRenderCallback(fn func(*Renderer)) *Builder {
	b.render = NewCallback(fn)
	return b
}

// SetUserCtx sets the value passed to every callback as UserCtx.
func (b *Builder) SetUserCtx(v any) *Builder {
	b.userCtx = v
	return b
}

// AddVertexShaderSrc registers GLSL ES vertex shader source.
func (b *Builder) AddVertexShaderSrc(id VertexShaderID, src string) *Builder {
	put(b.vertexShaders, "vertex shader", id, shaderSource{src: src})
	return b
}

// AddFragmentShaderSrc registers GLSL ES fragment shader source.
func (b *Builder) AddFragmentShaderSrc(id FragmentShaderID, src string) *Builder {
	put(b.fragmentShaders, "fragment shader", id, shaderSource{src: src})
	return b
}

// AddVertexShaderWGSL registers WGSL source whose vertex entry point is
// translated to GLSL ES 3.00 during Build.
func (b *Builder) AddVertexShaderWGSL(id VertexShaderID, src string) *Builder {
	put(b.vertexShaders, "vertex shader", id, shaderSource{src: src, wgsl: true})
	return b
}

// AddFragmentShaderWGSL registers WGSL source whose fragment entry point is
// translated to GLSL ES 3.00 during Build.
func (b *Builder) AddFragmentShaderWGSL(id FragmentShaderID, src string) *Builder {
	put(b.fragmentShaders, "fragment shader", id, shaderSource{src: src, wgsl: true})
	return b
}

// AddProgramLink registers a program. A later link with the same id replaces it.
func (b *Builder) AddProgramLink(l ProgramLink) *Builder {
	put(b.programs, "program", l.ProgramID, l)
	return b
}

// AddProgramLinks calls AddProgramLink for each link.
func (b *Builder) AddProgramLinks(ls ...ProgramLink) *Builder {
	for _, l := range ls {
		b.AddProgramLink(l)
	}
	return b
}

// AddUniformLink registers a uniform resolved in each of its programs.
func (b *Builder) AddUniformLink(l UniformLink) *Builder {
	put(b.uniforms, "uniform", l.UniformID, l)
	return b
}

// AddUniformLinks calls AddUniformLink for each link.
func (b *Builder) AddUniformLinks(ls ...UniformLink) *Builder {
	for _, l := range ls {
		b.AddUniformLink(l)
	}
	return b
}

// AddBufferLink registers a buffer.
func (b *Builder) AddBufferLink(l BufferLink) *Builder {
	put(b.buffers, "buffer", l.BufferID, l)
	return b
}

// AddBufferLinks calls AddBufferLink for each link.
func (b *Builder) AddBufferLinks(ls ...BufferLink) *Builder {
	for _, l := range ls {
		b.AddBufferLink(l)
	}
	return b
}

// AddAttributeLink registers an attribute. The first registration of an
// id assigns it the next attribute location; replacing the link keeps it.
func (b *Builder) AddAttributeLink(l AttributeLink) *Builder {
	if _, ok := b.attribLocations[l.AttributeID]; !ok {
		b.attribLocations[l.AttributeID] = gl.Attrib(len(b.attribLocations))
	}
	put(b.attributes, "attribute", l.AttributeID, l)
	return b
}

// AddAttributeLinks calls AddAttributeLink for each link.
func (b *Builder) AddAttributeLinks(ls ...AttributeLink) *Builder {
	for _, l := range ls {
		b.AddAttributeLink(l)
	}
	return b
}

// AddTextureLink registers a texture. Textures are created before framebuffers.
func (b *Builder) AddTextureLink(l TextureLink) *Builder {
	put(b.textures, "texture", l.TextureID, l)
	return b
}

// AddTextureLinks calls AddTextureLink for each link.
func (b *Builder) AddTextureLinks(ls ...TextureLink) *Builder {
	for _, l := range ls {
		b.AddTextureLink(l)
	}
	return b
}

// AddFramebufferLink registers a framebuffer.
func (b *Builder) AddFramebufferLink(l FramebufferLink) *Builder {
	put(b.framebuffers, "framebuffer", l.FramebufferID, l)
	return b
}

// AddFramebufferLinks calls AddFramebufferLink for each link.
func (b *Builder) AddFramebufferLinks(ls ...FramebufferLink) *Builder {
	for _, l := range ls {
		b.AddFramebufferLink(l)
	}
	return b
}

// AddTransformFeedbackLink registers a transform feedback object.
func (b *Builder) AddTransformFeedbackLink(l TransformFeedbackLink) *Builder {
	put(b.transformFeedbacks, "transform feedback", l.TransformFeedbackID, l)
	return b
}

// AddTransformFeedbackLinks calls AddTransformFeedbackLink for each link.
func (b *Builder) AddTransformFeedbackLinks(ls ...TransformFeedbackLink) *Builder {
	for _, l := range ls {
		b.AddTransformFeedbackLink(l)
	}
	return b
}

// AddVAOLink registers vertex arrays by id.
func (b *Builder) AddVAOLink(ids ...VAOID) *Builder {
	for _, id := range ids {
		put(b.vaos, "vertex array", id, struct{}{})
	}
	return b
}

// AddVAOLinks is an alias of AddVAOLink.
func (b *Builder) AddVAOLinks(ids ...VAOID) *Builder {
	return b.AddVAOLink(ids...)
}

// AttribLocation returns the location assigned to an attribute id.
func (b *Builder) AttribLocation(id AttributeID) (gl.Attrib, bool) {
	loc, ok := b.attribLocations[id]
	return loc, ok
}
