package wrend

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gogpu/wrend/backend"
	"github.com/gogpu/wrend/gl"
	"github.com/gogpu/wrend/shader"
)

// Build resolves every registered link into a Renderer.
//
// Phases run in a fixed order and the first failure aborts the build:
// context, shaders, programs, uniforms, buffers and attributes, textures,
// framebuffers, vertex arrays and transform feedbacks. The returned error
// is a *BuildError naming the phase; errors.Is reaches the sentinel and
// errors.As the typed error of that phase. Objects created before the
// failure are deleted, newest first.
//
// Build consumes the builder: later calls return ErrBuilderConsumed.
func (b *Builder) Build() (*Renderer, error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	b.consumed = true

	if b.canvas == nil {
		return nil, ErrNoCanvas
	}
	if !b.render.IsSet() {
		return nil, ErrNoRenderCallback
	}
	if err := b.checkIDs(); err != nil {
		return nil, err
	}

	ctx, err := b.acquireContext()
	if err != nil {
		return nil, &BuildError{Phase: PhaseContext, Err: err}
	}

	s := &buildState{b: b, r: newRenderer(b, ctx)}
	Logger().Info("wrend: context acquired",
		"adapter", s.r.adapter.Name, "type", s.r.adapter.Type)

	phases := []struct {
		phase Phase
		run   func() error
	}{
		{PhaseShaders, s.compileShaders},
		{PhasePrograms, s.linkPrograms},
		{PhaseUniforms, s.resolveUniforms},
		{PhaseBuffers, s.resolveBuffers},
		{PhaseTextures, s.resolveTextures},
		{PhaseFramebuffers, s.resolveFramebuffers},
		{PhaseVAOs, s.resolveVAOs},
		{PhaseTransformFeedbacks, s.resolveTransformFeedbacks},
	}
	for _, p := range phases {
		Logger().Debug("wrend: build phase", "phase", p.phase)
		if err := p.run(); err != nil {
			s.rollback()
			return nil, &BuildError{Phase: p.phase, Err: err}
		}
	}

	Logger().Debug("wrend: build complete",
		"programs", len(s.r.programs), "uniforms", len(s.r.uniforms),
		"buffers", len(s.r.buffers), "attributes", len(s.r.attributes),
		"objects", len(s.r.owned))
	return s.r, nil
}

func (b *Builder) checkIDs() error {
	empty := func(kind string, has bool) error {
		if has {
			return fmt.Errorf("%w: %s", ErrEmptyID, kind)
		}
		return nil
	}
	_, vs := b.vertexShaders[""]
	_, fs := b.fragmentShaders[""]
	_, p := b.programs[""]
	_, u := b.uniforms[""]
	_, bu := b.buffers[""]
	_, a := b.attributes[""]
	_, t := b.textures[""]
	_, f := b.framebuffers[""]
	_, tf := b.transformFeedbacks[""]
	_, v := b.vaos[""]
	return errors.Join(
		empty("vertex shader", vs), empty("fragment shader", fs),
		empty("program", p), empty("uniform", u), empty("buffer", bu),
		empty("attribute", a), empty("texture", t), empty("framebuffer", f),
		empty("transform feedback", tf), empty("vertex array", v),
	)
}

func (b *Builder) acquireContext() (gl.Context, error) {
	get := b.opts.getContext
	if get == nil {
		get = backend.Open
	}
	ctx, err := get(b.canvas)
	if err != nil {
		return nil, classifyContextError(err)
	}
	if ctx == nil {
		return nil, ErrNoContext
	}
	return ctx, nil
}

func classifyContextError(err error) error {
	var ce *ContextError
	if errors.As(err, &ce) {
		return err
	}
	kind := ContextRetrieval
	switch {
	case errors.Is(err, backend.ErrContextNotFound):
		kind = ContextNotFound
	case errors.Is(err, backend.ErrTypeConversion):
		kind = ContextTypeConversion
	}
	return &ContextError{Kind: kind, Err: err}
}

// buildState carries the renderer under construction through the phases.
type buildState struct {
	b *Builder
	r *Renderer
}

func (s *buildState) glctx() gl.Context { return s.r.ctx }

// own records a deleter for an object created during the build.
func (s *buildState) own(del func()) {
	s.r.owned = append(s.r.owned, del)
}

func (s *buildState) rollback() {
	Logger().Warn("wrend: build failed, deleting created objects", "count", len(s.r.owned))
	s.r.release()
}

func (s *buildState) compileShaders() error {
	for _, id := range sortedKeys(s.b.vertexShaders) {
		sh, err := s.compile("vertex", string(id), gl.VERTEX_SHADER, shader.StageVertex, s.b.vertexShaders[id])
		if err != nil {
			return err
		}
		s.r.vertexShaders[id] = sh
	}
	for _, id := range sortedKeys(s.b.fragmentShaders) {
		sh, err := s.compile("fragment", string(id), gl.FRAGMENT_SHADER, shader.StageFragment, s.b.fragmentShaders[id])
		if err != nil {
			return err
		}
		s.r.fragmentShaders[id] = sh
	}
	return nil
}

func (s *buildState) compile(stage, id string, typ gl.Enum, st shader.Stage, src shaderSource) (gl.Shader, error) {
	text := src.src
	if src.wgsl {
		out, err := shader.TranslateWGSL(text, st)
		if err != nil {
			return gl.Shader{}, &CompileShaderError{
				Stage: stage, ShaderID: id,
				Err: fmt.Errorf("%w: %w", ErrShaderCompile, err),
			}
		}
		text = out
	}

	ctx := s.glctx()
	sh := ctx.CreateShader(typ)
	if !sh.Valid() {
		return gl.Shader{}, &CompileShaderError{Stage: stage, ShaderID: id, Err: ErrNoShaderReturned}
	}
	s.own(func() { ctx.DeleteShader(sh) })

	ctx.ShaderSource(sh, text)
	ctx.CompileShader(sh)
	if ctx.GetShaderi(sh, gl.COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(sh)
		if log == "" {
			return gl.Shader{}, &CompileShaderError{Stage: stage, ShaderID: id, Err: ErrUnknownCompile}
		}
		return gl.Shader{}, &CompileShaderError{Stage: stage, ShaderID: id, Log: log, Err: ErrShaderCompile}
	}
	Logger().Debug("wrend: shader compiled", "stage", stage, "id", id)
	return sh, nil
}

func (s *buildState) linkPrograms() error {
	ctx := s.glctx()
	for _, id := range sortedKeys(s.b.programs) {
		l := s.b.programs[id]
		vs, ok := s.r.vertexShaders[l.VertexShaderID]
		if !ok {
			return &LinkProgramError{ProgramID: id, Err: fmt.Errorf("%w: %q", ErrVertexShaderNotFound, l.VertexShaderID)}
		}
		fs, ok := s.r.fragmentShaders[l.FragmentShaderID]
		if !ok {
			return &LinkProgramError{ProgramID: id, Err: fmt.Errorf("%w: %q", ErrFragmentShaderNotFound, l.FragmentShaderID)}
		}
		if slices.Contains(l.TransformFeedbackVaryings, "") {
			return &LinkProgramError{ProgramID: id, Err: fmt.Errorf("%w: empty varying name", ErrInvalidVaryings)}
		}

		p := ctx.CreateProgram()
		if !p.Valid() {
			return &LinkProgramError{ProgramID: id, Err: ErrNoProgramReturned}
		}
		s.own(func() { ctx.DeleteProgram(p) })

		// Every program gets the same attribute locations so vertex arrays
		// can be shared between programs.
		for _, aid := range sortedKeys(s.b.attribLocations) {
			ctx.BindAttribLocation(p, s.b.attribLocations[aid], aid.Name())
		}
		ctx.AttachShader(p, vs)
		ctx.AttachShader(p, fs)
		if len(l.TransformFeedbackVaryings) > 0 {
			ctx.TransformFeedbackVaryings(p, l.TransformFeedbackVaryings, gl.INTERLEAVED_ATTRIBS)
		}
		ctx.LinkProgram(p)
		if ctx.GetProgrami(p, gl.LINK_STATUS) == 0 {
			log := ctx.GetProgramInfoLog(p)
			if log == "" {
				return &LinkProgramError{ProgramID: id, Err: ErrUnknownLink}
			}
			return &LinkProgramError{ProgramID: id, Log: log, Err: ErrProgramLink}
		}
		s.r.programs[id] = p
		Logger().Debug("wrend: program linked", "id", string(id))
	}
	return nil
}

func (s *buildState) resolveUniforms() error {
	ctx := s.glctx()
	for _, uid := range sortedKeys(s.b.uniforms) {
		l := s.b.uniforms[uid]
		ru := &resolvedUniform{link: l, locations: make(map[ProgramID]gl.Uniform)}
		for _, pid := range l.ProgramIDs {
			if _, done := ru.locations[pid]; done {
				continue
			}
			p, ok := s.r.programs[pid]
			if !ok {
				return &UniformError{UniformID: uid, ProgramID: pid, Err: ErrProgramNotFound}
			}
			ctx.UseProgram(p)
			loc := ctx.GetUniformLocation(p, uid.Name())
			if !loc.Valid() {
				ctx.UseProgram(gl.Program{})
				return &UniformError{UniformID: uid, ProgramID: pid, Err: ErrUniformLocationNotFound}
			}
			l.Init.Call(&UniformContext{Env: s.r.env(), UniformID: uid, ProgramID: pid, Location: loc})
			ctx.UseProgram(gl.Program{})
			ru.locations[pid] = loc
		}
		s.r.uniforms[uid] = ru
	}
	return nil
}

func (s *buildState) resolveBuffers() error {
	ctx := s.glctx()
	for _, bid := range sortedKeys(s.b.buffers) {
		l := s.b.buffers[bid]
		buf := l.Create.Create(&BufferContext{Env: s.r.env(), BufferID: bid})
		if !buf.Valid() {
			return &ResourceError{Kind: "buffer", ID: string(bid), Err: ErrNoneReturned}
		}
		s.own(func() { ctx.DeleteBuffer(buf) })
		s.r.buffers[bid] = &resolvedBuffer{link: l, buffer: buf}
	}

	for _, aid := range sortedKeys(s.b.attributes) {
		l := s.b.attributes[aid]
		fail := func(err error, vao VAOID) error {
			return &AttributeError{AttributeID: aid, ProgramID: l.ProgramID, BufferID: l.BufferID, VAOID: vao, Err: err}
		}
		p, ok := s.r.programs[l.ProgramID]
		if !ok {
			return fail(ErrProgramNotFound, "")
		}
		rb, ok := s.r.buffers[l.BufferID]
		if !ok {
			return fail(ErrBufferNotFound, "")
		}
		for _, v := range l.VAOIDs {
			if _, ok := s.b.vaos[v]; !ok {
				return fail(ErrVAONotFound, v)
			}
		}
		loc := ctx.GetAttribLocation(p, aid.Name())
		if loc < 0 {
			return fail(ErrAttributeLocationNotFound, "")
		}
		ra := &resolvedAttribute{link: l, location: gl.Attrib(loc)}
		s.r.attributes[aid] = ra
		if len(l.VAOIDs) == 0 {
			s.setupAttribute(aid, ra, p, rb.buffer, "", gl.VertexArray{})
		}
	}
	return nil
}

// setupAttribute binds vao and the attribute's buffer, enables the
// attribute array and lets the create callback describe the layout.
func (s *buildState) setupAttribute(id AttributeID, ra *resolvedAttribute, p gl.Program, buf gl.Buffer, vid VAOID, vao gl.VertexArray) {
	ctx := s.glctx()
	ctx.BindVertexArray(vao)
	ctx.BindBuffer(gl.ARRAY_BUFFER, buf)
	ctx.EnableVertexAttribArray(ra.location)
	ra.link.Create.Call(&AttributeContext{
		Env:         s.r.env(),
		AttributeID: id,
		Location:    ra.location,
		BufferID:    ra.link.BufferID,
		Buffer:      buf,
		ProgramID:   ra.link.ProgramID,
		Program:     p,
		VAOID:       vid,
	})
	ctx.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
	ctx.BindVertexArray(gl.VertexArray{})
}

func (s *buildState) resolveTextures() error {
	ctx := s.glctx()
	for _, tid := range sortedKeys(s.b.textures) {
		l := s.b.textures[tid]
		tex := l.Create.Create(&TextureContext{Env: s.r.env(), TextureID: tid})
		if !tex.Valid() {
			return &ResourceError{Kind: "texture", ID: string(tid), Err: ErrNoneReturned}
		}
		s.own(func() { ctx.DeleteTexture(tex) })
		s.r.textures[tid] = tex
	}
	return nil
}

func (s *buildState) resolveFramebuffers() error {
	ctx := s.glctx()
	view := TextureView{m: maps.Clone(s.r.textures)}
	for _, fid := range sortedKeys(s.b.framebuffers) {
		l := s.b.framebuffers[fid]
		fctx := &FramebufferContext{Env: s.r.env(), FramebufferID: fid, TextureID: l.TextureID, Textures: view}
		if l.TextureID != "" {
			tex, ok := s.r.textures[l.TextureID]
			if !ok {
				return &ResourceError{Kind: "framebuffer", ID: string(fid),
					Err: fmt.Errorf("%w: %q", ErrTextureNotFound, l.TextureID)}
			}
			fctx.Texture = tex
		}
		fb := l.Create.Create(fctx)
		if !fb.Valid() {
			return &ResourceError{Kind: "framebuffer", ID: string(fid), Err: ErrNoneReturned}
		}
		s.own(func() { ctx.DeleteFramebuffer(fb) })
		s.r.framebuffers[fid] = fb
	}
	return nil
}

func (s *buildState) resolveVAOs() error {
	ctx := s.glctx()
	attrs := sortedKeys(s.r.attributes)
	for _, vid := range sortedKeys(s.b.vaos) {
		vao := ctx.CreateVertexArray()
		if !vao.Valid() {
			return &ResourceError{Kind: "vertex array", ID: string(vid), Err: ErrNoneReturned}
		}
		s.own(func() { ctx.DeleteVertexArray(vao) })
		s.r.vaos[vid] = vao

		for _, aid := range attrs {
			ra := s.r.attributes[aid]
			if !slices.Contains(ra.link.VAOIDs, vid) {
				continue
			}
			s.setupAttribute(aid, ra, s.r.programs[ra.link.ProgramID], s.r.buffers[ra.link.BufferID].buffer, vid, vao)
		}
	}
	return nil
}

func (s *buildState) resolveTransformFeedbacks() error {
	ctx := s.glctx()
	for _, tid := range sortedKeys(s.b.transformFeedbacks) {
		l := s.b.transformFeedbacks[tid]
		tf := ctx.CreateTransformFeedback()
		if !tf.Valid() {
			return &ResourceError{Kind: "transform feedback", ID: string(tid), Err: ErrNoneReturned}
		}
		s.own(func() { ctx.DeleteTransformFeedback(tf) })
		ctx.BindTransformFeedback(gl.TRANSFORM_FEEDBACK, tf)
		l.Create.Call(&TransformFeedbackContext{Env: s.r.env(), TransformFeedbackID: tid, TransformFeedback: tf})
		ctx.BindTransformFeedback(gl.TRANSFORM_FEEDBACK, gl.TransformFeedback{})
		s.r.transformFeedbacks[tid] = tf
	}
	return nil
}
