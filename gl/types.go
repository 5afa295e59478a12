// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package gl

// Object handles for native GL implementations. The zero value of each
// handle is the "no object" handle, which unbinds when passed to a Bind call.
type (
	Buffer            struct{ V uint32 }
	Framebuffer       struct{ V uint32 }
	Program           struct{ V uint32 }
	Shader            struct{ V uint32 }
	Texture           struct{ V uint32 }
	VertexArray       struct{ V uint32 }
	TransformFeedback struct{ V uint32 }
	Uniform           struct{ V int32 }
)

// NoUniform is the location returned for a uniform that does not exist.
var NoUniform = Uniform{V: -1}

func (b Buffer) Valid() bool            { return b.V != 0 }
func (f Framebuffer) Valid() bool       { return f.V != 0 }
func (p Program) Valid() bool           { return p.V != 0 }
func (s Shader) Valid() bool            { return s.V != 0 }
func (t Texture) Valid() bool           { return t.V != 0 }
func (v VertexArray) Valid() bool       { return v.V != 0 }
func (t TransformFeedback) Valid() bool { return t.V != 0 }
func (u Uniform) Valid() bool           { return u.V != -1 }
