// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import "syscall/js"

// Object handles wrapping WebGL2 objects. The zero value of each handle
// wraps undefined, which WebGL treats as null when binding.
type (
	Buffer            struct{ V js.Value }
	Framebuffer       struct{ V js.Value }
	Program           struct{ V js.Value }
	Shader            struct{ V js.Value }
	Texture           struct{ V js.Value }
	VertexArray       struct{ V js.Value }
	TransformFeedback struct{ V js.Value }
	Uniform           struct{ V js.Value }
)

// NoUniform is the location returned for a uniform that does not exist.
var NoUniform = Uniform{V: js.Null()}

func valid(v js.Value) bool { return !v.IsUndefined() && !v.IsNull() }

func (b Buffer) Valid() bool            { return valid(b.V) }
func (f Framebuffer) Valid() bool       { return valid(f.V) }
func (p Program) Valid() bool           { return valid(p.V) }
func (s Shader) Valid() bool            { return valid(s.V) }
func (t Texture) Valid() bool           { return valid(t.V) }
func (v VertexArray) Valid() bool       { return valid(v.V) }
func (t TransformFeedback) Valid() bool { return valid(t.V) }
func (u Uniform) Valid() bool           { return valid(u.V) }
