//go:build !js

package wrend

import (
	"testing"

	"github.com/gogpu/wrend/backend/headless"
	"github.com/gogpu/wrend/gl"
)

const quadVS = `#version 300 es
in vec2 a_position;
in vec2 a_uv;
uniform mat4 u_mvp;
uniform float u_time;
out vec2 v_uv;
void main() {
	v_uv = a_uv;
	gl_Position = u_mvp * vec4(a_position, 0.0, 1.0);
}
`

const quadFS = `#version 300 es
precision highp float;
in vec2 v_uv;
uniform float u_time;
uniform sampler2D u_tex;
out vec4 outColor;
void main() {
	outColor = texture(u_tex, v_uv) * u_time;
}
`

const flatFS = `#version 300 es
precision mediump float;
uniform float u_time;
out vec4 outColor;
void main() { outColor = vec4(u_time); }
`

const testNow = 1000.0

// newTestBuilder returns a builder wired to a fresh headless context with
// a fixed clock and a no-op render callback.
func newTestBuilder(t *testing.T, opts ...headless.Option) (*Builder, *headless.Context) {
	t.Helper()
	ctx := headless.New(8, 8, opts...)
	b := NewBuilder(
		WithClock(func() float64 { return testNow }),
		WithGetContext(func(gl.Canvas) (gl.Context, error) { return ctx, nil }),
	)
	b.SetCanvas(headless.NewCanvas(8, 8)).SetRenderCallback(func(*Renderer) {})
	return b, ctx
}

// withQuad registers the quad shaders and program.
func withQuad(b *Builder) *Builder {
	return b.
		AddVertexShaderSrc("quad", quadVS).
		AddFragmentShaderSrc("quad", quadFS).
		AddProgramLink(NewProgramLink("quad", "quad", "quad"))
}

func createBuffer(data ...float32) func(*BufferContext) gl.Buffer {
	return func(bc *BufferContext) gl.Buffer {
		buf := bc.GL.CreateBuffer()
		bc.GL.BindBuffer(gl.ARRAY_BUFFER, buf)
		bc.GL.BufferData(gl.ARRAY_BUFFER, gl.Float32Bytes(data...), gl.STATIC_DRAW)
		bc.GL.BindBuffer(gl.ARRAY_BUFFER, gl.Buffer{})
		return buf
	}
}

func vec2Attrib(ac *AttributeContext) {
	ac.GL.VertexAttribPointer(ac.Location, 2, gl.FLOAT, false, 0, 0)
}

func mustBuild(t *testing.T, b *Builder) *Renderer {
	t.Helper()
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}
