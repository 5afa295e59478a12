// Package wrend is a small declarative WebGL2-style rendering engine.
//
// # Overview
//
// A program describes its GPU resources as links: shader sources, programs,
// uniforms, buffers, attributes, textures, framebuffers, vertex arrays and
// transform feedbacks, each registered under a typed string id. A Builder
// collects the links and Build resolves them against a GL context in a
// fixed order, producing a Renderer that owns every created object.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/wrend"
//	    "github.com/gogpu/wrend/backend/headless"
//	    "github.com/gogpu/wrend/gl"
//	)
//
//	r, err := wrend.NewBuilder().
//	    SetCanvas(headless.NewCanvas(256, 256)).
//	    AddVertexShaderSrc("quad", quadVS).
//	    AddFragmentShaderSrc("quad", quadFS).
//	    AddProgramLink(wrend.NewProgramLink("quad", "quad", "quad")).
//	    AddUniformLink(wrend.NewUniformLink("u_time", nil, "quad").
//	        WithUpdate(func(c *wrend.UniformContext) {
//	            c.GL.Uniform1f(c.Location, float32(c.Now/1000))
//	        })).
//	    SetRenderCallback(func(r *wrend.Renderer) {
//	        r.GL().DrawArrays(gl.TRIANGLES, 0, 6)
//	    }).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// # Build Order
//
// Build acquires the context, then compiles shaders, links programs,
// resolves uniforms, creates buffers and sets up attributes, creates
// textures, framebuffers, vertex arrays and transform feedbacks. A failure
// in any phase deletes what was created so far and returns a *BuildError
// naming the phase.
//
// Every attribute id is given a location when first registered and that
// location is bound in every program, so a vertex array can be shared by
// programs that declare the same inputs.
//
// # Animation
//
// An AnimationHandle drives a renderer from a frame.Scheduler: the browser's
// requestAnimationFrame under js/wasm, or a frame.Loop natively.
//
// # Backends
//
// Contexts come from the backend registry. Importing a backend package
// registers it:
//
//	import _ "github.com/gogpu/wrend/backend/headless" // in-memory, tests
//	import _ "github.com/gogpu/wrend/backend/gles"     // linux, EGL
//	import _ "github.com/gogpu/wrend/backend/webgl"    // js/wasm
//
// # Threading
//
// GL contexts belong to one goroutine, and so do renderers. Only
// AnimationHandle.StopAnimating and IsAnimating may be called from
// elsewhere.
//
// # Logging
//
// wrend is silent by default. Use SetLogger to enable structured logging
// for the engine and its sub-packages.
package wrend
