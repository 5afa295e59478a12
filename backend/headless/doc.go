// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

// Package headless provides an in-memory gl.Context.
//
// The context keeps just enough state to behave like a WebGL2 driver for
// resource wiring: objects are allocated and tracked per kind, shader
// sources are scanned for uniform, attribute and output declarations,
// programs link when both stages compiled, uniform and buffer contents are
// stored for inspection, and Clear paints an RGBA framebuffer that
// ReadPixels reads back. Nothing is rasterized.
//
// It is registered with the backend registry as "headless" at priority 0,
// so it is the fallback when no hardware backend is linked in:
//
//	import _ "github.com/gogpu/wrend/backend/headless"
//
// Tests construct it directly to inspect state after a build:
//
//	ctx := headless.New(64, 64, headless.WithTrace())
//	// ... build a renderer on ctx ...
//	if n := ctx.LiveObjects(); n != 0 { ... }
package headless
