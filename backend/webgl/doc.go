// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package webgl provides a gl.Context over a browser WebGL2RenderingContext
// for GOOS=js GOARCH=wasm.
//
// Importing the package registers it as "webgl" at priority 100, so it is
// preferred whenever WebGL2 exists:
//
//	import _ "github.com/gogpu/wrend/backend/webgl"
//
//	canvas, err := webgl.CanvasByID("scene")
//	r, err := wrend.NewBuilder().SetCanvas(canvas). ... .Build()
package webgl
