// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects the GL implementation a renderer draws with.
//
// Each backend package registers a Factory from init together with a
// priority and an availability probe:
//
//	backend/webgl     100  browser WebGL2 (js/wasm)
//	backend/gles       50  EGL surfaceless OpenGL ES 3 (linux)
//	backend/headless    0  in-memory GL for tests and CI
//
// Open walks the available backends from the highest priority down and
// returns the first context that could be created. OpenByName picks one
// explicitly:
//
//	import _ "github.com/gogpu/wrend/backend/headless"
//
//	ctx, err := backend.OpenByName("headless", headless.NewCanvas(640, 480))
//
// Factories report failures by wrapping ErrContextRetrieval,
// ErrContextNotFound or ErrTypeConversion so callers can classify them
// with errors.Is.
package backend
