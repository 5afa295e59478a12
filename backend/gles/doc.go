// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gles provides a gl.Context backed by an OpenGL ES 3.0 context
// created through EGL on Linux.
//
// The context renders into an off-screen framebuffer the size of the
// canvas; binding the zero framebuffer binds it, so ReadPixels and
// wrend's Snapshot read what was drawn. No window is created.
//
// EGL is loaded at run time, without cgo. Importing the package registers
// it as "gles" at priority 50 when libEGL can be loaded:
//
//	import _ "github.com/gogpu/wrend/backend/gles"
//
// A context is current on the OS thread that created it. Open locks the
// calling goroutine to its thread until the context is released.
package gles
