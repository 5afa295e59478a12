// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux && !js

package gles

import (
	"fmt"
	"sync"

	"github.com/gogpu/wgpu/hal/gles/egl"

	"github.com/gogpu/wrend/backend"
	"github.com/gogpu/wrend/gl"
)

// Name is the registry name of this backend.
const Name = "gles"

var loadEGL = sync.OnceValue(egl.Init)

func init() {
	backend.Register(Name, 50, open, available)
}

func available() bool {
	if err := loadEGL(); err != nil {
		backend.Logger().Debug("gles: EGL unavailable", "err", err)
		return false
	}
	return true
}

func open(canvas gl.Canvas) (gl.Context, error) {
	if canvas == nil {
		return nil, fmt.Errorf("%w: nil canvas", backend.ErrTypeConversion)
	}
	w, h := canvas.Width(), canvas.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", backend.ErrContextRetrieval, w, h)
	}
	return New(w, h)
}
