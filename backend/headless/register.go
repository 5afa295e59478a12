// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package headless

import (
	"fmt"

	"github.com/gogpu/wrend/backend"
	"github.com/gogpu/wrend/gl"
)

// Name is the registry name of this backend.
const Name = "headless"

func init() {
	backend.Register(Name, 0, open, nil)
}

func open(canvas gl.Canvas) (gl.Context, error) {
	if canvas == nil {
		return nil, fmt.Errorf("%w: nil canvas", backend.ErrTypeConversion)
	}
	w, h := canvas.Width(), canvas.Height()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: canvas size %dx%d", backend.ErrContextRetrieval, w, h)
	}
	return New(w, h), nil
}
