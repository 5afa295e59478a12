// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/gogpu/wrend/backend"
	"github.com/gogpu/wrend/gl"
)

// Name is the registry name of this backend.
const Name = "webgl"

func init() {
	backend.Register(Name, 100, open, available)
}

func available() bool {
	return js.Global().Get("WebGL2RenderingContext").Truthy()
}

// element is implemented by canvases backed by a DOM element.
type element interface {
	Element() js.Value
}

func open(canvas gl.Canvas) (gl.Context, error) {
	el, ok := canvas.(element)
	if !ok || el.Element().Get("getContext").Type() != js.TypeFunction {
		return nil, fmt.Errorf("%w: %T is not an HTML canvas", backend.ErrTypeConversion, canvas)
	}
	return New(el.Element())
}

// New gets a WebGL2 context from the canvas element el. The drawing
// buffer is preserved so it can be read back after compositing.
func New(el js.Value) (ctx *Context, err error) {
	defer func() {
		if r := recover(); r != nil {
			jsErr, ok := r.(js.Error)
			if !ok {
				panic(r)
			}
			ctx, err = nil, fmt.Errorf("%w: %w", backend.ErrContextRetrieval, jsErr)
		}
	}()

	attrs := map[string]any{"preserveDrawingBuffer": true}
	v := el.Call("getContext", "webgl2", attrs)
	if v.IsNull() || v.IsUndefined() {
		return nil, backend.ErrContextNotFound
	}
	if !v.InstanceOf(js.Global().Get("WebGL2RenderingContext")) {
		return nil, fmt.Errorf("%w: getContext returned %s", backend.ErrTypeConversion, v.Type())
	}
	backend.Logger().Info("webgl: context created",
		"width", el.Get("width").Int(), "height", el.Get("height").Int())
	return &Context{v: v}, nil
}
