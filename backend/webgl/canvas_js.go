// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/gogpu/wrend/backend"
)

// Canvas wraps an HTMLCanvasElement.
type Canvas struct {
	el js.Value
}

// NewCanvas wraps el, which must be an HTMLCanvasElement.
func NewCanvas(el js.Value) *Canvas {
	return &Canvas{el: el}
}

// CanvasByID looks up a canvas element in the document.
func CanvasByID(id string) (*Canvas, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, fmt.Errorf("%w: no element with id %q", backend.ErrTypeConversion, id)
	}
	return NewCanvas(el), nil
}

// Element returns the wrapped element.
func (c *Canvas) Element() js.Value { return c.el }

func (c *Canvas) Width() int  { return c.el.Get("width").Int() }
func (c *Canvas) Height() int { return c.el.Get("height").Int() }
