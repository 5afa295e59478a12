// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package headless

// Canvas is an off-screen drawing surface of a fixed size.
type Canvas struct {
	width, height int
}

// NewCanvas returns a canvas of the given size in pixels.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{width: width, height: height}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }
