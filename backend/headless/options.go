// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package headless

import "github.com/gogpu/wrend/gl"

// Option configures a headless Context.
type Option func(*options)

type options struct {
	vendor         string
	renderer       string
	maxTextureSize int
	nullKinds      map[Kind]bool
	emptyLogs      bool
	fbStatus       gl.Enum
	trace          bool
}

func defaultOptions() options {
	return options{
		vendor:         "gogpu",
		renderer:       "wrend headless (software)",
		maxTextureSize: 4096,
		nullKinds:      make(map[Kind]bool),
	}
}

// WithRenderer overrides the VENDOR and RENDERER strings.
func WithRenderer(vendor, renderer string) Option {
	return func(o *options) {
		o.vendor = vendor
		o.renderer = renderer
	}
}

// WithMaxTextureSize sets the value reported for MAX_TEXTURE_SIZE.
func WithMaxTextureSize(n int) Option {
	return func(o *options) {
		o.maxTextureSize = n
	}
}

// WithNullObjects makes the Create call for each kind return the zero
// handle, the way a lost WebGL context returns null.
func WithNullObjects(kinds ...Kind) Option {
	return func(o *options) {
		for _, k := range kinds {
			o.nullKinds[k] = true
		}
	}
}

// WithEmptyInfoLogs makes failed compiles and links report an empty log.
func WithEmptyInfoLogs() Option {
	return func(o *options) {
		o.emptyLogs = true
	}
}

// WithFramebufferStatus forces CheckFramebufferStatus to return status
// for every non-default framebuffer.
func WithFramebufferStatus(status gl.Enum) Option {
	return func(o *options) {
		o.fbStatus = status
	}
}

// WithTrace records every call by name; see Context.Trace.
func WithTrace() Option {
	return func(o *options) {
		o.trace = true
	}
}
