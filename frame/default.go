// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !js

package frame

import "sync"

var defaultLoop = sync.OnceValue(func() *Loop { return NewLoop() })

// Default returns the process-wide Loop. Native programs pump it with
// Run or RunFrames.
func Default() Scheduler {
	return defaultLoop()
}

// DefaultLoop returns the process-wide Loop.
func DefaultLoop() *Loop {
	return defaultLoop()
}
