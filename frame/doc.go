// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package frame schedules per-frame callbacks.
//
// A Scheduler has the shape of the browser's requestAnimationFrame /
// cancelAnimationFrame pair: RequestFrame registers a callback for the
// next frame and returns an ID that CancelFrame accepts. Callbacks run
// once; a callback that wants another frame requests it again.
//
// Two implementations are provided:
//
//   - Loop: a ticker-driven loop for native programs and tests. Step runs
//     one frame by hand; Run pumps frames until the context ends.
//   - Browser (js/wasm only): window.requestAnimationFrame.
//
// Default returns the platform's scheduler.
package frame
