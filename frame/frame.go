// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package frame

// ID identifies a requested frame. The zero ID is never issued.
type ID uint64

// Scheduler runs callbacks on the next frame.
//
// RequestFrame must not invoke cb before it returns. CancelFrame of an ID
// that already ran or was cancelled is a no-op.
type Scheduler interface {
	RequestFrame(cb func(now float64)) ID
	CancelFrame(id ID)
}
