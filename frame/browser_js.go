// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build js

package frame

import (
	"sync"
	"syscall/js"
)

type browserFrame struct {
	fn     js.Func
	handle js.Value
}

// Browser schedules frames with window.requestAnimationFrame.
type Browser struct {
	mu     sync.Mutex
	next   ID
	frames map[ID]browserFrame
}

var _ Scheduler = (*Browser)(nil)

// NewBrowser returns a scheduler backed by requestAnimationFrame.
func NewBrowser() *Browser {
	return &Browser{frames: make(map[ID]browserFrame)}
}

// RequestFrame calls requestAnimationFrame. The JS function wrapping cb is
// released once it has run or been cancelled.
func (b *Browser) RequestFrame(cb func(now float64)) ID {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		now := 0.0
		if len(args) > 0 {
			now = args[0].Float()
		}
		b.release(id)
		cb(now)
		return nil
	})
	handle := js.Global().Call("requestAnimationFrame", fn)
	b.frames[id] = browserFrame{fn: fn, handle: handle}
	return id
}

// CancelFrame calls cancelAnimationFrame.
func (b *Browser) CancelFrame(id ID) {
	b.mu.Lock()
	f, ok := b.frames[id]
	b.mu.Unlock()
	if !ok {
		return
	}
	js.Global().Call("cancelAnimationFrame", f.handle)
	b.release(id)
}

func (b *Browser) release(id ID) {
	b.mu.Lock()
	f, ok := b.frames[id]
	delete(b.frames, id)
	b.mu.Unlock()
	if ok {
		f.fn.Release()
	}
}

var defaultBrowser = sync.OnceValue(NewBrowser)

// Default returns the process-wide Browser scheduler.
func Default() Scheduler {
	return defaultBrowser()
}
