// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build linux && !js

package gles

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/go-webgpu/goffi/types"
)

// proc is a GL entry point with its prepared call interface.
type proc struct {
	fn  unsafe.Pointer
	cif types.CallInterface
}

// descriptor maps one signature letter to its ffi type:
// v void, u uint32, i int32, f float32, b uint8, z pointer-sized
// integer, p pointer.
func descriptor(c byte) *types.TypeDescriptor {
	switch c {
	case 'v':
		return types.VoidTypeDescriptor
	case 'u':
		return types.UInt32TypeDescriptor
	case 'i':
		return types.SInt32TypeDescriptor
	case 'f':
		return types.FloatTypeDescriptor
	case 'b':
		return types.UInt8TypeDescriptor
	case 'z':
		return types.UInt64TypeDescriptor
	case 'p':
		return types.PointerTypeDescriptor
	}
	panic("gles: bad signature letter " + string(c))
}

// load resolves name and prepares a call interface for sig, whose first
// letter is the return type.
func (p *proc) load(getProcAddr func(string) unsafe.Pointer, name, sig string) error {
	p.fn = getProcAddr(name)
	if p.fn == nil {
		return fmt.Errorf("gles: %s not found", name)
	}
	args := make([]*types.TypeDescriptor, 0, len(sig)-1)
	for i := 1; i < len(sig); i++ {
		args = append(args, descriptor(sig[i]))
	}
	if err := ffi.PrepareCallInterface(&p.cif, types.DefaultCall, descriptor(sig[0]), args); err != nil {
		return fmt.Errorf("gles: %s: %w", name, err)
	}
	return nil
}

func (p *proc) call(ret unsafe.Pointer, args ...unsafe.Pointer) {
	_ = ffi.CallFunction(&p.cif, p.fn, ret, args)
}

// box returns an argument slot holding ptr. ffi reads every argument,
// pointers included, through one level of indirection.
func box(ptr unsafe.Pointer) unsafe.Pointer {
	return unsafe.Pointer(&ptr)
}

// bytesPtr returns the address of the first byte of data, or nil.
func bytesPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}

// cstring returns a NUL-terminated copy of s.
func cstring(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

// procs holds the entry points that take pointer arguments or that the
// hal GL table does not load.
type procs struct {
	getShaderiv               proc
	getShaderInfoLog          proc
	getProgramiv              proc
	getProgramInfoLog         proc
	getUniformLocation        proc
	getAttribLocation         proc
	bindAttribLocation        proc
	transformFeedbackVaryings proc

	uniform1f        proc
	uniform2f        proc
	uniform3f        proc
	uniform4f        proc
	uniformMatrix4fv proc

	genBuffers         proc
	deleteBuffers      proc
	bufferData         proc
	bufferSubData      proc
	genVertexArrays    proc
	deleteVertexArrays proc
	genTextures        proc
	deleteTextures     proc
	texImage2D         proc
	genFramebuffers    proc
	deleteFramebuffers proc

	genTransformFeedbacks    proc
	deleteTransformFeedbacks proc
	bindTransformFeedback    proc
	beginTransformFeedback   proc
	endTransformFeedback     proc

	readPixels  proc
	getIntegerv proc
}

func (t *procs) load(getProcAddr func(string) unsafe.Pointer) error {
	for _, e := range []struct {
		p         *proc
		name, sig string
	}{
		{&t.getShaderiv, "glGetShaderiv", "vuup"},
		{&t.getShaderInfoLog, "glGetShaderInfoLog", "vuipp"},
		{&t.getProgramiv, "glGetProgramiv", "vuup"},
		{&t.getProgramInfoLog, "glGetProgramInfoLog", "vuipp"},
		{&t.getUniformLocation, "glGetUniformLocation", "iup"},
		{&t.getAttribLocation, "glGetAttribLocation", "iup"},
		{&t.bindAttribLocation, "glBindAttribLocation", "vuup"},
		{&t.transformFeedbackVaryings, "glTransformFeedbackVaryings", "vuipu"},

		{&t.uniform1f, "glUniform1f", "vif"},
		{&t.uniform2f, "glUniform2f", "viff"},
		{&t.uniform3f, "glUniform3f", "vifff"},
		{&t.uniform4f, "glUniform4f", "viffff"},
		{&t.uniformMatrix4fv, "glUniformMatrix4fv", "viibp"},

		{&t.genBuffers, "glGenBuffers", "vip"},
		{&t.deleteBuffers, "glDeleteBuffers", "vip"},
		{&t.bufferData, "glBufferData", "vuzpu"},
		{&t.bufferSubData, "glBufferSubData", "vuzzp"},
		{&t.genVertexArrays, "glGenVertexArrays", "vip"},
		{&t.deleteVertexArrays, "glDeleteVertexArrays", "vip"},
		{&t.genTextures, "glGenTextures", "vip"},
		{&t.deleteTextures, "glDeleteTextures", "vip"},
		{&t.texImage2D, "glTexImage2D", "vuiiiiiuup"},
		{&t.genFramebuffers, "glGenFramebuffers", "vip"},
		{&t.deleteFramebuffers, "glDeleteFramebuffers", "vip"},

		{&t.genTransformFeedbacks, "glGenTransformFeedbacks", "vip"},
		{&t.deleteTransformFeedbacks, "glDeleteTransformFeedbacks", "vip"},
		{&t.bindTransformFeedback, "glBindTransformFeedback", "vuu"},
		{&t.beginTransformFeedback, "glBeginTransformFeedback", "vu"},
		{&t.endTransformFeedback, "glEndTransformFeedback", "v"},

		{&t.readPixels, "glReadPixels", "viiiiuup"},
		{&t.getIntegerv, "glGetIntegerv", "vup"},
	} {
		if err := e.p.load(getProcAddr, e.name, e.sig); err != nil {
			return err
		}
	}
	return nil
}

// gen calls a glGen* entry point for a single object.
func (p *proc) gen() uint32 {
	n := int32(1)
	var id uint32
	p.call(nil, unsafe.Pointer(&n), box(unsafe.Pointer(&id)))
	return id
}

// del calls a glDelete* entry point for a single object.
func (p *proc) del(id uint32) {
	n := int32(1)
	p.call(nil, unsafe.Pointer(&n), box(unsafe.Pointer(&id)))
}
