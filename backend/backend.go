// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wrend/gl"
)

// Errors returned by Open and by backend factories.
var (
	// ErrNoBackendAvailable is returned when no backends are registered
	// or available on the current system.
	ErrNoBackendAvailable = errors.New("backend: no backend available")

	// ErrContextRetrieval is wrapped by factories when the platform call
	// that produces a context failed outright.
	ErrContextRetrieval = errors.New("backend: context retrieval failed")

	// ErrContextNotFound is returned when the platform produced no context
	// (for example getContext("webgl2") returned null).
	ErrContextNotFound = errors.New("backend: context not found")

	// ErrTypeConversion is wrapped by factories when the canvas or the
	// produced context has the wrong type.
	ErrTypeConversion = errors.New("backend: type conversion failed")
)

// NotFoundError indicates a named backend is not registered.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "backend: not found: " + e.Name
}

// UnavailableError indicates a backend is registered but cannot run here.
type UnavailableError struct {
	Name string
}

func (e *UnavailableError) Error() string {
	return "backend: unavailable: " + e.Name
}

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(gl.NopLogger())
}

// Logger returns the logger shared by the registry and the backends.
func Logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger replaces the backend logger. nil restores silence.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = gl.NopLogger()
	}
	loggerPtr.Store(l)
}
