// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gl

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler silently discards all log records.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// NopLogger returns a logger that discards everything.
// Packages layered on gl share it instead of defining their own handler.
func NopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(NopLogger())
}

// Logger returns the logger used by gl helpers.
func Logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger replaces the package logger. nil restores silence.
// wrend.SetLogger calls this for you.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = NopLogger()
	}
	loggerPtr.Store(l)
}
