package wrend

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wrend/backend"
	"github.com/gogpu/wrend/frame"
	"github.com/gogpu/wrend/gl"
	"github.com/gogpu/wrend/shader"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for wrend and its sub-packages
// (gl, backend, shader, frame). By default wrend produces no log output.
// Pass nil to restore the silent default.
//
// Log levels used by wrend:
//   - [slog.LevelDebug]: build phase progress, per-object creation
//   - [slog.LevelInfo]: context acquisition and adapter description
//   - [slog.LevelWarn]: duplicate registrations, rollback
//   - [slog.LevelError]: invalid state transitions (stop while idle,
//     start while animating)
//
// Example:
//
//	wrend.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	propagateLogger(l)
}

// Logger returns the current logger used by wrend.
// Packages layered on top of wrend (recording, cmd) log through it.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// propagateLogger hands the logger to every sub-package that keeps its own.
func propagateLogger(l *slog.Logger) {
	gl.SetLogger(l)
	backend.SetLogger(l)
	shader.SetLogger(l)
	frame.SetLogger(l)
}
