// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package shader translates WGSL into GLSL ES 3.00 for WebGL2-class
// contexts.
//
// Translation runs the naga pipeline (parse, lower, validate) and emits
// one entry point per call:
//
//	src, err := shader.TranslateWGSL(wgslSource, shader.StageVertex)
//
// Vertex inputs and inter-stage varyings are renamed by the GLSL writer;
// use VertexInputName and VaryingName to refer to them from attribute ids
// and transform feedback varying lists. WGSL uniform variables become
// uniform blocks, which have no per-name uniform location.
package shader

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/ir"
)

// Stage selects which entry point kind to translate.
type Stage int

const (
	StageVertex Stage = iota
	StageFragment
)

func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

func (s Stage) irStage() ir.ShaderStage {
	if s == StageFragment {
		return ir.StageFragment
	}
	return ir.StageVertex
}

// Errors returned by Translate. Each is wrapped with the underlying
// naga error.
var (
	ErrParse        = errors.New("shader: WGSL parse failed")
	ErrLower        = errors.New("shader: WGSL lowering failed")
	ErrValidate     = errors.New("shader: WGSL validation failed")
	ErrNoEntryPoint = errors.New("shader: no matching entry point")
	ErrGenerate     = errors.New("shader: GLSL generation failed")
)

// ValidationErrors collects the problems reported by naga validation.
type ValidationErrors []ir.ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Option configures a translation.
type Option func(*options)

type options struct {
	entryPoint string
	version    glsl.Version
	flags      glsl.WriterFlags
	validate   bool
}

func defaultOptions() options {
	return options{
		version:  glsl.VersionES300,
		flags:    glsl.WriterFlagAdjustCoordinateSpace,
		validate: true,
	}
}

// WithEntryPoint translates the named entry point instead of the first
// one of the requested stage.
func WithEntryPoint(name string) Option {
	return func(o *options) { o.entryPoint = name }
}

// WithVersion sets the GLSL version. The default is ES 3.00.
func WithVersion(v glsl.Version) Option {
	return func(o *options) { o.version = v }
}

// WithWriterFlags replaces the GLSL writer flags. The default adjusts the
// WebGPU clip space to GL conventions.
func WithWriterFlags(f glsl.WriterFlags) Option {
	return func(o *options) { o.flags = f }
}

// WithoutValidation skips naga IR validation.
func WithoutValidation() Option {
	return func(o *options) { o.validate = false }
}

// Result is a translated shader.
type Result struct {
	Source     string
	EntryPoint string
	Info       glsl.TranslationInfo
}

// Translate converts WGSL source into GLSL for one stage.
func Translate(src string, stage Stage, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return translate(src, stage, o)
}

func translate(src string, stage Stage, o options) (*Result, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLower, err)
	}
	if o.validate {
		verrs, err := naga.Validate(module)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidate, err)
		}
		if len(verrs) > 0 {
			return nil, fmt.Errorf("%w: %w", ErrValidate, ValidationErrors(verrs))
		}
	}

	entry, err := pickEntryPoint(module, stage, o.entryPoint)
	if err != nil {
		return nil, err
	}

	code, info, err := glsl.Compile(module, glsl.Options{
		LangVersion:        o.version,
		EntryPoint:         entry,
		WriterFlags:        o.flags,
		ForceHighPrecision: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	logger().Debug("shader: translated WGSL", "stage", stage, "entry", entry, "bytes", len(code))
	return &Result{Source: code, EntryPoint: entry, Info: info}, nil
}

func pickEntryPoint(m *ir.Module, stage Stage, name string) (string, error) {
	for i := range m.EntryPoints {
		ep := &m.EntryPoints[i]
		if ep.Stage != stage.irStage() {
			continue
		}
		if name == "" || ep.Name == name {
			return ep.Name, nil
		}
	}
	if name != "" {
		return "", fmt.Errorf("%w: %s entry point %q", ErrNoEntryPoint, stage, name)
	}
	return "", fmt.Errorf("%w: no %s entry point", ErrNoEntryPoint, stage)
}

// VertexInputName is the GLSL name of the vertex input at @location(n).
func VertexInputName(location int) string {
	return fmt.Sprintf("_p2vs_location%d", location)
}

// VaryingName is the GLSL name of the vertex output at @location(n).
func VaryingName(location int) string {
	return fmt.Sprintf("_vs2fs_location%d", location)
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

func logger() *slog.Logger { return loggerPtr.Load() }

// SetLogger sets the package logger. nil disables logging.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
}
