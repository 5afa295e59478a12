package wrend

import (
	"errors"
	"fmt"
)

// Builder errors.
var (
	// ErrBuilderConsumed is returned by a second call to Build.
	ErrBuilderConsumed = errors.New("wrend: builder already built")

	// ErrNoCanvas is returned when Build is called without SetCanvas.
	ErrNoCanvas = errors.New("wrend: no canvas set")

	// ErrNoRenderCallback is returned when Build is called without
	// SetRenderCallback.
	ErrNoRenderCallback = errors.New("wrend: no render callback set")

	// ErrEmptyID is returned when a link is registered under an empty id.
	ErrEmptyID = errors.New("wrend: empty id")

	// ErrNoContext is returned when the get-context callback produced
	// neither a context nor an error.
	ErrNoContext = errors.New("wrend: no context")
)

// Shader and program errors.
var (
	ErrShaderCompile          = errors.New("wrend: shader compilation failed")
	ErrUnknownCompile         = errors.New("wrend: shader compilation failed without a log")
	ErrNoShaderReturned       = errors.New("wrend: createShader returned no shader")
	ErrVertexShaderNotFound   = errors.New("wrend: vertex shader not found")
	ErrFragmentShaderNotFound = errors.New("wrend: fragment shader not found")
	ErrNoProgramReturned      = errors.New("wrend: createProgram returned no program")
	ErrInvalidVaryings        = errors.New("wrend: invalid transform feedback varyings")
	ErrProgramLink            = errors.New("wrend: program link failed")
	ErrUnknownLink            = errors.New("wrend: program link failed without a log")
)

// Resolution errors.
var (
	ErrProgramNotFound           = errors.New("wrend: program not found")
	ErrUniformLocationNotFound   = errors.New("wrend: uniform location not found")
	ErrNoneReturned              = errors.New("wrend: create callback returned no object")
	ErrBufferNotFound            = errors.New("wrend: buffer not found")
	ErrVAONotFound               = errors.New("wrend: vertex array not found")
	ErrAttributeLocationNotFound = errors.New("wrend: attribute location not found")
	ErrTextureNotFound           = errors.New("wrend: texture not found")
)

// Runtime errors.
var (
	// ErrUnknownID is returned by renderer operations on ids that were not
	// part of the build.
	ErrUnknownID = errors.New("wrend: unknown id")

	// ErrNotAnimating is returned by StopAnimating on an idle handle.
	ErrNotAnimating = errors.New("wrend: not animating")

	// ErrClosed is returned by operations on a closed handle or renderer.
	ErrClosed = errors.New("wrend: closed")
)

// Phase identifies a stage of Build.
type Phase int

const (
	PhaseContext Phase = iota + 1
	PhaseShaders
	PhasePrograms
	PhaseUniforms
	PhaseBuffers
	PhaseTextures
	PhaseFramebuffers
	PhaseVAOs
	PhaseTransformFeedbacks
)

var phaseNames = map[Phase]string{
	PhaseContext:            "context",
	PhaseShaders:            "shaders",
	PhasePrograms:           "programs",
	PhaseUniforms:           "uniforms",
	PhaseBuffers:            "buffers",
	PhaseTextures:           "textures",
	PhaseFramebuffers:       "framebuffers",
	PhaseVAOs:               "vertex arrays",
	PhaseTransformFeedbacks: "transform feedbacks",
}

func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// BuildError reports the phase in which Build failed.
type BuildError struct {
	Phase Phase
	Err   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("wrend: build %s: %v", e.Phase, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// ContextErrorKind classifies context acquisition failures.
type ContextErrorKind int

const (
	// ContextRetrieval: the platform call failed.
	ContextRetrieval ContextErrorKind = iota
	// ContextNotFound: the platform returned no context.
	ContextNotFound
	// ContextTypeConversion: the canvas or context had the wrong type.
	ContextTypeConversion
)

func (k ContextErrorKind) String() string {
	switch k {
	case ContextRetrieval:
		return "retrieval"
	case ContextNotFound:
		return "not found"
	case ContextTypeConversion:
		return "type conversion"
	}
	return fmt.Sprintf("ContextErrorKind(%d)", int(k))
}

// ContextError is returned when no GL context could be obtained.
type ContextError struct {
	Kind ContextErrorKind
	Err  error
}

func (e *ContextError) Error() string {
	return fmt.Sprintf("wrend: context %s: %v", e.Kind, e.Err)
}

func (e *ContextError) Unwrap() error { return e.Err }

// CompileShaderError carries the driver log of a failed compile.
type CompileShaderError struct {
	// Stage is "vertex" or "fragment".
	Stage    string
	ShaderID string
	Log      string
	// Err is ErrShaderCompile, ErrUnknownCompile or ErrNoShaderReturned,
	// possibly joined with a WGSL translation error.
	Err error
}

func (e *CompileShaderError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("wrend: %s shader %q: %v: %s", e.Stage, e.ShaderID, e.Err, e.Log)
	}
	return fmt.Sprintf("wrend: %s shader %q: %v", e.Stage, e.ShaderID, e.Err)
}

func (e *CompileShaderError) Unwrap() error { return e.Err }

// LinkProgramError carries the info log of a failed link, or names the
// missing piece of a program link.
type LinkProgramError struct {
	ProgramID ProgramID
	Log       string
	Err       error
}

func (e *LinkProgramError) Error() string {
	if e.Log != "" {
		return fmt.Sprintf("wrend: program %q: %v: %s", e.ProgramID, e.Err, e.Log)
	}
	return fmt.Sprintf("wrend: program %q: %v", e.ProgramID, e.Err)
}

func (e *LinkProgramError) Unwrap() error { return e.Err }

// UniformError reports a uniform that could not be resolved in a program.
type UniformError struct {
	UniformID UniformID
	ProgramID ProgramID
	Err       error
}

func (e *UniformError) Error() string {
	return fmt.Sprintf("wrend: uniform %q in program %q: %v", e.UniformID, e.ProgramID, e.Err)
}

func (e *UniformError) Unwrap() error { return e.Err }

// AttributeError reports an attribute that could not be resolved.
type AttributeError struct {
	AttributeID AttributeID
	ProgramID   ProgramID
	BufferID    BufferID
	VAOID       VAOID
	Err         error
}

func (e *AttributeError) Error() string {
	s := fmt.Sprintf("wrend: attribute %q (program %q, buffer %q", e.AttributeID, e.ProgramID, e.BufferID)
	if e.VAOID != "" {
		s += fmt.Sprintf(", vao %q", e.VAOID)
	}
	return s + fmt.Sprintf("): %v", e.Err)
}

func (e *AttributeError) Unwrap() error { return e.Err }

// ResourceError reports a buffer, texture, framebuffer, vertex array or
// transform feedback that could not be created.
type ResourceError struct {
	// Kind is the resource category, e.g. "buffer".
	Kind string
	ID   string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("wrend: %s %q: %v", e.Kind, e.ID, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }
