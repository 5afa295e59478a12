package wrend

import (
	"maps"
	"slices"
)

// Identifier kinds. Each resource category has its own string type so that
// an id of one kind cannot be passed where another is expected. Ids are
// compared, hashed and sorted as strings.
type (
	VertexShaderID      string
	FragmentShaderID    string
	ProgramID           string
	UniformID           string
	BufferID            string
	AttributeID         string
	TextureID           string
	FramebufferID       string
	TransformFeedbackID string
	VAOID               string
)

// Named is implemented by ids that double as GLSL identifiers.
type Named interface {
	Name() string
}

// Name returns the GLSL uniform name looked up in each program.
func (id UniformID) Name() string { return string(id) }

// Name returns the GLSL attribute name bound in each program.
func (id AttributeID) Name() string { return string(id) }

var (
	_ Named = UniformID("")
	_ Named = AttributeID("")
)

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[K ~string, V any](m map[K]V) []K {
	return slices.Sorted(maps.Keys(m))
}
