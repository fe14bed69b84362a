package draw

import (
	"fmt"

	"github.com/gogpu/drawpack/internal/debug"
)

// ShaderKind is the closed set of shader roles in a draw.
type ShaderKind uint8

const (
	ShaderItem ShaderKind = iota
	ShaderBrush
	ShaderBlend

	numShaderKinds = iota
)

// String returns the shader kind name.
func (k ShaderKind) String() string {
	switch k {
	case ShaderItem:
		return "item"
	case ShaderBrush:
		return "brush"
	case ShaderBlend:
		return "blend"
	default:
		return fmt.Sprintf("ShaderKind(%d)", uint8(k))
	}
}

// ShaderID names a shader or one of its sub-shaders. Parent is the id
// the registry assigned to the parent shader; Sub is the index of the
// sub-shader, 0 for the parent itself.
type ShaderID struct {
	Kind   ShaderKind
	Sub    uint32
	Parent uint32
}

// Flat returns the id the GPU sees: the parent id offset by the
// sub-shader index.
func (id ShaderID) Flat() uint32 {
	return id.Parent + id.Sub
}

// SubShader returns the i-th sub-shader of id's parent.
func (id ShaderID) SubShader(i uint32) ShaderID {
	return ShaderID{Kind: id.Kind, Sub: i, Parent: id.Parent}
}

// Shader is a registered shader: its id and the group bits that shaders
// in one pipeline share.
type Shader struct {
	ID    ShaderID
	Group uint32
	// NumSubShaders is the size of the id range reserved for the shader.
	NumSubShaders uint32
}

// Sub returns the i-th sub-shader. i must be below NumSubShaders.
func (s Shader) Sub(i uint32) Shader {
	debug.Assert(i < s.NumSubShaders, "sub-shader %d of %d", i, s.NumSubShaders)
	return Shader{ID: s.ID.SubShader(i), Group: s.Group, NumSubShaders: 1}
}

// ShaderRegistry assigns shader ids. Each kind has its own counter, and
// id 0 of every kind is reserved for "no shader".
//
// A ShaderRegistry is not safe for concurrent use.
type ShaderRegistry struct {
	next [numShaderKinds]uint32
}

// NewShaderRegistry creates an empty registry.
func NewShaderRegistry() *ShaderRegistry {
	r := &ShaderRegistry{}
	for i := range r.next {
		r.next[i] = 1
	}
	return r
}

// Register reserves numSub consecutive ids (at least one) for a shader
// of kind k in the given group.
func (r *ShaderRegistry) Register(k ShaderKind, numSub uint32, group uint32) Shader {
	numSub = max(numSub, 1)
	id := r.next[k]
	r.next[k] += numSub
	return Shader{
		ID:            ShaderID{Kind: k, Parent: id},
		Group:         group,
		NumSubShaders: numSub,
	}
}

// Count returns the number of ids in use for kind k, including the
// reserved id 0.
func (r *ShaderRegistry) Count(k ShaderKind) uint32 {
	return r.next[k]
}
