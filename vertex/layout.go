// Package vertex packs stroke, fill and glyph vertex records into the
// fixed 12-word vertex format read by the shaders.
//
// # Layout (version 1)
//
// Every vertex is three groups of four 32-bit words (48 bytes):
//
//	group 0: position.x, position.y, offset.x, offset.y
//	group 1: edge distance, contour distance, aux.x, aux.y
//	group 2: classification, edge length, contour length, miter distance
//
// Floating-point values are stored as their IEEE-754 bit patterns. The
// classification word packs:
//
//	bits  0-3   offset type
//	bit   4     on-boundary flag
//	bits  5-24  depth (saturated at MaxDepth)
//	bit   25    join flag
//	bit   26    end-of-edge flag
//	bit   27    inner flag
//
// The layout is shared with shader code (see UnpackWGSL). Changing any
// width or position requires bumping LayoutVersion.
package vertex

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/drawpack/stroke"
)

// LayoutVersion identifies the vertex layout and classification bit table.
const LayoutVersion = 1

// Vertex format sizes.
const (
	WordsPerGroup  = 4
	Groups         = 3
	WordsPerVertex = WordsPerGroup * Groups
	Stride         = WordsPerVertex * 4
)

// Classification word fields.
const (
	TypeBit0     = 0
	TypeBits     = 4
	BoundaryBit  = 4
	DepthBit0    = 5
	DepthBits    = 20
	JoinBit      = 25
	EndOfEdgeBit = 26
	InnerBit     = 27

	// MaxDepth is the largest depth that survives encoding.
	MaxDepth = 1<<DepthBits - 1
)

// The offset type tag must fit its field.
var _ = [1<<TypeBits - stroke.NumOffsetTypes]struct{}{}

// Encoded is one vertex in wire format.
type Encoded [Groups][WordsPerGroup]uint32

// Float2 is a pair of float32 values.
type Float2 = stroke.Float2

// BufferLayout returns the vertex buffer layout of the format: three
// Uint32x4 attributes at shader locations 0, 1 and 2.
func BufferLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: Stride,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatUint32x4, Offset: 0, ShaderLocation: 0},
			{Format: gputypes.VertexFormatUint32x4, Offset: WordsPerGroup * 4, ShaderLocation: 1},
			{Format: gputypes.VertexFormatUint32x4, Offset: 2 * WordsPerGroup * 4, ShaderLocation: 2},
		},
	}
}
