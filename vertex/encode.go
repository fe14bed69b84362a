package vertex

import (
	"math"
	"slices"

	"honnef.co/go/safeish"

	"github.com/gogpu/drawpack/internal/bits"
	"github.com/gogpu/drawpack/internal/debug"
	"github.com/gogpu/drawpack/stroke"
)

// Class is the decoded classification word.
type Class struct {
	Type       stroke.OffsetType
	OnBoundary bool
	Depth      uint32
	Join       bool
	EndOfEdge  bool
	Inner      bool
}

// Pack returns the classification word. Depth values above MaxDepth are
// saturated.
func (c Class) Pack() uint32 {
	debug.Assert(c.Type < stroke.NumOffsetTypes, "offset type %d out of range", c.Type)
	w := bits.Pack[uint32](TypeBit0, TypeBits, uint32(c.Type))
	w |= bits.Flag[uint32](BoundaryBit, c.OnBoundary)
	w |= bits.Pack[uint32](DepthBit0, DepthBits, bits.Saturate[uint32](DepthBits, c.Depth))
	w |= bits.Flag[uint32](JoinBit, c.Join)
	w |= bits.Flag[uint32](EndOfEdgeBit, c.EndOfEdge)
	w |= bits.Flag[uint32](InnerBit, c.Inner)
	return w
}

// UnpackClass decodes a classification word.
func UnpackClass(w uint32) Class {
	return Class{
		Type:       stroke.OffsetType(bits.Unpack[uint32](TypeBit0, TypeBits, w)),
		OnBoundary: bits.Has[uint32](BoundaryBit, w),
		Depth:      bits.Unpack[uint32](DepthBit0, DepthBits, w),
		Join:       bits.Has[uint32](JoinBit, w),
		EndOfEdge:  bits.Has[uint32](EndOfEdgeBit, w),
		Inner:      bits.Has[uint32](InnerBit, w),
	}
}

// Encode packs a stroke vertex record.
func Encode(r stroke.Vertex) Encoded {
	class := Class{
		Type:       r.Type,
		OnBoundary: r.OnBoundary,
		Depth:      r.Depth,
		Join:       r.Join,
		EndOfEdge:  r.EndOfEdge,
		Inner:      r.Inner,
	}
	return Encoded{
		{f32(r.Position.X), f32(r.Position.Y), f32(r.Offset.X), f32(r.Offset.Y)},
		{f32(r.EdgeDistance), f32(r.ContourDistance), f32(r.AuxOffset.X), f32(r.AuxOffset.Y)},
		{class.Pack(), f32(r.EdgeLength), f32(r.ContourLength), f32(r.MiterDistance)},
	}
}

// Decode is the inverse of Encode. Depth is exact up to MaxDepth.
func Decode(e Encoded) stroke.Vertex {
	c := UnpackClass(e[2][0])
	return stroke.Vertex{
		Position:        Float2{X: fromF32(e[0][0]), Y: fromF32(e[0][1])},
		Offset:          Float2{X: fromF32(e[0][2]), Y: fromF32(e[0][3])},
		AuxOffset:       Float2{X: fromF32(e[1][2]), Y: fromF32(e[1][3])},
		Type:            c.Type,
		OnBoundary:      c.OnBoundary,
		Depth:           c.Depth,
		Join:            c.Join,
		EndOfEdge:       c.EndOfEdge,
		Inner:           c.Inner,
		EdgeDistance:    fromF32(e[1][0]),
		ContourDistance: fromF32(e[1][1]),
		EdgeLength:      fromF32(e[2][1]),
		ContourLength:   fromF32(e[2][2]),
		MiterDistance:   fromF32(e[2][3]),
	}
}

// EncodeAll appends the encoding of every record in src to dst.
func EncodeAll(dst []Encoded, src []stroke.Vertex) []Encoded {
	dst = slices.Grow(dst, len(src))
	for _, r := range src {
		dst = append(dst, Encode(r))
	}
	return dst
}

// Depth returns the depth stored in e.
func Depth(e Encoded) uint32 {
	return bits.Unpack[uint32](DepthBit0, DepthBits, e[2][0])
}

// EncodeFill packs a fill vertex: position in group 0 and a
// classification word that carries only depth.
func EncodeFill(p Float2, depth uint32) Encoded {
	return Encoded{
		{f32(p.X), f32(p.Y), 0, 0},
		{},
		{Class{Depth: depth}.Pack(), 0, 0, 0},
	}
}

// EncodeFills appends the fill encoding of every point in src to dst.
func EncodeFills(dst []Encoded, src []Float2, depth uint32) []Encoded {
	dst = slices.Grow(dst, len(src))
	for _, p := range src {
		dst = append(dst, EncodeFill(p, depth))
	}
	return dst
}

// Bytes returns the vertices as a byte slice in host byte order, sharing
// memory with v.
func Bytes(v []Encoded) []byte {
	return safeish.SliceCast[[]byte](v)
}

func f32(f float32) uint32 { return math.Float32bits(f) }

func fromF32(w uint32) float32 { return math.Float32frombits(w) }
