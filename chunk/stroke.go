package chunk

import (
	"github.com/gogpu/drawpack/internal/debug"
	"github.com/gogpu/drawpack/stroke"
	"github.com/gogpu/drawpack/vertex"
)

// Chunk ids of plain strokes.
const (
	EdgeChunk = 0
	JoinChunk = 1
	CapChunk  = 2
)

// DashedCapChunk returns the chunk id holding the caps of style cs in a
// set built with ByCapStyle.
func DashedCapChunk(cs stroke.CapStyle) int {
	return CapChunk + int(cs)
}

// StrokeSelector assigns stroke primitives to chunk ids.
type StrokeSelector interface {
	// NumChunks returns the number of chunk ids the selector produces.
	NumChunks() int
	// Select returns the chunk id of p, in [0, NumChunks).
	Select(p stroke.Primitive) int
}

type byPrimitive struct{}

func (byPrimitive) NumChunks() int { return 3 }

func (byPrimitive) Select(p stroke.Primitive) int {
	switch p.Kind {
	case stroke.PrimitiveJoin:
		return JoinChunk
	case stroke.PrimitiveCap:
		return CapChunk
	default:
		return EdgeChunk
	}
}

type byCapStyle struct{}

func (byCapStyle) NumChunks() int { return CapChunk + stroke.NumCapStyles }

func (byCapStyle) Select(p stroke.Primitive) int {
	if p.Kind == stroke.PrimitiveCap {
		return DashedCapChunk(p.Cap)
	}
	return byPrimitive{}.Select(p)
}

var (
	// ByPrimitive separates edges, joins and caps of plain strokes.
	ByPrimitive StrokeSelector = byPrimitive{}
	// ByCapStyle additionally separates caps by style, for dashed strokes.
	ByCapStyle StrokeSelector = byCapStyle{}
)

// Stroke encodes g and partitions it with sel. Vertices are reordered so
// that each chunk owns a contiguous range; indices that reach into
// another chunk's vertices (square caps) are remapped accordingly.
func (b *Builder) Stroke(g *stroke.Geometry, sel StrokeSelector) *Set {
	n := sel.NumChunks()
	s := newSet(n)
	if g == nil || g.Empty() {
		return s
	}

	b.order = b.order[:0]
	for id := range n {
		for pi, p := range g.Primitives {
			if sel.Select(p) == id {
				b.order = append(b.order, pi)
			}
		}
	}
	debug.Assert(len(b.order) == len(g.Primitives), "selector produced ids outside [0, %d)", n)

	b.remap = resize(b.remap, len(g.Vertices))
	b.records = b.records[:0]
	for _, pi := range b.order {
		p := g.Primitives[pi]
		for k, v := range g.PrimitiveVertices(p) {
			b.remap[p.VertexFirst+k] = uint32(len(b.records))
			b.records = append(b.records, v)
		}
	}
	debug.Assert(len(b.records) == len(g.Vertices), "primitives own %d of %d vertices", len(b.records), len(g.Vertices))
	s.Vertices = vertex.EncodeAll(make([]vertex.Encoded, 0, len(b.records)), b.records)

	next := 0
	for id := range n {
		vFirst := -1
		vCount := 0
		b.abs = b.abs[:0]
		for ; next < len(b.order) && sel.Select(g.Primitives[b.order[next]]) == id; next++ {
			p := g.Primitives[b.order[next]]
			if vFirst < 0 {
				vFirst = int(b.remap[p.VertexFirst])
			}
			vCount += p.VertexCount
			for _, i := range g.PrimitiveIndices(p) {
				b.abs = append(b.abs, b.remap[i])
			}
		}
		s.setChunk(id, max(vFirst, 0), vCount, b.abs)
	}
	return s
}
