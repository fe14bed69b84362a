package stroke

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/drawpack/lod"
)

// MaxRefinement bounds subdivision: an arc edge, round join or round cap
// is never split into more than 1<<MaxRefinement pieces.
const MaxRefinement = 16

const maxPieces = 1 << MaxRefinement

// Builder produces stroke Geometry from contours. It reuses its buffers
// across calls; the Geometry returned by Build is owned by the Builder and
// is valid until the next call to Build.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	geom  Geometry
	edges []edgeInfo
	depth uint32

	style      Style
	tol        float64
	joinThresh float64
}

// edgeInfo tracks a non-degenerate segment while its contour is built.
type edgeInfo struct {
	seg    Segment
	length float64
	start  float64 // distance from contour start

	depth     uint32
	startPair int // vertex index of the (+n, -n) pair at the start
	endPair   int
}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build strokes contours with style and returns the resulting geometry.
//
// A non-positive or non-finite radius, or contours made only of
// zero-length segments, produce an empty Geometry.
func (b *Builder) Build(contours []Contour, style Style) *Geometry {
	b.geom.Reset()
	b.depth = 0
	if !(style.Radius > 0) || math.IsInf(style.Radius, 0) {
		return &b.geom
	}

	b.style = style
	b.tol = style.tolerance()
	b.joinThresh = b.tol / style.Radius

	for _, c := range contours {
		b.contour(c)
	}
	return &b.geom
}

func (b *Builder) nextDepth() uint32 {
	d := b.depth
	b.depth++
	return d
}

func (b *Builder) contour(c Contour) {
	b.edges = b.edges[:0]
	for _, s := range c.Segments {
		if s.degenerate() {
			continue
		}
		b.edges = append(b.edges, edgeInfo{seg: s, length: s.Length()})
	}
	if len(b.edges) == 0 {
		return
	}

	closed := c.Closed || b.style.Close
	if closed {
		first, last := b.edges[0].seg, b.edges[len(b.edges)-1].seg
		if gap := first.Start.Sub(last.End); gap.Length() > degenerateLength {
			closing := Line(last.End, first.Start)
			b.edges = append(b.edges, edgeInfo{seg: closing, length: closing.Length()})
		}
	}

	var total float64
	for i := range b.edges {
		b.edges[i].start = total
		total += b.edges[i].length
	}
	contourLen := float32(total)

	for i := range b.edges {
		b.edge(&b.edges[i], contourLen)
		if i+1 < len(b.edges) {
			b.join(&b.edges[i], &b.edges[i+1], contourLen, b.edges[i+1].start)
		}
	}

	if closed {
		b.join(&b.edges[len(b.edges)-1], &b.edges[0], contourLen, total)
		return
	}
	first, last := &b.edges[0], &b.edges[len(b.edges)-1]
	for _, cs := range b.capStyles() {
		b.emitCap(first, cs, false, contourLen, total)
		b.emitCap(last, cs, true, contourLen, total)
	}
}

func (b *Builder) capStyles() []CapStyle {
	if b.style.Dashed {
		return []CapStyle{CapRound, CapSquare}
	}
	if b.style.Cap == CapButt {
		return nil
	}
	return []CapStyle{b.style.Cap}
}

// edge emits a strip of (pieces+1) stations, two vertices per station.
func (b *Builder) edge(e *edgeInfo, contourLen float32) {
	e.depth = b.nextDepth()
	seg := e.seg

	pieces := 1
	if seg.Kind == SegmentArc {
		pieces = min(lod.SegmentsForRadius(seg.Sweep, seg.Radius, b.tol), maxPieces)
	}

	g := &b.geom
	vFirst, iFirst := len(g.Vertices), len(g.Indices)
	for k := 0; k <= pieces; k++ {
		f := float64(k) / float64(pieces)
		var p, t vec.Vec2
		switch {
		case k == 0:
			p, t = seg.Start, seg.StartTangent
		case k == pieces:
			p, t = seg.End, seg.EndTangent
		case seg.Kind == SegmentArc:
			a := seg.StartAngle + seg.Sweep*f
			p, t = seg.pointAt(a), seg.tangentAt(a)
		default:
			p, t = seg.Start.Add(seg.End.Sub(seg.Start).Mul(f)), seg.StartTangent
		}

		dist := e.length * f
		if k == pieces {
			dist = e.length
		}
		v := Vertex{
			Position:        f2(p),
			AuxOffset:       f2(t),
			Type:            OffsetEdge,
			OnBoundary:      true,
			Depth:           e.depth,
			EndOfEdge:       k == pieces,
			EdgeDistance:    float32(dist),
			ContourDistance: float32(e.start + dist),
			EdgeLength:      float32(e.length),
			ContourLength:   contourLen,
		}
		n := perp(t)
		v.Offset = f2(n)
		g.Vertices = append(g.Vertices, v)
		v.Offset = f2(neg(n))
		g.Vertices = append(g.Vertices, v)
	}
	for k := range pieces {
		i := uint32(vFirst + 2*k)
		g.Indices = append(g.Indices, i, i+1, i+2, i+2, i+1, i+3)
	}

	e.startPair = vFirst
	e.endPair = vFirst + 2*pieces
	g.Primitives = append(g.Primitives, Primitive{
		Kind:        PrimitiveEdge,
		Depth:       e.depth,
		VertexFirst: vFirst,
		VertexCount: len(g.Vertices) - vFirst,
		IndexFirst:  iFirst,
		IndexCount:  len(g.Indices) - iFirst,
	})
}

// fan appends triangles (center, first+k, first+k+1) for k in [0, n).
func (b *Builder) fan(center, first, n int) {
	for k := range n {
		b.geom.Indices = append(b.geom.Indices,
			uint32(center), uint32(first+k), uint32(first+k+1))
	}
}
