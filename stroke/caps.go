package stroke

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/drawpack/lod"
)

// emitCap emits a cap of style cs at the start (end == false) or end of e.
// The cap takes the depth of e.
func (b *Builder) emitCap(e *edgeInfo, cs CapStyle, end bool, contourLen float32, total float64) {
	seg := e.seg
	p, t, pair := seg.Start, seg.StartTangent, e.startPair
	out := neg(t)
	edgeDist, contourDist := 0.0, 0.0
	if end {
		p, t, pair = seg.End, seg.EndTangent, e.endPair
		out = t
		edgeDist, contourDist = e.length, total
	}
	n := perp(t)

	g := &b.geom
	vFirst, iFirst := len(g.Vertices), len(g.Indices)
	base := Vertex{
		Position:        f2(p),
		AuxOffset:       f2(out),
		Depth:           e.depth,
		EdgeDistance:    float32(edgeDist),
		ContourDistance: float32(contourDist),
		EdgeLength:      float32(e.length),
		ContourLength:   contourLen,
	}

	switch cs {
	case CapSquare:
		base.Type = OffsetSquareCap
		base.OnBoundary = true
		plus, minus := base, base
		plus.Offset = f2(n)
		minus.Offset = f2(neg(n))
		g.Vertices = append(g.Vertices, plus, minus)
		// The quad spans the edge's terminal pair and the two cap corners.
		e0, e1 := uint32(pair), uint32(pair+1)
		c0, c1 := uint32(vFirst), uint32(vFirst+1)
		g.Indices = append(g.Indices, e0, c0, c1, e0, c1, e1)

	case CapRound:
		base.Type = OffsetRoundedCap
		g.Vertices = append(g.Vertices, base)
		base.OnBoundary = true
		steps := min(lod.SegmentsForRadius(math.Pi, b.style.Radius, b.tol), maxPieces)
		for k := 0; k <= steps; k++ {
			phi := math.Pi * float64(k) / float64(steps)
			s, c := math.Sincos(phi)
			dir := vec.Vec2{X: n.X*c + out.X*s, Y: n.Y*c + out.Y*s}
			if k == steps {
				dir = neg(n)
			}
			v := base
			v.Offset = f2(dir)
			g.Vertices = append(g.Vertices, v)
		}
		b.fan(vFirst, vFirst+1, steps)

	default:
		return
	}

	g.Primitives = append(g.Primitives, Primitive{
		Kind:        PrimitiveCap,
		Cap:         cs,
		Depth:       e.depth,
		VertexFirst: vFirst,
		VertexCount: len(g.Vertices) - vFirst,
		IndexFirst:  iFirst,
		IndexCount:  len(g.Indices) - iFirst,
	})
}
