package stroke

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/drawpack/lod"
)

// MiterDistance returns ‖n0+n1‖/(1+n0·n1) for the unit normals of two
// edges meeting at a join: the distance from the join point to the miter
// tip in units of the stroke radius. It is 0 when the denominator is
// exactly zero (a 180 degree turn).
func MiterDistance(n0, n1 vec.Vec2) float64 {
	den := 1 + n0.Dot(n1)
	if den == 0 {
		return 0
	}
	return n0.Add(n1).Length() / den
}

// MiterClipDistance returns √(1+r²) with r = (n0·n1−1)/det(J·n1, n0) and
// J(x, y) = (y, −x). It is 0 when the determinant is exactly zero.
func MiterClipDistance(n0, n1 vec.Vec2) float64 {
	det := cross(jPerp(n1), n0)
	if det == 0 {
		return 0
	}
	r := (n0.Dot(n1) - 1) / det
	return math.Sqrt(1 + r*r)
}

// BevelDirection returns the direction of a bevel between an incoming
// edge with unit tangent prev and an outgoing edge with unit tangent next:
// J(next) signed by sign(dot(J(next), prev)), negated when inner is set.
func BevelDirection(prev, next vec.Vec2, inner bool) vec.Vec2 {
	end := jPerp(next)
	if end.Dot(prev) < 0 {
		end = neg(end)
	}
	if inner {
		end = neg(end)
	}
	return end
}

// join emits the join between prev and next at contour distance at.
func (b *Builder) join(prev, next *edgeInfo, contourLen float32, at float64) {
	style := b.style.Join
	if style == JoinNone {
		return
	}

	t0, t1 := prev.seg.EndTangent, next.seg.StartTangent
	c, d := cross(t0, t1), t0.Dot(t1)
	if d > 0 && math.Abs(c) < b.joinThresh {
		return
	}

	// lambda picks the outer side of the turn.
	lambda := 1.0
	if c > 0 {
		lambda = -1
	}
	n0 := perp(t0).Mul(lambda)
	n1 := perp(t1).Mul(lambda)

	g := &b.geom
	vFirst, iFirst := len(g.Vertices), len(g.Indices)
	depth := b.nextDepth()
	base := Vertex{
		Position:        f2(prev.seg.End),
		Depth:           depth,
		Join:            true,
		EdgeDistance:    float32(prev.length),
		ContourDistance: float32(at),
		EdgeLength:      float32(prev.length),
		ContourLength:   contourLen,
	}
	boundary := func(t OffsetType, off, aux vec.Vec2) Vertex {
		v := base
		v.Type = t
		v.OnBoundary = true
		v.Offset = f2(off)
		v.AuxOffset = f2(aux)
		return v
	}

	switch style {
	case JoinMiter, JoinMiterBevel:
		t := OffsetMiterJoin
		if style == JoinMiterBevel {
			t = OffsetMiterBevelJoin
		}
		center := base
		center.Type = t
		tip := boundary(t, n0, n1)
		tip.MiterDistance = float32(MiterDistance(n0, n1))
		g.Vertices = append(g.Vertices,
			center,
			boundary(t, n0, vec.Vec2{}),
			tip,
			boundary(t, n1, vec.Vec2{}),
		)
		b.fan(vFirst, vFirst+1, 2)

	case JoinMiterClip:
		center := base
		center.Type = OffsetMiterClipJoin
		dist := float32(MiterClipDistance(n0, n1))
		tip0 := boundary(OffsetMiterClipJoin, n0, n1)
		tip0.MiterDistance = dist
		tip1 := boundary(OffsetMiterClipJoin, n1, n0)
		tip1.MiterDistance = dist
		g.Vertices = append(g.Vertices,
			center,
			boundary(OffsetMiterClipJoin, n0, vec.Vec2{}),
			tip0,
			tip1,
			boundary(OffsetMiterClipJoin, n1, vec.Vec2{}),
		)
		b.fan(vFirst, vFirst+1, 3)

	case JoinBevel:
		center := base
		center.Type = OffsetBevelJoin
		outer := BevelDirection(t0, t1, false)
		inner := BevelDirection(t0, t1, true)
		i0 := boundary(OffsetBevelJoin, neg(n0), inner)
		i0.Inner = true
		i1 := boundary(OffsetBevelJoin, neg(n1), inner)
		i1.Inner = true
		g.Vertices = append(g.Vertices,
			center,
			boundary(OffsetBevelJoin, n0, outer),
			boundary(OffsetBevelJoin, n1, outer),
			i0,
			i1,
		)
		g.Indices = append(g.Indices,
			uint32(vFirst), uint32(vFirst+1), uint32(vFirst+2),
			uint32(vFirst), uint32(vFirst+3), uint32(vFirst+4))

	case JoinRound:
		center := base
		center.Type = OffsetRoundedJoin
		g.Vertices = append(g.Vertices, center)
		turn := math.Atan2(c, d)
		n := min(lod.SegmentsForRadius(turn, b.style.Radius, b.tol), maxPieces)
		for k := 0; k <= n; k++ {
			dir := n1
			if k < n {
				dir = rotate(n0, turn*float64(k)/float64(n))
			}
			g.Vertices = append(g.Vertices, boundary(OffsetRoundedJoin, dir, vec.Vec2{}))
		}
		b.fan(vFirst, vFirst+1, n)
	}

	g.Primitives = append(g.Primitives, Primitive{
		Kind:        PrimitiveJoin,
		Join:        style,
		Depth:       depth,
		VertexFirst: vFirst,
		VertexCount: len(g.Vertices) - vFirst,
		IndexFirst:  iFirst,
		IndexCount:  len(g.Indices) - iFirst,
	})
}
