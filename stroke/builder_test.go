package stroke

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/drawpack/lod"
)

func v2(x, y float64) vec.Vec2 { return vec.Vec2{X: x, Y: y} }

func polyline(closed bool, pts ...vec.Vec2) Contour {
	c := Contour{Closed: closed}
	for i := 1; i < len(pts); i++ {
		c.Segments = append(c.Segments, Line(pts[i-1], pts[i]))
	}
	return c
}

func countType(g *Geometry, t OffsetType) int {
	n := 0
	for _, v := range g.Vertices {
		if v.Type == t {
			n++
		}
	}
	return n
}

func TestBuild_SquareCapSegment(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{polyline(false, v2(0, 0), v2(10, 0))},
		Style{Radius: 1, Cap: CapSquare, Join: JoinMiter})

	if got := countType(g, OffsetEdge); got != 4 {
		t.Errorf("edge vertices = %d, want 4", got)
	}
	if got := countType(g, OffsetSquareCap); got != 4 {
		t.Errorf("square cap vertices = %d, want 4", got)
	}
	if len(g.Vertices) != 8 {
		t.Fatalf("vertices = %d, want 8", len(g.Vertices))
	}

	caps := 0
	for _, p := range g.Primitives {
		switch p.Kind {
		case PrimitiveCap:
			caps++
			boundary := 0
			for _, v := range g.PrimitiveVertices(p) {
				if v.Type != OffsetSquareCap {
					t.Errorf("cap vertex type = %v, want %v", v.Type, OffsetSquareCap)
				}
				if v.OnBoundary {
					boundary++
				}
			}
			if boundary != 2 {
				t.Errorf("cap boundary vertices = %d, want 2", boundary)
			}
		case PrimitiveEdge:
			for _, v := range g.PrimitiveVertices(p) {
				want := float32(0)
				if v.EndOfEdge {
					want = 10
				}
				if v.EdgeDistance != want {
					t.Errorf("edge vertex at %v: EdgeDistance = %v, want %v", v.Position, v.EdgeDistance, want)
				}
				if v.EdgeLength != 10 || v.ContourLength != 10 {
					t.Errorf("lengths = (%v, %v), want (10, 10)", v.EdgeLength, v.ContourLength)
				}
			}
		default:
			t.Errorf("unexpected primitive %v", p.Kind)
		}
	}
	if caps != 2 {
		t.Errorf("caps = %d, want 2", caps)
	}
}

func TestBuild_SquareCapReferencesEdgeEnds(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{polyline(false, v2(0, 0), v2(10, 0))},
		Style{Radius: 1, Cap: CapSquare})

	for _, p := range g.Primitives {
		if p.Kind != PrimitiveCap {
			continue
		}
		idx := g.PrimitiveIndices(p)
		if len(idx) != 6 {
			t.Fatalf("cap indices = %d, want 6", len(idx))
		}
		capPos := g.Vertices[p.VertexFirst].Position
		for _, i := range idx {
			if got := g.Vertices[i].Position; got != capPos {
				t.Errorf("cap triangle vertex %d at %v, want %v", i, got, capPos)
			}
		}
	}
}

func TestBuild_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		contours []Contour
		style    Style
	}{
		{"zero radius", []Contour{polyline(false, v2(0, 0), v2(1, 0))}, Style{Radius: 0, Cap: CapSquare}},
		{"negative radius", []Contour{polyline(false, v2(0, 0), v2(1, 0))}, Style{Radius: -2}},
		{"nan radius", []Contour{polyline(false, v2(0, 0), v2(1, 0))}, Style{Radius: math.NaN()}},
		{"zero length", []Contour{polyline(false, v2(3, 3), v2(3, 3), v2(3, 3))}, Style{Radius: 1, Cap: CapRound}},
		{"no contours", nil, Style{Radius: 1}},
		{"zero radius arc", []Contour{{Segments: []Segment{Arc(v2(0, 0), 0, 0, math.Pi)}}}, Style{Radius: 1}},
	}
	b := NewBuilder()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := b.Build(tt.contours, tt.style)
			if !g.Empty() || len(g.Vertices) != 0 || len(g.Indices) != 0 {
				t.Errorf("got %d primitives, %d vertices; want empty", len(g.Primitives), len(g.Vertices))
			}
		})
	}
}

func TestBuild_DepthOrder(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{
		polyline(false, v2(0, 0), v2(10, 0), v2(10, 10), v2(0, 10)),
		polyline(false, v2(20, 0), v2(30, 5)),
	}, Style{Radius: 1, Join: JoinMiter, Cap: CapRound})

	var last uint32
	first := true
	edgeDepths := map[int]uint32{}
	for _, p := range g.Primitives {
		for _, v := range g.PrimitiveVertices(p) {
			if v.Depth != p.Depth {
				t.Fatalf("%v vertex depth %d != primitive depth %d", p.Kind, v.Depth, p.Depth)
			}
		}
		if p.Kind == PrimitiveCap {
			continue
		}
		if p.Kind == PrimitiveEdge {
			edgeDepths[p.VertexFirst] = p.Depth
		}
		if !first && p.Depth <= last {
			t.Errorf("%v depth %d not above previous %d", p.Kind, p.Depth, last)
		}
		last, first = p.Depth, false
	}

	for _, p := range g.Primitives {
		if p.Kind != PrimitiveCap {
			continue
		}
		found := false
		for _, d := range edgeDepths {
			if d == p.Depth {
				found = true
			}
		}
		if !found {
			t.Errorf("cap depth %d matches no edge", p.Depth)
		}
	}
}

func TestBuild_ClosedSquare(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{polyline(true, v2(0, 0), v2(10, 0), v2(10, 10), v2(0, 10))},
		Style{Radius: 1, Join: JoinMiter, Cap: CapSquare})

	kinds := map[PrimitiveKind]int{}
	for _, p := range g.Primitives {
		kinds[p.Kind]++
	}
	if kinds[PrimitiveEdge] != 4 || kinds[PrimitiveJoin] != 4 || kinds[PrimitiveCap] != 0 {
		t.Fatalf("primitives = %v, want 4 edges, 4 joins, 0 caps", kinds)
	}

	for _, v := range g.Vertices {
		if v.ContourLength != 40 {
			t.Fatalf("ContourLength = %v, want 40", v.ContourLength)
		}
		if v.Type == OffsetMiterJoin && v.MiterDistance != 0 {
			if math.Abs(float64(v.MiterDistance)-math.Sqrt2) > 1e-6 {
				t.Errorf("MiterDistance = %v, want sqrt(2)", v.MiterDistance)
			}
		}
	}

	// The first join sits at (10, 0) and points out of the square.
	for _, p := range g.Primitives {
		if p.Kind != PrimitiveJoin {
			continue
		}
		vs := g.PrimitiveVertices(p)
		if len(vs) != 4 {
			t.Fatalf("miter join vertices = %d, want 4", len(vs))
		}
		if vs[0].OnBoundary || !vs[1].OnBoundary {
			t.Error("miter join: center must be interior, sides on the boundary")
		}
		if vs[0].Position == (Float2{X: 10, Y: 0}) {
			if vs[1].Offset != (Float2{X: 0, Y: -1}) || vs[3].Offset != (Float2{X: 1, Y: 0}) {
				t.Errorf("join offsets = %v, %v; want (0,-1), (1,0)", vs[1].Offset, vs[3].Offset)
			}
			if vs[0].ContourDistance != 10 || vs[0].EdgeDistance != 10 {
				t.Errorf("join distances = (%v, %v), want (10, 10)", vs[0].EdgeDistance, vs[0].ContourDistance)
			}
		}
	}
}

func TestBuild_CollinearJoinSkipped(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{polyline(false, v2(0, 0), v2(5, 0), v2(10, 0))},
		Style{Radius: 1, Join: JoinRound})
	for _, p := range g.Primitives {
		if p.Kind == PrimitiveJoin {
			t.Fatal("collinear edges produced a join")
		}
	}
	var last float32 = -1
	for _, v := range g.Vertices {
		if v.ContourDistance < last {
			t.Errorf("contour distance decreased: %v after %v", v.ContourDistance, last)
		}
		last = v.ContourDistance
	}
	if last != 10 {
		t.Errorf("final contour distance = %v, want 10", last)
	}
}

func TestBuild_JoinVertexCounts(t *testing.T) {
	tests := []struct {
		join  JoinStyle
		typ   OffsetType
		count int
	}{
		{JoinMiter, OffsetMiterJoin, 4},
		{JoinMiterBevel, OffsetMiterBevelJoin, 4},
		{JoinMiterClip, OffsetMiterClipJoin, 5},
		{JoinBevel, OffsetBevelJoin, 5},
	}
	b := NewBuilder()
	for _, tt := range tests {
		t.Run(tt.join.String(), func(t *testing.T) {
			g := b.Build([]Contour{polyline(false, v2(0, 0), v2(10, 0), v2(10, 10))},
				Style{Radius: 1, Join: tt.join})
			if got := countType(g, tt.typ); got != tt.count {
				t.Errorf("%v vertices = %d, want %d", tt.typ, got, tt.count)
			}
			for _, v := range g.Vertices {
				if v.Type == tt.typ && !v.Join {
					t.Error("join vertex without join flag")
				}
			}
		})
	}
}

func TestBuild_BevelInnerVertices(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{polyline(false, v2(0, 0), v2(10, 0), v2(10, 10))},
		Style{Radius: 1, Join: JoinBevel})
	inner := 0
	for _, v := range g.Vertices {
		if v.Type != OffsetBevelJoin || !v.OnBoundary {
			continue
		}
		if v.Inner {
			inner++
			if v.AuxOffset != (Float2{X: -1, Y: 0}) {
				t.Errorf("inner bevel direction = %v, want (-1, 0)", v.AuxOffset)
			}
		} else if v.AuxOffset != (Float2{X: 1, Y: 0}) {
			t.Errorf("outer bevel direction = %v, want (1, 0)", v.AuxOffset)
		}
	}
	if inner != 2 {
		t.Errorf("inner bevel vertices = %d, want 2", inner)
	}
}

func TestBuild_RoundJoinFan(t *testing.T) {
	b := NewBuilder()
	style := Style{Radius: 4, Join: JoinRound, Tolerance: 0.01}
	g := b.Build([]Contour{polyline(false, v2(0, 0), v2(10, 0), v2(10, 10))}, style)

	want := lod.SegmentsForRadius(math.Pi/2, 4, 0.01) + 2
	if got := countType(g, OffsetRoundedJoin); got != want {
		t.Errorf("rounded join vertices = %d, want %d", got, want)
	}
	for _, v := range g.Vertices {
		if v.Type != OffsetRoundedJoin || !v.OnBoundary {
			continue
		}
		l := math.Hypot(float64(v.Offset.X), float64(v.Offset.Y))
		if math.Abs(l-1) > 1e-6 {
			t.Errorf("join offset %v is not unit length", v.Offset)
		}
	}
}

func TestBuild_ArcEdge(t *testing.T) {
	b := NewBuilder()
	arc := Arc(v2(0, 0), 10, 0, math.Pi)
	g := b.Build([]Contour{{Segments: []Segment{arc}}}, Style{Radius: 1, Tolerance: 0.1})

	pieces := lod.SegmentsForRadius(math.Pi, 10, 0.1)
	if got, want := len(g.Vertices), 2*(pieces+1); got != want {
		t.Fatalf("arc vertices = %d, want %d", got, want)
	}
	if got, want := len(g.Indices), 6*pieces; got != want {
		t.Errorf("arc indices = %d, want %d", got, want)
	}
	last := g.Vertices[len(g.Vertices)-1]
	if last.EdgeDistance != float32(10*math.Pi) {
		t.Errorf("end distance = %v, want %v", last.EdgeDistance, float32(10*math.Pi))
	}
	if !last.EndOfEdge {
		t.Error("last arc vertex must be marked end of edge")
	}
	// Offsets point away from the center.
	for _, v := range g.Vertices[:2] {
		if v.Offset.Y != 0 || math.Abs(float64(v.Offset.X)) != 1 {
			t.Errorf("start offset = %v, want (+-1, 0)", v.Offset)
		}
	}
}

func TestBuild_ArcRefinementCeiling(t *testing.T) {
	b := NewBuilder()
	arc := Arc(v2(0, 0), 1e6, 0, 64*math.Pi)
	g := b.Build([]Contour{{Segments: []Segment{arc}}}, Style{Radius: 1, Tolerance: 1e-9})
	if got, want := len(g.Vertices), 2*(maxPieces+1); got != want {
		t.Errorf("arc vertices = %d, want ceiling %d", got, want)
	}
}

func TestBuild_DashedCaps(t *testing.T) {
	b := NewBuilder()
	g := b.Build([]Contour{polyline(false, v2(0, 0), v2(10, 0))},
		Style{Radius: 1, Cap: CapButt, Dashed: true})
	styles := map[CapStyle]int{}
	for _, p := range g.Primitives {
		if p.Kind == PrimitiveCap {
			styles[p.Cap]++
		}
	}
	if styles[CapRound] != 2 || styles[CapSquare] != 2 || styles[CapButt] != 0 {
		t.Errorf("dashed caps = %v, want 2 round and 2 square", styles)
	}
}

func TestBuild_ReusesBuffers(t *testing.T) {
	b := NewBuilder()
	contours := []Contour{polyline(false, v2(0, 0), v2(10, 0), v2(10, 10))}
	style := Style{Radius: 1, Join: JoinMiter, Cap: CapSquare}
	first := b.Build(contours, style).Clone()
	second := b.Build(contours, style)
	if len(first.Vertices) != len(second.Vertices) {
		t.Fatalf("rebuild changed vertex count: %d != %d", len(first.Vertices), len(second.Vertices))
	}
	for i := range first.Vertices {
		if first.Vertices[i] != second.Vertices[i] {
			t.Fatalf("vertex %d differs after rebuild", i)
		}
	}
}

func TestMiterDistance(t *testing.T) {
	tests := []struct {
		name   string
		n0, n1 vec.Vec2
		want   float64
	}{
		{"straight", v2(0, 1), v2(0, 1), 1},
		{"right angle", v2(0, -1), v2(1, 0), math.Sqrt2},
		{"reversal", v2(0, 1), v2(0, -1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MiterDistance(tt.n0, tt.n1); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("MiterDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMiterClipDistance(t *testing.T) {
	s, c := math.Sincos(math.Pi / 3)
	tests := []struct {
		name   string
		n0, n1 vec.Vec2
		want   float64
	}{
		{"straight", v2(0, 1), v2(0, 1), 1},
		{"sixty degrees", v2(1, 0), v2(c, s), math.Sqrt2},
		{"zero determinant", v2(0, 1), v2(1, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MiterClipDistance(tt.n0, tt.n1); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MiterClipDistance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBevelDirection(t *testing.T) {
	tests := []struct {
		name       string
		prev, next vec.Vec2
		inner      bool
		want       vec.Vec2
	}{
		{"left turn outer", v2(1, 0), v2(0, 1), false, v2(1, 0)},
		{"left turn inner", v2(1, 0), v2(0, 1), true, v2(-1, 0)},
		{"right turn outer", v2(1, 0), v2(0, -1), false, v2(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BevelDirection(tt.prev, tt.next, tt.inner); got != tt.want {
				t.Errorf("BevelDirection = %v, want %v", got, tt.want)
			}
		})
	}
}
