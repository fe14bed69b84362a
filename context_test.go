package drawpack

import (
	"math"
	"testing"

	"golang.org/x/image/math/fixed"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"github.com/gogpu/drawpack/chunk"
	"github.com/gogpu/drawpack/clip"
	"github.com/gogpu/drawpack/draw"
	"github.com/gogpu/drawpack/pool"
	"github.com/gogpu/drawpack/stroke"
	"github.com/gogpu/drawpack/vertex"
)

func segmentContour() []stroke.Contour {
	return []stroke.Contour{{Segments: []stroke.Segment{
		stroke.Line(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}),
		stroke.Line(vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 10}),
	}}}
}

func testState(ctx *Context) draw.State {
	r := draw.NewShaderRegistry()
	return draw.State{
		ItemShader: r.Register(draw.ShaderItem, 1, 0),
		Blend:      draw.BlendSourceOver,
		ItemMatrix: ctx.Acquire(pool.IdentityItemMatrix()),
		Clip:       ctx.Acquire(pool.NoClip()),
	}
}

func TestContext_Stroke(t *testing.T) {
	ctx := NewContext(WithDepthBase(5))
	st := testState(ctx)
	style := stroke.Style{Radius: 1, Cap: stroke.CapSquare, Join: stroke.JoinMiter}

	recs := ctx.Stroke(1, segmentContour(), style, st)
	if len(recs) != 3 {
		t.Fatalf("records = %d, want edges, joins and caps", len(recs))
	}
	for _, r := range recs {
		if r.Header.Z != 5 {
			t.Errorf("chunk %d z = %d, want 5", r.Chunk.ID, r.Header.Z)
		}
	}
	if got, want := ctx.Z(), 5+draw.DepthSpan(recs[0].Set, allChunks(recs[0].Set)); got != want {
		t.Errorf("running z = %d, want %d", got, want)
	}

	again := ctx.Stroke(1, segmentContour(), style, st)
	if again[0].Set != recs[0].Set {
		t.Error("second stroke of the same path did not reuse cached geometry")
	}
	if again[0].Header.Z <= recs[0].Header.Z {
		t.Errorf("second stroke z = %d, want above %d", again[0].Header.Z, recs[0].Header.Z)
	}

	other := ctx.Stroke(1, segmentContour(), stroke.Style{Radius: 2, Cap: stroke.CapSquare}, st)
	if other[0].Set == recs[0].Set {
		t.Error("a different style shared cached geometry")
	}
	uncached := ctx.Stroke(0, segmentContour(), style, st)
	if uncached[0].Set == recs[0].Set {
		t.Error("PathID 0 was cached")
	}
}

// zRange returns the lowest and highest z written for the vertices the
// record's triangles use.
func zRange(r draw.Record) (lo, hi int32) {
	lo, hi = math.MaxInt32, math.MinInt32
	for _, i := range r.Indices() {
		z := r.Header.Z + int32(vertex.Depth(r.Set.Vertices[int(i)+r.Chunk.IndexAdjust]))
		lo, hi = min(lo, z), max(hi, z)
	}
	return lo, hi
}

func TestContext_StrokeJoinBetweenEdges(t *testing.T) {
	ctx := NewContext(WithDepthBase(20))
	style := stroke.Style{Radius: 1, Join: stroke.JoinMiter}
	recs := ctx.Stroke(0, segmentContour(), style, testState(ctx))

	byID := map[int]draw.Record{}
	for _, r := range recs {
		byID[r.Chunk.ID] = r
	}
	edges, ok1 := byID[chunk.EdgeChunk]
	join, ok2 := byID[chunk.JoinChunk]
	if !ok1 || !ok2 {
		t.Fatalf("chunks = %v, want edges and joins", byID)
	}

	// The first edge is built below the join and the second above it.
	elo, ehi := zRange(edges)
	jlo, jhi := zRange(join)
	if jlo <= elo || jhi >= ehi {
		t.Errorf("join z [%d, %d], want strictly inside edge z [%d, %d]", jlo, jhi, elo, ehi)
	}
	if elo != 20 {
		t.Errorf("lowest written z = %d, want the running z 20", elo)
	}
}

func TestContext_StrokeDashed(t *testing.T) {
	ctx := NewContext()
	recs := ctx.Stroke(2, segmentContour(), stroke.Style{Radius: 1, Dashed: true}, testState(ctx))
	ids := map[int]bool{}
	for _, r := range recs {
		ids[r.Chunk.ID] = true
	}
	for _, cs := range []stroke.CapStyle{stroke.CapRound, stroke.CapSquare} {
		if !ids[chunk.DashedCapChunk(cs)] {
			t.Errorf("no record for %v caps", cs)
		}
	}
}

func TestContext_Fill(t *testing.T) {
	ctx := NewContext()
	in := chunk.FillInput{
		Points:         []vertex.Float2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
		Windings:       []int{1},
		WindingIndices: [][]uint32{{0, 1, 2}},
	}
	in.RuleIndices[chunk.FillNonzero] = []uint32{0, 1, 2}

	if recs := ctx.Fill(in, chunk.FillNonzero, testState(ctx)); len(recs) != 1 {
		t.Errorf("nonzero records = %d, want 1", len(recs))
	}
	if recs := ctx.Fill(in, chunk.FillOddEven, testState(ctx)); len(recs) != 0 {
		t.Errorf("odd-even records = %d, want 0", len(recs))
	}
	if recs := ctx.FillWindings(in, []int{1, -1, 3}, testState(ctx)); len(recs) != 1 {
		t.Errorf("winding records = %d, want 1", len(recs))
	}
}

func TestContext_Glyphs(t *testing.T) {
	ctx := NewContext()
	glyphs := []vertex.Glyph{
		{ID: 3, Origin: fixed.P(0, 0), Bounds: fixed.R(0, -5, 4, 1), Render: vertex.GlyphCoverage},
		{ID: 4, Origin: fixed.P(5, 0), Bounds: fixed.R(0, -5, 4, 1), Render: vertex.GlyphDistanceField},
	}
	recs := ctx.Glyphs(glyphs, testState(ctx))
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].Chunk.ID != chunk.GlyphChunk(vertex.GlyphCoverage) {
		t.Errorf("first record chunk = %d, want coverage", recs[0].Chunk.ID)
	}
	// A single item shader draws every render type.
	if recs[0].Key != recs[1].Key {
		t.Error("glyph records split without sub-shaders")
	}
}

func TestContext_GlyphSubShaders(t *testing.T) {
	ctx := NewContext()
	st := testState(ctx)
	item := draw.NewShaderRegistry().Register(draw.ShaderItem, vertex.NumGlyphRenderTypes, 0)
	st.ItemShader = item

	glyphs := []vertex.Glyph{
		{ID: 3, Origin: fixed.P(0, 0), Bounds: fixed.R(0, -5, 4, 1), Render: vertex.GlyphCoverage},
		{ID: 4, Origin: fixed.P(5, 0), Bounds: fixed.R(0, -5, 4, 1), Render: vertex.GlyphDistanceField},
	}
	recs := ctx.Glyphs(glyphs, st)
	if len(recs) != 2 {
		t.Fatalf("records = %d, want 2", len(recs))
	}
	if recs[0].Key == recs[1].Key {
		t.Error("coverage and distance field glyphs share a batch key")
	}
	for _, r := range recs {
		typ := vertex.GlyphRenderType(r.Chunk.ID - chunk.GlyphChunk(0))
		if got, want := r.Header.ItemShader, item.Sub(uint32(typ)).ID.Flat(); got != want {
			t.Errorf("%v header shader = %d, want %d", typ, got, want)
		}
	}
}

func TestContext_Visible(t *testing.T) {
	ctx := NewContext()
	planes := clip.RectPlanes(rect.Rect{LLx: 0, LLy: 0, URx: 10, URy: 10})
	tests := []struct {
		name string
		poly []clip.Point
		want bool
	}{
		{"inside", clip.RectPolygon(rect.Rect{LLx: 1, LLy: 1, URx: 2, URy: 2}), true},
		{"overlapping", clip.RectPolygon(rect.Rect{LLx: 8, LLy: 8, URx: 12, URy: 12}), true},
		{"outside", clip.RectPolygon(rect.Rect{LLx: 11, LLy: 0, URx: 12, URy: 1}), false},
		// Every plane keeps a vertex, but the triangle misses the corner.
		{"past corner", []clip.Point{clip.Pt(10.6, 9.5), clip.Pt(12, 12), clip.Pt(9.5, 10.6)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ctx.Visible(tt.poly, planes[:]); got != tt.want {
				t.Errorf("Visible = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContext_EndFrame(t *testing.T) {
	ctx := NewContext(WithDepthBase(3))
	st := testState(ctx)
	ctx.Stroke(7, segmentContour(), stroke.Style{Radius: 1}, st)

	fs := ctx.EndFrame()
	if fs.Records == 0 || fs.StoreBlocks == 0 {
		t.Errorf("frame stats = %+v, want records and store blocks", fs)
	}
	if fs.Pool.Live != 0 || fs.Pool.Generation != 1 {
		t.Errorf("pool stats = %+v, want nothing live in generation 1", fs.Pool)
	}
	if fs.CacheLen != 1 {
		t.Errorf("cache len = %d, want 1", fs.CacheLen)
	}
	if ctx.Z() != 3 || ctx.Store().Blocks() != 0 {
		t.Errorf("after EndFrame z = %d, blocks = %d, want 3 and 0", ctx.Z(), ctx.Store().Blocks())
	}
	if st.Clip.Valid() {
		t.Error("frame handle still valid after EndFrame")
	}

	// Retained handles survive the frame.
	keep := ctx.Acquire(pool.IdentityBrushAdjust())
	keep.Retain()
	ctx.EndFrame()
	if !keep.Valid() || keep.Refs() != 1 {
		t.Errorf("retained handle: valid=%v refs=%d", keep.Valid(), keep.Refs())
	}
}

func TestContext_NoCache(t *testing.T) {
	ctx := NewContext(WithGeometryCacheSize(0))
	st := testState(ctx)
	a := ctx.Stroke(1, segmentContour(), stroke.Style{Radius: 1}, st)
	b := ctx.Stroke(1, segmentContour(), stroke.Style{Radius: 1}, st)
	if a[0].Set == b[0].Set {
		t.Error("geometry cached with cache size 0")
	}
}
