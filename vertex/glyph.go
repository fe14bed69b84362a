package vertex

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/drawpack/stroke"
)

// GlyphRenderType selects how a glyph's atlas data is interpreted.
type GlyphRenderType uint8

const (
	GlyphCoverage GlyphRenderType = iota
	GlyphDistanceField
	GlyphRestrictedRays
	GlyphBandedRays

	// NumGlyphRenderTypes is the number of glyph render types.
	NumGlyphRenderTypes = iota
)

// String returns the render type name.
func (t GlyphRenderType) String() string {
	switch t {
	case GlyphCoverage:
		return "coverage"
	case GlyphDistanceField:
		return "distance-field"
	case GlyphRestrictedRays:
		return "restricted-rays"
	case GlyphBandedRays:
		return "banded-rays"
	default:
		return "unknown"
	}
}

// Glyph is one positioned, already rasterized glyph.
type Glyph struct {
	ID font.GID

	// Origin is the pen position in path coordinates.
	Origin fixed.Point26_6
	// Bounds is the glyph box relative to Origin.
	Bounds fixed.Rectangle26_6

	// Atlas is the location of the glyph data in the glyph atlas.
	Atlas  uint32
	Render GlyphRenderType
}

// Corners returns the glyph quad in path coordinates, counter-clockwise
// from the minimum corner.
func (g Glyph) Corners() [4]Float2 {
	x0 := toFloat(g.Origin.X + g.Bounds.Min.X)
	y0 := toFloat(g.Origin.Y + g.Bounds.Min.Y)
	x1 := toFloat(g.Origin.X + g.Bounds.Max.X)
	y1 := toFloat(g.Origin.Y + g.Bounds.Max.Y)
	return [4]Float2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
}

// GlyphQuadIndices are the triangle indices of a glyph quad relative to
// its first vertex.
var GlyphQuadIndices = [6]uint32{0, 1, 2, 0, 2, 3}

// EncodeGlyph appends the four corner vertices of g to dst.
//
// Group 0 holds the corner position and its texel coordinate within the
// glyph, group 1 the glyph size, glyph id and atlas location, and the
// classification word carries the render type and depth.
func EncodeGlyph(dst []Encoded, g Glyph, depth uint32) []Encoded {
	corners := g.Corners()
	w := toFloat(g.Bounds.Max.X - g.Bounds.Min.X)
	h := toFloat(g.Bounds.Max.Y - g.Bounds.Min.Y)
	tex := [4]Float2{{X: 0, Y: 0}, {X: w, Y: 0}, {X: w, Y: h}, {X: 0, Y: h}}

	// The render type is stored in the offset type field.
	class := Class{Type: stroke.OffsetType(g.Render), Depth: depth}.Pack()
	for i, c := range corners {
		dst = append(dst, Encoded{
			{f32(c.X), f32(c.Y), f32(tex[i].X), f32(tex[i].Y)},
			{f32(w), f32(h), uint32(g.ID), g.Atlas},
			{class, 0, 0, 0},
		})
	}
	return dst
}

// GlyphRender returns the render type stored in a glyph vertex.
func GlyphRender(e Encoded) GlyphRenderType {
	return GlyphRenderType(UnpackClass(e[2][0]).Type)
}

func toFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}
