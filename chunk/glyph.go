package chunk

import "github.com/gogpu/drawpack/vertex"

// GlyphChunk returns the chunk id of a glyph render type.
func GlyphChunk(t vertex.GlyphRenderType) int {
	return int(t)
}

// Glyphs encodes glyph quads with one chunk per render type.
func (b *Builder) Glyphs(glyphs []vertex.Glyph) *Set {
	s := newSet(vertex.NumGlyphRenderTypes)
	s.Vertices = make([]vertex.Encoded, 0, 4*len(glyphs))

	for t := range vertex.GlyphRenderType(vertex.NumGlyphRenderTypes) {
		vFirst := len(s.Vertices)
		b.abs = b.abs[:0]
		for _, g := range glyphs {
			if g.Render != t {
				continue
			}
			base := uint32(len(s.Vertices))
			s.Vertices = vertex.EncodeGlyph(s.Vertices, g, 0)
			for _, i := range vertex.GlyphQuadIndices {
				b.abs = append(b.abs, base+i)
			}
		}
		s.setChunk(GlyphChunk(t), vFirst, len(s.Vertices)-vFirst, b.abs)
	}
	return s
}
