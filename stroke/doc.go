// Package stroke turns contours made of line and circular-arc segments
// into per-vertex stroke records for a GPU stroking shader.
//
// The builder does not offset geometry itself. Every vertex keeps its
// position on the path and carries a unit offset direction; the shader
// displaces boundary vertices by the stroke radius. This keeps the
// geometry valid for any radius and lets it be retained across frames.
//
// # Output
//
// Build produces a [Geometry]: a shared vertex array, absolute triangle
// indices, and a list of [Primitive] values (one per edge, join or cap).
// Each primitive owns a contiguous vertex range. Square caps additionally
// index the terminal vertex pair of the edge they close.
//
// # Depth
//
// Every edge and join gets the next value of a running depth counter, so
// primitives emitted later carry strictly higher depth than those before
// them. Caps reuse the depth of the edge they terminate, which keeps the
// triangles they share with that edge flat in depth.
//
// # Joins
//
//   - JoinMiter, JoinMiterBevel: 4 vertices, miter distance ‖n0+n1‖/(1+n0·n1)
//   - JoinMiterClip: 5 vertices, distance √(1+r²) with r = (n0·n1−1)/det(J·n1, n0)
//   - JoinBevel: an outer and an inner triangle
//   - JoinRound: a fan subdivided with package lod
//
// # Usage
//
//	b := stroke.NewBuilder()
//	g := b.Build([]stroke.Contour{{Segments: []stroke.Segment{
//	    stroke.Line(vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}),
//	}}}, stroke.Style{Radius: 1, Cap: stroke.CapSquare})
package stroke
