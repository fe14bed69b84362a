// Package clip clips convex polygons against ordered sets of half-planes.
//
// Polygons are given either in 2D local coordinates ([Point]) or in
// homogeneous clip coordinates ([Point3]). A [Plane] (a, b, c) keeps the
// half-space a·x + b·y + c·w >= 0, with w = 1 for 2D points.
package clip

import "seehuhn.de/go/geom/rect"

// Point represents a 2D point with float64 coordinates.
type Point struct {
	X, Y float64
}

// Pt creates a Point from x, y coordinates.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Lerp performs linear interpolation between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

func (p Point) distance(pl Plane) float64 {
	return pl.A*p.X + pl.B*p.Y + pl.C
}

// Point3 is a point in homogeneous clip coordinates.
type Point3 struct {
	X, Y, W float64
}

// Lerp performs linear interpolation between p and q.
func (p Point3) Lerp(q Point3, t float64) Point3 {
	return Point3{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
		W: p.W + (q.W-p.W)*t,
	}
}

func (p Point3) distance(pl Plane) float64 {
	return pl.A*p.X + pl.B*p.Y + pl.C*p.W
}

// Plane is the half-plane A·x + B·y + C·w >= 0.
type Plane struct {
	A, B, C float64
}

// Contains reports whether p lies in the kept half-space. Points on the
// boundary are inside.
func (pl Plane) Contains(p Point) bool {
	return p.distance(pl) >= 0
}

// RectPolygon returns the corners of r in counter-clockwise order
// starting at the lower-left corner.
func RectPolygon(r rect.Rect) []Point {
	return []Point{
		{X: r.LLx, Y: r.LLy},
		{X: r.URx, Y: r.LLy},
		{X: r.URx, Y: r.URy},
		{X: r.LLx, Y: r.URy},
	}
}

// RectPlanes returns the four half-planes whose intersection is r.
func RectPlanes(r rect.Rect) [4]Plane {
	return [4]Plane{
		{A: 1, B: 0, C: -r.LLx},
		{A: -1, B: 0, C: r.URx},
		{A: 0, B: 1, C: -r.LLy},
		{A: 0, B: -1, C: r.URy},
	}
}
