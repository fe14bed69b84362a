package stroke

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// SegmentKind distinguishes straight segments from circular arcs.
type SegmentKind uint8

const (
	// SegmentLine is a straight segment.
	SegmentLine SegmentKind = iota
	// SegmentArc is a circular arc.
	SegmentArc
)

// Segment is one straight or circular-arc piece of a contour.
//
// StartTangent and EndTangent are unit vectors in the direction of travel.
// For arcs, Center, Radius, StartAngle and Sweep describe the circle; a
// positive Sweep runs counter-clockwise.
type Segment struct {
	Kind         SegmentKind
	Start, End   vec.Vec2
	StartTangent vec.Vec2
	EndTangent   vec.Vec2

	Center     vec.Vec2
	Radius     float64
	StartAngle float64
	Sweep      float64
}

// Line returns the straight segment from p0 to p1.
func Line(p0, p1 vec.Vec2) Segment {
	t := normalize(p1.Sub(p0))
	return Segment{
		Kind:         SegmentLine,
		Start:        p0,
		End:          p1,
		StartTangent: t,
		EndTangent:   t,
	}
}

// Arc returns the arc of the circle (center, radius) that starts at
// startAngle and sweeps by sweep radians.
func Arc(center vec.Vec2, radius, startAngle, sweep float64) Segment {
	s := Segment{
		Kind:       SegmentArc,
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		Sweep:      sweep,
	}
	s.Start = s.pointAt(startAngle)
	s.End = s.pointAt(startAngle + sweep)
	s.StartTangent = s.tangentAt(startAngle)
	s.EndTangent = s.tangentAt(startAngle + sweep)
	return s
}

// Length returns the arc length of s.
func (s Segment) Length() float64 {
	if s.Kind == SegmentArc {
		return math.Abs(s.Sweep) * s.Radius
	}
	return s.End.Sub(s.Start).Length()
}

func (s Segment) degenerate() bool {
	l := s.Length()
	return !(l > degenerateLength)
}

func (s Segment) pointAt(angle float64) vec.Vec2 {
	sin, cos := math.Sincos(angle)
	return vec.Vec2{X: s.Center.X + s.Radius*cos, Y: s.Center.Y + s.Radius*sin}
}

func (s Segment) tangentAt(angle float64) vec.Vec2 {
	sin, cos := math.Sincos(angle)
	if s.Sweep < 0 {
		return vec.Vec2{X: sin, Y: -cos}
	}
	return vec.Vec2{X: -sin, Y: cos}
}

// Contour is an ordered run of segments. A closed contour joins its last
// segment back to its first and has no caps; if the last segment does not
// end where the first starts, a closing line is added.
type Contour struct {
	Segments []Segment
	Closed   bool
}
