package stroke

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// degenerateLength is the length below which a segment is ignored.
const degenerateLength = 1e-9

// perp rotates v by 90 degrees counter-clockwise.
func perp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.Y, Y: v.X}
}

// jPerp is the operator J(x, y) = (y, -x).
func jPerp(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: v.Y, Y: -v.X}
}

func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}

func neg(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: -v.X, Y: -v.Y}
}

func normalize(v vec.Vec2) vec.Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return vec.Vec2{}
	}
	return v.Mul(1 / l)
}

func rotate(v vec.Vec2, angle float64) vec.Vec2 {
	s, c := math.Sincos(angle)
	return vec.Vec2{X: v.X*c - v.Y*s, Y: v.X*s + v.Y*c}
}

// Float2 is a pair of float32 values as stored in a vertex.
type Float2 struct {
	X, Y float32
}

func f2(v vec.Vec2) Float2 {
	return Float2{X: float32(v.X), Y: float32(v.Y)}
}
