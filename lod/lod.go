// Package lod chooses how many line segments approximate a circular arc
// within a flatness tolerance.
package lod

import "math"

const (
	// MinSegments is the smallest count ever returned.
	MinSegments = 3

	// MaxSegments is the largest count ever returned. Angles needing more
	// saturate here.
	MaxSegments = math.MaxInt32

	// MinTolerance is the floor applied to the tolerance. Smaller values
	// would make the segment angle collapse towards zero.
	MinTolerance = 1e-6

	// MaxTolerance is the largest useful relative tolerance: the sagitta of
	// a half circle on the unit circle.
	MaxTolerance = 1.0
)

// Segments returns the number of segments needed to approximate an arc of
// the given signed angle (radians, any magnitude) on the unit circle so
// that no chord deviates from the arc by more than tolerance.
//
// The count is one more than the computed minimum so the tolerance is met
// strictly despite rounding, never below MinSegments and never above
// MaxSegments.
func Segments(angle, tolerance float64) int {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return MinSegments
	}
	tolerance = clampTolerance(tolerance)

	a := math.Abs(angle)
	halfTurns := math.Floor(a / math.Pi)
	residual := a - halfTurns*math.Pi

	theta := 4 * math.Asin(math.Sqrt(tolerance/2))
	n := math.Ceil((math.Pi*halfTurns+residual)/theta) + 1
	// Near MaxFloat64 the half-turn split can overflow to NaN.
	if !(n < MaxSegments) {
		return MaxSegments
	}
	return max(int(n), MinSegments)
}

// SegmentsForRadius is Segments for an arc of the given radius, with
// tolerance measured in the same units as radius.
func SegmentsForRadius(angle, radius, tolerance float64) int {
	if !(radius > 0) {
		return MinSegments
	}
	return Segments(angle, tolerance/radius)
}

// SegmentAngle returns the largest arc angle a single segment may span on
// the unit circle for the given tolerance.
func SegmentAngle(tolerance float64) float64 {
	return 4 * math.Asin(math.Sqrt(clampTolerance(tolerance)/2))
}

func clampTolerance(tol float64) float64 {
	if !(tol > MinTolerance) {
		return MinTolerance
	}
	return min(tol, MaxTolerance)
}
