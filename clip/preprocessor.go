package clip

// Classification is the coarse relation between a polygon and a plane set.
type Classification uint8

const (
	// Partial means the polygon crosses at least one plane, or the test
	// could not prove either of the other cases.
	Partial Classification = iota
	// Inside means every vertex lies in every half-space.
	Inside
	// Outside means every vertex lies outside one of the planes.
	Outside
)

// String returns the classification name.
func (c Classification) String() string {
	switch c {
	case Inside:
		return "Inside"
	case Outside:
		return "Outside"
	default:
		return "Partial"
	}
}

// Preprocessor clips convex polygons one plane at a time. It keeps two
// pairs of scratch buffers that are swapped between passes, so steady-state
// clipping does not allocate.
//
// Slices returned by ClipPolygon and ClipPolygon3 alias the scratch buffers
// and stay valid only until the next call on the same Preprocessor.
//
// A Preprocessor is not safe for concurrent use.
type Preprocessor struct {
	scratch2 [2][]Point
	scratch3 [2][]Point3
}

// NewPreprocessor creates a Preprocessor.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{}
}

// ClipPolygon clips the convex polygon poly against planes in order.
//
// When every vertex is inside every plane, poly itself is returned with
// unclipped set to true. A polygon reduced below 3 vertices by any pass
// yields an empty result and the remaining planes are skipped.
func (p *Preprocessor) ClipPolygon(planes []Plane, poly []Point) (out []Point, unclipped bool) {
	return clipPolygon(planes, poly, &p.scratch2)
}

// ClipPolygon3 is ClipPolygon for polygons in homogeneous coordinates.
func (p *Preprocessor) ClipPolygon3(planes []Plane, poly []Point3) (out []Point3, unclipped bool) {
	return clipPolygon(planes, poly, &p.scratch3)
}

// Classify reports whether poly is fully inside planes, provably outside
// them, or neither. It does not produce geometry.
func Classify(planes []Plane, poly []Point) Classification {
	if len(poly) == 0 {
		return Outside
	}
	inside := true
	for _, pl := range planes {
		in, out := 0, 0
		for _, v := range poly {
			if v.distance(pl) >= 0 {
				in++
			} else {
				out++
			}
		}
		if in == 0 {
			return Outside
		}
		if out > 0 {
			inside = false
		}
	}
	if inside {
		return Inside
	}
	return Partial
}

type vertex[V any] interface {
	distance(Plane) float64
	Lerp(V, float64) V
}

func allInside[V vertex[V]](planes []Plane, poly []V) bool {
	for _, pl := range planes {
		for _, v := range poly {
			if v.distance(pl) < 0 {
				return false
			}
		}
	}
	return true
}

func clipPolygon[V vertex[V]](planes []Plane, poly []V, scratch *[2][]V) ([]V, bool) {
	if len(poly) < 3 {
		return poly[:0], false
	}
	if allInside(planes, poly) {
		return poly, true
	}

	src := poly
	which := 0
	for _, pl := range planes {
		dst := scratch[which][:0]

		prev := src[len(src)-1]
		dPrev := prev.distance(pl)
		for _, cur := range src {
			dCur := cur.distance(pl)
			if (dPrev < 0 && dCur > 0) || (dPrev > 0 && dCur < 0) {
				dst = append(dst, prev.Lerp(cur, dPrev/(dPrev-dCur)))
			}
			if dCur >= 0 {
				dst = append(dst, cur)
			}
			prev, dPrev = cur, dCur
		}

		scratch[which] = dst
		if len(dst) < 3 {
			return dst[:0], false
		}
		src = dst
		which ^= 1
	}
	return src, false
}
