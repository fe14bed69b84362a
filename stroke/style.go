package stroke

// JoinStyle specifies how consecutive edges meet.
type JoinStyle uint8

const (
	// JoinMiter extends the outer edges to a point, clipped by the shader
	// at the miter limit.
	JoinMiter JoinStyle = iota
	// JoinRound fills the corner with a circular fan.
	JoinRound
	// JoinBevel cuts the corner with a straight line.
	JoinBevel
	// JoinMiterClip clips the miter at the limit instead of falling back.
	JoinMiterClip
	// JoinMiterBevel falls back to a bevel past the miter limit.
	JoinMiterBevel
	// JoinNone emits no join geometry.
	JoinNone
)

// String returns the join style name.
func (j JoinStyle) String() string {
	switch j {
	case JoinMiter:
		return "miter"
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	case JoinMiterClip:
		return "miter-clip"
	case JoinMiterBevel:
		return "miter-bevel"
	case JoinNone:
		return "none"
	default:
		return "unknown"
	}
}

// CapStyle specifies the shape of open contour ends.
type CapStyle uint8

const (
	// CapButt ends the stroke flat at the endpoint.
	CapButt CapStyle = iota
	// CapRound adds a half disc.
	CapRound
	// CapSquare extends the stroke by the radius.
	CapSquare
)

// NumCapStyles is the number of cap styles.
const NumCapStyles = 3

// String returns the cap style name.
func (c CapStyle) String() string {
	switch c {
	case CapButt:
		return "butt"
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "unknown"
	}
}

// DefaultTolerance is the flatness tolerance used when Style.Tolerance
// is not positive.
const DefaultTolerance = 0.25

// Style defines how contours are stroked.
//
// Style is comparable and can be used as part of a cache key.
type Style struct {
	// Radius is half the stroke width.
	Radius float64
	Join   JoinStyle
	Cap    CapStyle

	// MiterLimit is passed to the shader through item data; it never
	// changes the emitted geometry. Values <= 0 mean 4.
	MiterLimit float64

	// Close closes every contour regardless of Contour.Closed.
	Close bool

	// Dashed emits round and square caps at every open contour end so the
	// caller can select the cap chunk per dash style.
	Dashed bool

	// Tolerance is the maximum chord deviation for arcs, round joins and
	// round caps, in path units.
	Tolerance float64
}

// DefaultStyle returns a 1-unit wide stroke with miter joins and butt caps.
func DefaultStyle() Style {
	return Style{
		Radius:     0.5,
		Join:       JoinMiter,
		Cap:        CapButt,
		MiterLimit: 4,
		Tolerance:  DefaultTolerance,
	}
}

func (s Style) tolerance() float64 {
	if s.Tolerance > 0 {
		return s.Tolerance
	}
	return DefaultTolerance
}

// EffectiveMiterLimit returns MiterLimit, or 4 when it is not positive.
func (s Style) EffectiveMiterLimit() float64 {
	if s.MiterLimit > 0 {
		return s.MiterLimit
	}
	return 4
}
