package pool

import (
	"math"

	"seehuhn.de/go/geom/matrix"
)

// Kind identifies a sub-pool. Values are deduplicated only within a kind.
type Kind uint32

// Built-in kinds. CustomData picks its kind at or above KindCustom.
const (
	KindItemMatrix Kind = iota
	KindClipEquations
	KindBrushAdjust

	// KindCustom is the first kind available to CustomData.
	KindCustom
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindItemMatrix:
		return "item-matrix"
	case KindClipEquations:
		return "clip-equations"
	case KindBrushAdjust:
		return "brush-adjust"
	default:
		return "custom"
	}
}

// BlockWords is the number of 32-bit words in one data block.
const BlockWords = 4

// Source is a value that can be packed into the pool.
type Source interface {
	Kind() Kind
	// DataSize returns the packed size in blocks of BlockWords words.
	DataSize() int
	// Pack writes the value into dst, which has exactly
	// DataSize()*BlockWords zeroed words.
	Pack(dst []uint32)
}

// resourceHolder is implemented by sources that keep external objects
// alive for as long as their block exists.
type resourceHolder interface {
	Resources() []any
}

// BlocksNeeded returns the number of blocks holding n words.
func BlocksNeeded(n int) int {
	return (n + BlockWords - 1) / BlockWords
}

func f32(v float32) uint32 { return math.Float32bits(v) }

// ItemMatrix is a 3x3 transformation plus the translation in normalized
// device coordinates.
type ItemMatrix struct {
	M                   [3][3]float32
	NormalizedTranslate [2]float32
}

// IdentityItemMatrix returns the identity item matrix.
func IdentityItemMatrix() ItemMatrix {
	return ItemMatrix{M: [3][3]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}}
}

// ItemMatrixFrom converts an affine matrix. The translation lands in the
// third column.
func ItemMatrixFrom(m matrix.Matrix) ItemMatrix {
	return ItemMatrix{M: [3][3]float32{
		{float32(m[0]), float32(m[2]), float32(m[4])},
		{float32(m[1]), float32(m[3]), float32(m[5])},
		{0, 0, 1},
	}}
}

func (ItemMatrix) Kind() Kind    { return KindItemMatrix }
func (ItemMatrix) DataSize() int { return BlocksNeeded(11) }

// Pack writes the matrix row-major followed by the normalized translate.
func (m ItemMatrix) Pack(dst []uint32) {
	for r := range 3 {
		for c := range 3 {
			dst[3*r+c] = f32(m.M[r][c])
		}
	}
	dst[9] = f32(m.NormalizedTranslate[0])
	dst[10] = f32(m.NormalizedTranslate[1])
}

// ClipEquation is the half-plane A·x + B·y + C·w >= 0 in clip coordinates.
type ClipEquation struct {
	A, B, C float32
}

// ClipEquations are the four clip planes of a draw.
type ClipEquations struct {
	Planes [4]ClipEquation
}

// NoClip returns equations that keep everything.
func NoClip() ClipEquations {
	var c ClipEquations
	for i := range c.Planes {
		c.Planes[i] = ClipEquation{C: 1}
	}
	return c
}

func (ClipEquations) Kind() Kind    { return KindClipEquations }
func (ClipEquations) DataSize() int { return BlocksNeeded(12) }

func (c ClipEquations) Pack(dst []uint32) {
	for i, p := range c.Planes {
		dst[3*i] = f32(p.A)
		dst[3*i+1] = f32(p.B)
		dst[3*i+2] = f32(p.C)
	}
}

// BrushAdjust maps brush coordinates as out = Shear*in + Translate,
// component-wise.
type BrushAdjust struct {
	Shear     [2]float32
	Translate [2]float32
}

// IdentityBrushAdjust returns the adjustment that changes nothing.
func IdentityBrushAdjust() BrushAdjust {
	return BrushAdjust{Shear: [2]float32{1, 1}}
}

func (BrushAdjust) Kind() Kind    { return KindBrushAdjust }
func (BrushAdjust) DataSize() int { return 1 }

func (b BrushAdjust) Pack(dst []uint32) {
	dst[0] = f32(b.Shear[0])
	dst[1] = f32(b.Shear[1])
	dst[2] = f32(b.Translate[0])
	dst[3] = f32(b.Translate[1])
}

// CustomData is opaque shader data. ID selects the sub-pool, so each
// shader data type deduplicates separately; it must be at least
// KindCustom.
//
// Resources are kept alive with the block but do not take part in
// deduplication: two values with equal Words share the block created
// first.
type CustomData struct {
	ID    Kind
	Words []uint32
	Res   []any
}

func (d CustomData) Kind() Kind       { return d.ID }
func (d CustomData) DataSize() int    { return BlocksNeeded(len(d.Words)) }
func (d CustomData) Pack(dst []uint32) { copy(dst, d.Words) }
func (d CustomData) Resources() []any { return d.Res }
