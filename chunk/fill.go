package chunk

import (
	"github.com/gogpu/drawpack/internal/debug"
	"github.com/gogpu/drawpack/vertex"
)

// FillRule selects one of the precomputed fill-rule index arrays.
type FillRule uint8

const (
	FillOddEven FillRule = iota
	FillComplementOddEven
	FillNonzero
	FillComplementNonzero

	// NumFillRules is the number of fill rules.
	NumFillRules = iota
)

// String returns the fill rule name.
func (r FillRule) String() string {
	switch r {
	case FillOddEven:
		return "odd-even"
	case FillComplementOddEven:
		return "complement-odd-even"
	case FillNonzero:
		return "nonzero"
	case FillComplementNonzero:
		return "complement-nonzero"
	default:
		return "unknown"
	}
}

// FillRuleChunk returns the chunk id of a fill rule.
func FillRuleChunk(r FillRule) int {
	return int(r)
}

// WindingChunk returns the chunk id holding the triangles of winding
// number w. Winding 0 is the complement of the nonzero rule.
func WindingChunk(w int) int {
	if w == 0 {
		return FillRuleChunk(FillComplementNonzero)
	}
	sign := 0
	if w < 0 {
		sign, w = 1, -w
	}
	return NumFillRules + sign + 2*(w-1)
}

// FillInput is the triangulated form of a filled path as delivered by the
// path filler. All indices refer to Points.
type FillInput struct {
	Points []vertex.Float2

	// Windings lists, in ascending order, the winding numbers that have
	// triangles; WindingIndices[i] holds the triangles of Windings[i].
	Windings       []int
	WindingIndices [][]uint32

	// RuleIndices holds the triangles selected by each fill rule.
	RuleIndices [NumFillRules][]uint32
}

// Fill encodes a filled path. The set has one chunk per fill rule and
// one per winding number up to the largest magnitude present. All chunks
// share the full vertex range.
//
// Triangles with winding 0 form the complement-nonzero chunk when the
// input does not supply that rule's indices itself.
func (b *Builder) Fill(in FillInput) *Set {
	debug.Assert(len(in.Windings) == len(in.WindingIndices),
		"%d windings but %d winding index arrays", len(in.Windings), len(in.WindingIndices))
	windings := min(len(in.Windings), len(in.WindingIndices))

	n := NumFillRules
	for _, w := range in.Windings[:windings] {
		n = max(n, WindingChunk(w)+1)
	}
	s := newSet(n)
	s.Vertices = vertex.EncodeFills(nil, in.Points, 0)

	all := len(s.Vertices)
	for r := range FillRule(NumFillRules) {
		idx := in.RuleIndices[r]
		if r == FillComplementNonzero && len(idx) == 0 {
			for i, w := range in.Windings[:windings] {
				if w == 0 {
					idx = in.WindingIndices[i]
				}
			}
		}
		s.setChunk(FillRuleChunk(r), 0, all, idx)
	}
	for i, w := range in.Windings[:windings] {
		if w == 0 {
			continue
		}
		s.setChunk(WindingChunk(w), 0, all, in.WindingIndices[i])
	}
	return s
}
