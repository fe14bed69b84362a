package chunk

import (
	"slices"

	"github.com/gogpu/drawpack/stroke"
)

// Builder partitions drawables into chunk Sets. It keeps scratch buffers
// between calls; the Sets it returns are owned by the caller.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	order   []int
	remap   []uint32
	records []stroke.Vertex
	abs     []uint32
}

// NewBuilder creates a Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func resize[T any](s []T, n int) []T {
	s = slices.Grow(s[:0], n)
	return s[:n]
}
