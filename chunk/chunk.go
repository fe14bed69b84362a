// Package chunk partitions encoded geometry into independently drawable
// chunks.
//
// A [Set] holds one shared vertex array and one shared index array. Each
// [Chunk] names a contiguous vertex range (the attribute chunk), a
// contiguous index range (the index chunk), an index adjustment and the
// depth range of the vertices its triangles use. Chunk ids are dense and
// every id below NumChunks is valid, so "the chunk for winding 3" can be
// requested even when no triangle has that winding.
package chunk

import (
	"math"

	"github.com/gogpu/drawpack/internal/debug"
	"github.com/gogpu/drawpack/vertex"
)

// DepthRange is an inclusive range of vertex depths.
type DepthRange struct {
	Min, Max uint32
}

// Chunk is one drawable subset of a Set.
type Chunk struct {
	ID int

	VertexFirst, VertexCount int
	IndexFirst, IndexCount   int

	// IndexAdjust is added to every stored index of the chunk to obtain
	// the index into Set.Vertices.
	IndexAdjust int

	// Depth is the exact range of depths over the vertices referenced by
	// the chunk's indices; [0, 0] for an empty chunk.
	Depth DepthRange
}

// Empty reports whether the chunk draws nothing.
func (c Chunk) Empty() bool {
	return c.IndexCount == 0
}

// Set is the chunked form of one drawable.
type Set struct {
	Vertices []vertex.Encoded
	Indices  []uint32

	chunks []Chunk
}

func newSet(numChunks int) *Set {
	s := &Set{chunks: make([]Chunk, numChunks)}
	for i := range s.chunks {
		s.chunks[i].ID = i
	}
	return s
}

// NumChunks returns the number of chunk ids in s.
func (s *Set) NumChunks() int {
	return len(s.chunks)
}

// Chunk returns the chunk with the given id. Ids without geometry,
// including ids at or above NumChunks, yield an empty chunk.
func (s *Set) Chunk(id int) Chunk {
	if id < 0 || id >= len(s.chunks) {
		return Chunk{ID: id}
	}
	return s.chunks[id]
}

// Chunks returns all chunks of s in id order. The slice must not be
// modified.
func (s *Set) Chunks() []Chunk {
	return s.chunks
}

// ChunkVertices returns the vertices owned by c.
func (s *Set) ChunkVertices(c Chunk) []vertex.Encoded {
	return s.Vertices[c.VertexFirst : c.VertexFirst+c.VertexCount]
}

// ChunkIndices returns the stored (adjusted) indices of c.
func (s *Set) ChunkIndices(c Chunk) []uint32 {
	return s.Indices[c.IndexFirst : c.IndexFirst+c.IndexCount]
}

// setChunk records chunk id as owning vertices [vFirst, vFirst+vCount)
// and the triangles abs, given as indices into s.Vertices.
func (s *Set) setChunk(id, vFirst, vCount int, abs []uint32) {
	c := Chunk{ID: id, VertexFirst: vFirst, VertexCount: vCount}
	if len(abs) == 0 {
		s.chunks[id] = Chunk{ID: id}
		return
	}
	debug.Assert(len(abs)%3 == 0, "chunk %d has %d indices, not a multiple of 3", id, len(abs))

	lo := uint32(math.MaxUint32)
	d := DepthRange{Min: math.MaxUint32}
	for _, i := range abs {
		debug.Assert(int(i) < len(s.Vertices), "chunk %d index %d out of range [0, %d)", id, i, len(s.Vertices))
		lo = min(lo, i)
		depth := vertex.Depth(s.Vertices[i])
		d.Min = min(d.Min, depth)
		d.Max = max(d.Max, depth)
	}

	c.IndexFirst = len(s.Indices)
	c.IndexCount = len(abs)
	c.IndexAdjust = int(lo)
	c.Depth = d
	for _, i := range abs {
		s.Indices = append(s.Indices, i-lo)
	}
	s.chunks[id] = c
}
