// Package upload copies assembled draws into GPU buffers.
//
// A [Frame] concatenates the geometry of every chunk set referenced by a
// list of draw records into one vertex and one index array, and turns
// each record into a [DrawCall] against those arrays. A [Writer] creates
// the GPU buffers for a Frame through wgpu's HAL.
package upload

import (
	"honnef.co/go/safeish"

	"github.com/gogpu/drawpack/chunk"
	"github.com/gogpu/drawpack/draw"
	"github.com/gogpu/drawpack/vertex"
)

// DrawCall is one indexed draw against a Frame's buffers.
type DrawCall struct {
	FirstIndex uint32
	IndexCount uint32
	// BaseVertex is added to every index, as in an indexed draw with a
	// base vertex.
	BaseVertex int32

	HeaderLocation uint32
	Key            draw.BatchKey
}

// Frame is the merged geometry and data of a list of draw records.
type Frame struct {
	Vertices []vertex.Encoded
	Indices  []uint32
	Data     []uint32
	Calls    []DrawCall

	sets map[*chunk.Set]setBase
}

type setBase struct {
	vertex, index uint32
}

// NewFrame creates an empty frame.
func NewFrame() *Frame {
	return &Frame{sets: make(map[*chunk.Set]setBase)}
}

// Add appends records. Each chunk set is copied once, however many
// records reference it.
func (f *Frame) Add(records []draw.Record) {
	for i := range records {
		r := &records[i]
		base, ok := f.sets[r.Set]
		if !ok {
			base = setBase{vertex: uint32(len(f.Vertices)), index: uint32(len(f.Indices))}
			f.Vertices = append(f.Vertices, r.Set.Vertices...)
			f.Indices = append(f.Indices, r.Set.Indices...)
			f.sets[r.Set] = base
		}
		f.Calls = append(f.Calls, DrawCall{
			FirstIndex:     base.index + uint32(r.Chunk.IndexFirst),
			IndexCount:     uint32(r.Chunk.IndexCount),
			BaseVertex:     int32(base.vertex) + int32(r.Chunk.IndexAdjust),
			HeaderLocation: r.HeaderLocation,
			Key:            r.Key,
		})
	}
}

// SetData sets the data store contents the frame's headers refer to.
func (f *Frame) SetData(store *draw.DataStore) {
	f.Data = append(f.Data[:0], store.Words()...)
}

// Batches groups consecutive calls with equal keys and returns the
// number of groups, the number of pipeline changes a backend needs.
func (f *Frame) Batches() int {
	n := 0
	for i, c := range f.Calls {
		if i == 0 || c.Key != f.Calls[i-1].Key {
			n++
		}
	}
	return n
}

// Reset empties the frame, keeping its capacity.
func (f *Frame) Reset() {
	f.Vertices = f.Vertices[:0]
	f.Indices = f.Indices[:0]
	f.Data = f.Data[:0]
	f.Calls = f.Calls[:0]
	clear(f.sets)
}

// VertexBytes returns the vertex array in host byte order.
func (f *Frame) VertexBytes() []byte { return vertex.Bytes(f.Vertices) }

// IndexBytes returns the uint32 index array in host byte order.
func (f *Frame) IndexBytes() []byte { return safeish.SliceCast[[]byte](f.Indices) }

// DataBytes returns the data store in host byte order.
func (f *Frame) DataBytes() []byte { return safeish.SliceCast[[]byte](f.Data) }
