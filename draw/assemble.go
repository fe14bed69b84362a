// Package draw turns chunked geometry and pooled state into draw records.
//
// Every record carries a [BatchKey]; consecutive records with equal keys
// may be merged by the backend into one GPU draw. The assembler itself
// never merges.
package draw

import (
	"github.com/gogpu/drawpack/chunk"
	"github.com/gogpu/drawpack/pool"
	"github.com/gogpu/drawpack/vertex"
)

// State is everything a draw references besides its geometry.
type State struct {
	ItemShader  Shader
	BrushShader Shader
	BlendShader Shader
	Blend       BlendMode

	ItemMatrix  pool.Handle
	Clip        pool.Handle
	BrushAdjust pool.Handle
	ItemData    pool.Handle
	BrushData   pool.Handle
	BlendData   pool.Handle

	// Z is the running z of the painter when the drawable is issued.
	Z int32
}

// Record is one draw: a chunk of a Set, its header and its batch key.
type Record struct {
	Set   *chunk.Set
	Chunk chunk.Chunk

	Header         Header
	HeaderLocation uint32
	Key            BatchKey
}

// Vertices returns the vertices owned by the record's chunk.
func (r *Record) Vertices() []vertex.Encoded {
	return r.Set.ChunkVertices(r.Chunk)
}

// Indices returns the stored indices of the record's chunk. Add
// Chunk.IndexAdjust to get indices into Set.Vertices.
func (r *Record) Indices() []uint32 {
	return r.Set.ChunkIndices(r.Chunk)
}

// Assembler places draw state in a DataStore and emits records.
//
// An Assembler is not safe for concurrent use.
type Assembler struct {
	store *DataStore
}

// NewAssembler creates an Assembler writing to store.
func NewAssembler(store *DataStore) *Assembler {
	return &Assembler{store: store}
}

// Store returns the data store the assembler writes to.
func (a *Assembler) Store() *DataStore {
	return a.store
}

// Assemble emits one record per non-empty chunk among ids, in the order
// given. All records share one z base, the running z less the smallest
// depth among the drawn chunks, so the depth order the geometry builder
// assigned holds across chunks: a vertex of depth d is written at
// st.Z + d - min.
func (a *Assembler) Assemble(set *chunk.Set, ids []int, st State) []Record {
	return a.assemble(set, ids, st, nil)
}

// AssembleByChunk is Assemble with the item shader chosen per chunk.
// itemShader maps a chunk id to the shader drawing it, typically a
// sub-shader of st.ItemShader; the batch key follows the choice. A nil
// itemShader keeps st.ItemShader.
func (a *Assembler) AssembleByChunk(set *chunk.Set, ids []int, st State, itemShader func(id int) Shader) []Record {
	return a.assemble(set, ids, st, itemShader)
}

func (a *Assembler) assemble(set *chunk.Set, ids []int, st State, itemShader func(int) Shader) []Record {
	base := Header{
		ClipLocation:        a.store.PlaceHandle(st.Clip),
		ItemMatrixLocation:  a.store.PlaceHandle(st.ItemMatrix),
		BrushDataLocation:   a.store.PlaceHandle(st.BrushData),
		ItemDataLocation:    a.store.PlaceHandle(st.ItemData),
		BlendDataLocation:   a.store.PlaceHandle(st.BlendData),
		BrushAdjustLocation: a.store.PlaceHandle(st.BrushAdjust),
		ItemShader:          st.ItemShader.ID.Flat(),
		BrushShader:         st.BrushShader.ID.Flat(),
		BlendShader:         st.BlendShader.ID.Flat(),
	}
	lo, _, _ := depthBounds(set, ids)
	base.Z = st.Z - int32(lo)
	key := KeyOf(&st)

	records := make([]Record, 0, len(ids))
	for _, id := range ids {
		c := set.Chunk(id)
		if c.Empty() {
			continue
		}
		h, k := base, key
		if itemShader != nil {
			cs := st
			cs.ItemShader = itemShader(id)
			h.ItemShader = cs.ItemShader.ID.Flat()
			k = KeyOf(&cs)
		}
		records = append(records, Record{
			Set:            set,
			Chunk:          c,
			Header:         h,
			HeaderLocation: a.store.PlaceHeader(h),
			Key:            k,
		})
	}
	return records
}

// DepthSpan returns the number of z values the chunks ids of set occupy
// when assembled together, the amount by which a painter advances its
// running z after drawing them.
func DepthSpan(set *chunk.Set, ids []int) int32 {
	lo, hi, ok := depthBounds(set, ids)
	if !ok {
		return 0
	}
	return int32(hi-lo) + 1
}

// depthBounds returns the depth range covered by the non-empty chunks
// among ids. ok is false when all of them are empty.
func depthBounds(set *chunk.Set, ids []int) (lo, hi uint32, ok bool) {
	for _, id := range ids {
		c := set.Chunk(id)
		if c.Empty() {
			continue
		}
		if !ok {
			lo, hi, ok = c.Depth.Min, c.Depth.Max, true
			continue
		}
		lo = min(lo, c.Depth.Min)
		hi = max(hi, c.Depth.Max)
	}
	return lo, hi, ok
}
