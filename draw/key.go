package draw

import (
	"encoding/binary"
	"hash"
	"hash/fnv"
)

// BatchKey identifies draws that a backend may merge into one GPU draw
// call. It is comparable: equal keys mean batch-compatible draws, and
// distinct shader, brush or blend combinations never compare equal.
type BatchKey struct {
	ItemShader  uint32
	ItemGroup   uint32
	BrushShader uint32
	BrushGroup  uint32
	BlendShader uint32
	Blend       BlendMode
}

// KeyOf returns the batch key of a draw state.
func KeyOf(st *State) BatchKey {
	return BatchKey{
		ItemShader:  st.ItemShader.ID.Flat(),
		ItemGroup:   st.ItemShader.Group,
		BrushShader: st.BrushShader.ID.Flat(),
		BrushGroup:  st.BrushShader.Group,
		BlendShader: st.BlendShader.ID.Flat(),
		Blend:       st.Blend,
	}
}

// Hash computes an FNV-1a hash over every field of k. Use it for
// bucketing only; compare keys with ==.
func (k BatchKey) Hash() uint64 {
	h := fnv.New64a()
	hashWriteUint32(h, k.ItemShader)
	hashWriteUint32(h, k.ItemGroup)
	hashWriteUint32(h, k.BrushShader)
	hashWriteUint32(h, k.BrushGroup)
	hashWriteUint32(h, k.BlendShader)
	if k.Blend.Enabled {
		hashWriteUint32(h, 1)
		hashWriteUint32(h, uint32(k.Blend.Color.SrcFactor))
		hashWriteUint32(h, uint32(k.Blend.Color.DstFactor))
		hashWriteUint32(h, uint32(k.Blend.Color.Operation))
		hashWriteUint32(h, uint32(k.Blend.Alpha.SrcFactor))
		hashWriteUint32(h, uint32(k.Blend.Alpha.DstFactor))
		hashWriteUint32(h, uint32(k.Blend.Alpha.Operation))
	} else {
		hashWriteUint32(h, 0)
	}
	return h.Sum64()
}

func hashWriteUint32(h hash.Hash64, v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, _ = h.Write(buf[:])
}
