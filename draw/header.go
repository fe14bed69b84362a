package draw

import "github.com/gogpu/drawpack/pool"

// NoData is the location of data that a draw does not reference.
const NoData = ^uint32(0)

// Header word offsets. The header is read by the vertex shader at the
// header location of each vertex's draw.
const (
	HeaderClipLocation = iota
	HeaderItemMatrixLocation
	HeaderBrushDataLocation
	HeaderItemDataLocation
	HeaderBlendDataLocation
	HeaderItemShader
	HeaderBrushShader
	HeaderBlendShader
	HeaderZ
	HeaderBrushAdjustLocation

	HeaderWords = iota
)

// Header is the per-draw record placed in the data store. Locations are
// in 4-word blocks.
type Header struct {
	ClipLocation        uint32
	ItemMatrixLocation  uint32
	BrushDataLocation   uint32
	ItemDataLocation    uint32
	BlendDataLocation   uint32
	ItemShader          uint32
	BrushShader         uint32
	BlendShader         uint32
	Z                   int32
	BrushAdjustLocation uint32
}

// HeaderBlocks is the header size in blocks.
var HeaderBlocks = pool.BlocksNeeded(HeaderWords)

// Pack writes the header words.
func (h Header) Pack(dst []uint32) {
	dst[HeaderClipLocation] = h.ClipLocation
	dst[HeaderItemMatrixLocation] = h.ItemMatrixLocation
	dst[HeaderBrushDataLocation] = h.BrushDataLocation
	dst[HeaderItemDataLocation] = h.ItemDataLocation
	dst[HeaderBlendDataLocation] = h.BlendDataLocation
	dst[HeaderItemShader] = h.ItemShader
	dst[HeaderBrushShader] = h.BrushShader
	dst[HeaderBlendShader] = h.BlendShader
	dst[HeaderZ] = uint32(h.Z)
	dst[HeaderBrushAdjustLocation] = h.BrushAdjustLocation
}
