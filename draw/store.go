package draw

import (
	"honnef.co/go/safeish"

	"github.com/gogpu/drawpack/pool"
)

// DataStore is the generic data store shared by all draws of a frame.
// Blocks are appended at 4-word granularity and every location it
// returns is in blocks, not bytes or words.
//
// A pooled block placed twice is stored once: the second Place returns
// the first location.
type DataStore struct {
	words  []uint32
	placed map[*pool.Block]uint32
}

// NewDataStore creates an empty store.
func NewDataStore() *DataStore {
	return &DataStore{placed: make(map[*pool.Block]uint32)}
}

// Place stores b and returns its location. A nil block, or one without
// data, has location NoData.
func (s *DataStore) Place(b *pool.Block) uint32 {
	if b == nil || len(b.Words) == 0 {
		return NoData
	}
	if loc, ok := s.placed[b]; ok {
		return loc
	}
	loc := s.Blocks()
	s.words = append(s.words, b.Words...)
	s.placed[b] = loc
	return loc
}

// PlaceHandle stores the block behind h. Invalid handles have location
// NoData.
func (s *DataStore) PlaceHandle(h pool.Handle) uint32 {
	return s.Place(h.Block())
}

// PlaceHeader packs h as a new block and returns its location. Headers
// are never shared.
func (s *DataStore) PlaceHeader(h Header) uint32 {
	loc := s.Blocks()
	n := len(s.words)
	s.words = append(s.words, make([]uint32, HeaderBlocks*pool.BlockWords)...)
	h.Pack(s.words[n:])
	return loc
}

// Blocks returns the number of blocks stored.
func (s *DataStore) Blocks() uint32 {
	return uint32(len(s.words) / pool.BlockWords)
}

// Words returns the store contents. The slice is valid until the next
// Place or Reset.
func (s *DataStore) Words() []uint32 {
	return s.words
}

// Bytes returns the store contents in host byte order, sharing memory
// with Words.
func (s *DataStore) Bytes() []byte {
	return safeish.SliceCast[[]byte](s.words)
}

// Reset empties the store, keeping its capacity.
func (s *DataStore) Reset() {
	s.words = s.words[:0]
	clear(s.placed)
}
