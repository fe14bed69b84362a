// Package pool deduplicates and stores packed shader values.
//
// Values are packed into blocks of 4 words. Identical values of the same
// [Kind] share one [Block]; a [Handle] keeps it alive through an explicit
// reference count. Blocks whose count drops to zero are not freed at once:
// they stay findable until the next [Pool.Reset], so a value released and
// re-acquired within one frame keeps its block.
package pool

import (
	"errors"
	"fmt"

	"honnef.co/go/safeish"

	"github.com/gogpu/drawpack/internal/debug"
)

// SlabSize is the number of elements in one arena slab.
const SlabSize = 1024

// ErrArenaExhausted is the panic value (wrapped) raised when a kind
// needs more slabs than WithMaxSlabs allows.
var ErrArenaExhausted = errors.New("pool: arena exhausted")

// Block is an immutable packed value. len(Words) is a multiple of 4.
type Block struct {
	Words     []uint32
	Resources []any
}

// Blocks returns the size of b in 4-word blocks.
func (b *Block) Blocks() int {
	return len(b.Words) / BlockWords
}

type element struct {
	block    Block
	key      string
	sub      *subPool
	refs     int32
	serial   uint32
	gen      uint64
	live     bool
	released bool
	listed   bool
}

// Handle references a pooled block. The zero Handle is invalid.
//
// A Handle is a value; copying it does not change the reference count.
type Handle struct {
	e      *element
	serial uint32
}

// Valid reports whether h still refers to the element it was created for.
func (h Handle) Valid() bool {
	return h.e != nil && h.e.live && h.e.serial == h.serial
}

// Block returns the pooled block, or nil for an invalid handle.
func (h Handle) Block() *Block {
	if !h.Valid() {
		return nil
	}
	return &h.e.block
}

// Kind returns the kind of the pooled value.
func (h Handle) Kind() Kind {
	if !h.Valid() {
		return 0
	}
	return h.e.sub.kind
}

// Generation returns the pool generation in which the block was created.
func (h Handle) Generation() uint64 {
	if !h.Valid() {
		return 0
	}
	return h.e.gen
}

// Refs returns the current reference count.
func (h Handle) Refs() int {
	if !h.Valid() {
		return 0
	}
	return int(h.e.refs)
}

// Retain increments the reference count.
func (h Handle) Retain() {
	debug.Assert(h.Valid(), "retain of stale handle")
	if !h.Valid() {
		return
	}
	if h.e.refs == 0 {
		h.e.sub.revive(h.e)
	}
	h.e.refs++
}

// Release decrements the reference count. At zero the block moves to its
// kind's released list and is reclaimed by the next Reset.
func (h Handle) Release() {
	debug.Assert(h.Valid() && h.e.refs > 0, "release of unreferenced handle")
	if !h.Valid() || h.e.refs <= 0 {
		return
	}
	h.e.refs--
	if h.e.refs == 0 {
		h.e.sub.release(h.e)
	}
}

// subPool holds the elements of one kind.
type subPool struct {
	kind     Kind
	slabs    []*[SlabSize]element
	free     []*element
	index    map[string]*element
	released []*element
	live     int
}

func (s *subPool) revive(e *element) {
	e.released = false
	s.live++
}

func (s *subPool) release(e *element) {
	e.released = true
	s.live--
	if !e.listed {
		e.listed = true
		s.released = append(s.released, e)
	}
}

// Pool is a set of per-kind sub-pools.
//
// A Pool is not safe for concurrent use.
type Pool struct {
	opts    options
	subs    map[Kind]*subPool
	gen     uint64
	scratch []uint32
}

// New creates a Pool.
func New(opts ...Option) *Pool {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pool{opts: o, subs: make(map[Kind]*subPool)}
}

// Generation returns the number of Resets so far.
func (p *Pool) Generation() uint64 {
	return p.gen
}

// Acquire returns a handle to the block holding src, creating it if no
// equal value of the same kind exists. The returned handle holds one
// reference.
func (p *Pool) Acquire(src Source) Handle {
	if d, ok := src.(CustomData); ok {
		debug.Assert(d.ID >= KindCustom, "custom data kind %d below KindCustom", d.ID)
	}
	n := src.DataSize() * BlockWords
	if cap(p.scratch) < n {
		p.scratch = make([]uint32, n)
	}
	words := p.scratch[:n]
	clear(words)
	src.Pack(words)

	s := p.sub(src.Kind())
	// The conversion copies, so the key does not alias scratch.
	key := string(safeish.SliceCast[[]byte](words))
	if e, ok := s.index[key]; ok {
		h := Handle{e: e, serial: e.serial}
		h.Retain()
		return h
	}

	e := p.alloc(s)
	e.block = Block{Words: append([]uint32(nil), words...)}
	if rh, ok := src.(resourceHolder); ok {
		e.block.Resources = rh.Resources()
	}
	e.key = key
	e.refs = 1
	e.gen = p.gen
	e.live = true
	e.released = false
	s.index[key] = e
	s.live++
	return Handle{e: e, serial: e.serial}
}

func (p *Pool) sub(k Kind) *subPool {
	s, ok := p.subs[k]
	if !ok {
		s = &subPool{kind: k, index: make(map[string]*element)}
		p.subs[k] = s
	}
	return s
}

func (p *Pool) alloc(s *subPool) *element {
	if len(s.free) == 0 {
		if p.opts.maxSlabs > 0 && len(s.slabs) >= p.opts.maxSlabs {
			panic(fmt.Errorf("%w: kind %v uses %d slabs", ErrArenaExhausted, s.kind, len(s.slabs)))
		}
		slab := new([SlabSize]element)
		s.slabs = append(s.slabs, slab)
		for i := SlabSize - 1; i >= 0; i-- {
			slab[i].sub = s
			s.free = append(s.free, &slab[i])
		}
		slogger().Debug("pool: slab added",
			"kind", s.kind, "slabs", len(s.slabs))
	}
	e := s.free[len(s.free)-1]
	s.free = s.free[:len(s.free)-1]
	e.serial++
	return e
}

// Reset starts a new generation. Every element whose count is zero is
// reclaimed and no longer found by Acquire; referenced elements are
// untouched.
func (p *Pool) Reset() {
	reclaimed := 0
	for _, s := range p.subs {
		for _, e := range s.released {
			e.listed = false
			if !e.released {
				// Revived after release.
				continue
			}
			delete(s.index, e.key)
			sub, serial := e.sub, e.serial
			*e = element{sub: sub, serial: serial}
			s.free = append(s.free, e)
			reclaimed++
		}
		clear(s.released)
		s.released = s.released[:0]
	}
	p.gen++
	slogger().Debug("pool: reset",
		"generation", p.gen, "reclaimed", reclaimed)
}

// Stats describes pool occupancy.
type Stats struct {
	Live       int
	Released   int
	Slabs      int
	Generation uint64
}

// Stats returns the current occupancy summed over all kinds.
func (p *Pool) Stats() Stats {
	st := Stats{Generation: p.gen}
	for _, s := range p.subs {
		st.Live += s.live
		st.Slabs += len(s.slabs)
		for _, e := range s.released {
			if e.released {
				st.Released++
			}
		}
	}
	return st
}
