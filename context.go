package drawpack

import (
	"github.com/gogpu/drawpack/chunk"
	"github.com/gogpu/drawpack/clip"
	"github.com/gogpu/drawpack/draw"
	"github.com/gogpu/drawpack/internal/cache"
	"github.com/gogpu/drawpack/pool"
	"github.com/gogpu/drawpack/stroke"
	"github.com/gogpu/drawpack/vertex"
)

// PathID identifies a path whose stroked geometry may be cached across
// frames. The zero PathID is never cached.
type PathID uint64

type geometryKey struct {
	id    PathID
	style stroke.Style
}

// Context assembles draws for one worker. It owns the packed value pool,
// the geometry builders and the data store of a frame.
//
// A Context is not safe for concurrent use. Use one Context per worker
// and merge the records afterwards.
type Context struct {
	opts options

	pool     *pool.Pool
	strokes  *stroke.Builder
	chunks   *chunk.Builder
	clipper  *clip.Preprocessor
	store    *draw.DataStore
	asm      *draw.Assembler
	geometry *cache.Cache[geometryKey, *chunk.Set]

	held    []pool.Handle
	z       int32
	records int
}

// NewContext creates a Context.
func NewContext(opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	store := draw.NewDataStore()
	c := &Context{
		opts:    o,
		pool:    pool.New(pool.WithMaxSlabs(o.maxSlabs)),
		strokes: stroke.NewBuilder(),
		chunks:  chunk.NewBuilder(),
		clipper: clip.NewPreprocessor(),
		store:   store,
		asm:     draw.NewAssembler(store),
		z:       o.depthBase,
	}
	if o.cacheSize > 0 {
		c.geometry = cache.New[geometryKey, *chunk.Set](o.cacheSize, nil)
	}
	Logger().Info("drawpack: context created",
		"tolerance", o.tolerance, "cacheSize", o.cacheSize, "maxSlabs", o.maxSlabs)
	return c
}

// Pool returns the context's value pool.
func (c *Context) Pool() *pool.Pool {
	return c.pool
}

// Store returns the data store the frame's draws reference.
func (c *Context) Store() *draw.DataStore {
	return c.store
}

// Z returns the current running z.
func (c *Context) Z() int32 {
	return c.z
}

// Acquire pools src for the current frame. The handle is released by
// EndFrame; callers that keep it longer must Retain it.
func (c *Context) Acquire(src pool.Source) pool.Handle {
	h := c.pool.Acquire(src)
	c.held = append(c.held, h)
	return h
}

// Stroke strokes contours with style and assembles one record per
// non-empty chunk. Geometry is cached under (id, style) unless id is 0.
// A dashed style separates caps by cap style.
//
// st.Z is ignored; records use the context's running z, which then
// advances past the stroke.
func (c *Context) Stroke(id PathID, contours []stroke.Contour, style stroke.Style, st draw.State) []draw.Record {
	if style.Tolerance <= 0 {
		style.Tolerance = c.opts.tolerance
	}
	build := func() *chunk.Set {
		sel := chunk.ByPrimitive
		if style.Dashed {
			sel = chunk.ByCapStyle
		}
		return c.chunks.Stroke(c.strokes.Build(contours, style), sel)
	}

	var set *chunk.Set
	if id != 0 && c.geometry != nil {
		set = c.geometry.GetOrCreate(geometryKey{id: id, style: style}, build)
	} else {
		set = build()
	}
	return c.assemble(set, allChunks(set), st)
}

// Fill assembles the chunk of in selected by rule.
func (c *Context) Fill(in chunk.FillInput, rule chunk.FillRule, st draw.State) []draw.Record {
	set := c.chunks.Fill(in)
	return c.assemble(set, []int{chunk.FillRuleChunk(rule)}, st)
}

// FillWindings assembles the chunks of in holding the given winding
// numbers, for fills whose rule is decided by the shader.
func (c *Context) FillWindings(in chunk.FillInput, windings []int, st draw.State) []draw.Record {
	set := c.chunks.Fill(in)
	ids := make([]int, len(windings))
	for i, w := range windings {
		ids[i] = chunk.WindingChunk(w)
	}
	return c.assemble(set, ids, st)
}

// Glyphs assembles glyph quads, one record per render type in use. When
// st.ItemShader reserves a sub-shader per render type, each record is
// drawn by the sub-shader of its type; otherwise the parent shader
// draws all of them.
func (c *Context) Glyphs(glyphs []vertex.Glyph, st draw.State) []draw.Record {
	set := c.chunks.Glyphs(glyphs)
	ids := allChunks(set)
	if st.ItemShader.NumSubShaders < vertex.NumGlyphRenderTypes {
		return c.assemble(set, ids, st)
	}

	item := st.ItemShader
	return c.assembleByChunk(set, ids, st, func(id int) draw.Shader {
		return item.Sub(uint32(id - chunk.GlyphChunk(0)))
	})
}

// Visible reports whether any part of poly survives planes. Use it to
// skip drawables before building their geometry.
func (c *Context) Visible(poly []clip.Point, planes []clip.Plane) bool {
	switch clip.Classify(planes, poly) {
	case clip.Inside:
		return true
	case clip.Outside:
		return false
	}
	out, _ := c.clipper.ClipPolygon(planes, poly)
	return len(out) > 0
}

// Clip clips poly against planes. The result aliases scratch memory
// valid until the next Clip or Visible call.
func (c *Context) Clip(poly []clip.Point, planes []clip.Plane) (out []clip.Point, unclipped bool) {
	return c.clipper.ClipPolygon(planes, poly)
}

func (c *Context) assemble(set *chunk.Set, ids []int, st draw.State) []draw.Record {
	return c.assembleByChunk(set, ids, st, nil)
}

// assembleByChunk assembles at the running z and advances it past the
// drawn depths. A nil itemShader keeps st.ItemShader for every chunk.
func (c *Context) assembleByChunk(set *chunk.Set, ids []int, st draw.State, itemShader func(int) draw.Shader) []draw.Record {
	st.Z = c.z
	recs := c.asm.AssembleByChunk(set, ids, st, itemShader)
	c.z += draw.DepthSpan(set, ids)
	c.records += len(recs)
	return recs
}

func allChunks(set *chunk.Set) []int {
	ids := make([]int, set.NumChunks())
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// FrameStats summarizes a finished frame.
type FrameStats struct {
	Records     int
	StoreBlocks uint32
	Pool        pool.Stats

	// Geometry cache occupancy and lifetime lookups.
	CacheLen    int
	CacheHits   uint64
	CacheMisses uint64
}

// EndFrame releases the frame's handles, reclaims released pool values,
// empties the data store and restarts the running z. Records from the
// frame must not be used afterwards.
func (c *Context) EndFrame() FrameStats {
	fs := FrameStats{
		Records:     c.records,
		StoreBlocks: c.store.Blocks(),
	}
	for _, h := range c.held {
		h.Release()
	}
	clear(c.held)
	c.held = c.held[:0]

	c.pool.Reset()
	c.store.Reset()
	c.z = c.opts.depthBase
	c.records = 0

	fs.Pool = c.pool.Stats()
	if c.geometry != nil {
		cs := c.geometry.Stats()
		fs.CacheLen, fs.CacheHits, fs.CacheMisses = cs.Len, cs.Hits, cs.Misses
	}
	Logger().Debug("drawpack: frame end",
		"records", fs.Records,
		"storeBlocks", fs.StoreBlocks,
		"poolLive", fs.Pool.Live,
		"generation", fs.Pool.Generation,
		"cacheLen", fs.CacheLen)
	return fs
}
